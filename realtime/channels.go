package realtime

import "strings"

// Channel naming. Per-user channels are private: only their owner may
// subscribe. Candidate channels are shared by every authenticated viewer
// of that candidate's chat.
const (
	userChannelPrefix      = "user:"
	candidateChannelPrefix = "candidate:"
)

// Event names pushed over channels.
const (
	EventMention             = "mention"
	EventMessageNew          = "message:new"
	EventNotificationRead    = "notification:read"
	EventNotificationReadAll = "notification:read_all"
)

func UserChannel(userID string) string {
	return userChannelPrefix + userID
}

func CandidateChannel(candidateID string) string {
	return candidateChannelPrefix + candidateID
}

// Authorize reports whether userID may subscribe to channel. A user channel
// is granted only to its owner; candidate channels to any authenticated
// user; unknown channel shapes are denied.
func Authorize(userID, channel string) bool {
	if owner, ok := strings.CutPrefix(channel, userChannelPrefix); ok {
		return owner == userID
	}
	if id, ok := strings.CutPrefix(channel, candidateChannelPrefix); ok {
		return id != ""
	}
	return false
}
