// Package email sends mention digests to users who were @mentioned in a
// note. Sending is optional and always best-effort: a failed email never
// fails note creation.
package email

// MentionEmail is the payload for one mention message.
type MentionEmail struct {
	To            string
	MentionedBy   string
	CandidateName string
	Preview       string
}

type Provider interface {
	SendMention(msg *MentionEmail) error
}

// NopProvider is used when email is disabled in config and in tests.
type NopProvider struct{}

func (NopProvider) SendMention(*MentionEmail) error { return nil }
