package dto

import "time"

// NotificationCriteria is the parsed inbox query.
type NotificationCriteria struct {
	Cursor     string
	Limit      int
	UnreadOnly bool
}

type NotificationResponse struct {
	ID            string     `json:"id"`
	CandidateID   string     `json:"candidate_id"`
	NoteID        string     `json:"note_id"`
	Preview       string     `json:"preview"`
	CandidateName string     `json:"candidate_name,omitempty"`
	ReadAt        *time.Time `json:"read_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

type NotificationListResponse struct {
	Items       []*NotificationResponse `json:"items"`
	NextCursor  *string                 `json:"next_cursor"`
	UnreadCount int64                   `json:"unread_count"`
}
