package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification is a durable per-user inbox entry derived from a mention.
// Unique on (UserID, NoteID): re-mentioning the same user in the same note
// never produces a second row.
type Notification struct {
	BaseModel
	UserID      string         `gorm:"not null;uniqueIndex:idx_notification_user_note;index:idx_notification_user_created"`
	CandidateID string         `gorm:"not null"`
	NoteID      string         `gorm:"not null;uniqueIndex:idx_notification_user_note"`
	Preview     string         `gorm:"not null"` // first 200 runes of the note
	Data        datatypes.JSON // {"candidate_name": "..."}
	ReadAt      *time.Time

	// Relations
	Candidate *Candidate `gorm:"foreignKey:CandidateID"`
}

func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
