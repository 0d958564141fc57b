package models

// Note is one entry in a candidate's chat transcript. Append-only: rows are
// never updated once written.
type Note struct {
	BaseModel
	Content     string `gorm:"type:text;not null"`
	CandidateID string `gorm:"not null;index"`
	AuthorID    string `gorm:"not null;index"`

	// Relations
	Author    *User      `gorm:"foreignKey:AuthorID"`
	Candidate *Candidate `gorm:"foreignKey:CandidateID"`
}

// Mention records that a note's text referenced a user via @username.
// Written alongside the Notification row in the same transaction.
type Mention struct {
	BaseModel
	NoteID          string `gorm:"not null;uniqueIndex:idx_mention_note_user"`
	MentionedUserID string `gorm:"not null;uniqueIndex:idx_mention_note_user"`
}
