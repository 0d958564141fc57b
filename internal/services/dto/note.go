package dto

import "time"

// ---------------- Requests ----------------

type CreateNoteRequest struct {
	Content string `json:"content" validate:"required,notblank,max=10000"`
}

type NoteCriteria struct {
	Cursor string
	Limit  int
}

// ---------------- Responses ----------------

type NoteAuthor struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type NoteResponse struct {
	ID          string      `json:"id"`
	Content     string      `json:"content"`
	CandidateID string      `json:"candidate_id"`
	AuthorID    string      `json:"author_id"`
	CreatedAt   time.Time   `json:"created_at"`
	Author      *NoteAuthor `json:"author,omitempty"`
}

// CreateNoteResult distinguishes "persisted and broadcast" from "persisted,
// not yet broadcast": Delivered is false when the realtime push failed after
// the transaction committed. The note itself is durable either way.
type CreateNoteResult struct {
	Note             *NoteResponse `json:"item"`
	MentionedUserIDs []string      `json:"mentioned_user_ids"`
	Delivered        bool          `json:"delivered"`
}

type NoteListResponse struct {
	Items      []*NoteResponse `json:"items"`
	NextCursor *string         `json:"next_cursor"`
}
