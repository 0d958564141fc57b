package dto

import "time"

// ---------------- Requests ----------------

type CreateCandidateRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email"`
}

// CandidateCriteria is the parsed listing query. Limit is clamped by the
// service, not trusted from the client.
type CandidateCriteria struct {
	Query  string
	Cursor string
	Limit  int
}

// ---------------- Responses ----------------

type CandidateResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedByID string    `json:"created_by_id"`
}

type CandidateListResponse struct {
	Items      []*CandidateResponse `json:"items"`
	NextCursor *string              `json:"next_cursor"`
}
