package dto

// UserSearchResult is the mention-autocomplete projection.
type UserSearchResult struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}
