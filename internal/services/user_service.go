package services

import (
	"strings"

	"recruitdesk_backend/internal/repositories"
	"recruitdesk_backend/internal/services/dto"
	"recruitdesk_backend/pkg/apperrors"
)

// userSearchLimit caps autocomplete results; there is no paging here.
const userSearchLimit = 8

type UserService interface {
	// Search backs the mention composer: username prefix or name
	// substring, case-insensitive. A blank query returns no results.
	Search(query string) ([]*dto.UserSearchResult, error)
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) Search(query string) ([]*dto.UserSearchResult, error) {
	items := make([]*dto.UserSearchResult, 0, userSearchLimit)

	query = strings.TrimSpace(query)
	if query == "" {
		return items, nil
	}

	users, err := s.userRepo.Search(query, userSearchLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	for i := range users {
		items = append(items, &dto.UserSearchResult{
			ID:       users[i].ID,
			Name:     users[i].Name,
			Username: users[i].Username,
		})
	}
	return items, nil
}
