package services

import (
	"strings"

	"recruitdesk_backend/internal/models"
	"recruitdesk_backend/internal/repositories"
	"recruitdesk_backend/internal/services/dto"
	"recruitdesk_backend/pkg/apperrors"
)

const (
	candidatePageSizeDefault = 10
	candidatePageSizeMax     = 50
)

type CandidateService interface {
	Create(userID string, req *dto.CreateCandidateRequest) (*dto.CandidateResponse, error)
	Get(candidateID string) (*dto.CandidateResponse, error)
	List(criteria dto.CandidateCriteria) (*dto.CandidateListResponse, error)
}

type CandidateServiceImpl struct {
	candidateRepo repositories.CandidateRepository
}

func NewCandidateService(candidateRepo repositories.CandidateRepository) CandidateService {
	return &CandidateServiceImpl{candidateRepo: candidateRepo}
}

func (s *CandidateServiceImpl) Create(userID string, req *dto.CreateCandidateRequest) (*dto.CandidateResponse, error) {
	candidate := &models.Candidate{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		CreatedByID: userID,
	}

	if err := s.candidateRepo.Create(candidate); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return buildCandidateResponse(candidate), nil
}

func (s *CandidateServiceImpl) Get(candidateID string) (*dto.CandidateResponse, error) {
	candidate, err := s.candidateRepo.FindByID(candidateID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCandidateNotFound) {
			return nil, apperrors.ErrCandidateNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return buildCandidateResponse(candidate), nil
}

func (s *CandidateServiceImpl) List(criteria dto.CandidateCriteria) (*dto.CandidateListResponse, error) {
	limit := clampPageSize(criteria.Limit, candidatePageSizeDefault, candidatePageSizeMax)

	candidates, nextCursor, err := s.candidateRepo.List(repositories.CandidateCriteria{
		Query:  strings.TrimSpace(criteria.Query),
		Cursor: criteria.Cursor,
		Limit:  limit,
	})
	if err != nil {
		if apperrors.Is(err, repositories.ErrInvalidCursor) {
			return nil, apperrors.NewBadRequestError("Unknown pagination cursor")
		}
		return nil, apperrors.InternalError(err)
	}

	items := make([]*dto.CandidateResponse, 0, len(candidates))
	for i := range candidates {
		items = append(items, buildCandidateResponse(&candidates[i]))
	}

	return &dto.CandidateListResponse{
		Items:      items,
		NextCursor: cursorOrNil(nextCursor),
	}, nil
}

func buildCandidateResponse(candidate *models.Candidate) *dto.CandidateResponse {
	return &dto.CandidateResponse{
		ID:          candidate.ID,
		Name:        candidate.Name,
		Email:       candidate.Email,
		CreatedAt:   candidate.CreatedAt,
		CreatedByID: candidate.CreatedByID,
	}
}

// clampPageSize applies the default and the hard cap shared by all listing
// endpoints.
func clampPageSize(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// cursorOrNil maps the repository's "" sentinel to an explicit JSON null.
func cursorOrNil(cursor string) *string {
	if cursor == "" {
		return nil
	}
	return &cursor
}
