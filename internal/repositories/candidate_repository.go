package repositories

import (
	"errors"
	"strings"

	"recruitdesk_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrInvalidCursor     = errors.New("invalid pagination cursor")
)

// CandidateCriteria is the keyset paging window for candidate listings.
// Cursor is the id of the last item from the previous page.
type CandidateCriteria struct {
	Query  string
	Cursor string
	Limit  int
}

type CandidateRepository interface {
	Create(candidate *models.Candidate) error
	FindByID(id string) (*models.Candidate, error)
	// List returns up to criteria.Limit candidates ordered by creation
	// time descending, plus the cursor for the next page ("" on the
	// final page).
	List(criteria CandidateCriteria) ([]models.Candidate, string, error)
}

type CandidateRepositoryImpl struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &CandidateRepositoryImpl{db: db}
}

func (r *CandidateRepositoryImpl) Create(candidate *models.Candidate) error {
	return r.db.Create(candidate).Error
}

func (r *CandidateRepositoryImpl) FindByID(id string) (*models.Candidate, error) {
	var candidate models.Candidate
	err := r.db.First(&candidate, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}
	return &candidate, nil
}

func (r *CandidateRepositoryImpl) List(criteria CandidateCriteria) ([]models.Candidate, string, error) {
	query := r.db.Model(&models.Candidate{})

	if criteria.Query != "" {
		// Case-insensitive on both postgres and sqlite.
		pattern := "%" + strings.ToLower(criteria.Query) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}

	if criteria.Cursor != "" {
		var cur models.Candidate
		err := r.db.Select("id", "created_at").First(&cur, "id = ?", criteria.Cursor).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", ErrInvalidCursor
			}
			return nil, "", err
		}
		query = query.Where("created_at < ? OR (created_at = ? AND id < ?)", cur.CreatedAt, cur.CreatedAt, cur.ID)
	}

	// Fetch one extra row to learn whether a next page exists.
	var candidates []models.Candidate
	err := query.Order("created_at DESC, id DESC").Limit(criteria.Limit + 1).Find(&candidates).Error
	if err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(candidates) > criteria.Limit {
		candidates = candidates[:criteria.Limit]
		nextCursor = candidates[len(candidates)-1].ID
	}
	return candidates, nextCursor, nil
}
