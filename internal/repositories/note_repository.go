package repositories

import (
	"errors"

	"recruitdesk_backend/internal/models"

	"gorm.io/gorm"
)

var ErrNoteNotFound = errors.New("note not found")

// NoteCriteria pages a candidate transcript in chronological order.
// Cursor is the id of the last note from the previous page.
type NoteCriteria struct {
	Cursor string
	Limit  int
}

type NoteRepository interface {
	Create(note *models.Note) error
	FindByID(id string) (*models.Note, error)
	// ListByCandidate returns up to criteria.Limit notes oldest-first
	// with the author preloaded, plus the next-page cursor.
	ListByCandidate(candidateID string, criteria NoteCriteria) ([]models.Note, string, error)

	// WithTx returns a repository bound to tx so note creation can share
	// a transaction with the mention fan-out.
	WithTx(tx *gorm.DB) NoteRepository
}

type NoteRepositoryImpl struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &NoteRepositoryImpl{db: db}
}

func (r *NoteRepositoryImpl) WithTx(tx *gorm.DB) NoteRepository {
	return &NoteRepositoryImpl{db: tx}
}

func (r *NoteRepositoryImpl) Create(note *models.Note) error {
	return r.db.Create(note).Error
}

func (r *NoteRepositoryImpl) FindByID(id string) (*models.Note, error) {
	var note models.Note
	err := r.db.Preload("Author").First(&note, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

func (r *NoteRepositoryImpl) ListByCandidate(candidateID string, criteria NoteCriteria) ([]models.Note, string, error) {
	query := r.db.Model(&models.Note{}).Where("candidate_id = ?", candidateID)

	if criteria.Cursor != "" {
		var cur models.Note
		err := r.db.Select("id", "created_at").First(&cur, "id = ?", criteria.Cursor).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", ErrInvalidCursor
			}
			return nil, "", err
		}
		query = query.Where("created_at > ? OR (created_at = ? AND id > ?)", cur.CreatedAt, cur.CreatedAt, cur.ID)
	}

	var notes []models.Note
	err := query.Preload("Author").
		Order("created_at ASC, id ASC").
		Limit(criteria.Limit + 1).
		Find(&notes).Error
	if err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(notes) > criteria.Limit {
		notes = notes[:criteria.Limit]
		nextCursor = notes[len(notes)-1].ID
	}
	return notes, nextCursor, nil
}
