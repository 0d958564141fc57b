package services

import (
	"encoding/json"
	"strings"

	"recruitdesk_backend/internal/email"
	"recruitdesk_backend/internal/logger"
	"recruitdesk_backend/internal/mention"
	"recruitdesk_backend/internal/models"
	"recruitdesk_backend/internal/repositories"
	"recruitdesk_backend/internal/services/dto"
	"recruitdesk_backend/pkg/apperrors"
	"recruitdesk_backend/realtime"

	"gorm.io/gorm"
)

const (
	notePageSizeDefault = 30
	notePageSizeMax     = 100

	// notificationPreviewLen is the canonical truncation point for the
	// inbox preview.
	notificationPreviewLen = 200
)

type NoteService interface {
	// CreateNote persists a note and runs the mention fan-out. The note,
	// its mention rows and their notification rows commit in one
	// transaction; the realtime push happens only after commit.
	CreateNote(authorID, candidateID string, req *dto.CreateNoteRequest) (*dto.CreateNoteResult, error)
	ListNotes(candidateID string, criteria dto.NoteCriteria) (*dto.NoteListResponse, error)
}

type NoteServiceImpl struct {
	db               *gorm.DB
	noteRepo         repositories.NoteRepository
	candidateRepo    repositories.CandidateRepository
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
	publisher        realtime.Publisher
	emailProvider    email.Provider
}

func NewNoteService(
	db *gorm.DB,
	noteRepo repositories.NoteRepository,
	candidateRepo repositories.CandidateRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
	publisher realtime.Publisher,
	emailProvider email.Provider,
) NoteService {
	return &NoteServiceImpl{
		db:               db,
		noteRepo:         noteRepo,
		candidateRepo:    candidateRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		publisher:        publisher,
		emailProvider:    emailProvider,
	}
}

func (s *NoteServiceImpl) CreateNote(authorID, candidateID string, req *dto.CreateNoteRequest) (*dto.CreateNoteResult, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.ErrEmptyNoteContent
	}

	candidate, err := s.candidateRepo.FindByID(candidateID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCandidateNotFound) {
			return nil, apperrors.ErrCandidateNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	author, err := s.userRepo.FindByID(authorID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Resolve @mentions before opening the transaction; unknown usernames
	// are silently dropped.
	mentionedUsers, err := s.userRepo.FindByUsernames(mention.Extract(content))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	preview := truncatePreview(content)
	data, _ := json.Marshal(map[string]string{"candidate_name": candidate.Name})

	note := &models.Note{
		Content:     content,
		CandidateID: candidate.ID,
		AuthorID:    author.ID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.noteRepo.WithTx(tx).Create(note); err != nil {
			return err
		}

		notifRepo := s.notificationRepo.WithTx(tx)
		for _, user := range mentionedUsers {
			if err := notifRepo.UpsertMention(&models.Mention{
				NoteID:          note.ID,
				MentionedUserID: user.ID,
			}); err != nil {
				return err
			}
			if err := notifRepo.UpsertNotification(&models.Notification{
				UserID:      user.ID,
				CandidateID: candidate.ID,
				NoteID:      note.ID,
				Preview:     preview,
				Data:        data,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Everything below runs after commit and is best-effort: a failed
	// push or email does not undo the committed rows.
	delivered := s.broadcast(note, author, candidate, mentionedUsers, preview)
	s.sendMentionEmails(author, candidate, mentionedUsers, preview)

	mentionedIDs := make([]string, 0, len(mentionedUsers))
	for _, user := range mentionedUsers {
		mentionedIDs = append(mentionedIDs, user.ID)
	}

	return &dto.CreateNoteResult{
		Note:             buildNoteResponse(note, author),
		MentionedUserIDs: mentionedIDs,
		Delivered:        delivered,
	}, nil
}

func (s *NoteServiceImpl) broadcast(note *models.Note, author *models.User, candidate *models.Candidate, mentionedUsers []models.User, preview string) bool {
	delivered := true

	for _, user := range mentionedUsers {
		err := s.publisher.Publish(realtime.UserChannel(user.ID), realtime.EventMention, map[string]string{
			"candidate_id": candidate.ID,
			"note_id":      note.ID,
			"preview":      preview,
		})
		if err != nil {
			logger.Warn("realtime mention push failed", "user_id", user.ID, "note_id", note.ID, "error", err)
			delivered = false
		}
	}

	err := s.publisher.Publish(realtime.CandidateChannel(candidate.ID), realtime.EventMessageNew, buildNoteResponse(note, author))
	if err != nil {
		logger.Warn("realtime message push failed", "candidate_id", candidate.ID, "note_id", note.ID, "error", err)
		delivered = false
	}
	return delivered
}

func (s *NoteServiceImpl) sendMentionEmails(author *models.User, candidate *models.Candidate, mentionedUsers []models.User, preview string) {
	for _, user := range mentionedUsers {
		if user.ID == author.ID {
			continue
		}
		err := s.emailProvider.SendMention(&email.MentionEmail{
			To:            user.Email,
			MentionedBy:   author.Name,
			CandidateName: candidate.Name,
			Preview:       preview,
		})
		if err != nil {
			logger.Warn("mention email failed", "user_id", user.ID, "error", err)
		}
	}
}

func (s *NoteServiceImpl) ListNotes(candidateID string, criteria dto.NoteCriteria) (*dto.NoteListResponse, error) {
	if _, err := s.candidateRepo.FindByID(candidateID); err != nil {
		if apperrors.Is(err, repositories.ErrCandidateNotFound) {
			return nil, apperrors.ErrCandidateNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	limit := clampPageSize(criteria.Limit, notePageSizeDefault, notePageSizeMax)

	notes, nextCursor, err := s.noteRepo.ListByCandidate(candidateID, repositories.NoteCriteria{
		Cursor: criteria.Cursor,
		Limit:  limit,
	})
	if err != nil {
		if apperrors.Is(err, repositories.ErrInvalidCursor) {
			return nil, apperrors.NewBadRequestError("Unknown pagination cursor")
		}
		return nil, apperrors.InternalError(err)
	}

	items := make([]*dto.NoteResponse, 0, len(notes))
	for i := range notes {
		items = append(items, buildNoteResponse(&notes[i], notes[i].Author))
	}

	return &dto.NoteListResponse{
		Items:      items,
		NextCursor: cursorOrNil(nextCursor),
	}, nil
}

func buildNoteResponse(note *models.Note, author *models.User) *dto.NoteResponse {
	resp := &dto.NoteResponse{
		ID:          note.ID,
		Content:     note.Content,
		CandidateID: note.CandidateID,
		AuthorID:    note.AuthorID,
		CreatedAt:   note.CreatedAt,
	}
	if author != nil {
		resp.Author = &dto.NoteAuthor{
			ID:       author.ID,
			Name:     author.Name,
			Email:    author.Email,
			Username: author.Username,
		}
	}
	return resp
}

// truncatePreview cuts at a rune boundary so multi-byte content never
// produces an invalid string.
func truncatePreview(content string) string {
	runes := []rune(content)
	if len(runes) <= notificationPreviewLen {
		return content
	}
	return string(runes[:notificationPreviewLen])
}
