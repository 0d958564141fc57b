package services

import (
	"encoding/json"
	"time"

	"recruitdesk_backend/internal/logger"
	"recruitdesk_backend/internal/models"
	"recruitdesk_backend/internal/repositories"
	"recruitdesk_backend/internal/services/dto"
	"recruitdesk_backend/pkg/apperrors"
	"recruitdesk_backend/realtime"
)

const (
	notificationPageSizeDefault = 20
	notificationPageSizeMax     = 50
)

type NotificationService interface {
	// List returns one inbox page. UnreadCount is computed independently
	// of the page contents.
	List(userID string, criteria dto.NotificationCriteria) (*dto.NotificationListResponse, error)
	// MarkRead is idempotent: the first mark sets read_at, later marks
	// are no-ops. Returns ErrForbidden for another user's notification.
	MarkRead(userID, notificationID string) error
	MarkAllRead(userID string) error
}

type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
	publisher        realtime.Publisher
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	publisher realtime.Publisher,
) NotificationService {
	return &NotificationServiceImpl{
		notificationRepo: notificationRepo,
		publisher:        publisher,
	}
}

func (s *NotificationServiceImpl) List(userID string, criteria dto.NotificationCriteria) (*dto.NotificationListResponse, error) {
	limit := clampPageSize(criteria.Limit, notificationPageSizeDefault, notificationPageSizeMax)

	notifications, nextCursor, err := s.notificationRepo.ListUserNotifications(userID, repositories.NotificationCriteria{
		Cursor:     criteria.Cursor,
		Limit:      limit,
		UnreadOnly: criteria.UnreadOnly,
	})
	if err != nil {
		if apperrors.Is(err, repositories.ErrInvalidCursor) {
			return nil, apperrors.NewBadRequestError("Unknown pagination cursor")
		}
		return nil, apperrors.InternalError(err)
	}

	unreadCount, err := s.notificationRepo.UnreadCount(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]*dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		items = append(items, buildNotificationResponse(&notifications[i]))
	}

	return &dto.NotificationListResponse{
		Items:       items,
		NextCursor:  cursorOrNil(nextCursor),
		UnreadCount: unreadCount,
	}, nil
}

func (s *NotificationServiceImpl) MarkRead(userID, notificationID string) error {
	notification, err := s.notificationRepo.FindByID(notificationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return apperrors.InternalError(err)
	}
	if notification.UserID != userID {
		return apperrors.ErrForbidden
	}
	if notification.IsRead() {
		// First mark won; repeat marks keep the original timestamp.
		return nil
	}

	changed, err := s.notificationRepo.MarkRead(notificationID, time.Now())
	if err != nil {
		return apperrors.InternalError(err)
	}

	if changed {
		// Badge refresh for other open sessions of the same user.
		if err := s.publisher.Publish(realtime.UserChannel(userID), realtime.EventNotificationRead, map[string]string{"id": notificationID}); err != nil {
			logger.Warn("realtime read push failed", "notification_id", notificationID, "error", err)
		}
	}
	return nil
}

func (s *NotificationServiceImpl) MarkAllRead(userID string) error {
	changed, err := s.notificationRepo.MarkAllRead(userID, time.Now())
	if err != nil {
		return apperrors.InternalError(err)
	}

	if changed > 0 {
		if err := s.publisher.Publish(realtime.UserChannel(userID), realtime.EventNotificationReadAll, nil); err != nil {
			logger.Warn("realtime read-all push failed", "user_id", userID, "error", err)
		}
	}
	return nil
}

func buildNotificationResponse(notification *models.Notification) *dto.NotificationResponse {
	resp := &dto.NotificationResponse{
		ID:          notification.ID,
		CandidateID: notification.CandidateID,
		NoteID:      notification.NoteID,
		Preview:     notification.Preview,
		ReadAt:      notification.ReadAt,
		CreatedAt:   notification.CreatedAt,
	}

	if len(notification.Data) > 0 {
		var data map[string]string
		if err := json.Unmarshal(notification.Data, &data); err == nil {
			resp.CandidateName = data["candidate_name"]
		}
	}
	return resp
}
