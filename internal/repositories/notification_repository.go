package repositories

import (
	"errors"
	"time"

	"recruitdesk_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationCriteria is the inbox paging window. Cursor is the id of the
// last item from the previous page.
type NotificationCriteria struct {
	Cursor     string
	Limit      int
	UnreadOnly bool
}

type NotificationRepository interface {
	// UpsertMention records that a note mentioned a user. No-op when the
	// (note, user) pair already exists.
	UpsertMention(mention *models.Mention) error
	// UpsertNotification writes the durable inbox row. No-op on the
	// (user, note) unique key: a re-triggered mention never resurrects a
	// read notification.
	UpsertNotification(notification *models.Notification) error

	FindByID(id string) (*models.Notification, error)
	// ListUserNotifications returns one inbox page newest-first plus the
	// next-page cursor ("" on the final page).
	ListUserNotifications(userID string, criteria NotificationCriteria) ([]models.Notification, string, error)
	UnreadCount(userID string) (int64, error)

	// MarkRead sets read_at if it is still null; already-read rows keep
	// their original timestamp. Reports whether the row changed.
	MarkRead(notificationID string, readAt time.Time) (bool, error)
	MarkAllRead(userID string, readAt time.Time) (int64, error)

	CountMentionsForNote(noteID string) (int64, error)

	WithTx(tx *gorm.DB) NotificationRepository
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) WithTx(tx *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: tx}
}

func (r *NotificationRepositoryImpl) UpsertMention(mention *models.Mention) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "note_id"}, {Name: "mentioned_user_id"}},
		DoNothing: true,
	}).Create(mention).Error
}

func (r *NotificationRepositoryImpl) UpsertNotification(notification *models.Notification) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "note_id"}},
		DoNothing: true,
	}).Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindByID(id string) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepositoryImpl) ListUserNotifications(userID string, criteria NotificationCriteria) ([]models.Notification, string, error) {
	query := r.db.Model(&models.Notification{}).Where("user_id = ?", userID)

	if criteria.UnreadOnly {
		query = query.Where("read_at IS NULL")
	}

	if criteria.Cursor != "" {
		var cur models.Notification
		err := r.db.Select("id", "created_at").First(&cur, "id = ?", criteria.Cursor).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", ErrInvalidCursor
			}
			return nil, "", err
		}
		query = query.Where("created_at < ? OR (created_at = ? AND id < ?)", cur.CreatedAt, cur.CreatedAt, cur.ID)
	}

	var notifications []models.Notification
	err := query.Order("created_at DESC, id DESC").Limit(criteria.Limit + 1).Find(&notifications).Error
	if err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(notifications) > criteria.Limit {
		notifications = notifications[:criteria.Limit]
		nextCursor = notifications[len(notifications)-1].ID
	}
	return notifications, nextCursor, nil
}

func (r *NotificationRepositoryImpl) UnreadCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) MarkRead(notificationID string, readAt time.Time) (bool, error) {
	result := r.db.Model(&models.Notification{}).
		Where("id = ? AND read_at IS NULL", notificationID).
		Update("read_at", readAt)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *NotificationRepositoryImpl) MarkAllRead(userID string, readAt time.Time) (int64, error) {
	result := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", readAt)
	return result.RowsAffected, result.Error
}

func (r *NotificationRepositoryImpl) CountMentionsForNote(noteID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Mention{}).Where("note_id = ?", noteID).Count(&count).Error
	return count, err
}
