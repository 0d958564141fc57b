package repositories

import (
	"fmt"
	"testing"
	"time"

	"recruitdesk_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Candidate{},
		&models.Note{},
		&models.Mention{},
		&models.Notification{},
	))
	return db
}

func seedNoteFixture(t *testing.T, db *gorm.DB) (author *models.User, target *models.User, note *models.Note) {
	author = &models.User{Name: "Alice", Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(author).Error)
	target = &models.User{Name: "Bob", Username: "bob", Email: "bob@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(target).Error)

	candidate := &models.Candidate{Name: "Jordan Smith", Email: "jordan@candidates.io", CreatedByID: author.ID}
	require.NoError(t, db.Create(candidate).Error)

	note = &models.Note{Content: "@bob take a look", CandidateID: candidate.ID, AuthorID: author.ID}
	require.NoError(t, db.Create(note).Error)
	return author, target, note
}

func TestUpsertNotificationDeduplicates(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db)
	_, target, note := seedNoteFixture(t, db)

	first := &models.Notification{
		UserID:      target.ID,
		CandidateID: note.CandidateID,
		NoteID:      note.ID,
		Preview:     "@bob take a look",
	}
	require.NoError(t, repo.UpsertNotification(first))

	// Marking read then re-upserting the same (user, note) pair must not
	// resurrect the notification as unread.
	readAt := time.Now()
	changed, err := repo.MarkRead(first.ID, readAt)
	require.NoError(t, err)
	require.True(t, changed)

	dup := &models.Notification{
		UserID:      target.ID,
		CandidateID: note.CandidateID,
		NoteID:      note.ID,
		Preview:     "@bob take a look",
	}
	require.NoError(t, repo.UpsertNotification(dup))

	var count int64
	db.Model(&models.Notification{}).Where("user_id = ? AND note_id = ?", target.ID, note.ID).Count(&count)
	assert.EqualValues(t, 1, count)

	stored, err := repo.FindByID(first.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.ReadAt)
}

func TestUpsertMentionDeduplicates(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db)
	_, target, note := seedNoteFixture(t, db)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.UpsertMention(&models.Mention{
			NoteID:          note.ID,
			MentionedUserID: target.ID,
		}))
	}

	count, err := repo.CountMentionsForNote(note.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestMarkReadKeepsFirstTimestamp(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db)
	_, target, note := seedNoteFixture(t, db)

	n := &models.Notification{UserID: target.ID, CandidateID: note.CandidateID, NoteID: note.ID, Preview: "p"}
	require.NoError(t, repo.UpsertNotification(n))

	firstRead := time.Now().Add(-time.Hour)
	changed, err := repo.MarkRead(n.ID, firstRead)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.MarkRead(n.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, changed, "second mark is a no-op")

	stored, err := repo.FindByID(n.ID)
	require.NoError(t, err)
	require.True(t, stored.IsRead())
	assert.WithinDuration(t, firstRead, *stored.ReadAt, time.Second)
}

func TestListUserNotificationsKeyset(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db)
	author, target, _ := seedNoteFixture(t, db)

	candidate := &models.Candidate{Name: "Pat Miller", Email: "pat@candidates.io", CreatedByID: author.ID}
	require.NoError(t, db.Create(candidate).Error)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 9; i++ {
		note := &models.Note{Content: fmt.Sprintf("note %d", i), CandidateID: candidate.ID, AuthorID: author.ID}
		require.NoError(t, db.Create(note).Error)
		n := &models.Notification{UserID: target.ID, CandidateID: candidate.ID, NoteID: note.ID, Preview: note.Content}
		require.NoError(t, repo.UpsertNotification(n))
		require.NoError(t, db.Model(n).Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	page1, cursor, err := repo.ListUserNotifications(target.ID, NotificationCriteria{Limit: 4})
	require.NoError(t, err)
	require.Len(t, page1, 4)
	require.NotEmpty(t, cursor)
	assert.Equal(t, "note 8", page1[0].Preview)

	page2, cursor, err := repo.ListUserNotifications(target.ID, NotificationCriteria{Limit: 4, Cursor: cursor})
	require.NoError(t, err)
	require.Len(t, page2, 4)
	require.NotEmpty(t, cursor)

	page3, cursor, err := repo.ListUserNotifications(target.ID, NotificationCriteria{Limit: 4, Cursor: cursor})
	require.NoError(t, err)
	require.Len(t, page3, 1)
	assert.Empty(t, cursor, "final page has no cursor")
	assert.Equal(t, "note 0", page3[0].Preview)

	seen := map[string]bool{}
	for _, n := range append(append(page1, page2...), page3...) {
		assert.False(t, seen[n.ID])
		seen[n.ID] = true
	}

	_, _, err = repo.ListUserNotifications(target.ID, NotificationCriteria{Limit: 4, Cursor: "bogus"})
	assert.ErrorIs(t, err, ErrInvalidCursor)
}

func TestMarkAllRead(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db)
	author, target, note := seedNoteFixture(t, db)

	for i := 0; i < 3; i++ {
		n := &models.Note{Content: fmt.Sprintf("n%d", i), CandidateID: note.CandidateID, AuthorID: author.ID}
		require.NoError(t, db.Create(n).Error)
		require.NoError(t, repo.UpsertNotification(&models.Notification{
			UserID: target.ID, CandidateID: note.CandidateID, NoteID: n.ID, Preview: n.Content,
		}))
	}

	affected, err := repo.MarkAllRead(target.ID, time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 3, affected)

	count, err := repo.UnreadCount(target.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	// Idempotent: nothing left to mark.
	affected, err = repo.MarkAllRead(target.ID, time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 0, affected)
}
