package services

import (
	"errors"
	"strings"
	"testing"

	"recruitdesk_backend/internal/models"
	"recruitdesk_backend/realtime"

	"github.com/stretchr/testify/assert"
)

type failingPublisher struct{}

func (failingPublisher) Publish(string, string, interface{}) error {
	return errors.New("broker unavailable")
}

func broadcastFixture() (*models.Note, *models.User, *models.Candidate, []models.User) {
	author := &models.User{Name: "Alice", Username: "alice", Email: "alice@example.com"}
	author.ID = "u-alice"
	bob := models.User{Name: "Bob", Username: "bob", Email: "bob@example.com"}
	bob.ID = "u-bob"
	candidate := &models.Candidate{Name: "Jordan Smith", Email: "jordan@candidates.io", CreatedByID: author.ID}
	candidate.ID = "c-1"
	note := &models.Note{Content: "@bob take a look", CandidateID: candidate.ID, AuthorID: author.ID}
	note.ID = "n-1"
	return note, author, candidate, []models.User{bob}
}

func TestBroadcastDelivered(t *testing.T) {
	note, author, candidate, mentioned := broadcastFixture()

	s := &NoteServiceImpl{publisher: realtime.NopPublisher{}}
	assert.True(t, s.broadcast(note, author, candidate, mentioned, "preview"))
}

func TestBroadcastReportsPublishFailure(t *testing.T) {
	note, author, candidate, mentioned := broadcastFixture()

	// The note is already committed at this point; a dead broker only
	// flips the delivered flag.
	s := &NoteServiceImpl{publisher: failingPublisher{}}
	assert.False(t, s.broadcast(note, author, candidate, mentioned, "preview"))

	// Same with nobody mentioned: the candidate channel push still fails.
	s = &NoteServiceImpl{publisher: failingPublisher{}}
	assert.False(t, s.broadcast(note, author, candidate, nil, "preview"))
}

func TestTruncatePreview(t *testing.T) {
	short := "fits as is"
	assert.Equal(t, short, truncatePreview(short))

	exact := strings.Repeat("a", notificationPreviewLen)
	assert.Equal(t, exact, truncatePreview(exact))

	long := strings.Repeat("b", notificationPreviewLen+50)
	assert.Len(t, []rune(truncatePreview(long)), notificationPreviewLen)

	// Multi-byte content cuts on a rune boundary.
	wide := strings.Repeat("ж", notificationPreviewLen+1)
	got := truncatePreview(wide)
	assert.Len(t, []rune(got), notificationPreviewLen)
	assert.True(t, strings.HasSuffix(got, "ж"))
}
