package repositories

import (
	"testing"

	"recruitdesk_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateDuplicateTranslated(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	first := &models.User{Name: "Alice", Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, repo.Create(first))

	// Same email, different username: the unique index fires and the
	// driver error is translated to the repository sentinel.
	dupEmail := &models.User{Name: "Other", Username: "alice2", Email: "alice@example.com", PasswordHash: "x"}
	assert.ErrorIs(t, repo.Create(dupEmail), ErrUserAlreadyExists)

	dupUsername := &models.User{Name: "Other", Username: "alice", Email: "other@example.com", PasswordHash: "x"}
	assert.ErrorIs(t, repo.Create(dupUsername), ErrUserAlreadyExists)
}

func TestUserSearch(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	for _, u := range []struct{ name, username, email string }{
		{"Bob Taylor", "bob", "bob@example.com"},
		{"Bonnie Reyes", "bonnie", "bonnie@example.com"},
		{"Carol Osment", "carol", "carol@example.com"},
		{"Dana White", "ziggy", "dana@example.com"},
	} {
		require.NoError(t, repo.Create(&models.User{
			Name: u.name, Username: u.username, Email: u.email, PasswordHash: "x",
		}))
	}

	// Username prefix, ordered by username.
	users, err := repo.Search("bo", 8)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "bob", users[0].Username)
	assert.Equal(t, "bonnie", users[1].Username)

	// Name substring, case-insensitive.
	users, err = repo.Search("OSMENT", 8)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "carol", users[0].Username)

	// Username matching is prefix-only: "iggy" sits inside "ziggy" but
	// starts neither a username nor appears in a name.
	users, err = repo.Search("iggy", 8)
	require.NoError(t, err)
	assert.Empty(t, users)

	users, err = repo.Search("bo", 1)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
