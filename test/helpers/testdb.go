package helpers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"recruitdesk_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser inserts a user directly, hashing the password if it is raw.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) error {
	if user.PasswordHash != "" && !strings.HasPrefix(user.PasswordHash, "$2a$") {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
		if err != nil {
			t.Fatalf("Failed to hash password: %v", err)
		}
		user.PasswordHash = string(hashed)
	}
	user.Email = strings.ToLower(user.Email)
	user.Username = strings.ToLower(user.Username)

	return db.Create(user).Error
}

// CreateAndLoginUser inserts a user and logs them in through the API,
// returning the access token.
func CreateAndLoginUser(t *testing.T, ts *TestServer, name, username, email, password string) (string, *models.User) {
	user := &models.User{
		Name:         name,
		Username:     username,
		Email:        email,
		PasswordHash: password,
	}
	require.NoError(t, CreateUser(t, ts.DB, user), "test user creation should succeed")

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "login should succeed, got: "+bodyStr)

	var loginResponse struct {
		Token string `json:"access_token"`
	}
	err := json.Unmarshal([]byte(bodyStr), &loginResponse)
	assert.NoError(t, err)
	assert.NotEmpty(t, loginResponse.Token)

	return loginResponse.Token, user
}

// CreateCandidate inserts a candidate row directly.
func CreateCandidate(t *testing.T, db *gorm.DB, name, email, createdByID string) *models.Candidate {
	candidate := &models.Candidate{
		Name:        name,
		Email:       email,
		CreatedByID: createdByID,
	}
	require.NoError(t, db.Create(candidate).Error, "test candidate creation should succeed")
	return candidate
}
