package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"recruitdesk_backend/internal/models"
	"recruitdesk_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"name":     "Alice Recruiter",
		"username": "Alice",
		"email":    "Alice@Example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var resp struct {
		OK     bool   `json:"ok"`
		UserID string `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.True(t, resp.OK)
	assert.NotEmpty(t, resp.UserID)

	// Email and username persist lowercase.
	var user models.User
	require.NoError(t, ts.DB.First(&user, "id = ?", resp.UserID).Error)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "alice", user.Username)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	helpers.CreateAndLoginUser(t, ts, "Alice", "alice", "alice@example.com", "password123")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"name":     "Other Alice",
		"username": "alice2",
		"email":    "ALICE@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode, body)
	assert.Contains(t, body, "email")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	helpers.CreateAndLoginUser(t, ts, "Alice", "alice", "alice@example.com", "password123")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"name":     "Fake Alice",
		"username": "ALICE",
		"email":    "other@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode, body)
	assert.Contains(t, body, "username")
}

func TestRegisterValidation(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"short password", map[string]interface{}{
			"name": "A", "username": "a1", "email": "a@b.com", "password": "short",
		}},
		{"bad email", map[string]interface{}{
			"name": "A", "username": "a1", "email": "not-an-email", "password": "password123",
		}},
		{"username with spaces", map[string]interface{}{
			"name": "A", "username": "bad name", "email": "a@b.com", "password": "password123",
		}},
		{"missing username", map[string]interface{}{
			"name": "A", "email": "a@b.com", "password": "password123",
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
		})
	}
}

func TestLogin(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	helpers.CreateAndLoginUser(t, ts, "Alice", "alice", "alice@example.com", "password123")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var resp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		User         struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "alice", resp.User.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	helpers.CreateAndLoginUser(t, ts, "Alice", "alice", "alice@example.com", "password123")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, body)
}

func TestRefreshRotation(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	helpers.CreateAndLoginUser(t, ts, "Alice", "alice", "alice@example.com", "password123")

	_, loginBody := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "password123",
	})
	var login struct {
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(loginBody), &login))

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]interface{}{
		"refresh_token": login.RefreshToken,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var refreshed struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &refreshed))
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken, "refresh token should rotate")

	// The old token is dead after rotation.
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]interface{}{
		"refresh_token": login.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, body)
}

func TestLoginSweepsExpiredRefreshTokens(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	_, user := helpers.CreateAndLoginUser(t, ts, "Alice", "alice", "alice@example.com", "password123")

	expired := &models.RefreshToken{
		UserID:    user.ID,
		Token:     "expired-token-value",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, ts.DB.Create(expired).Error)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var count int64
	ts.DB.Model(&models.RefreshToken{}).Where("token = ?", "expired-token-value").Count(&count)
	assert.EqualValues(t, 0, count, "expired tokens are swept on issue")

	// The live tokens survive the sweep.
	ts.DB.Model(&models.RefreshToken{}).Where("user_id = ? AND expires_at > ?", user.ID, time.Now()).Count(&count)
	assert.NotZero(t, count)
}

func TestLogout(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables()

	helpers.CreateAndLoginUser(t, ts, "Alice", "alice", "alice@example.com", "password123")

	_, loginBody := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "password123",
	})
	var login struct {
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(loginBody), &login))

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/logout", "", map[string]interface{}{
		"refresh_token": login.RefreshToken,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]interface{}{
		"refresh_token": login.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, body)
}
