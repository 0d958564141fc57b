package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"recruitdesk_backend/internal/app"
	"recruitdesk_backend/internal/config"
	"recruitdesk_backend/internal/logger"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
	Config *config.Config
}

// NewTestServer spins up the full router on an in-memory sqlite database.
func NewTestServer(t *testing.T) *TestServer {
	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Database.DSN = "file::memory:?cache=shared"
	cfg.JWT.Secret = "test-secret-key-1234567890"
	cfg.JWT.TTL = 60
	cfg.Realtime.SendBuffer = 16
	config.AppConfig = cfg

	logger.Init(cfg.Server.Env)

	db, err := gorm.Open(sqlite.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get *sql.DB from GORM: %v", err)
	}
	// Shared-cache sqlite locks up under concurrent writers.
	sqlDB.SetMaxOpenConns(1)

	if err := app.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	router := app.SetupRouter(cfg, db)
	server := httptest.NewServer(router)

	return &TestServer{
		Server: server,
		DB:     db,
		Config: cfg,
	}
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	sqlDB, _ := ts.DB.DB()
	sqlDB.Close()
}

// ClearTables wipes all rows between tests.
func (ts *TestServer) ClearTables() {
	for _, table := range []string{"notifications", "mentions", "notes", "refresh_tokens", "candidates", "users"} {
		if err := ts.DB.Exec("DELETE FROM " + table).Error; err != nil {
			panic("failed to clear table " + table + ": " + err.Error())
		}
	}
}

// SendRequest performs a JSON request against the test server and returns the
// response along with its body as a string.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	url := ts.Server.URL + path

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}

	return res, string(resBody)
}
