package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/davesbikeparts/partshub/internal/config"
	"github.com/davesbikeparts/partshub/internal/db"
	apphttp "github.com/davesbikeparts/partshub/internal/http"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func testConfig() config.Config {
	return config.Config{
		Env:             "test",
		Port:            0, // not used in tests
		DBURL:           "", // pool created manually in tests
		JWTSecret:       "test-secret-key", // deterministic test secret
		TokenTTLHours:   24,
		AdminEmail:      "admin@example.com",
		AdminName:       "Test Admin",
		CatalogCacheTTL: time.Second,
		AllowedOrigins:  []string{"http://localhost:3000"},
	}
}

type apiErrorResponse struct {
	Error struct {
		Code      string          `json:"code"`
		Message   string          `json:"message"`
		RequestID string          `json:"requestId"`
		Details   json.RawMessage `json:"details"`
	} `json:"error"`
}

func setupTestRouter(t *testing.T) (*gin.Engine, *pgxpool.Pool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set; skipping integration test")
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, dsn)

	if err != nil {
		t.Fatalf("Failed to create pgx pool: %v", err)
	}

	t.Cleanup(pool.Close)

	if err := db.Migrate(ctx, pool); err != nil {
		t.Fatalf("migration failed: %v", err)
	}

	// Basic logger that discards outputs during tests

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	cfg := testConfig()

	router := apphttp.NewRouter(logger, pool, nil, cfg)

	return router, pool
}

// reset db function after every test

func resetDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	// payments and jobs hang off bookings; truncate in one statement

	_, err := pool.Exec(context.Background(),
		`TRUNCATE payments, jobs, bookings, bikeparts, products, users RESTART IDENTITY CASCADE`)

	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}

// login performs the upsert-login round and returns a bearer token for the
// given email.

func login(t *testing.T, router *gin.Engine, email, name string) string {
	t.Helper()

	body := `{"name": "` + name + `"}`

	req := httptest.NewRequest(http.MethodPut, "/user/"+email, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d; body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal login response: %v", err)
	}

	if resp.Token == "" {
		t.Fatal("login returned an empty token")
	}

	return resp.Token
}

// makeAdmin flips the role directly in the store, the same way the
// bootstrap seed does.

func makeAdmin(t *testing.T, pool *pgxpool.Pool, email string) {
	t.Helper()

	tag, err := pool.Exec(context.Background(),
		`UPDATE users SET role = 'admin', updated_at = NOW() WHERE email = $1`, email)

	if err != nil {
		t.Fatalf("failed to promote %s: %v", email, err)
	}

	if tag.RowsAffected() == 0 {
		t.Fatalf("no user row for %s", email)
	}
}

func doJSON(router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request

	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	return w
}
