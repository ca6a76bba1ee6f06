//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/relearnapp/backend/internal/adapter/notify"
	"github.com/relearnapp/backend/internal/adapter/postgres"
	"github.com/relearnapp/backend/internal/adapter/postgres/reviewlog"
	sessionrepo "github.com/relearnapp/backend/internal/adapter/postgres/session"
	settingsrepo "github.com/relearnapp/backend/internal/adapter/postgres/settings"
	"github.com/relearnapp/backend/internal/adapter/postgres/testhelper"
	userrepo "github.com/relearnapp/backend/internal/adapter/postgres/user"
	wordrepo "github.com/relearnapp/backend/internal/adapter/postgres/word"
	"github.com/relearnapp/backend/internal/adapter/provider/analysis"
	internalauth "github.com/relearnapp/backend/internal/auth"
	"github.com/relearnapp/backend/internal/config"
	authsvc "github.com/relearnapp/backend/internal/service/auth"
	"github.com/relearnapp/backend/internal/service/capture"
	"github.com/relearnapp/backend/internal/service/review"
	settingssvc "github.com/relearnapp/backend/internal/service/settings"
	"github.com/relearnapp/backend/internal/transport/middleware"
	"github.com/relearnapp/backend/internal/transport/rest"
)

// stubExtractedText is what the stub analysis service "reads" from every image.
const stubExtractedText = "la vie est belle"

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// stubAnalysisServer fakes the external analysis service with canned answers.
func stubAnalysisServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/extract", func(w http.ResponseWriter, r *http.Request) {
		writeStub(w, map[string]any{"text": stubExtractedText, "language": "fr"})
	})
	mux.HandleFunc("POST /v1/word", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Word string `json:"word"`
		}
		json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
		writeStub(w, map[string]any{
			"word":       req.Word,
			"definition": "stub definition of " + req.Word,
		})
	})
	mux.HandleFunc("POST /v1/sentence", func(w http.ResponseWriter, r *http.Request) {
		writeStub(w, map[string]any{"acceptable": true, "feedback": "sounds natural"})
	})
	mux.HandleFunc("POST /v1/translation", func(w http.ResponseWriter, r *http.Request) {
		writeStub(w, map[string]any{"score": 85, "feedback": "close", "reference": "life is beautiful"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeStub(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// setupTestServer bootstraps the full application stack backed by a real
// PostgreSQL container (shared via testhelper) and a stub analysis upstream.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	clock := clockwork.NewRealClock()
	txm := postgres.NewTxManager(pool)

	sessions := sessionrepo.New(pool)
	words := wordrepo.New(pool)
	settings := settingsrepo.New(pool)
	users := userrepo.New(pool)
	reviewLogs := reviewlog.New(pool)

	authCfg := config.AuthConfig{
		JWTSecret:       "test-secret-at-least-32-chars-long!!",
		JWTIssuer:       "test-issuer",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 720 * time.Hour,
	}
	jwtMgr := internalauth.NewJWTManager(authCfg.JWTSecret, authCfg.JWTIssuer, authCfg.AccessTokenTTL)

	analysisUpstream := stubAnalysisServer(t)
	analysisClient := analysis.NewClient(analysisUpstream.URL, "test-key", logger)

	intervals := review.DefaultIntervals

	reviewSvc, err := review.NewService(
		logger, sessions, words, settings, reviewLogs,
		notify.NewNoopSink(logger), txm, clock, intervals,
	)
	require.NoError(t, err)

	captureSvc := capture.NewService(logger, sessions, words, analysisClient, clock, intervals)
	authService := authsvc.NewService(logger, users, settings, txm, jwtMgr, internalauth.HashToken, clock, authCfg)
	settingsSvc := settingssvc.NewService(logger, settings, clock)

	handlers := rest.Handlers{
		Health:   rest.NewHealthHandler(pool, "e2e-test"),
		Auth:     rest.NewAuthHandler(authService, logger),
		Capture:  rest.NewCaptureHandler(captureSvc, logger),
		Review:   rest.NewReviewHandler(reviewSvc, logger),
		Settings: rest.NewSettingsHandler(settingsSvc, logger),
		Practice: rest.NewPracticeHandler(captureSvc, logger),
	}

	router := rest.NewRouter(handlers, middleware.Auth(jwtMgr))
	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type,X-Request-Id",
			MaxAge:         86400,
		}),
	)(router)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
	}
}

// doJSON performs a request with an optional bearer token and JSON body,
// returning the status code and decoded response body.
func (ts *testServer) doJSON(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &result), "body: %s", raw)
	}

	return resp.StatusCode, result
}

// registerTestUser creates a fresh account and returns its tokens.
func registerTestUser(t *testing.T, ts *testServer) (accessToken, refreshToken string) {
	t.Helper()

	email := fmt.Sprintf("e2e-%s@example.com", uuid.New().String()[:8])
	status, result := ts.doJSON(t, http.MethodPost, "/auth/register", "", map[string]any{
		"email":    email,
		"password": "correct-horse-battery",
		"timezone": "UTC",
	})
	require.Equal(t, http.StatusCreated, status, "register: %v", result)

	accessToken, _ = result["accessToken"].(string)
	refreshToken, _ = result["refreshToken"].(string)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)
	return accessToken, refreshToken
}
