package rest

import (
	"net/http"

	"github.com/relearnapp/backend/internal/transport/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Health   *HealthHandler
	Auth     *AuthHandler
	Capture  *CaptureHandler
	Review   *ReviewHandler
	Settings *SettingsHandler
	Practice *PracticeHandler
}

// NewRouter mounts all REST routes. Health probes and the auth endpoints are
// public; everything else sits behind the auth middleware.
func NewRouter(h Handlers, auth middleware.Middleware) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)

	mux.HandleFunc("POST /auth/register", h.Auth.Register)
	mux.HandleFunc("POST /auth/login", h.Auth.Login)
	mux.HandleFunc("POST /auth/refresh", h.Auth.Refresh)

	private := http.NewServeMux()
	private.HandleFunc("POST /captures", h.Capture.Capture)
	private.HandleFunc("POST /captures/{id}/words", h.Capture.AddWord)
	private.HandleFunc("GET /captures/{id}/words", h.Capture.ListWords)

	private.HandleFunc("GET /sessions", h.Review.ListSessions)
	private.HandleFunc("GET /sessions/due", h.Review.ListDue)
	private.HandleFunc("GET /sessions/{id}", h.Review.GetSession)
	private.HandleFunc("POST /sessions/{id}/review", h.Review.CompleteReview)
	private.HandleFunc("GET /sessions/{id}/history", h.Review.GetHistory)
	private.HandleFunc("GET /dashboard", h.Review.GetDashboard)

	private.HandleFunc("GET /settings", h.Settings.Get)
	private.HandleFunc("PATCH /settings", h.Settings.Update)

	private.HandleFunc("POST /practice/sentence", h.Practice.EvaluateSentence)
	private.HandleFunc("POST /practice/translation", h.Practice.CompareTranslations)
	private.HandleFunc("POST /practice/speech", h.Practice.Synthesize)
	private.HandleFunc("POST /practice/pronunciation", h.Practice.ScorePronunciation)

	mux.Handle("/", auth(private))

	return mux
}
