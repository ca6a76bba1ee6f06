package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/relearnapp/backend/internal/domain"
	"github.com/relearnapp/backend/internal/service/review"
)

// reviewService defines the minimal interface needed by ReviewHandler.
type reviewService interface {
	CompleteReview(ctx context.Context, input review.CompleteReviewInput) (*domain.Session, error)
	GetSession(ctx context.Context, input review.GetSessionInput) (*domain.Session, error)
	ListSessions(ctx context.Context) ([]*domain.Session, error)
	ListDue(ctx context.Context) ([]*domain.Session, error)
	GetHistory(ctx context.Context, input review.GetSessionInput) ([]domain.ReviewLog, error)
	GetDashboard(ctx context.Context) (*domain.Dashboard, error)
}

// ReviewHandler serves session and dashboard REST endpoints.
type ReviewHandler struct {
	svc reviewService
	log *slog.Logger
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(svc reviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{svc: svc, log: logger.With("handler", "review")}
}

type sessionResponse struct {
	ID             string     `json:"id"`
	SourceText     string     `json:"sourceText"`
	Translation    *string    `json:"translation,omitempty"`
	ReviewCount    int        `json:"reviewCount"`
	NextReviewAt   time.Time  `json:"nextReviewAt"`
	LastReviewedAt *time.Time `json:"lastReviewedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type sessionListResponse struct {
	Sessions []sessionResponse `json:"sessions"`
}

type reviewLogResponse struct {
	ID               string    `json:"id"`
	ReviewCountAfter int       `json:"reviewCountAfter"`
	ReviewedAt       time.Time `json:"reviewedAt"`
}

type historyResponse struct {
	Reviews []reviewLogResponse `json:"reviews"`
}

type goalProgressResponse struct {
	Current  int  `json:"current"`
	Goal     int  `json:"goal"`
	Percent  int  `json:"percent"`
	Complete bool `json:"complete"`
}

type dashboardResponse struct {
	DueCount      int                  `json:"dueCount"`
	TotalCount    int                  `json:"totalCount"`
	NewWords      goalProgressResponse `json:"newWords"`
	Reviews       goalProgressResponse `json:"reviews"`
	NextSessionID *string              `json:"nextSessionId,omitempty"`
}

// ListSessions handles GET /sessions.
func (h *ReviewHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.svc.ListSessions(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionListResponse(sessions))
}

// ListDue handles GET /sessions/due.
func (h *ReviewHandler) ListDue(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.svc.ListDue(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionListResponse(sessions))
}

// GetSession handles GET /sessions/{id}.
func (h *ReviewHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	session, err := h.svc.GetSession(r.Context(), review.GetSessionInput{SessionID: id})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

// CompleteReview handles POST /sessions/{id}/review.
func (h *ReviewHandler) CompleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	session, err := h.svc.CompleteReview(r.Context(), review.CompleteReviewInput{SessionID: id})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

// GetHistory handles GET /sessions/{id}/history.
func (h *ReviewHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	logs, err := h.svc.GetHistory(r.Context(), review.GetSessionInput{SessionID: id})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := historyResponse{Reviews: make([]reviewLogResponse, 0, len(logs))}
	for _, l := range logs {
		resp.Reviews = append(resp.Reviews, reviewLogResponse{
			ID:               l.ID.String(),
			ReviewCountAfter: l.ReviewCountAfter,
			ReviewedAt:       l.ReviewedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetDashboard handles GET /dashboard.
func (h *ReviewHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.svc.GetDashboard(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := dashboardResponse{
		DueCount:   dash.DueCount,
		TotalCount: dash.TotalCount,
		NewWords:   toGoalProgressResponse(dash.Progress.NewWords),
		Reviews:    toGoalProgressResponse(dash.Progress.Reviews),
	}
	if dash.NextSessionID != nil {
		s := dash.NextSessionID.String()
		resp.NextSessionID = &s
	}
	writeJSON(w, http.StatusOK, resp)
}

func toSessionResponse(s *domain.Session) sessionResponse {
	return sessionResponse{
		ID:             s.ID.String(),
		SourceText:     s.SourceText,
		Translation:    s.Translation,
		ReviewCount:    s.ReviewCount,
		NextReviewAt:   s.NextReviewAt,
		LastReviewedAt: s.LastReviewedAt,
		CreatedAt:      s.CreatedAt,
	}
}

func toSessionListResponse(sessions []*domain.Session) sessionListResponse {
	resp := sessionListResponse{Sessions: make([]sessionResponse, 0, len(sessions))}
	for _, s := range sessions {
		resp.Sessions = append(resp.Sessions, toSessionResponse(s))
	}
	return resp
}

func toGoalProgressResponse(g domain.GoalProgress) goalProgressResponse {
	return goalProgressResponse{
		Current:  g.Current,
		Goal:     g.Goal,
		Percent:  g.Percent,
		Complete: g.Complete,
	}
}
