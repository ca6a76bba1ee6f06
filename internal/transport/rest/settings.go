package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/relearnapp/backend/internal/domain"
	"github.com/relearnapp/backend/internal/service/settings"
)

// settingsService defines the minimal interface needed by SettingsHandler.
type settingsService interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, input settings.UpdateInput) (*domain.Settings, error)
}

// SettingsHandler serves settings REST endpoints.
type SettingsHandler struct {
	svc settingsService
	log *slog.Logger
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(svc settingsService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{svc: svc, log: logger.With("handler", "settings")}
}

type updateSettingsRequest struct {
	Timezone      *string `json:"timezone"`
	DailyNewWords *int    `json:"dailyNewWords"`
	DailyReviews  *int    `json:"dailyReviews"`
	Permission    *string `json:"permission"`
	DeviceToken   *string `json:"deviceToken"`
}

type settingsResponse struct {
	Timezone      string    `json:"timezone"`
	DailyNewWords int       `json:"dailyNewWords"`
	DailyReviews  int       `json:"dailyReviews"`
	Permission    string    `json:"permission"`
	DeviceToken   *string   `json:"deviceToken,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Get handles GET /settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Get(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(result))
}

// Update handles PATCH /settings. Absent fields are left unchanged.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := settings.UpdateInput{
		Timezone:      req.Timezone,
		DailyNewWords: req.DailyNewWords,
		DailyReviews:  req.DailyReviews,
		DeviceToken:   req.DeviceToken,
	}
	if req.Permission != nil {
		p := domain.PermissionState(*req.Permission)
		input.Permission = &p
	}

	result, err := h.svc.Update(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(result))
}

func toSettingsResponse(s *domain.Settings) settingsResponse {
	return settingsResponse{
		Timezone:      s.Timezone,
		DailyNewWords: s.DailyNewWords,
		DailyReviews:  s.DailyReviews,
		Permission:    s.Permission.String(),
		DeviceToken:   s.DeviceToken,
		UpdatedAt:     s.UpdatedAt,
	}
}
