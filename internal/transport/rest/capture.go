package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/relearnapp/backend/internal/domain"
	"github.com/relearnapp/backend/internal/service/capture"
)

// captureService defines the minimal interface needed by CaptureHandler.
type captureService interface {
	CaptureText(ctx context.Context, input capture.CaptureTextInput) (*domain.Session, error)
	AddWord(ctx context.Context, input capture.AddWordInput) (*domain.Word, error)
	ListWords(ctx context.Context, sessionID uuid.UUID) ([]*domain.Word, error)
}

// CaptureHandler serves capture REST endpoints.
type CaptureHandler struct {
	svc captureService
	log *slog.Logger
}

// NewCaptureHandler creates a CaptureHandler.
func NewCaptureHandler(svc captureService, logger *slog.Logger) *CaptureHandler {
	return &CaptureHandler{svc: svc, log: logger.With("handler", "capture")}
}

type captureRequest struct {
	// Image is the captured photo, base64-encoded in JSON.
	Image []byte `json:"image"`
}

type addWordRequest struct {
	Word string `json:"word"`
}

type wordResponse struct {
	ID            string    `json:"id"`
	Text          string    `json:"text"`
	Pronunciation *string   `json:"pronunciation,omitempty"`
	Definition    *string   `json:"definition,omitempty"`
	Example       *string   `json:"example,omitempty"`
	AddedAt       time.Time `json:"addedAt"`
}

type wordListResponse struct {
	Words []wordResponse `json:"words"`
}

// Capture handles POST /captures.
func (h *CaptureHandler) Capture(w http.ResponseWriter, r *http.Request) {
	var req captureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.svc.CaptureText(r.Context(), capture.CaptureTextInput{
		Image: req.Image,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSessionResponse(session))
}

// AddWord handles POST /captures/{id}/words.
func (h *CaptureHandler) AddWord(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	var req addWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	word, err := h.svc.AddWord(r.Context(), capture.AddWordInput{
		SessionID: id,
		Word:      req.Word,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toWordResponse(word))
}

// ListWords handles GET /captures/{id}/words.
func (h *CaptureHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	words, err := h.svc.ListWords(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := wordListResponse{Words: make([]wordResponse, 0, len(words))}
	for _, word := range words {
		resp.Words = append(resp.Words, toWordResponse(word))
	}
	writeJSON(w, http.StatusOK, resp)
}

func toWordResponse(word *domain.Word) wordResponse {
	return wordResponse{
		ID:            word.ID.String(),
		Text:          word.Text,
		Pronunciation: word.Pronunciation,
		Definition:    word.Definition,
		Example:       word.Example,
		AddedAt:       word.AddedAt,
	}
}
