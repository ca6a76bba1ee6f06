package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/relearnapp/backend/internal/provider"
	"github.com/relearnapp/backend/internal/service/capture"
)

// practiceService defines the minimal interface needed by PracticeHandler.
type practiceService interface {
	EvaluateSentence(ctx context.Context, input capture.EvaluateSentenceInput) (*provider.SentenceResult, error)
	CompareTranslations(ctx context.Context, input capture.CompareTranslationsInput) (*provider.TranslationResult, error)
	Synthesize(ctx context.Context, input capture.SynthesizeInput) (*provider.SpeechResult, error)
	ScorePronunciation(ctx context.Context, input capture.ScorePronunciationInput) (*provider.PronunciationResult, error)
}

// PracticeHandler serves practice-exercise REST endpoints. All operations
// proxy to the analysis provider and persist nothing.
type PracticeHandler struct {
	svc practiceService
	log *slog.Logger
}

// NewPracticeHandler creates a PracticeHandler.
func NewPracticeHandler(svc practiceService, logger *slog.Logger) *PracticeHandler {
	return &PracticeHandler{svc: svc, log: logger.With("handler", "practice")}
}

type sentenceRequest struct {
	Word     string `json:"word"`
	Sentence string `json:"sentence"`
}

type sentenceResponse struct {
	Acceptable bool    `json:"acceptable"`
	Feedback   string  `json:"feedback"`
	Corrected  *string `json:"corrected,omitempty"`
}

type translationRequest struct {
	Original    string `json:"original"`
	Translation string `json:"translation"`
}

type translationResponse struct {
	Score     int    `json:"score"`
	Feedback  string `json:"feedback"`
	Reference string `json:"reference"`
}

type speechRequest struct {
	Text string `json:"text"`
}

type speechResponse struct {
	// Audio is base64-encoded in JSON.
	Audio    []byte `json:"audio"`
	MimeType string `json:"mimeType"`
}

type pronunciationRequest struct {
	// Audio is base64-encoded in JSON.
	Audio  []byte `json:"audio"`
	Target string `json:"target"`
}

type pronunciationResponse struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// EvaluateSentence handles POST /practice/sentence.
func (h *PracticeHandler) EvaluateSentence(w http.ResponseWriter, r *http.Request) {
	var req sentenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.EvaluateSentence(r.Context(), capture.EvaluateSentenceInput{
		Word:     req.Word,
		Sentence: req.Sentence,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, sentenceResponse{
		Acceptable: result.Acceptable,
		Feedback:   result.Feedback,
		Corrected:  result.Corrected,
	})
}

// CompareTranslations handles POST /practice/translation.
func (h *PracticeHandler) CompareTranslations(w http.ResponseWriter, r *http.Request) {
	var req translationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.CompareTranslations(r.Context(), capture.CompareTranslationsInput{
		Original:    req.Original,
		Translation: req.Translation,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, translationResponse{
		Score:     result.Score,
		Feedback:  result.Feedback,
		Reference: result.Reference,
	})
}

// Synthesize handles POST /practice/speech.
func (h *PracticeHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	var req speechRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Synthesize(r.Context(), capture.SynthesizeInput{Text: req.Text})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, speechResponse{
		Audio:    result.Audio,
		MimeType: result.MimeType,
	})
}

// ScorePronunciation handles POST /practice/pronunciation.
func (h *PracticeHandler) ScorePronunciation(w http.ResponseWriter, r *http.Request) {
	var req pronunciationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.ScorePronunciation(r.Context(), capture.ScorePronunciationInput{
		Audio:  req.Audio,
		Target: req.Target,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, pronunciationResponse{
		Score:    result.Score,
		Feedback: result.Feedback,
	})
}
