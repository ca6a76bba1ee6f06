package capture

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/relearnapp/backend/internal/domain"
	"github.com/relearnapp/backend/internal/provider"
	"github.com/relearnapp/backend/internal/service/review"
	"github.com/relearnapp/backend/pkg/ctxutil"
)

// CaptureText extracts the text from a photographed page and starts tracking
// it as a new session. The session is born unreviewed: zero completed
// reviews, first review scheduled one interval out from capture time.
func (s *Service) CaptureText(ctx context.Context, input CaptureTextInput) (*domain.Session, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	extracted, err := s.analysis.ExtractText(ctx, input.Image)
	if err != nil {
		return nil, fmt.Errorf("capture.CaptureText extract: %w", err)
	}

	now := s.clock.Now()
	reviewCount, nextReviewAt := review.InitialSchedule(s.intervals, now)

	session := &domain.Session{
		ID:           uuid.New(),
		UserID:       userID,
		SourceText:   extracted.Text,
		ReviewCount:  reviewCount,
		NextReviewAt: nextReviewAt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.sessions.Upsert(ctx, session); err != nil {
		return nil, fmt.Errorf("capture.CaptureText save session: %w", err)
	}

	s.log.InfoContext(ctx, "text captured",
		slog.String("user_id", userID.String()),
		slog.String("session_id", session.ID.String()),
		slog.Int("text_len", len(extracted.Text)),
	)

	return session, nil
}

// AddWord analyzes one word in the session's context and stores it as a
// vocabulary item.
func (s *Service) AddWord(ctx context.Context, input AddWordInput) (*domain.Word, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	session, err := s.sessions.GetByID(ctx, userID, input.SessionID)
	if err != nil {
		return nil, fmt.Errorf("capture.AddWord get session: %w", err)
	}

	analyzed, err := s.analysis.AnalyzeWord(ctx, input.Word, session.SourceText)
	if err != nil {
		return nil, fmt.Errorf("capture.AddWord analyze: %w", err)
	}

	word := &domain.Word{
		ID:            uuid.New(),
		UserID:        userID,
		SessionID:     session.ID,
		Text:          analyzed.Word,
		Pronunciation: analyzed.Pronunciation,
		Definition:    analyzed.Definition,
		Example:       analyzed.Example,
		AddedAt:       s.clock.Now(),
	}

	if err := s.words.Create(ctx, word); err != nil {
		return nil, fmt.Errorf("capture.AddWord save: %w", err)
	}

	s.log.InfoContext(ctx, "word added",
		slog.String("user_id", userID.String()),
		slog.String("session_id", session.ID.String()),
		slog.String("word", word.Text),
	)

	return word, nil
}

// ListWords returns the vocabulary items attached to a session.
func (s *Service) ListWords(ctx context.Context, sessionID uuid.UUID) ([]*domain.Word, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if sessionID == uuid.Nil {
		return nil, domain.NewValidationError("session_id", "required")
	}

	words, err := s.words.ListBySession(ctx, userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("capture.ListWords: %w", err)
	}

	return words, nil
}

// EvaluateSentence checks a practice sentence. Stateless pass-through.
func (s *Service) EvaluateSentence(ctx context.Context, input EvaluateSentenceInput) (*provider.SentenceResult, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	result, err := s.analysis.EvaluateSentence(ctx, input.Word, input.Sentence)
	if err != nil {
		return nil, fmt.Errorf("capture.EvaluateSentence: %w", err)
	}
	return result, nil
}

// CompareTranslations scores the user's translation. Stateless pass-through.
func (s *Service) CompareTranslations(ctx context.Context, input CompareTranslationsInput) (*provider.TranslationResult, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	result, err := s.analysis.CompareTranslations(ctx, input.Original, input.Translation)
	if err != nil {
		return nil, fmt.Errorf("capture.CompareTranslations: %w", err)
	}
	return result, nil
}

// Synthesize returns spoken audio for the text. Stateless pass-through.
func (s *Service) Synthesize(ctx context.Context, input SynthesizeInput) (*provider.SpeechResult, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	result, err := s.analysis.SynthesizeSpeech(ctx, input.Text)
	if err != nil {
		return nil, fmt.Errorf("capture.Synthesize: %w", err)
	}
	return result, nil
}

// ScorePronunciation scores a recording against the target phrase. Stateless
// pass-through.
func (s *Service) ScorePronunciation(ctx context.Context, input ScorePronunciationInput) (*provider.PronunciationResult, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	result, err := s.analysis.ScorePronunciation(ctx, input.Audio, input.Target)
	if err != nil {
		return nil, fmt.Errorf("capture.ScorePronunciation: %w", err)
	}
	return result, nil
}
