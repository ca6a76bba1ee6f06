package capture

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/relearnapp/backend/internal/domain"
	"github.com/relearnapp/backend/internal/provider"
	"github.com/relearnapp/backend/internal/service/review"
	"github.com/relearnapp/backend/pkg/ctxutil"
)

type sessionRepoMock struct {
	GetByIDFunc func(ctx context.Context, userID, sessionID uuid.UUID) (*domain.Session, error)
	UpsertFunc  func(ctx context.Context, s *domain.Session) error
}

func (m *sessionRepoMock) GetByID(ctx context.Context, userID, sessionID uuid.UUID) (*domain.Session, error) {
	if m.GetByIDFunc == nil {
		panic("sessionRepoMock.GetByIDFunc is nil")
	}
	return m.GetByIDFunc(ctx, userID, sessionID)
}

func (m *sessionRepoMock) Upsert(ctx context.Context, s *domain.Session) error {
	if m.UpsertFunc == nil {
		panic("sessionRepoMock.UpsertFunc is nil")
	}
	return m.UpsertFunc(ctx, s)
}

type wordRepoMock struct {
	CreateFunc        func(ctx context.Context, w *domain.Word) error
	ListBySessionFunc func(ctx context.Context, userID, sessionID uuid.UUID) ([]*domain.Word, error)
}

func (m *wordRepoMock) Create(ctx context.Context, w *domain.Word) error {
	if m.CreateFunc == nil {
		panic("wordRepoMock.CreateFunc is nil")
	}
	return m.CreateFunc(ctx, w)
}

func (m *wordRepoMock) ListBySession(ctx context.Context, userID, sessionID uuid.UUID) ([]*domain.Word, error) {
	if m.ListBySessionFunc == nil {
		panic("wordRepoMock.ListBySessionFunc is nil")
	}
	return m.ListBySessionFunc(ctx, userID, sessionID)
}

type analyzerMock struct {
	ExtractTextFunc         func(ctx context.Context, image []byte) (*provider.ExtractResult, error)
	AnalyzeWordFunc         func(ctx context.Context, word, contextText string) (*provider.WordResult, error)
	EvaluateSentenceFunc    func(ctx context.Context, word, sentence string) (*provider.SentenceResult, error)
	CompareTranslationsFunc func(ctx context.Context, original, userTranslation string) (*provider.TranslationResult, error)
	SynthesizeSpeechFunc    func(ctx context.Context, text string) (*provider.SpeechResult, error)
	ScorePronunciationFunc  func(ctx context.Context, audio []byte, target string) (*provider.PronunciationResult, error)
}

func (m *analyzerMock) ExtractText(ctx context.Context, image []byte) (*provider.ExtractResult, error) {
	if m.ExtractTextFunc == nil {
		panic("analyzerMock.ExtractTextFunc is nil")
	}
	return m.ExtractTextFunc(ctx, image)
}

func (m *analyzerMock) AnalyzeWord(ctx context.Context, word, contextText string) (*provider.WordResult, error) {
	if m.AnalyzeWordFunc == nil {
		panic("analyzerMock.AnalyzeWordFunc is nil")
	}
	return m.AnalyzeWordFunc(ctx, word, contextText)
}

func (m *analyzerMock) EvaluateSentence(ctx context.Context, word, sentence string) (*provider.SentenceResult, error) {
	if m.EvaluateSentenceFunc == nil {
		panic("analyzerMock.EvaluateSentenceFunc is nil")
	}
	return m.EvaluateSentenceFunc(ctx, word, sentence)
}

func (m *analyzerMock) CompareTranslations(ctx context.Context, original, userTranslation string) (*provider.TranslationResult, error) {
	if m.CompareTranslationsFunc == nil {
		panic("analyzerMock.CompareTranslationsFunc is nil")
	}
	return m.CompareTranslationsFunc(ctx, original, userTranslation)
}

func (m *analyzerMock) SynthesizeSpeech(ctx context.Context, text string) (*provider.SpeechResult, error) {
	if m.SynthesizeSpeechFunc == nil {
		panic("analyzerMock.SynthesizeSpeechFunc is nil")
	}
	return m.SynthesizeSpeechFunc(ctx, text)
}

func (m *analyzerMock) ScorePronunciation(ctx context.Context, audio []byte, target string) (*provider.PronunciationResult, error) {
	if m.ScorePronunciationFunc == nil {
		panic("analyzerMock.ScorePronunciationFunc is nil")
	}
	return m.ScorePronunciationFunc(ctx, audio, target)
}

func TestService_CaptureText(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	now := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)

	var saved *domain.Session
	sessions := &sessionRepoMock{
		UpsertFunc: func(ctx context.Context, s *domain.Session) error {
			saved = s
			return nil
		},
	}
	analyzer := &analyzerMock{
		ExtractTextFunc: func(ctx context.Context, image []byte) (*provider.ExtractResult, error) {
			return &provider.ExtractResult{Text: "Der frühe Vogel fängt den Wurm."}, nil
		},
	}

	svc := NewService(slog.Default(), sessions, &wordRepoMock{}, analyzer,
		clockwork.NewFakeClockAt(now), review.DefaultIntervals)

	ctx := ctxutil.WithUserID(context.Background(), userID)
	got, err := svc.CaptureText(ctx, CaptureTextInput{Image: []byte{0xFF, 0xD8}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.SourceText != "Der frühe Vogel fängt den Wurm." {
		t.Errorf("SourceText = %q", got.SourceText)
	}
	if got.ReviewCount != 0 {
		t.Errorf("ReviewCount = %d, want 0 before the first review", got.ReviewCount)
	}
	if want := now.Add(24 * time.Hour); !got.NextReviewAt.Equal(want) {
		t.Errorf("NextReviewAt = %v, want first interval %v", got.NextReviewAt, want)
	}
	if got.LastReviewedAt != nil {
		t.Errorf("LastReviewedAt = %v, want nil", got.LastReviewedAt)
	}
	if saved == nil || saved.ID != got.ID {
		t.Error("session must be persisted")
	}
}

func TestService_CaptureText_AnalysisFailure(t *testing.T) {
	t.Parallel()

	analyzer := &analyzerMock{
		ExtractTextFunc: func(ctx context.Context, image []byte) (*provider.ExtractResult, error) {
			return nil, domain.ErrAnalysis
		},
	}

	svc := NewService(slog.Default(), &sessionRepoMock{}, &wordRepoMock{}, analyzer,
		clockwork.NewFakeClock(), review.DefaultIntervals)

	ctx := ctxutil.WithUserID(context.Background(), uuid.New())
	_, err := svc.CaptureText(ctx, CaptureTextInput{Image: []byte{0x01}})
	if !errors.Is(err, domain.ErrAnalysis) {
		t.Errorf("err = %v, want ErrAnalysis", err)
	}
}

func TestService_AddWord(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	sessionID := uuid.New()
	now := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)

	pron := "/rʌn/"
	def := "To move fast."

	sessions := &sessionRepoMock{
		GetByIDFunc: func(ctx context.Context, uid, sid uuid.UUID) (*domain.Session, error) {
			return &domain.Session{ID: sessionID, UserID: userID, SourceText: "I run daily."}, nil
		},
	}
	var saved *domain.Word
	words := &wordRepoMock{
		CreateFunc: func(ctx context.Context, w *domain.Word) error {
			saved = w
			return nil
		},
	}
	analyzer := &analyzerMock{
		AnalyzeWordFunc: func(ctx context.Context, word, contextText string) (*provider.WordResult, error) {
			if contextText != "I run daily." {
				t.Errorf("contextText = %q, want the session source text", contextText)
			}
			return &provider.WordResult{Word: "run", Pronunciation: &pron, Definition: &def}, nil
		},
	}

	svc := NewService(slog.Default(), sessions, words, analyzer,
		clockwork.NewFakeClockAt(now), review.DefaultIntervals)

	ctx := ctxutil.WithUserID(context.Background(), userID)
	got, err := svc.AddWord(ctx, AddWordInput{SessionID: sessionID, Word: "run"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Text != "run" || got.SessionID != sessionID {
		t.Errorf("word = %+v", got)
	}
	if !got.AddedAt.Equal(now) {
		t.Errorf("AddedAt = %v, want clock time", got.AddedAt)
	}
	if saved == nil {
		t.Fatal("word must be persisted")
	}
}

func TestService_AddWord_SessionNotFound(t *testing.T) {
	t.Parallel()

	sessions := &sessionRepoMock{
		GetByIDFunc: func(ctx context.Context, uid, sid uuid.UUID) (*domain.Session, error) {
			return nil, domain.ErrNotFound
		},
	}

	svc := NewService(slog.Default(), sessions, &wordRepoMock{}, &analyzerMock{},
		clockwork.NewFakeClock(), review.DefaultIntervals)

	ctx := ctxutil.WithUserID(context.Background(), uuid.New())
	_, err := svc.AddWord(ctx, AddWordInput{SessionID: uuid.New(), Word: "run"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestService_EvaluateSentence_PassThrough(t *testing.T) {
	t.Parallel()

	analyzer := &analyzerMock{
		EvaluateSentenceFunc: func(ctx context.Context, word, sentence string) (*provider.SentenceResult, error) {
			return &provider.SentenceResult{Acceptable: true, Feedback: "natural usage"}, nil
		},
	}

	svc := NewService(slog.Default(), &sessionRepoMock{}, &wordRepoMock{}, analyzer,
		clockwork.NewFakeClock(), review.DefaultIntervals)

	ctx := ctxutil.WithUserID(context.Background(), uuid.New())
	got, err := svc.EvaluateSentence(ctx, EvaluateSentenceInput{Word: "run", Sentence: "I run daily."})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Acceptable {
		t.Error("Acceptable = false, want true")
	}
}

func TestService_Practice_Unauthorized(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.Default(), &sessionRepoMock{}, &wordRepoMock{}, &analyzerMock{},
		clockwork.NewFakeClock(), review.DefaultIntervals)

	ctx := context.Background()

	if _, err := svc.EvaluateSentence(ctx, EvaluateSentenceInput{Word: "a", Sentence: "b"}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("EvaluateSentence err = %v, want ErrUnauthorized", err)
	}
	if _, err := svc.Synthesize(ctx, SynthesizeInput{Text: "hello"}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("Synthesize err = %v, want ErrUnauthorized", err)
	}
	if _, err := svc.ScorePronunciation(ctx, ScorePronunciationInput{Audio: []byte{1}, Target: "hello"}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("ScorePronunciation err = %v, want ErrUnauthorized", err)
	}
}
