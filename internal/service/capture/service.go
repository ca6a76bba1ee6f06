package capture

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/relearnapp/backend/internal/domain"
	"github.com/relearnapp/backend/internal/provider"
	"github.com/relearnapp/backend/internal/service/review"
)

// sessionRepo defines the session repository interface needed by capture.
type sessionRepo interface {
	GetByID(ctx context.Context, userID, sessionID uuid.UUID) (*domain.Session, error)
	Upsert(ctx context.Context, s *domain.Session) error
}

// wordRepo defines the word repository interface needed by capture.
type wordRepo interface {
	Create(ctx context.Context, w *domain.Word) error
	ListBySession(ctx context.Context, userID, sessionID uuid.UUID) ([]*domain.Word, error)
}

// analyzer is the external text/audio analysis port.
type analyzer interface {
	ExtractText(ctx context.Context, image []byte) (*provider.ExtractResult, error)
	AnalyzeWord(ctx context.Context, word, contextText string) (*provider.WordResult, error)
	EvaluateSentence(ctx context.Context, word, sentence string) (*provider.SentenceResult, error)
	CompareTranslations(ctx context.Context, original, userTranslation string) (*provider.TranslationResult, error)
	SynthesizeSpeech(ctx context.Context, text string) (*provider.SpeechResult, error)
	ScorePronunciation(ctx context.Context, audio []byte, target string) (*provider.PronunciationResult, error)
}

// Service implements capture and practice operations: turning a photographed
// text into a tracked session, attaching analyzed vocabulary to it, and the
// stateless practice pass-throughs.
type Service struct {
	log       *slog.Logger
	sessions  sessionRepo
	words     wordRepo
	analysis  analyzer
	clock     clockwork.Clock
	intervals review.IntervalTable
}

// NewService creates a new capture service instance.
func NewService(
	logger *slog.Logger,
	sessions sessionRepo,
	words wordRepo,
	analysis analyzer,
	clock clockwork.Clock,
	intervals review.IntervalTable,
) *Service {
	return &Service{
		log:       logger.With("service", "capture"),
		sessions:  sessions,
		words:     words,
		analysis:  analysis,
		clock:     clock,
		intervals: intervals,
	}
}
