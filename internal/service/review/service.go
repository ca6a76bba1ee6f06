package review

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/relearnapp/backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type sessionRepo interface {
	GetByID(ctx context.Context, userID, sessionID uuid.UUID) (*domain.Session, error)
	ListAll(ctx context.Context, userID uuid.UUID) ([]*domain.Session, error)
	ListDue(ctx context.Context, userID uuid.UUID, now time.Time) ([]*domain.Session, error)
	Upsert(ctx context.Context, s *domain.Session) error
	MarkNotified(ctx context.Context, ids []uuid.UUID, notifiedAt time.Time) error
	CountDue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error)
	Count(ctx context.Context, userID uuid.UUID) (int, error)
	CountReviewedSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
}

type wordRepo interface {
	CountAddedSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
}

type settingsRepo interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Settings, error)
	ListAll(ctx context.Context) ([]*domain.Settings, error)
}

type reviewLogRepo interface {
	Create(ctx context.Context, e *domain.ReviewLog) error
	ListBySession(ctx context.Context, userID, sessionID uuid.UUID) ([]domain.ReviewLog, error)
}

// notificationSink delivers one aggregate alert. Delivery is one-way and
// best-effort: the engine decides whether and with what payload, never how.
type notificationSink interface {
	Deliver(ctx context.Context, userID uuid.UUID, deviceToken string, n domain.Notification) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the review scheduling and session lifecycle engine.
type Service struct {
	sessions  sessionRepo
	words     wordRepo
	settings  settingsRepo
	logs      reviewLogRepo
	sink      notificationSink
	tx        txManager
	clock     clockwork.Clock
	log       *slog.Logger
	intervals IntervalTable
}

// NewService creates the review service. The interval table must already be
// validated (non-empty, non-decreasing) by config loading.
func NewService(
	log *slog.Logger,
	sessions sessionRepo,
	words wordRepo,
	settings settingsRepo,
	logs reviewLogRepo,
	sink notificationSink,
	tx txManager,
	clock clockwork.Clock,
	intervals IntervalTable,
) (*Service, error) {
	if len(intervals) == 0 {
		return nil, fmt.Errorf("interval table must not be empty")
	}

	return &Service{
		sessions:  sessions,
		words:     words,
		settings:  settings,
		logs:      logs,
		sink:      sink,
		tx:        tx,
		clock:     clock,
		log:       log.With("service", "review"),
		intervals: intervals,
	}, nil
}

// Intervals exposes the configured retention curve (read-only by convention).
func (s *Service) Intervals() IntervalTable {
	return s.intervals
}
