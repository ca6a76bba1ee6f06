package notify

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/relearnapp/backend/internal/domain"
)

// NoopSink swallows every alert. Used when push delivery is disabled; the
// engine's watermark logic still runs so enabling push later does not replay
// historical alerts.
type NoopSink struct {
	log *slog.Logger
}

func NewNoopSink(logger *slog.Logger) *NoopSink {
	return &NoopSink{log: logger.With("adapter", "noop-push")}
}

func (s *NoopSink) Deliver(ctx context.Context, userID uuid.UUID, _ string, n domain.Notification) error {
	s.log.DebugContext(ctx, "push disabled, alert dropped",
		slog.String("user_id", userID.String()),
		slog.Int("due_count", n.DueCount),
	)
	return nil
}
