package review

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/relearnapp/backend/internal/domain"
)

// Tick runs one notification evaluation pass over every user. Each pass is
// idempotent: a record alerted on a previous pass stays silent until it is
// rescheduled and crosses its due boundary again, because delivery advances
// the per-record watermark. Ticks run on a single goroutine and never
// overlap; a failed delivery leaves the watermark untouched so the next pass
// retries.
func (s *Service) Tick(ctx context.Context) error {
	now := s.clock.Now()

	allSettings, err := s.settings.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list settings: %w", err)
	}

	for _, settings := range allSettings {
		if err := s.tickUser(ctx, settings, now); err != nil {
			// One user's failure must not starve the rest of the pass.
			s.log.ErrorContext(ctx, "notification pass failed for user",
				slog.String("user_id", settings.UserID.String()),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}

func (s *Service) tickUser(ctx context.Context, settings *domain.Settings, now time.Time) error {
	if settings.Permission != domain.PermissionGranted || settings.DeviceToken == nil || *settings.DeviceToken == "" {
		// Engine state still advances elsewhere; only the outward alert is
		// suppressed.
		return nil
	}

	due, err := s.sessions.ListDue(ctx, settings.UserID, now)
	if err != nil {
		return fmt.Errorf("list due sessions: %w", err)
	}

	newly := NewlyDue(due, now)
	if len(newly) == 0 {
		return nil
	}

	notification := BuildNotification(newly)

	if err := s.sink.Deliver(ctx, settings.UserID, *settings.DeviceToken, notification); err != nil {
		return fmt.Errorf("deliver notification: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(newly))
	for _, session := range newly {
		ids = append(ids, session.ID)
	}
	if err := s.sessions.MarkNotified(ctx, ids, now); err != nil {
		return fmt.Errorf("mark notified: %w", err)
	}

	s.log.InfoContext(ctx, "due notification delivered",
		slog.String("user_id", settings.UserID.String()),
		slog.Int("due_count", len(newly)),
	)

	return nil
}

// BuildNotification aggregates newly due records into a single alert. One
// alert per pass regardless of how many records crossed their boundary.
func BuildNotification(newly []*domain.Session) domain.Notification {
	n := domain.Notification{
		Title:    "Time to review",
		DedupTag: "review-due",
		DueCount: len(newly),
	}

	switch len(newly) {
	case 0:
		return n
	case 1:
		n.Body = fmt.Sprintf("%q is ready for review", newly[0].SourceText)
	default:
		n.Body = fmt.Sprintf("%q and %d more are ready for review", newly[0].SourceText, len(newly)-1)
	}
	n.FirstSessionID = newly[0].ID

	return n
}
