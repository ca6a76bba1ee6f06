package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/relearnapp/backend/internal/domain"
	"github.com/relearnapp/backend/pkg/ctxutil"
)

// CompleteReview records one completed review cycle and advances the
// session's schedule. An absent prior record is a valid variant, not an
// error: the record is created first-completion style with the first
// interval. The updated record fully replaces the stored one.
func (s *Service) CompleteReview(ctx context.Context, input CompleteReviewInput) (*domain.Session, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.clock.Now()

	prior, err := s.sessions.GetByID(ctx, userID, input.SessionID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get session: %w", err)
	}

	updated := Reschedule(s.intervals, prior, now)
	if prior == nil {
		updated.ID = input.SessionID
		updated.UserID = userID
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.sessions.Upsert(txCtx, &updated); err != nil {
			return fmt.Errorf("upsert session: %w", err)
		}

		logEntry := &domain.ReviewLog{
			ID:               uuid.New(),
			SessionID:        updated.ID,
			UserID:           userID,
			ReviewCountAfter: updated.ReviewCount,
			ReviewedAt:       now,
		}
		if err := s.logs.Create(txCtx, logEntry); err != nil {
			return fmt.Errorf("create review log: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "review completed",
		slog.String("user_id", userID.String()),
		slog.String("session_id", updated.ID.String()),
		slog.Int("review_count", updated.ReviewCount),
		slog.Time("next_review_at", updated.NextReviewAt),
	)

	return &updated, nil
}

// GetSession returns one session by id.
func (s *Service) GetSession(ctx context.Context, input GetSessionInput) (*domain.Session, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	session, err := s.sessions.GetByID(ctx, userID, input.SessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	return session, nil
}

// ListSessions returns every session for the user, newest first.
func (s *Service) ListSessions(ctx context.Context) ([]*domain.Session, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	sessions, err := s.sessions.ListAll(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	return sessions, nil
}

// ListDue returns the sessions currently due for review, soonest first.
func (s *Service) ListDue(ctx context.Context) ([]*domain.Session, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	due, err := s.sessions.ListDue(ctx, userID, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("list due sessions: %w", err)
	}

	return due, nil
}

// GetHistory returns the review history of one session, newest first.
func (s *Service) GetHistory(ctx context.Context, input GetSessionInput) ([]domain.ReviewLog, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	// Check ownership.
	if _, err := s.sessions.GetByID(ctx, userID, input.SessionID); err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	logs, err := s.logs.ListBySession(ctx, userID, input.SessionID)
	if err != nil {
		return nil, fmt.Errorf("list review logs: %w", err)
	}

	return logs, nil
}
