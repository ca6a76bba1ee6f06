package review

import (
	"context"
	"fmt"

	"github.com/relearnapp/backend/internal/domain"
	"github.com/relearnapp/backend/pkg/ctxutil"
)

// GetDashboard assembles the home-screen summary: how many sessions are due,
// the total tracked, today's goal progress and a shortcut to the first due
// session. "Today" starts at local midnight in the user's timezone.
func (s *Service) GetDashboard(ctx context.Context) (*domain.Dashboard, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	settings, err := s.settings.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	loc := ParseTimezone(settings.Timezone)

	now := s.clock.Now()
	dayStart := DayStart(now, loc)

	dueCount, err := s.sessions.CountDue(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("count due sessions: %w", err)
	}

	total, err := s.sessions.Count(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}

	newWords, err := s.words.CountAddedSince(ctx, userID, dayStart)
	if err != nil {
		return nil, fmt.Errorf("count words added today: %w", err)
	}

	reviews, err := s.sessions.CountReviewedSince(ctx, userID, dayStart)
	if err != nil {
		return nil, fmt.Errorf("count reviews today: %w", err)
	}

	dashboard := &domain.Dashboard{
		DueCount:   dueCount,
		TotalCount: total,
		Progress:   ComputeDailyProgress(newWords, reviews, settings.Goals()),
	}

	if dueCount > 0 {
		due, err := s.sessions.ListDue(ctx, userID, now)
		if err != nil {
			return nil, fmt.Errorf("list due sessions: %w", err)
		}
		if len(due) > 0 {
			id := due[0].ID
			dashboard.NextSessionID = &id
		}
	}

	return dashboard, nil
}
