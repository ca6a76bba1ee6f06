package review

import (
	"time"

	"github.com/relearnapp/backend/internal/domain"
)

// Reschedule computes the updated session record after a completed review.
// Pure function: no DB, no context, no logger. It is total over valid input —
// a nil prior record (first-ever completion) and an existing one are both
// valid variants, not error cases.
//
// The raw ReviewCount counter always increments by exactly one and is never
// capped; only the stage derived from it is clamped to the table. Every
// completed review is treated as successful recall, so intervals only grow.
func Reschedule(table IntervalTable, prior *domain.Session, now time.Time) domain.Session {
	if prior == nil {
		return domain.Session{
			ReviewCount:    1,
			LastReviewedAt: &now,
			NextReviewAt:   now.Add(days(table.At(0))),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
	}

	next := *prior
	next.ReviewCount = prior.ReviewCount + 1
	next.LastReviewedAt = &now
	next.NextReviewAt = now.Add(days(table.At(table.Stage(next.ReviewCount))))
	// Cleared so the next due crossing can notify again.
	next.LastNotifiedAt = nil
	next.UpdatedAt = now

	// NextReviewAt must never move backwards across the record's lifetime.
	if next.NextReviewAt.Before(prior.NextReviewAt) {
		next.NextReviewAt = prior.NextReviewAt
	}

	return next
}

// InitialSchedule returns the pre-review scheduling state for a session
// created at capture time: zero completed reviews, first interval pending.
func InitialSchedule(table IntervalTable, createdAt time.Time) (reviewCount int, nextReviewAt time.Time) {
	return 0, createdAt.Add(days(table.At(0)))
}
