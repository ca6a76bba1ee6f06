package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is one capture-to-mastery learning unit tracked through repeated
// review cycles. Scheduling state lives here; the content fields are opaque
// payload the engine carries but never interprets.
type Session struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	SourceText  string
	Translation *string

	// ReviewCount is the raw historical counter of completed review cycles.
	// It grows without bound; the progression stage used to index the
	// interval table is derived from it and clamped separately.
	ReviewCount int

	// NextReviewAt is monotonically non-decreasing across the session's
	// lifetime: each completed review can only push it further out.
	NextReviewAt time.Time

	// LastReviewedAt is set every time a review cycle completes.
	LastReviewedAt *time.Time

	// LastNotifiedAt is the dedup watermark: once it is >= NextReviewAt no
	// new alert is issued until the session is reviewed and rescheduled.
	LastNotifiedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsDue reports whether the session's next review time has passed.
func (s *Session) IsDue(now time.Time) bool {
	return !s.NextReviewAt.After(now)
}

// NeedsNotification reports whether the session is due and no alert has been
// issued yet for the current due crossing.
func (s *Session) NeedsNotification(now time.Time) bool {
	if !s.IsDue(now) {
		return false
	}
	return s.LastNotifiedAt == nil || s.LastNotifiedAt.Before(s.NextReviewAt)
}

// Word is a vocabulary item captured inside a session. Read-only to the
// scheduling engine; only AddedAt is consulted, for daily-goal progress.
type Word struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	SessionID     uuid.UUID
	Text          string
	Pronunciation *string
	Definition    *string
	Example       *string
	AddedAt       time.Time
}
