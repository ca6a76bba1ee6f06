package review

import (
	"time"

	"github.com/relearnapp/backend/internal/domain"
)

// DueSessions returns the subset of records whose next review time has
// passed. Input order is preserved; callers needing chronological order sort
// by NextReviewAt themselves.
func DueSessions(sessions []*domain.Session, now time.Time) []*domain.Session {
	due := []*domain.Session{}
	for _, s := range sessions {
		if s.IsDue(now) {
			due = append(due, s)
		}
	}
	return due
}

// NewlyDue returns the subset of records that are due AND have not been
// alerted for the current due crossing: the watermark is either unset or
// predates the record's NextReviewAt. This distinguishes "due and never
// alerted for this cycle" from "due but already alerted".
func NewlyDue(sessions []*domain.Session, now time.Time) []*domain.Session {
	newly := []*domain.Session{}
	for _, s := range sessions {
		if s.NeedsNotification(now) {
			newly = append(newly, s)
		}
	}
	return newly
}
