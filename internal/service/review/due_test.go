package review

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/relearnapp/backend/internal/domain"
)

func TestDueSessions(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)

	past := &domain.Session{ID: uuid.New(), NextReviewAt: now.Add(-time.Hour)}
	exact := &domain.Session{ID: uuid.New(), NextReviewAt: now}
	future := &domain.Session{ID: uuid.New(), NextReviewAt: now.Add(time.Second)}

	got := DueSessions([]*domain.Session{past, exact, future}, now)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	// Boundary is inclusive: NextReviewAt == now counts as due.
	if got[0] != past || got[1] != exact {
		t.Errorf("unexpected due set: %v", got)
	}
}

func TestDueSessions_Empty(t *testing.T) {
	t.Parallel()

	got := DueSessions(nil, time.Now())
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestNewlyDue(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)
	nextReview := now.Add(-time.Hour)

	beforeCrossing := nextReview.Add(-time.Minute)
	afterCrossing := nextReview.Add(time.Minute)

	neverNotified := &domain.Session{ID: uuid.New(), NextReviewAt: nextReview}
	staleWatermark := &domain.Session{ID: uuid.New(), NextReviewAt: nextReview, LastNotifiedAt: &beforeCrossing}
	alreadyNotified := &domain.Session{ID: uuid.New(), NextReviewAt: nextReview, LastNotifiedAt: &afterCrossing}
	notDue := &domain.Session{ID: uuid.New(), NextReviewAt: now.Add(time.Hour)}

	got := NewlyDue([]*domain.Session{neverNotified, staleWatermark, alreadyNotified, notDue}, now)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0] != neverNotified {
		t.Errorf("got[0] = %v, want the never-notified record", got[0].ID)
	}
	if got[1] != staleWatermark {
		t.Errorf("got[1] = %v, want the stale-watermark record", got[1].ID)
	}
}
