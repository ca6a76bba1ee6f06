package reviewlog_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/relearnapp/backend/internal/adapter/postgres/reviewlog"
	"github.com/relearnapp/backend/internal/adapter/postgres/testhelper"
	"github.com/relearnapp/backend/internal/domain"
)

func newRepo(t *testing.T) (*reviewlog.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return reviewlog.New(pool), pool
}

func TestRepo_CreateAndList_NewestFirst(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	session := testhelper.SeedSession(t, pool, user.ID, 2, time.Now().UTC())

	base := time.Now().UTC().Truncate(time.Microsecond)
	for i := 1; i <= 3; i++ {
		entry := &domain.ReviewLog{
			ID:               uuid.New(),
			SessionID:        session.ID,
			UserID:           user.ID,
			ReviewCountAfter: i,
			ReviewedAt:       base.Add(time.Duration(i) * time.Hour),
		}
		if err := repo.Create(ctx, entry); err != nil {
			t.Fatalf("Create #%d: unexpected error: %v", i, err)
		}
	}

	got, err := repo.ListBySession(ctx, user.ID, session.ID)
	if err != nil {
		t.Fatalf("ListBySession: unexpected error: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	if got[0].ReviewCountAfter != 3 {
		t.Errorf("expected newest entry first, got count %d", got[0].ReviewCountAfter)
	}
	for i := 1; i < len(got); i++ {
		if got[i].ReviewedAt.After(got[i-1].ReviewedAt) {
			t.Errorf("entries out of order at %d", i)
		}
	}
}

func TestRepo_ListBySession_ScopedToUser(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)
	other := testhelper.SeedUser(t, pool)
	session := testhelper.SeedSession(t, pool, owner.ID, 1, time.Now().UTC())

	entry := &domain.ReviewLog{
		ID:               uuid.New(),
		SessionID:        session.ID,
		UserID:           owner.ID,
		ReviewCountAfter: 1,
		ReviewedAt:       time.Now().UTC().Truncate(time.Microsecond),
	}
	if err := repo.Create(ctx, entry); err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	got, err := repo.ListBySession(ctx, other.ID, session.ID)
	if err != nil {
		t.Fatalf("ListBySession: unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty history for another user, got %d entries", len(got))
	}
}

func TestRepo_ListBySession_EmptyHistory(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	session := testhelper.SeedSession(t, pool, user.ID, 0, time.Now().UTC())

	got, err := repo.ListBySession(ctx, user.ID, session.ID)
	if err != nil {
		t.Fatalf("ListBySession: unexpected error: %v", err)
	}
	if got == nil {
		t.Error("expected empty slice, not nil")
	}
	if len(got) != 0 {
		t.Errorf("expected no entries, got %d", len(got))
	}
}
