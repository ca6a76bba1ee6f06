package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/relearnapp/backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user row plus default settings. Returns the filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Email:        "testuser-" + suffix + "@example.com",
		PasswordHash: "$2a$10$" + suffix,
		CreatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, created_at)
		 VALUES ($1, $2, $3, $4)`,
		user.ID, user.Email, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO settings (user_id, timezone, daily_new_words, daily_reviews, permission, updated_at)
		 VALUES ($1, 'UTC', 10, 20, 'UNDETERMINED', $2)`,
		user.ID, now,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert settings: %v", err)
	}

	return user
}

// SeedSession creates a session for the user, due at nextReviewAt with the
// given review count. Returns the filled domain.Session.
func SeedSession(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, reviewCount int, nextReviewAt time.Time) domain.Session {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	session := domain.Session{
		ID:           uuid.New(),
		UserID:       userID,
		SourceText:   "seeded text " + uniqueSuffix(),
		ReviewCount:  reviewCount,
		NextReviewAt: nextReviewAt.UTC().Truncate(time.Microsecond),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO sessions (id, user_id, source_text, review_count, next_review_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		session.ID, session.UserID, session.SourceText, session.ReviewCount,
		session.NextReviewAt, session.CreatedAt, session.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSession insert: %v", err)
	}

	return session
}

// SeedWord creates a vocabulary item inside the session, stamped addedAt.
func SeedWord(t *testing.T, pool *pgxpool.Pool, userID, sessionID uuid.UUID, addedAt time.Time) domain.Word {
	t.Helper()
	ctx := context.Background()

	word := domain.Word{
		ID:        uuid.New(),
		UserID:    userID,
		SessionID: sessionID,
		Text:      "word-" + uniqueSuffix(),
		AddedAt:   addedAt.UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO words (id, user_id, session_id, text, added_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		word.ID, word.UserID, word.SessionID, word.Text, word.AddedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedWord insert: %v", err)
	}

	return word
}
