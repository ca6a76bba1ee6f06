// Package reviewlog implements the review history store using PostgreSQL.
package reviewlog

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/relearnapp/backend/internal/adapter/postgres"
	"github.com/relearnapp/backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides review history persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new review log repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create appends a review history entry.
func (r *Repo) Create(ctx context.Context, e *domain.ReviewLog) error {
	query, args, err := psql.Insert("review_logs").
		Columns("id", "session_id", "user_id", "review_count_after", "reviewed_at").
		Values(e.ID, e.SessionID, e.UserID, e.ReviewCountAfter, e.ReviewedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert review log query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "review_log", e.ID.String())
	}

	return nil
}

// ListBySession returns the review history of one session, newest first.
func (r *Repo) ListBySession(ctx context.Context, userID, sessionID uuid.UUID) ([]domain.ReviewLog, error) {
	query, args, err := psql.Select("id", "session_id", "user_id", "review_count_after", "reviewed_at").
		From("review_logs").
		Where(sq.Eq{"user_id": userID, "session_id": sessionID}).
		OrderBy("reviewed_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list review logs query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "review_log", "list")
	}
	defer rows.Close()

	entries := []domain.ReviewLog{}
	for rows.Next() {
		var e domain.ReviewLog
		if err := rows.Scan(&e.ID, &e.SessionID, &e.UserID, &e.ReviewCountAfter, &e.ReviewedAt); err != nil {
			return nil, fmt.Errorf("scan review log: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review logs: %w", err)
	}

	return entries, nil
}
