// Package session implements the session record store using PostgreSQL.
// Writes are whole-record replacement: Upsert rewrites every scheduling and
// content field, so a record can never be torn across fields.
package session

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/relearnapp/backend/internal/adapter/postgres"
	"github.com/relearnapp/backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var sessionColumns = []string{
	"id", "user_id", "source_text", "translation", "review_count",
	"next_review_at", "last_reviewed_at", "last_notified_at",
	"created_at", "updated_at",
}

// Repo provides session persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new session repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a session by primary key filtered by user_id.
func (r *Repo) GetByID(ctx context.Context, userID, sessionID uuid.UUID) (*domain.Session, error) {
	query, args, err := psql.Select(sessionColumns...).
		From("sessions").
		Where(sq.Eq{"id": sessionID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get session query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)

	s, err := scanSession(row)
	if err != nil {
		return nil, postgres.MapError(err, "session", sessionID.String())
	}

	return s, nil
}

// ListAll returns every session for the user, newest first.
func (r *Repo) ListAll(ctx context.Context, userID uuid.UUID) ([]*domain.Session, error) {
	query, args, err := psql.Select(sessionColumns...).
		From("sessions").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list sessions query: %w", err)
	}

	return r.list(ctx, query, args)
}

// ListDue returns sessions whose next review time has passed,
// ordered by next_review_at ascending.
func (r *Repo) ListDue(ctx context.Context, userID uuid.UUID, now time.Time) ([]*domain.Session, error) {
	query, args, err := psql.Select(sessionColumns...).
		From("sessions").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.LtOrEq{"next_review_at": now}).
		OrderBy("next_review_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list due sessions query: %w", err)
	}

	return r.list(ctx, query, args)
}

// Upsert inserts the session or replaces the existing record by id.
func (r *Repo) Upsert(ctx context.Context, s *domain.Session) error {
	query, args, err := psql.Insert("sessions").
		Columns(sessionColumns...).
		Values(
			s.ID, s.UserID, s.SourceText, s.Translation, s.ReviewCount,
			s.NextReviewAt, s.LastReviewedAt, s.LastNotifiedAt,
			s.CreatedAt, s.UpdatedAt,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			source_text = EXCLUDED.source_text,
			translation = EXCLUDED.translation,
			review_count = EXCLUDED.review_count,
			next_review_at = EXCLUDED.next_review_at,
			last_reviewed_at = EXCLUDED.last_reviewed_at,
			last_notified_at = EXCLUDED.last_notified_at,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert session query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "session", s.ID.String())
	}

	return nil
}

// MarkNotified sets the notification watermark on the given sessions.
func (r *Repo) MarkNotified(ctx context.Context, ids []uuid.UUID, notifiedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := psql.Update("sessions").
		Set("last_notified_at", notifiedAt).
		Set("updated_at", notifiedAt).
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build mark notified query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "session", "batch")
	}

	return nil
}

// CountDue returns the number of sessions due at the given instant.
func (r *Repo) CountDue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	query, args, err := psql.Select("count(*)").
		From("sessions").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.LtOrEq{"next_review_at": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count due query: %w", err)
	}

	var count int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, postgres.MapError(err, "session", "count")
	}

	return count, nil
}

// Count returns the total number of sessions for the user.
func (r *Repo) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	query, args, err := psql.Select("count(*)").
		From("sessions").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, postgres.MapError(err, "session", "count")
	}

	return count, nil
}

// CountReviewedSince returns the number of sessions whose last completed
// review happened at or after the given instant.
func (r *Repo) CountReviewedSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	query, args, err := psql.Select("count(*)").
		From("sessions").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.GtOrEq{"last_reviewed_at": since}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count reviewed query: %w", err)
	}

	var count int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, postgres.MapError(err, "session", "count")
	}

	return count, nil
}

func (r *Repo) list(ctx context.Context, query string, args []any) ([]*domain.Session, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "session", "list")
	}
	defer rows.Close()

	sessions := []*domain.Session{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	return sessions, nil
}

func scanSession(row pgx.Row) (*domain.Session, error) {
	var s domain.Session
	err := row.Scan(
		&s.ID, &s.UserID, &s.SourceText, &s.Translation, &s.ReviewCount,
		&s.NextReviewAt, &s.LastReviewedAt, &s.LastNotifiedAt,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
