// Package settings implements the user settings store using PostgreSQL.
package settings

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

// Repo provides settings persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new settings repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByUserID returns the user's settings.
func (r *Repo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Settings, error) {
	query, args, err := psql.Select(
		"user_id", "timezone", "daily_new_words", "daily_reviews",
		"permission", "device_token", "updated_at",
	).
		From("settings").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get settings query: %w", err)
	}

	var s domain.Settings
	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(
		&s.UserID, &s.Timezone, &s.DailyNewWords, &s.DailyReviews,
		&s.Permission, &s.DeviceToken, &s.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "settings", userID.String())
	}

	return &s, nil
}

// ListAll returns the settings of every account. Used by the notifier tick,
// which walks all users rather than a request-scoped one.
func (r *Repo) ListAll(ctx context.Context) ([]*domain.Settings, error) {
	query, args, err := psql.Select(
		"user_id", "timezone", "daily_new_words", "daily_reviews",
		"permission", "device_token", "updated_at",
	).
		From("settings").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list settings query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "settings", "list")
	}
	defer rows.Close()

	all := []*domain.Settings{}
	for rows.Next() {
		var s domain.Settings
		if err := rows.Scan(
			&s.UserID, &s.Timezone, &s.DailyNewWords, &s.DailyReviews,
			&s.Permission, &s.DeviceToken, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan settings: %w", err)
		}
		all = append(all, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settings: %w", err)
	}

	return all, nil
}

// Upsert inserts or fully replaces the user's settings row.
func (r *Repo) Upsert(ctx context.Context, s *domain.Settings) error {
	query, args, err := psql.Insert("settings").
		Columns("user_id", "timezone", "daily_new_words", "daily_reviews",
			"permission", "device_token", "updated_at").
		Values(s.UserID, s.Timezone, s.DailyNewWords, s.DailyReviews,
			s.Permission, s.DeviceToken, s.UpdatedAt).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			timezone = EXCLUDED.timezone,
			daily_new_words = EXCLUDED.daily_new_words,
			daily_reviews = EXCLUDED.daily_reviews,
			permission = EXCLUDED.permission,
			device_token = EXCLUDED.device_token,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert settings query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "settings", s.UserID.String())
	}

	return nil
}
