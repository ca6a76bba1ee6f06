// Package user implements the account and refresh token stores using PostgreSQL.
package user

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/relearnapp/backend/internal/adapter/postgres"
	"github.com/relearnapp/backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides account persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new account.
func (r *Repo) Create(ctx context.Context, u *domain.User) error {
	query, args, err := psql.Insert("users").
		Columns("id", "email", "password_hash", "created_at").
		Values(u.ID, u.Email, u.PasswordHash, u.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert user query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "user", u.ID.String())
	}

	return nil
}

// GetByEmail returns the account with the given email.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query, args, err := psql.Select("id", "email", "password_hash", "created_at").
		From("users").
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get user query: %w", err)
	}

	var u domain.User
	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "user", email)
	}

	return &u, nil
}

// GetByID returns the account by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query, args, err := psql.Select("id", "email", "password_hash", "created_at").
		From("users").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get user query: %w", err)
	}

	var u domain.User
	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "user", id.String())
	}

	return &u, nil
}

// SaveRefreshToken stores the hash of an issued refresh token.
func (r *Repo) SaveRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	query, args, err := psql.Insert("refresh_tokens").
		Columns("token_hash", "user_id", "expires_at", "created_at").
		Values(tokenHash, userID, expiresAt, time.Now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert refresh token query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "refresh_token", userID.String())
	}

	return nil
}

// ConsumeRefreshToken deletes the token hash and returns its owner.
// Returns domain.ErrNotFound for unknown or already-consumed tokens.
func (r *Repo) ConsumeRefreshToken(ctx context.Context, tokenHash string, now time.Time) (uuid.UUID, error) {
	query, args, err := psql.Delete("refresh_tokens").
		Where(sq.Eq{"token_hash": tokenHash}).
		Where(sq.Gt{"expires_at": now}).
		Suffix("RETURNING user_id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("build consume refresh token query: %w", err)
	}

	var userID uuid.UUID
	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&userID)
	if err != nil {
		return uuid.Nil, postgres.MapError(err, "refresh_token", "consume")
	}

	return userID, nil
}
