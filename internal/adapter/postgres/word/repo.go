// Package word implements the vocabulary item store using PostgreSQL.
package word

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

var wordColumns = []string{
	"id", "user_id", "session_id", "text", "pronunciation",
	"definition", "example", "added_at",
}

// Repo provides vocabulary item persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new word repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new vocabulary item.
func (r *Repo) Create(ctx context.Context, w *domain.Word) error {
	query, args, err := psql.Insert("words").
		Columns(wordColumns...).
		Values(
			w.ID, w.UserID, w.SessionID, w.Text, w.Pronunciation,
			w.Definition, w.Example, w.AddedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert word query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "word", w.ID.String())
	}

	return nil
}

// GetByID returns a vocabulary item by primary key filtered by user_id.
func (r *Repo) GetByID(ctx context.Context, userID, wordID uuid.UUID) (*domain.Word, error) {
	query, args, err := psql.Select(wordColumns...).
		From("words").
		Where(sq.Eq{"id": wordID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get word query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)

	w, err := scanWord(row)
	if err != nil {
		return nil, postgres.MapError(err, "word", wordID.String())
	}

	return w, nil
}

// ListBySession returns the vocabulary items of one session, oldest first.
func (r *Repo) ListBySession(ctx context.Context, userID, sessionID uuid.UUID) ([]*domain.Word, error) {
	query, args, err := psql.Select(wordColumns...).
		From("words").
		Where(sq.Eq{"user_id": userID, "session_id": sessionID}).
		OrderBy("added_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list words query: %w", err)
	}

	return r.list(ctx, query, args)
}

// ListAll returns every vocabulary item for the user, newest first.
func (r *Repo) ListAll(ctx context.Context, userID uuid.UUID) ([]*domain.Word, error) {
	query, args, err := psql.Select(wordColumns...).
		From("words").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("added_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list words query: %w", err)
	}

	return r.list(ctx, query, args)
}

// CountAddedSince returns the number of items added at or after the instant.
func (r *Repo) CountAddedSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	query, args, err := psql.Select("count(*)").
		From("words").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.GtOrEq{"added_at": since}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count words query: %w", err)
	}

	var count int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, postgres.MapError(err, "word", "count")
	}

	return count, nil
}

func (r *Repo) list(ctx context.Context, query string, args []any) ([]*domain.Word, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "word", "list")
	}
	defer rows.Close()

	words := []*domain.Word{}
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate words: %w", err)
	}

	return words, nil
}

func scanWord(row pgx.Row) (*domain.Word, error) {
	var w domain.Word
	err := row.Scan(
		&w.ID, &w.UserID, &w.SessionID, &w.Text, &w.Pronunciation,
		&w.Definition, &w.Example, &w.AddedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}
