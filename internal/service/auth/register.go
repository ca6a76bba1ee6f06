package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/relearnapp/backend/internal/domain"
)

// Register creates the account together with its default settings.
// Returns ErrAlreadyExists if an account with the email already exists.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth.Register hash password: %w", err)
	}

	now := s.clock.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
	}

	timezone := input.Timezone
	if timezone == "" {
		timezone = "UTC"
	}
	settings := &domain.Settings{
		UserID:        user.ID,
		Timezone:      timezone,
		DailyNewWords: 10,
		DailyReviews:  20,
		Permission:    domain.PermissionUndetermined,
		UpdatedAt:     now,
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.users.Create(txCtx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		if err := s.settings.Upsert(txCtx, settings); err != nil {
			return fmt.Errorf("create settings: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth.Register issue tokens: %w", err)
	}

	s.log.InfoContext(ctx, "account created",
		slog.String("user_id", user.ID.String()))

	return result, nil
}
