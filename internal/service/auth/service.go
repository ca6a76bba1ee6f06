package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/relearnapp/backend/internal/config"
	"github.com/relearnapp/backend/internal/domain"
)

// userRepo defines the account repository interface needed by the auth service.
type userRepo interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	SaveRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	ConsumeRefreshToken(ctx context.Context, tokenHash string, now time.Time) (uuid.UUID, error)
}

// settingsRepo defines the settings repository interface needed by the auth service.
type settingsRepo interface {
	Upsert(ctx context.Context, s *domain.Settings) error
}

// txManager defines the transaction manager interface needed by the auth service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// jwtManager defines the token management interface needed by the auth service.
type jwtManager interface {
	GenerateAccessToken(userID uuid.UUID) (string, error)
	GenerateRefreshToken() (raw string, hash string, err error)
}

// tokenHasher hashes a raw refresh token for lookup.
type tokenHasher func(raw string) string

// Service implements auth operations.
type Service struct {
	log      *slog.Logger
	users    userRepo
	settings settingsRepo
	tx       txManager
	jwt      jwtManager
	hash     tokenHasher
	clock    clockwork.Clock
	cfg      config.AuthConfig
}

// NewService creates a new auth service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	settings settingsRepo,
	tx txManager,
	jwt jwtManager,
	hash tokenHasher,
	clock clockwork.Clock,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		log:      logger.With("service", "auth"),
		users:    users,
		settings: settings,
		tx:       tx,
		jwt:      jwt,
		hash:     hash,
		clock:    clock,
		cfg:      cfg,
	}
}

// issueTokens generates an access token and a refresh token for the user,
// storing the refresh token hash.
func (s *Service) issueTokens(ctx context.Context, userID uuid.UUID) (*AuthResult, error) {
	accessToken, err := s.jwt.GenerateAccessToken(userID)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	rawRefresh, hashRefresh, err := s.jwt.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	expiresAt := s.clock.Now().Add(s.cfg.RefreshTokenTTL)
	if err := s.users.SaveRefreshToken(ctx, userID, hashRefresh, expiresAt); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &AuthResult{
		AccessToken:  accessToken,
		RefreshToken: rawRefresh,
		UserID:       userID,
	}, nil
}
