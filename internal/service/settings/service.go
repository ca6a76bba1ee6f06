package settings

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/relearnapp/backend/internal/domain"
	"github.com/relearnapp/backend/pkg/ctxutil"
)

// settingsRepo defines the repository interface needed by this service.
type settingsRepo interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Settings, error)
	Upsert(ctx context.Context, s *domain.Settings) error
}

// Service implements user preference operations: timezone, daily goals,
// notification permission and the push device token.
type Service struct {
	log      *slog.Logger
	settings settingsRepo
	clock    clockwork.Clock
}

// NewService creates a new settings service instance.
func NewService(logger *slog.Logger, settings settingsRepo, clock clockwork.Clock) *Service {
	return &Service{
		log:      logger.With("service", "settings"),
		settings: settings,
		clock:    clock,
	}
}

// Get returns the authenticated user's settings.
func (s *Service) Get(ctx context.Context) (*domain.Settings, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	settings, err := s.settings.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("settings.Get: %w", err)
	}

	return settings, nil
}

// Update applies a partial update to the user's settings and stores the
// merged record whole.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.Settings, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	current, err := s.settings.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("settings.Update get current: %w", err)
	}

	updated := applyChanges(*current, input)
	updated.UpdatedAt = s.clock.Now()

	if err := s.settings.Upsert(ctx, &updated); err != nil {
		return nil, fmt.Errorf("settings.Update save: %w", err)
	}

	s.log.InfoContext(ctx, "settings updated",
		slog.String("user_id", userID.String()))

	return &updated, nil
}

// applyChanges merges the input changes into current settings.
func applyChanges(current domain.Settings, input UpdateInput) domain.Settings {
	result := current

	if input.Timezone != nil {
		result.Timezone = *input.Timezone
	}
	if input.DailyNewWords != nil {
		result.DailyNewWords = *input.DailyNewWords
	}
	if input.DailyReviews != nil {
		result.DailyReviews = *input.DailyReviews
	}
	if input.Permission != nil {
		result.Permission = *input.Permission
	}
	if input.DeviceToken != nil {
		if *input.DeviceToken == "" {
			result.DeviceToken = nil
		} else {
			token := *input.DeviceToken
			result.DeviceToken = &token
		}
	}

	return result
}
