package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/relearnapp/backend/internal/domain"
)

// Refresh rotates the refresh token and returns a new token pair.
// An unknown, already-consumed or expired token yields ErrUnauthorized.
func (s *Service) Refresh(ctx context.Context, input RefreshInput) (*AuthResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash := s.hash(input.RefreshToken)

	// Consuming is an atomic delete-and-return: a token can be redeemed
	// exactly once, so reuse after rotation fails here.
	userID, err := s.users.ConsumeRefreshToken(ctx, hash, s.clock.Now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "refresh token reuse attempted")
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.Refresh consume token: %w", err)
	}

	result, err := s.issueTokens(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("auth.Refresh issue tokens: %w", err)
	}

	return result, nil
}
