package auth

import "github.com/google/uuid"

// AuthResult is returned by Login and Refresh operations.
type AuthResult struct {
	AccessToken  string
	RefreshToken string // raw token, NOT hash
	UserID       uuid.UUID
}
