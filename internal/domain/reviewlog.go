package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReviewLog records one completed review cycle for a session.
type ReviewLog struct {
	ID               uuid.UUID
	SessionID        uuid.UUID
	UserID           uuid.UUID
	ReviewCountAfter int
	ReviewedAt       time.Time
}
