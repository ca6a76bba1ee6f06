package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the single account this backend serves.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Settings holds per-user preferences consulted by the scheduling engine.
type Settings struct {
	UserID        uuid.UUID
	Timezone      string
	DailyNewWords int
	DailyReviews  int
	Permission    PermissionState
	DeviceToken   *string
	UpdatedAt     time.Time
}

// Goals extracts the configured daily goals.
func (s Settings) Goals() DailyGoals {
	return DailyGoals{NewWords: s.DailyNewWords, Reviews: s.DailyReviews}
}
