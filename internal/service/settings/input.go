package settings

import (
	"time"

	"github.com/relearnapp/backend/internal/domain"
)

// UpdateInput is a partial settings update: nil fields stay unchanged. An
// explicitly empty DeviceToken clears the stored token.
type UpdateInput struct {
	Timezone      *string
	DailyNewWords *int
	DailyReviews  *int
	Permission    *domain.PermissionState
	DeviceToken   *string
}

// Validate checks all fields and collects all errors.
func (i *UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.Timezone != nil {
		if _, err := time.LoadLocation(*i.Timezone); err != nil {
			errs = append(errs, domain.FieldError{Field: "timezone", Message: "must be a valid IANA timezone"})
		}
	}
	if i.DailyNewWords != nil && *i.DailyNewWords < 0 {
		errs = append(errs, domain.FieldError{Field: "daily_new_words", Message: "must not be negative"})
	}
	if i.DailyReviews != nil && *i.DailyReviews < 0 {
		errs = append(errs, domain.FieldError{Field: "daily_reviews", Message: "must not be negative"})
	}
	if i.Permission != nil && !i.Permission.IsValid() {
		errs = append(errs, domain.FieldError{Field: "permission", Message: "must be GRANTED, DENIED or UNDETERMINED"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
