package review

import (
	"github.com/google/uuid"

	"github.com/relearnapp/backend/internal/domain"
)

// CompleteReviewInput holds the parameters for completing a review cycle.
type CompleteReviewInput struct {
	SessionID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i *CompleteReviewInput) Validate() error {
	var errs []domain.FieldError

	if i.SessionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "session_id", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// GetSessionInput holds the parameters for fetching one session.
type GetSessionInput struct {
	SessionID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i *GetSessionInput) Validate() error {
	var errs []domain.FieldError

	if i.SessionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "session_id", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
