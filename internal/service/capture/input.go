package capture

import (
	"github.com/google/uuid"

	"github.com/relearnapp/backend/internal/domain"
)

// maxImageBytes bounds uploaded captures; larger payloads are rejected before
// they reach the analysis service.
const maxImageBytes = 10 << 20

// maxAudioBytes bounds uploaded pronunciation recordings.
const maxAudioBytes = 5 << 20

// CaptureTextInput holds a photographed text to start tracking.
type CaptureTextInput struct {
	Image []byte
}

// Validate checks all fields and collects all errors.
func (i *CaptureTextInput) Validate() error {
	var errs []domain.FieldError

	if len(i.Image) == 0 {
		errs = append(errs, domain.FieldError{Field: "image", Message: "required"})
	} else if len(i.Image) > maxImageBytes {
		errs = append(errs, domain.FieldError{Field: "image", Message: "must not exceed 10 MiB"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// AddWordInput attaches one vocabulary item to a session.
type AddWordInput struct {
	SessionID uuid.UUID
	Word      string
}

// Validate checks all fields and collects all errors.
func (i *AddWordInput) Validate() error {
	var errs []domain.FieldError

	if i.SessionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "session_id", Message: "required"})
	}
	if i.Word == "" {
		errs = append(errs, domain.FieldError{Field: "word", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// EvaluateSentenceInput holds a practice sentence for one word.
type EvaluateSentenceInput struct {
	Word     string
	Sentence string
}

// Validate checks all fields and collects all errors.
func (i *EvaluateSentenceInput) Validate() error {
	var errs []domain.FieldError

	if i.Word == "" {
		errs = append(errs, domain.FieldError{Field: "word", Message: "required"})
	}
	if i.Sentence == "" {
		errs = append(errs, domain.FieldError{Field: "sentence", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// CompareTranslationsInput holds the source text and the user's translation.
type CompareTranslationsInput struct {
	Original    string
	Translation string
}

// Validate checks all fields and collects all errors.
func (i *CompareTranslationsInput) Validate() error {
	var errs []domain.FieldError

	if i.Original == "" {
		errs = append(errs, domain.FieldError{Field: "original", Message: "required"})
	}
	if i.Translation == "" {
		errs = append(errs, domain.FieldError{Field: "translation", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SynthesizeInput holds text to speak aloud.
type SynthesizeInput struct {
	Text string
}

// Validate checks all fields and collects all errors.
func (i *SynthesizeInput) Validate() error {
	if i.Text == "" {
		return domain.NewValidationError("text", "required")
	}
	return nil
}

// ScorePronunciationInput holds a recording and the phrase it should match.
type ScorePronunciationInput struct {
	Audio  []byte
	Target string
}

// Validate checks all fields and collects all errors.
func (i *ScorePronunciationInput) Validate() error {
	var errs []domain.FieldError

	if len(i.Audio) == 0 {
		errs = append(errs, domain.FieldError{Field: "audio", Message: "required"})
	} else if len(i.Audio) > maxAudioBytes {
		errs = append(errs, domain.FieldError{Field: "audio", Message: "must not exceed 5 MiB"})
	}
	if i.Target == "" {
		errs = append(errs, domain.FieldError{Field: "target", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
