package analysis

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/relearnapp/backend/internal/provider"
)

// Request and response shapes of the analysis service wire format. Every
// response is validated before it is handed past the adapter boundary.

type extractRequest struct {
	ImageBase64 string `json:"image"`
}

type extractResponse struct {
	Text     string  `json:"text"`
	Language *string `json:"language"`
}

func (r *extractResponse) validate() error {
	if r.Text == "" {
		return errors.New("empty extracted text")
	}
	return nil
}

func (r *extractResponse) toResult() *provider.ExtractResult {
	return &provider.ExtractResult{Text: r.Text, Language: r.Language}
}

type wordRequest struct {
	Word    string `json:"word"`
	Context string `json:"context,omitempty"`
}

type wordResponse struct {
	Word          string  `json:"word"`
	Pronunciation *string `json:"pronunciation"`
	Definition    *string `json:"definition"`
	Example       *string `json:"example"`
	Translation   *string `json:"translation"`
}

func (r *wordResponse) validate() error {
	if r.Word == "" {
		return errors.New("missing word")
	}
	return nil
}

func (r *wordResponse) toResult() *provider.WordResult {
	return &provider.WordResult{
		Word:          r.Word,
		Pronunciation: r.Pronunciation,
		Definition:    r.Definition,
		Example:       r.Example,
		Translation:   r.Translation,
	}
}

type sentenceRequest struct {
	Word     string `json:"word"`
	Sentence string `json:"sentence"`
}

type sentenceResponse struct {
	Acceptable *bool   `json:"acceptable"`
	Feedback   string  `json:"feedback"`
	Corrected  *string `json:"corrected"`
}

func (r *sentenceResponse) validate() error {
	if r.Acceptable == nil {
		return errors.New("missing acceptable verdict")
	}
	return nil
}

func (r *sentenceResponse) toResult() *provider.SentenceResult {
	return &provider.SentenceResult{
		Acceptable: *r.Acceptable,
		Feedback:   r.Feedback,
		Corrected:  r.Corrected,
	}
}

type translationRequest struct {
	Original    string `json:"original"`
	Translation string `json:"translation"`
}

type translationResponse struct {
	Score     *int   `json:"score"`
	Feedback  string `json:"feedback"`
	Reference string `json:"reference"`
}

func (r *translationResponse) validate() error {
	if r.Score == nil {
		return errors.New("missing score")
	}
	if *r.Score < 0 || *r.Score > 100 {
		return fmt.Errorf("score %d out of range", *r.Score)
	}
	return nil
}

func (r *translationResponse) toResult() *provider.TranslationResult {
	return &provider.TranslationResult{
		Score:     *r.Score,
		Feedback:  r.Feedback,
		Reference: r.Reference,
	}
}

type speechRequest struct {
	Text string `json:"text"`
}

type speechResponse struct {
	AudioBase64 string `json:"audio"`
	MimeType    string `json:"mime_type"`
}

func (r *speechResponse) toResult() (*provider.SpeechResult, error) {
	if r.AudioBase64 == "" {
		return nil, errors.New("empty audio")
	}
	audio, err := base64.StdEncoding.DecodeString(r.AudioBase64)
	if err != nil {
		return nil, fmt.Errorf("decode audio: %w", err)
	}

	mime := r.MimeType
	if mime == "" {
		mime = "audio/mpeg"
	}
	return &provider.SpeechResult{Audio: audio, MimeType: mime}, nil
}

type pronunciationRequest struct {
	AudioBase64 string `json:"audio"`
	Target      string `json:"target"`
}

type pronunciationResponse struct {
	Score    *int   `json:"score"`
	Feedback string `json:"feedback"`
}

func (r *pronunciationResponse) validate() error {
	if r.Score == nil {
		return errors.New("missing score")
	}
	if *r.Score < 0 || *r.Score > 100 {
		return fmt.Errorf("score %d out of range", *r.Score)
	}
	return nil
}

func (r *pronunciationResponse) toResult() *provider.PronunciationResult {
	return &provider.PronunciationResult{Score: *r.Score, Feedback: r.Feedback}
}
