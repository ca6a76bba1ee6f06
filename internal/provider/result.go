package provider

// ExtractResult is the structured result of text extraction from a captured
// image.
type ExtractResult struct {
	Text     string
	Language *string
}

// WordResult is the structured analysis of a single word in context.
type WordResult struct {
	Word          string
	Pronunciation *string
	Definition    *string
	Example       *string
	Translation   *string
}

// SentenceResult is the evaluation of a user-written practice sentence.
type SentenceResult struct {
	Acceptable bool
	Feedback   string
	Corrected  *string
}

// TranslationResult compares the user's translation against the source text.
type TranslationResult struct {
	Score     int // 0..100
	Feedback  string
	Reference string
}

// SpeechResult is synthesized audio for a text fragment.
type SpeechResult struct {
	Audio    []byte
	MimeType string
}

// PronunciationResult scores recorded speech against a target phrase.
type PronunciationResult struct {
	Score    int // 0..100
	Feedback string
}
