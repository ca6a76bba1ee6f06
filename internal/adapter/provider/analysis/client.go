package analysis

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/relearnapp/backend/internal/domain"
	"github.com/relearnapp/backend/internal/provider"
)

// Client talks to the external analysis service over JSON/HTTP. Any transport
// failure, non-2xx status or malformed payload surfaces as domain.ErrAnalysis;
// the caller decides whether to retry, the client never does beyond one
// immediate attempt on 5xx.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client for the given service base URL.
func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        logger.With("adapter", "analysis"),
	}
}

// NewClientWithHTTP creates a Client with a custom http.Client (for testing).
func NewClientWithHTTP(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		log:        logger.With("adapter", "analysis"),
	}
}

// ExtractText extracts the learnable text from a captured image.
func (c *Client) ExtractText(ctx context.Context, image []byte) (*provider.ExtractResult, error) {
	req := extractRequest{ImageBase64: base64.StdEncoding.EncodeToString(image)}

	var resp extractResponse
	if err := c.post(ctx, "/v1/extract", req, &resp); err != nil {
		return nil, err
	}
	if err := resp.validate(); err != nil {
		return nil, fmt.Errorf("analysis: extract: %w: %w", domain.ErrAnalysis, err)
	}

	return resp.toResult(), nil
}

// AnalyzeWord returns pronunciation, definition, example and translation for
// a word in the context it was captured in.
func (c *Client) AnalyzeWord(ctx context.Context, word, contextText string) (*provider.WordResult, error) {
	req := wordRequest{Word: word, Context: contextText}

	var resp wordResponse
	if err := c.post(ctx, "/v1/word", req, &resp); err != nil {
		return nil, err
	}
	if err := resp.validate(); err != nil {
		return nil, fmt.Errorf("analysis: word: %w: %w", domain.ErrAnalysis, err)
	}

	return resp.toResult(), nil
}

// EvaluateSentence checks a practice sentence that should use the given word.
func (c *Client) EvaluateSentence(ctx context.Context, word, sentence string) (*provider.SentenceResult, error) {
	req := sentenceRequest{Word: word, Sentence: sentence}

	var resp sentenceResponse
	if err := c.post(ctx, "/v1/sentence", req, &resp); err != nil {
		return nil, err
	}
	if err := resp.validate(); err != nil {
		return nil, fmt.Errorf("analysis: sentence: %w: %w", domain.ErrAnalysis, err)
	}

	return resp.toResult(), nil
}

// CompareTranslations scores the user's translation of the source text.
func (c *Client) CompareTranslations(ctx context.Context, original, userTranslation string) (*provider.TranslationResult, error) {
	req := translationRequest{Original: original, Translation: userTranslation}

	var resp translationResponse
	if err := c.post(ctx, "/v1/translation", req, &resp); err != nil {
		return nil, err
	}
	if err := resp.validate(); err != nil {
		return nil, fmt.Errorf("analysis: translation: %w: %w", domain.ErrAnalysis, err)
	}

	return resp.toResult(), nil
}

// SynthesizeSpeech returns spoken audio for the text.
func (c *Client) SynthesizeSpeech(ctx context.Context, text string) (*provider.SpeechResult, error) {
	req := speechRequest{Text: text}

	var resp speechResponse
	if err := c.post(ctx, "/v1/speech", req, &resp); err != nil {
		return nil, err
	}

	result, err := resp.toResult()
	if err != nil {
		return nil, fmt.Errorf("analysis: speech: %w: %w", domain.ErrAnalysis, err)
	}

	return result, nil
}

// ScorePronunciation scores recorded audio against the target phrase.
func (c *Client) ScorePronunciation(ctx context.Context, audio []byte, target string) (*provider.PronunciationResult, error) {
	req := pronunciationRequest{
		AudioBase64: base64.StdEncoding.EncodeToString(audio),
		Target:      target,
	}

	var resp pronunciationResponse
	if err := c.post(ctx, "/v1/pronunciation", req, &resp); err != nil {
		return nil, err
	}
	if err := resp.validate(); err != nil {
		return nil, fmt.Errorf("analysis: pronunciation: %w: %w", domain.ErrAnalysis, err)
	}

	return resp.toResult(), nil
}

// post sends one JSON request and decodes the JSON response into out.
func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("analysis: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("analysis: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	c.log.DebugContext(ctx, "analysis request", slog.String("path", path))

	resp, err := c.doWithRetry(ctx, req, body)
	if err != nil {
		c.log.ErrorContext(ctx, "analysis request failed",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("analysis: %w: request failed: %w", domain.ErrAnalysis, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.ErrorContext(ctx, "analysis unexpected status",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("analysis: %w: unexpected status %d", domain.ErrAnalysis, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("analysis: %w: read body: %w", domain.ErrAnalysis, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("analysis: %w: decode json: %w", domain.ErrAnalysis, err)
	}

	return nil
}

// doWithRetry executes the request with a single retry on 5xx or network
// errors. The body is replayed from the buffered bytes.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request, body []byte) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	c.log.WarnContext(ctx, "analysis retry", slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	time.Sleep(500 * time.Millisecond)

	retry := req.Clone(ctx)
	retry.Body = io.NopCloser(bytes.NewReader(body))
	return c.httpClient.Do(retry)
}
