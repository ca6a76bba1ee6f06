package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/relearnapp/backend/internal/domain"
)

// PushSink delivers alerts through an HTTP push gateway. Delivery is
// best-effort: the caller logs failures and retries on its next pass, the
// sink itself never retries.
type PushSink struct {
	gatewayURL string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewPushSink creates a sink for the given gateway URL.
func NewPushSink(gatewayURL, apiKey string, logger *slog.Logger) *PushSink {
	return &PushSink{
		gatewayURL: gatewayURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logger.With("adapter", "push"),
	}
}

// NewPushSinkWithHTTP creates a sink with a custom http.Client (for testing).
func NewPushSinkWithHTTP(gatewayURL string, httpClient *http.Client, logger *slog.Logger) *PushSink {
	return &PushSink{
		gatewayURL: gatewayURL,
		httpClient: httpClient,
		log:        logger.With("adapter", "push"),
	}
}

type pushRequest struct {
	DeviceToken string `json:"device_token"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	DedupTag    string `json:"dedup_tag,omitempty"`
	Data        struct {
		DueCount       int    `json:"due_count"`
		FirstSessionID string `json:"first_session_id,omitempty"`
	} `json:"data"`
}

// Deliver sends one alert to the device identified by deviceToken.
func (s *PushSink) Deliver(ctx context.Context, userID uuid.UUID, deviceToken string, n domain.Notification) error {
	req := pushRequest{
		DeviceToken: deviceToken,
		Title:       n.Title,
		Body:        n.Body,
		DedupTag:    n.DedupTag,
	}
	req.Data.DueCount = n.DueCount
	if n.FirstSessionID != uuid.Nil {
		req.Data.FirstSessionID = n.FirstSessionID.String()
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("push: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.gatewayURL+"/v1/push", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("push: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("push: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("push: unexpected status %d", resp.StatusCode)
	}

	s.log.DebugContext(ctx, "push delivered",
		slog.String("user_id", userID.String()),
		slog.Int("due_count", n.DueCount),
	)

	return nil
}
