package notify

import (
	"context"

	"github.com/google/uuid"

	"github.com/relearnapp/backend/internal/domain"
)

// Sink delivers one aggregate alert to a device. Implemented by PushSink and
// NoopSink; consumers declare their own interface, this one exists for wiring.
type Sink interface {
	Deliver(ctx context.Context, userID uuid.UUID, deviceToken string, n domain.Notification) error
}

var (
	_ Sink = (*PushSink)(nil)
	_ Sink = (*NoopSink)(nil)
)
