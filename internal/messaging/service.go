package messaging

import (
	"context"

	"github.com/fitflow/fitflow/internal/models"
)

// Service defines a pluggable message delivery abstraction.
// It supports sending replies and exposes a channel of inbound user turns.
type Service interface {
	// SendMessage sends a message to a user.
	SendMessage(ctx context.Context, userID int64, body string) error

	// Start begins any background processing (e.g., polling for updates).
	Start(ctx context.Context) error

	// Stop stops background processing and cleans up resources.
	Stop() error

	// Updates returns a channel of incoming user turns. The channel is
	// closed when the service stops.
	Updates() <-chan models.InboundMessage
}
