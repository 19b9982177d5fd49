// Package messaging connects chat transports to the session manager.
//
// The Dispatcher consumes inbound turns from a Service, runs each one
// through the turn handler in its own goroutine (turns for different
// users proceed in parallel; the session manager serializes turns per
// user) and sends the reply back through the same Service.
package messaging

import (
	"context"
	"log/slog"
	"sync"

	"github.com/fitflow/fitflow/internal/models"
)

// failureReply is sent when the turn handler itself faults.
const failureReply = "Something went wrong on our side. Please try again later."

// TurnHandler processes one user turn and returns the reply text.
type TurnHandler func(ctx context.Context, userID int64, text string) (string, error)

// Dispatcher pumps inbound turns from a Service into a TurnHandler.
type Dispatcher struct {
	service Service
	handler TurnHandler
	wg      sync.WaitGroup
}

// NewDispatcher creates a dispatcher over the given transport and handler.
func NewDispatcher(svc Service, handler TurnHandler) *Dispatcher {
	return &Dispatcher{service: svc, handler: handler}
}

// Run consumes updates until the service closes its channel or the
// context is cancelled, then waits for in-flight turns to finish.
func (d *Dispatcher) Run(ctx context.Context) {
	slog.Info("Dispatcher started")
	defer d.wg.Wait()
	for {
		select {
		case <-ctx.Done():
			slog.Info("Dispatcher stopping", "reason", ctx.Err())
			return
		case msg, ok := <-d.service.Updates():
			if !ok {
				slog.Info("Dispatcher updates channel closed")
				return
			}
			d.wg.Add(1)
			go func(msg models.InboundMessage) {
				defer d.wg.Done()
				d.dispatch(ctx, msg)
			}(msg)
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, msg models.InboundMessage) {
	slog.Debug("Dispatcher handling turn", "userID", msg.UserID)
	reply, err := d.handler(ctx, msg.UserID, msg.Text)
	if err != nil {
		slog.Error("Dispatcher turn handler failed", "error", err, "userID", msg.UserID)
		reply = failureReply
	}
	if reply == "" {
		return
	}
	if err := d.service.SendMessage(ctx, msg.UserID, reply); err != nil {
		slog.Error("Dispatcher failed to send reply", "error", err, "userID", msg.UserID)
	}
}
