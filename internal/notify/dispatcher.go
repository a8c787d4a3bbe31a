package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/gatelogic/gatelogic-core/internal/infrastructure/logging"
)

// Timestamps in notification text are rendered in this layout, local to
// whatever wall clock the service runs on.
const timestampLayout = "15:04:05 2006-01-02"

// Channel delivers a rendered entry notification over one medium.
type Channel interface {
	// Name identifies the channel in log output.
	Name() string

	// Send delivers the message. Implementations should honour ctx
	// cancellation for their network calls.
	Send(ctx context.Context, subject, body string) error
}

// NameResolver looks up the display name for a passcode record. Satisfied
// by the passcode repository.
type NameResolver interface {
	GetName(ctx context.Context, id int64) (string, error)
}

// Dispatcher fans an entry event out to every configured channel.
//
// Delivery is strictly best-effort: each channel gets exactly one attempt,
// a failing channel never stops the others, and no failure is ever
// reported back to the caller. The verification result this notification
// describes is already decided and published by the time Notify runs.
type Dispatcher struct {
	resolver NameResolver
	channels []Channel
	logger   *logging.Logger
}

// NewDispatcher creates a Dispatcher over the given channels. An empty
// channel list is valid and makes Notify a no-op.
func NewDispatcher(resolver NameResolver, logger *logging.Logger, channels ...Channel) *Dispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	return &Dispatcher{
		resolver: resolver,
		channels: channels,
		logger:   logger.With("component", "notify"),
	}
}

// ChannelCount reports how many channels are configured.
func (d *Dispatcher) ChannelCount() int {
	return len(d.channels)
}

// Notify announces that the holder of recordID entered at ts.
//
// The display name is resolved at delivery time so a rename between
// verification and notification is reflected in the message. A failed
// lookup falls back to the numeric id rather than dropping the
// notification.
func (d *Dispatcher) Notify(ctx context.Context, recordID int64, ts time.Time) {
	if len(d.channels) == 0 {
		return
	}

	name, err := d.resolver.GetName(ctx, recordID)
	if err != nil {
		d.logger.Error("resolving name for notification",
			"id", recordID, "error", err)
	}
	if name == "" {
		name = fmt.Sprintf("id %d", recordID)
	}

	subject := "House entry notification"
	body := fmt.Sprintf("%s entered the house at %s.", name, ts.Format(timestampLayout))

	for _, ch := range d.channels {
		if err := ch.Send(ctx, subject, body); err != nil {
			d.logger.Error("notification delivery failed",
				"channel", ch.Name(), "id", recordID, "error", err)
			continue
		}
		d.logger.Info("notification sent", "channel", ch.Name(), "id", recordID)
	}
}
