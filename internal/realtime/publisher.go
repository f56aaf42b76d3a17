package realtime

import (
	"context"
	"encoding/json"

	gcppubsub "cloud.google.com/go/pubsub/v2"

	"github.com/Rushington-dev/staffshield-pro-backend/pkg/logger"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/pubsub"
)

// Publisher emits realtime events. State-changing services call this after a
// successful commit; delivery is best effort and never fails the request.
type Publisher interface {
	Emit(ctx context.Context, event Event)
}

type pubsubPublisher struct {
	client *pubsub.Client
	logger *logger.Logger
}

// NewPublisher builds a Pub/Sub backed realtime publisher.
func NewPublisher(client *pubsub.Client, logg *logger.Logger) Publisher {
	if client == nil {
		return Noop{}
	}
	return &pubsubPublisher{client: client, logger: logg}
}

func (p *pubsubPublisher) Emit(ctx context.Context, event Event) {
	publisher := p.client.RealtimePublisher()
	if publisher == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.logError(ctx, event, err)
		return
	}

	result := publisher.Publish(ctx, &gcppubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"type": string(event.Type),
			"room": event.Room,
		},
	})
	if _, err := result.Get(ctx); err != nil {
		p.logError(ctx, event, err)
	}
}

func (p *pubsubPublisher) logError(ctx context.Context, event Event, err error) {
	if p.logger == nil {
		return
	}
	ctx = p.logger.WithFields(ctx, map[string]any{
		"event_type": string(event.Type),
		"room":       event.Room,
	})
	p.logger.Error(ctx, "publish realtime event", err)
}

// Noop drops all events; used when the realtime channel is not configured.
type Noop struct{}

func (Noop) Emit(ctx context.Context, event Event) {}
