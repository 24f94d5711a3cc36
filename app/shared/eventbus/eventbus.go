// Package eventbus publishes domain events after their transaction commits.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/quiz-host/app/shared/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Publisher publishes a JSON payload to topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// GoChannelBus is an in-process bus. It suits the single local instance the
// application runs as; no broker is involved.
type GoChannelBus struct {
	pubsub *gochannel.GoChannel
	logger *slog.Logger
}

// NewGoChannelBus creates an in-process bus.
func NewGoChannelBus(logger *slog.Logger) *GoChannelBus {
	if logger == nil {
		logger = slog.Default()
	}
	pubsub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermill.NewSlogLogger(logger),
	)
	return &GoChannelBus{pubsub: pubsub, logger: logger}
}

// Publish marshals payload and publishes it with the context's correlation id.
func (b *GoChannelBus) Publish(ctx context.Context, topic string, payload any) error {
	msg, err := NewMessage(ctx, payload)
	if err != nil {
		return err
	}
	if err := b.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	b.logger.DebugContext(ctx, "Event published",
		attr.ExtractCorrelationID(ctx),
		attr.String("topic", topic),
		attr.String("message_id", msg.UUID),
	)
	return nil
}

// Subscriber exposes the bus to watermill routers.
func (b *GoChannelBus) Subscriber() message.Subscriber { return b.pubsub }

// Close stops delivery to all subscribers.
func (b *GoChannelBus) Close() error { return b.pubsub.Close() }

// NewMessage builds a watermill message carrying payload as JSON.
func NewMessage(ctx context.Context, payload any) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal event payload: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	correlationID := attr.CorrelationIDFrom(ctx)
	if correlationID == "" {
		correlationID = watermill.NewUUID()
	}
	middleware.SetCorrelationID(correlationID, msg)
	return msg, nil
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }

var (
	_ Publisher = (*GoChannelBus)(nil)
	_ Publisher = Nop{}
)
