package eventbus

import (
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// NewAuditRouter returns a router that logs every event published on topics.
func NewAuditRouter(logger *slog.Logger, sub message.Subscriber, topics []string) (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("create audit router: %w", err)
	}
	router.AddMiddleware(middleware.Recoverer)

	for _, topic := range topics {
		router.AddNoPublisherHandler("audit."+topic, topic, sub, auditHandler(logger, topic))
	}
	return router, nil
}

func auditHandler(logger *slog.Logger, topic string) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		logger.InfoContext(msg.Context(), "Domain event",
			slog.String("topic", topic),
			slog.String("message_id", msg.UUID),
			slog.String("correlation_id", middleware.MessageCorrelationID(msg)),
			slog.String("payload", string(msg.Payload)),
		)
		return nil
	}
}
