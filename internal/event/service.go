package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tuanvumaihuynh/crm-graphql/internal/storage/mq"
)

// Service is the event service.
type Service struct {
	logger     *slog.Logger
	mqConsumer mq.Consumer
}

// New creates a new event service.
func New(
	logger *slog.Logger,
	mqConsumer mq.Consumer,
) *Service {
	return &Service{
		logger:     logger.With(slog.String("service", "event")),
		mqConsumer: mqConsumer,
	}
}

type CleanupFunc func()

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	handlers := map[string]mq.HandlerFunc{
		TopicCustomerCreated: jsonHandler(s.handleCustomerCreatedEvent),
		TopicProductCreated:  jsonHandler(s.handleProductCreatedEvent),
		TopicOrderCreated:    jsonHandler(s.handleOrderCreatedEvent),
	}

	for _, topic := range Topics {
		if err := s.mqConsumer.RegisterHandler(topic, handlers[topic]); err != nil {
			return nil, fmt.Errorf("register %s event handler: %w", topic, err)
		}
	}

	mqCleanup, err := s.mqConsumer.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("run mq consumer: %w", err)
	}

	cleanup := func() {
		mqCleanup()
	}

	return cleanup, nil
}

// jsonHandler decodes the payload into E before calling handle.
func jsonHandler[E any](handle func(context.Context, E) error) mq.HandlerFunc {
	return func(ctx context.Context, topic string, payload []byte) error {
		var ev E
		if err := json.Unmarshal(payload, &ev); err != nil {
			return fmt.Errorf("unmarshal %s event: %w", topic, err)
		}

		if err := handle(ctx, ev); err != nil {
			return fmt.Errorf("handle %s event: %w", topic, err)
		}

		return nil
	}
}
