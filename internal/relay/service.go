// Package relay publishes outbox messages written by the creation workflows
// to Kafka.
package relay

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tuanvumaihuynh/crm-graphql/internal/config"
	"github.com/tuanvumaihuynh/crm-graphql/internal/repository"
	"github.com/tuanvumaihuynh/crm-graphql/internal/storage/db"
	"github.com/tuanvumaihuynh/crm-graphql/internal/storage/mq"
	"github.com/tuanvumaihuynh/crm-graphql/pkg/ptr"
)

type Service struct {
	cfg           config.Relay
	logger        *slog.Logger
	db            db.DB
	outboxMsgRepo repository.OutboxMsgRepository
	mqProducer    mq.Producer

	stopChan chan struct{}
}

func NewService(
	cfg config.Relay,
	logger *slog.Logger,
	db db.DB,
	outboxMsgRepo repository.OutboxMsgRepository,
	mqProducer mq.Producer,
) *Service {
	return &Service{
		cfg:           cfg,
		logger:        logger.With(slog.String("service", "relay")),
		db:            db,
		outboxMsgRepo: outboxMsgRepo,
		mqProducer:    mqProducer,
		stopChan:      make(chan struct{}),
	}
}

type CleanupFunc func()

// Run polls the outbox every cfg.Interval until the returned cleanup is
// called. Cleanup waits up to 5s for the batch in flight.
func (s *Service) Run(ctx context.Context) CleanupFunc {
	ctx, cancel := context.WithCancel(ctx)

	stoppedChan := make(chan struct{})
	go func() {
		defer close(stoppedChan)
		s.run(ctx)
	}()

	return func() {
		close(s.stopChan)
		select {
		case <-stoppedChan:
		case <-time.After(5 * time.Second):
			cancel()
			<-stoppedChan
		}
		cancel()
	}
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			if _, err := s.RelayBatch(ctx); err != nil {
				s.logger.ErrorContext(ctx, "error relaying outbox msgs", slog.Any("error", err))
			}
		}
	}
}

// RelayBatch publishes one batch of unprocessed outbox messages and marks
// them processed, recording the publish error of each failed message. It
// returns the number of messages handled.
func (s *Service) RelayBatch(ctx context.Context) (int, error) {
	var count int
	err := s.db.WithTx(ctx, func(db db.DB) error {
		outboxMsgs, err := s.outboxMsgRepo.
			WithDB(db).
			ListUnprocessedOutboxMsgs(ctx, repository.ListUnprocessedOutboxMsgsParams{
				//nolint:gosec
				BatchSize: int32(s.cfg.BatchSize),
			})
		if err != nil {
			return fmt.Errorf("list unprocessed outbox msgs: %w", err)
		}

		if len(outboxMsgs) == 0 {
			return nil
		}

		s.logger.InfoContext(ctx, "relaying outbox msgs", slog.Int("count", len(outboxMsgs)))

		items := make([]repository.BulkUpdateOutboxMsgsItem, len(outboxMsgs))
		var wg sync.WaitGroup
		for i, msg := range outboxMsgs {
			wg.Go(func() {
				items[i] = s.publish(ctx, msg)
			})
		}
		wg.Wait()

		if err := s.outboxMsgRepo.
			WithDB(db).
			BulkUpdateOutboxMsgs(ctx, repository.BulkUpdateOutboxMsgsParams{
				Items: items,
			}); err != nil {
			return fmt.Errorf("bulk update outbox msgs: %w", err)
		}

		count = len(outboxMsgs)
		return nil
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (s *Service) publish(ctx context.Context, msg repository.ListUnprocessedOutboxMsgsResult) repository.BulkUpdateOutboxMsgsItem {
	if s.cfg.PublishTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.PublishTimeout)
		defer cancel()
	}

	if err := s.mqProducer.Produce(ctx, mq.ProduceMsg{
		Topic:        msg.Topic,
		Headers:      msg.Headers,
		Payload:      msg.Payload,
		PartitionKey: msg.PartitionKey,
	}); err != nil {
		s.logger.ErrorContext(ctx,
			"error producing message",
			slog.String("outbox_msg_id", msg.ID.String()),
			slog.String("topic", msg.Topic),
			slog.Any("error", err),
		)
		return repository.BulkUpdateOutboxMsgsItem{
			ID:    msg.ID,
			Error: ptr.New(fmt.Sprintf("produce message: %v", err)),
		}
	}

	return repository.BulkUpdateOutboxMsgsItem{ID: msg.ID}
}
