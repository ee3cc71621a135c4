package relay_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/crm-graphql/internal/config"
	"github.com/tuanvumaihuynh/crm-graphql/internal/event"
	"github.com/tuanvumaihuynh/crm-graphql/internal/relay"
	"github.com/tuanvumaihuynh/crm-graphql/internal/repository"
	"github.com/tuanvumaihuynh/crm-graphql/internal/storage/db"
	"github.com/tuanvumaihuynh/crm-graphql/internal/storage/mq"
	"github.com/tuanvumaihuynh/crm-graphql/pkg/ptr"
)

type txDB struct {
	db.DB
}

func (d txDB) WithTx(_ context.Context, txFunc func(db.DB) error) error {
	return txFunc(d)
}

type fakeOutbox struct {
	pending  []repository.ListUnprocessedOutboxMsgsResult
	updated  []repository.BulkUpdateOutboxMsgsItem
	batchArg int32
}

func (r *fakeOutbox) WithDB(db.DB) repository.OutboxMsgRepository { return r }

func (r *fakeOutbox) CreateOutboxMsg(context.Context, repository.CreateOutboxMsgParams) error {
	return nil
}

func (r *fakeOutbox) ListUnprocessedOutboxMsgs(_ context.Context, params repository.ListUnprocessedOutboxMsgsParams) ([]repository.ListUnprocessedOutboxMsgsResult, error) {
	r.batchArg = params.BatchSize
	return r.pending, nil
}

func (r *fakeOutbox) BulkUpdateOutboxMsgs(_ context.Context, params repository.BulkUpdateOutboxMsgsParams) error {
	r.updated = params.Items
	return nil
}

type fakeProducer struct {
	mu       sync.Mutex
	produced []mq.ProduceMsg
	failOn   string
	block    bool
}

func (p *fakeProducer) Produce(ctx context.Context, msg mq.ProduceMsg) error {
	if p.block {
		<-ctx.Done()
		return ctx.Err()
	}
	if msg.Topic == p.failOn {
		return errors.New("broker unavailable")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.produced = append(p.produced, msg)
	return nil
}

func TestRelayBatch(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Relay{BatchSize: 50}

	t.Run("Should publish and mark every message", func(t *testing.T) {
		customerMsg := repository.ListUnprocessedOutboxMsgsResult{
			ID:           uuid.New(),
			Topic:        event.TopicCustomerCreated,
			Headers:      map[string]string{"event-type": event.TopicCustomerCreated},
			Payload:      []byte(`{}`),
			PartitionKey: ptr.New("c-1"),
		}
		orderMsg := repository.ListUnprocessedOutboxMsgsResult{
			ID:      uuid.New(),
			Topic:   event.TopicOrderCreated,
			Payload: []byte(`{}`),
		}
		outboxRepo := &fakeOutbox{pending: []repository.ListUnprocessedOutboxMsgsResult{customerMsg, orderMsg}}
		producer := &fakeProducer{failOn: event.TopicOrderCreated}

		svc := relay.NewService(cfg, logger, txDB{}, outboxRepo, producer)
		n, err := svc.RelayBatch(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 2, n)
		assert.Equal(t, int32(50), outboxRepo.batchArg)

		require.Len(t, producer.produced, 1)
		assert.Equal(t, "c-1", *producer.produced[0].PartitionKey)
		assert.Equal(t, customerMsg.Headers, producer.produced[0].Headers)

		require.Len(t, outboxRepo.updated, 2)
		assert.Equal(t, customerMsg.ID, outboxRepo.updated[0].ID)
		assert.Nil(t, outboxRepo.updated[0].Error)
		assert.Equal(t, orderMsg.ID, outboxRepo.updated[1].ID)
		require.NotNil(t, outboxRepo.updated[1].Error)
		assert.Contains(t, *outboxRepo.updated[1].Error, "broker unavailable")
	})

	t.Run("Should skip the update when nothing is pending", func(t *testing.T) {
		outboxRepo := &fakeOutbox{}
		svc := relay.NewService(cfg, logger, txDB{}, outboxRepo, &fakeProducer{})

		n, err := svc.RelayBatch(context.Background())
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Nil(t, outboxRepo.updated)
	})

	t.Run("Should record a timed out publish", func(t *testing.T) {
		msg := repository.ListUnprocessedOutboxMsgsResult{
			ID:      uuid.New(),
			Topic:   event.TopicProductCreated,
			Payload: []byte(`{}`),
		}
		outboxRepo := &fakeOutbox{pending: []repository.ListUnprocessedOutboxMsgsResult{msg}}
		timeoutCfg := config.Relay{BatchSize: 10, PublishTimeout: 10 * time.Millisecond}

		svc := relay.NewService(timeoutCfg, logger, txDB{}, outboxRepo, &fakeProducer{block: true})
		n, err := svc.RelayBatch(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		require.Len(t, outboxRepo.updated, 1)
		require.NotNil(t, outboxRepo.updated[0].Error)
		assert.Contains(t, *outboxRepo.updated[0].Error, context.DeadlineExceeded.Error())
	})
}
