package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tuanvumaihuynh/crm-graphql/internal/repository"
	"github.com/tuanvumaihuynh/crm-graphql/internal/storage/db"
	"github.com/tuanvumaihuynh/crm-graphql/pkg/outbox"
)

// writeEvent stores ev as an outbox message on topic using db, which must be
// the transaction that persists the entity.
func writeEvent(
	ctx context.Context,
	db db.DB,
	outboxMsgRepo repository.OutboxMsgRepository,
	topic string,
	partitionKey string,
	ev any,
) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", topic, err)
	}

	if err := outboxMsgRepo.
		WithDB(db).
		CreateOutboxMsg(ctx, repository.CreateOutboxMsgParams{
			Topic:        topic,
			Headers:      outbox.BuildHeaders(ctx, topic),
			Payload:      payload,
			PartitionKey: &partitionKey,
		}); err != nil {
		return fmt.Errorf("outbox msg repository create outbox msg: %w", err)
	}

	return nil
}
