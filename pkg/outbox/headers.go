package outbox

import (
	"context"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/tuanvumaihuynh/crm-graphql/pkg/correlationid"
)

// HeaderEventType names the domain event carried by a message.
const HeaderEventType = "event-type"

// BuildHeaders creates the headers of an outbox message for the given event
// type, with trace context and correlation ID injected from ctx.
func BuildHeaders(ctx context.Context, eventType string) map[string]string {
	headers := map[string]string{
		HeaderEventType: eventType,
	}

	propagator := otel.GetTextMapPropagator()
	propagator.Inject(ctx, propagation.MapCarrier(headers))

	if correlationID, ok := correlationid.FromContext(ctx); ok {
		headers[correlationid.Header] = correlationID
	}

	return headers
}

// HeadersFromRecord flattens Kafka record headers into a map. Later
// duplicates win.
func HeadersFromRecord(rec *kgo.Record) map[string]string {
	headers := make(map[string]string, len(rec.Headers))
	for _, h := range rec.Headers {
		headers[h.Key] = string(h.Value)
	}
	return headers
}

// ExtractContextFromHeaders extracts trace context and correlation ID from
// headers and injects them into ctx.
func ExtractContextFromHeaders(ctx context.Context, headers map[string]string) context.Context {
	propagator := otel.GetTextMapPropagator()
	ctx = propagator.Extract(ctx, propagation.MapCarrier(headers))

	if correlationID, ok := headers[correlationid.Header]; ok && correlationID != "" {
		ctx = correlationid.NewContext(ctx, correlationID)
	}

	return ctx
}
