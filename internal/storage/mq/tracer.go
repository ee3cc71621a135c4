package mq

import (
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"
)

var (
	tracer = otel.Tracer("github.com/tuanvumaihuynh/crm-graphql/internal/storage/mq")

	// kTracer is installed as a kgo hook on both the producer and the
	// consumer. The global provider and propagator delegate to whatever
	// telemetry.InitTracer installs later.
	kTracer = kotel.NewTracer(
		kotel.TracerProvider(otel.GetTracerProvider()),
		kotel.TracerPropagator(otel.GetTextMapPropagator()),
	)
)
