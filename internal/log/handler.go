package log

import (
	"context"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/crm-graphql/pkg/correlationid"
)

var _ slog.Handler = (*enrichedHandler)(nil)

// enrichedHandler adds correlation and trace ids to every record and, when
// redact is set, masks customer contact details.
type enrichedHandler struct {
	h      slog.Handler
	redact bool
}

func newEnrichedHandler(h slog.Handler, redact bool) enrichedHandler {
	return enrichedHandler{h: h, redact: redact}
}

func (eh enrichedHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return eh.h.Enabled(ctx, level)
}

func (eh enrichedHandler) Handle(ctx context.Context, r slog.Record) error {
	if eh.redact {
		masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
		r.Attrs(func(a slog.Attr) bool {
			masked.AddAttrs(redactAttr(a))
			return true
		})
		r = masked
	}

	if correlationID, ok := correlationid.FromContext(ctx); ok {
		r.AddAttrs(slog.String("correlation_id", correlationID))
	}

	spanCtx := trace.SpanFromContext(ctx).SpanContext()
	if spanCtx.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", spanCtx.TraceID().String()),
			slog.String("span_id", spanCtx.SpanID().String()),
		)
	}

	return eh.h.Handle(ctx, r)
}

func (eh enrichedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if eh.redact {
		masked := make([]slog.Attr, len(attrs))
		for i, a := range attrs {
			masked[i] = redactAttr(a)
		}
		attrs = masked
	}
	return newEnrichedHandler(eh.h.WithAttrs(attrs), eh.redact)
}

func (eh enrichedHandler) WithGroup(name string) slog.Handler {
	return newEnrichedHandler(eh.h.WithGroup(name), eh.redact)
}

func redactAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		masked := make([]any, len(group))
		for i, ga := range group {
			masked[i] = redactAttr(ga)
		}
		return slog.Group(a.Key, masked...)
	}
	if a.Value.Kind() != slog.KindString {
		return a
	}

	switch a.Key {
	case "email":
		return slog.String(a.Key, maskEmail(a.Value.String()))
	case "phone":
		return slog.String(a.Key, maskPhone(a.Value.String()))
	}
	return a
}

// maskEmail keeps the first character of the local part and the domain.
func maskEmail(email string) string {
	at := strings.LastIndexByte(email, '@')
	if at <= 0 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}

// maskPhone keeps the last four characters.
func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return "***"
	}
	return "***" + phone[len(phone)-4:]
}
