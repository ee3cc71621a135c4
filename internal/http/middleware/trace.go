package middleware

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/crm-graphql/pkg/correlationid"
)

// Trace starts a server span per request, continuing any trace propagated in
// the request headers. Requests to skipPaths and non-POST requests to the
// GraphQL endpoint (the GraphiQL page) are not traced.
func Trace(tracer trace.Tracer, graphqlPath string, skipPaths ...string) func(http.Handler) http.Handler {
	skip := make(map[string]struct{}, len(skipPaths)+2)
	skip[MetricsPath] = struct{}{}
	skip[HealthPath] = struct{}{}
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := skip[r.URL.Path]; ok || (r.URL.Path == graphqlPath && r.Method != http.MethodPost) {
				next.ServeHTTP(w, r)
				return
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

			// the route pattern is only known once chi has routed the request
			ctx, span := tracer.Start(ctx, r.Method, trace.WithAttributes(
				semconv.HTTPRequestMethodKey.String(r.Method),
				semconv.URLPath(r.URL.Path),
			), trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()

			if id, ok := correlationid.FromContext(ctx); ok {
				span.SetAttributes(attribute.String("crm.correlation_id", id))
			}

			r = r.WithContext(ctx)
			next.ServeHTTP(ww, r)

			routePattern := chi.RouteContext(ctx).RoutePattern()
			if routePattern == "" {
				routePattern = "<unknown>"
			}
			span.SetName(fmt.Sprintf("%s %s", r.Method, routePattern))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			span.SetAttributes(
				semconv.HTTPRoute(routePattern),
				semconv.HTTPResponseStatusCode(status),
				semconv.HTTPResponseBodySize(ww.BytesWritten()),
			)
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, fmt.Sprintf("error with HTTP status code %d", status))
			}
		})
	}
}
