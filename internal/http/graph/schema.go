// Package graph resolves the GraphQL contract in api-contract/schema.graphql
// against the services.
package graph

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/graph-gophers/graphql-go"

	apicontract "github.com/tuanvumaihuynh/crm-graphql/api-contract"
)

// NewSchema parses the embedded schema and binds it to r. Queries nested
// deeper than maxDepth are rejected.
func NewSchema(r *Resolver, maxDepth int) (*graphql.Schema, error) {
	schema, err := graphql.ParseSchema(apicontract.GetSchema(), r,
		graphql.MaxDepth(maxDepth),
		graphql.Logger(panicLogger{logger: r.logger}),
	)
	if err != nil {
		return nil, fmt.Errorf("parse graphql schema: %w", err)
	}

	return schema, nil
}

type panicLogger struct {
	logger *slog.Logger
}

func (l panicLogger) LogPanic(ctx context.Context, value any) {
	l.logger.ErrorContext(ctx, "panic in graphql resolver",
		slog.Any("recover", value),
		slog.String("stack", string(debug.Stack())),
	)
}
