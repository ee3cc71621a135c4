package graph

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/graph-gophers/graphql-go"
	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/crm-graphql/internal/apperr"
	"github.com/tuanvumaihuynh/crm-graphql/internal/service"
)

// ErrInternal replaces unexpected errors in GraphQL responses. The cause is
// logged.
var ErrInternal = errors.New("internal server error")

// Resolver is the root resolver of the Query and Mutation types.
type Resolver struct {
	logger      *slog.Logger
	customerSvc service.CustomerService
	productSvc  service.ProductService
	orderSvc    service.OrderService
}

func NewResolver(
	logger *slog.Logger,
	customerSvc service.CustomerService,
	productSvc service.ProductService,
	orderSvc service.OrderService,
) *Resolver {
	return &Resolver{
		logger:      logger.With(slog.String("component", "graphql")),
		customerSvc: customerSvc,
		productSvc:  productSvc,
		orderSvc:    orderSvc,
	}
}

func (r *Resolver) Hello() string {
	return "Hello, GraphQL!"
}

// failure turns err into the message of a failure payload. Errors that carry
// no business message are logged and returned as ErrInternal.
func (r *Resolver) failure(ctx context.Context, field string, err error) (string, error) {
	if msg, ok := apperr.Message(err); ok {
		r.logger.InfoContext(ctx, "mutation rejected",
			slog.String("field", field),
			slog.String("reason", msg),
		)
		return msg, nil
	}

	return "", r.internal(ctx, field, err)
}

func (r *Resolver) internal(ctx context.Context, field string, err error) error {
	r.logger.ErrorContext(ctx, "graphql resolver error",
		slog.String("field", field),
		slog.Any("error", err),
	)
	return ErrInternal
}

func timeOf(t *graphql.Time) *time.Time {
	if t == nil {
		return nil
	}
	return &t.Time
}

func decimalOf(d *Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	return &d.Decimal
}

func intOf(n *int32) *int {
	if n == nil {
		return nil
	}
	v := int(*n)
	return &v
}
