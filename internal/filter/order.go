package filter

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderFilter narrows the order listing. Nil fields are not applied.
//
// Product predicates match an order when any of its products matches; they
// are EXISTS sub-queries so an order is listed once.
type OrderFilter struct {
	TotalAmountGte *decimal.Decimal
	TotalAmountLte *decimal.Decimal
	OrderDateGte   *time.Time
	OrderDateLte   *time.Time
	CustomerName   *string
	ProductName    *string
	ProductID      *uuid.UUID
}

const (
	productNameExists = "EXISTS (SELECT 1 FROM order_products op JOIN products p ON p.id = op.product_id " +
		"WHERE op.order_id = " + OrderAlias + ".id AND p.name ILIKE ?)"
	productIDExists = "EXISTS (SELECT 1 FROM order_products op " +
		"WHERE op.order_id = " + OrderAlias + ".id AND op.product_id = ?)"
)

var orderPredicates = []predicate[OrderFilter]{
	{"totalAmountGte", func(f OrderFilter) sq.Sqlizer { return gte(col(OrderAlias, "total_amount"), decimalArg(f.TotalAmountGte)) }},
	{"totalAmountLte", func(f OrderFilter) sq.Sqlizer { return lte(col(OrderAlias, "total_amount"), decimalArg(f.TotalAmountLte)) }},
	{"orderDateGte", func(f OrderFilter) sq.Sqlizer { return gte(col(OrderAlias, "order_date"), f.OrderDateGte) }},
	{"orderDateLte", func(f OrderFilter) sq.Sqlizer { return lte(col(OrderAlias, "order_date"), f.OrderDateLte) }},
	{"customerName", func(f OrderFilter) sq.Sqlizer { return containsFold(col(CustomerAlias, "name"), f.CustomerName) }},
	{"productName", func(f OrderFilter) sq.Sqlizer {
		if f.ProductName == nil || *f.ProductName == "" {
			return nil
		}
		return sq.Expr(productNameExists, "%"+escapeLike(*f.ProductName)+"%")
	}},
	{"productId", func(f OrderFilter) sq.Sqlizer {
		if f.ProductID == nil {
			return nil
		}
		return sq.Expr(productIDExists, *f.ProductID)
	}},
}

// Where returns the AND of the supplied predicates, or nil. The query must
// join customers as CustomerAlias for the customerName predicate.
func (f OrderFilter) Where() sq.Sqlizer {
	return where(f, orderPredicates)
}

// Applied lists the names of the supplied predicates.
func (f OrderFilter) Applied() []string {
	return applied(f, orderPredicates)
}
