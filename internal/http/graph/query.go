package graph

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"github.com/tuanvumaihuynh/crm-graphql/internal/filter"
)

type customerFilterArgs struct {
	Name         *string
	Email        *string
	CreatedAtGte *graphql.Time
	CreatedAtLte *graphql.Time
	PhonePattern *string
}

func (a customerFilterArgs) filter() filter.CustomerFilter {
	return filter.CustomerFilter{
		Name:         a.Name,
		Email:        a.Email,
		CreatedAtGte: timeOf(a.CreatedAtGte),
		CreatedAtLte: timeOf(a.CreatedAtLte),
		PhonePattern: a.PhonePattern,
	}
}

type productFilterArgs struct {
	Name     *string
	PriceGte *Decimal
	PriceLte *Decimal
	StockGte *int32
	StockLte *int32
	Stock    *int32
	LowStock *bool
}

func (a productFilterArgs) filter() filter.ProductFilter {
	return filter.ProductFilter{
		Name:     a.Name,
		PriceGte: decimalOf(a.PriceGte),
		PriceLte: decimalOf(a.PriceLte),
		StockGte: intOf(a.StockGte),
		StockLte: intOf(a.StockLte),
		Stock:    intOf(a.Stock),
		LowStock: a.LowStock,
	}
}

type orderFilterArgs struct {
	TotalAmountGte *Decimal
	TotalAmountLte *Decimal
	OrderDateGte   *graphql.Time
	OrderDateLte   *graphql.Time
	CustomerName   *string
	ProductName    *string
	ProductID      *graphql.ID
}

func (a orderFilterArgs) filter() filter.OrderFilter {
	f := filter.OrderFilter{
		TotalAmountGte: decimalOf(a.TotalAmountGte),
		TotalAmountLte: decimalOf(a.TotalAmountLte),
		OrderDateGte:   timeOf(a.OrderDateGte),
		OrderDateLte:   timeOf(a.OrderDateLte),
		CustomerName:   a.CustomerName,
		ProductName:    a.ProductName,
	}
	if a.ProductID != nil {
		id := parseID(*a.ProductID)
		f.ProductID = &id
	}
	return f
}

func (r *Resolver) Customers(ctx context.Context, args customerFilterArgs) ([]*customerResolver, error) {
	return r.listCustomers(ctx, "customers", args)
}

func (r *Resolver) AllCustomers(ctx context.Context, args customerFilterArgs) ([]*customerResolver, error) {
	return r.listCustomers(ctx, "allCustomers", args)
}

func (r *Resolver) listCustomers(ctx context.Context, field string, args customerFilterArgs) ([]*customerResolver, error) {
	customers, err := r.customerSvc.ListCustomers(ctx, args.filter())
	if err != nil {
		return nil, r.internal(ctx, field, err)
	}
	return newCustomerResolvers(customers), nil
}

func (r *Resolver) AllProducts(ctx context.Context, args productFilterArgs) ([]*productResolver, error) {
	products, err := r.productSvc.ListProducts(ctx, args.filter())
	if err != nil {
		return nil, r.internal(ctx, "allProducts", err)
	}
	return newProductResolvers(products), nil
}

func (r *Resolver) AllOrders(ctx context.Context, args orderFilterArgs) ([]*orderResolver, error) {
	orders, err := r.orderSvc.ListOrders(ctx, args.filter())
	if err != nil {
		return nil, r.internal(ctx, "allOrders", err)
	}

	out := make([]*orderResolver, 0, len(orders))
	for _, o := range orders {
		out = append(out, newOrderResolver(o))
	}
	return out, nil
}
