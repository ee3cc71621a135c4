package graph

import (
	"github.com/google/uuid"
	"github.com/graph-gophers/graphql-go"

	"github.com/tuanvumaihuynh/crm-graphql/internal/model"
)

type customerResolver struct {
	c model.Customer
}

func newCustomerResolver(c model.Customer) *customerResolver {
	return &customerResolver{c: c}
}

func newCustomerResolvers(customers []model.Customer) []*customerResolver {
	out := make([]*customerResolver, 0, len(customers))
	for _, c := range customers {
		out = append(out, newCustomerResolver(c))
	}
	return out
}

func (r *customerResolver) ID() graphql.ID {
	return graphql.ID(r.c.ID.String())
}

func (r *customerResolver) Name() string {
	return r.c.Name
}

func (r *customerResolver) Email() string {
	return r.c.Email
}

func (r *customerResolver) Phone() string {
	return r.c.Phone
}

func (r *customerResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.c.CreatedAt}
}

type productResolver struct {
	p model.Product
}

func newProductResolver(p model.Product) *productResolver {
	return &productResolver{p: p}
}

func newProductResolvers(products []model.Product) []*productResolver {
	out := make([]*productResolver, 0, len(products))
	for _, p := range products {
		out = append(out, newProductResolver(p))
	}
	return out
}

func (r *productResolver) ID() graphql.ID {
	return graphql.ID(r.p.ID.String())
}

func (r *productResolver) Name() string {
	return r.p.Name
}

func (r *productResolver) Price() Decimal {
	return Decimal{r.p.Price}
}

func (r *productResolver) Stock() int32 {
	//nolint:gosec
	return int32(r.p.Stock)
}

func (r *productResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.p.CreatedAt}
}

type orderResolver struct {
	o model.Order
}

func newOrderResolver(o model.Order) *orderResolver {
	return &orderResolver{o: o}
}

func (r *orderResolver) ID() graphql.ID {
	return graphql.ID(r.o.ID.String())
}

func (r *orderResolver) Customer() *customerResolver {
	return newCustomerResolver(r.o.Customer)
}

func (r *orderResolver) Products() []*productResolver {
	return newProductResolvers(r.o.Products)
}

func (r *orderResolver) TotalAmount() Decimal {
	return Decimal{r.o.TotalAmount}
}

func (r *orderResolver) OrderDate() graphql.Time {
	return graphql.Time{Time: r.o.OrderDate}
}

// parseID maps ids that are not UUIDs to uuid.Nil, which never matches a
// stored entity.
func parseID(id graphql.ID) uuid.UUID {
	u, err := uuid.Parse(string(id))
	if err != nil {
		return uuid.Nil
	}
	return u
}
