package graph

import (
	"context"

	"github.com/google/uuid"
	"github.com/graph-gophers/graphql-go"

	"github.com/tuanvumaihuynh/crm-graphql/internal/service"
)

const (
	customerCreatedMsg = "Customer created successfully."
	productCreatedMsg  = "Product created successfully."
	orderCreatedMsg    = "Order created successfully."
)

type customerInput struct {
	Name  string
	Email string
	Phone *string
}

func (in customerInput) params() service.CreateCustomerParams {
	return service.CreateCustomerParams{
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
	}
}

type productInput struct {
	Name  string
	Price Decimal
	Stock *int32
}

type orderInput struct {
	CustomerID graphql.ID
	ProductIDs []graphql.ID
	OrderDate  *graphql.Time
}

type createCustomerPayload struct {
	customer *customerResolver
	message  string
}

func (p *createCustomerPayload) Customer() *customerResolver { return p.customer }
func (p *createCustomerPayload) Message() string             { return p.message }

type bulkCreateCustomersPayload struct {
	customers []*customerResolver
	errors    []string
}

func (p *bulkCreateCustomersPayload) Customers() []*customerResolver { return p.customers }
func (p *bulkCreateCustomersPayload) Errors() []string               { return p.errors }

type createProductPayload struct {
	product *productResolver
	message string
}

func (p *createProductPayload) Product() *productResolver { return p.product }
func (p *createProductPayload) Message() string           { return p.message }

type createOrderPayload struct {
	order   *orderResolver
	message string
}

func (p *createOrderPayload) Order() *orderResolver { return p.order }
func (p *createOrderPayload) Message() string       { return p.message }

func (r *Resolver) CreateCustomer(ctx context.Context, args struct{ Input customerInput }) (*createCustomerPayload, error) {
	customer, err := r.customerSvc.CreateCustomer(ctx, args.Input.params())
	if err != nil {
		msg, err := r.failure(ctx, "createCustomer", err)
		if err != nil {
			return nil, err
		}
		return &createCustomerPayload{message: msg}, nil
	}

	return &createCustomerPayload{
		customer: newCustomerResolver(customer),
		message:  customerCreatedMsg,
	}, nil
}

func (r *Resolver) BulkCreateCustomers(ctx context.Context, args struct{ Input []customerInput }) (*bulkCreateCustomersPayload, error) {
	params := make([]service.CreateCustomerParams, 0, len(args.Input))
	for _, in := range args.Input {
		params = append(params, in.params())
	}

	res, err := r.customerSvc.BulkCreateCustomers(ctx, params)
	if err != nil {
		return nil, r.internal(ctx, "bulkCreateCustomers", err)
	}

	return &bulkCreateCustomersPayload{
		customers: newCustomerResolvers(res.Customers),
		errors:    res.Errors,
	}, nil
}

func (r *Resolver) CreateProduct(ctx context.Context, args struct{ Input productInput }) (*createProductPayload, error) {
	product, err := r.productSvc.CreateProduct(ctx, service.CreateProductParams{
		Name:  args.Input.Name,
		Price: args.Input.Price.Decimal,
		Stock: intOf(args.Input.Stock),
	})
	if err != nil {
		msg, err := r.failure(ctx, "createProduct", err)
		if err != nil {
			return nil, err
		}
		return &createProductPayload{message: msg}, nil
	}

	return &createProductPayload{
		product: newProductResolver(product),
		message: productCreatedMsg,
	}, nil
}

func (r *Resolver) CreateOrder(ctx context.Context, args struct{ Input orderInput }) (*createOrderPayload, error) {
	productIDs := make([]uuid.UUID, 0, len(args.Input.ProductIDs))
	for _, id := range args.Input.ProductIDs {
		productIDs = append(productIDs, parseID(id))
	}

	order, err := r.orderSvc.CreateOrder(ctx, service.CreateOrderParams{
		CustomerID: parseID(args.Input.CustomerID),
		ProductIDs: productIDs,
		OrderDate:  timeOf(args.Input.OrderDate),
	})
	if err != nil {
		msg, err := r.failure(ctx, "createOrder", err)
		if err != nil {
			return nil, err
		}
		return &createOrderPayload{message: msg}, nil
	}

	return &createOrderPayload{
		order:   newOrderResolver(order),
		message: orderCreatedMsg,
	}, nil
}
