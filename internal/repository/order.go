package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tuanvumaihuynh/crm-graphql/internal/filter"
	"github.com/tuanvumaihuynh/crm-graphql/internal/model"
	"github.com/tuanvumaihuynh/crm-graphql/internal/storage/db"
)

type OrderRepository interface {
	WithDB(db db.DB) OrderRepository
	// CreateOrder stores the order row and one association per product in
	// order.Products.
	CreateOrder(ctx context.Context, order model.Order) error
	// ListOrders returns matching orders with Customer and Products loaded.
	ListOrders(ctx context.Context, f filter.OrderFilter) ([]model.Order, error)
}

type orderRepository struct {
	db db.DB
}

func NewOrderRepository(db db.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r orderRepository) WithDB(db db.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r orderRepository) CreateOrder(ctx context.Context, order model.Order) error {
	total, err := numericFromDecimal(order.TotalAmount)
	if err != nil {
		return fmt.Errorf("convert total amount: %w", err)
	}

	if _, err := r.db.Exec(ctx, `
		INSERT INTO orders (id, customer_id, total_amount, order_date)
		VALUES ($1, $2, $3, $4)
	`, order.ID, order.CustomerID, total, order.OrderDate); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	rows := make([][]any, 0, len(order.Products))
	for _, p := range order.Products {
		rows = append(rows, []any{order.ID, p.ID})
	}

	if _, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"order_products"},
		[]string{"order_id", "product_id"},
		pgx.CopyFromRows(rows),
	); err != nil {
		return fmt.Errorf("insert order products: %w", err)
	}

	return nil
}

func (r orderRepository) ListOrders(ctx context.Context, f filter.OrderFilter) ([]model.Order, error) {
	query, args, err := psql.
		Select(
			"o.id", "o.customer_id", "o.total_amount", "o.order_date",
			"c.id", "c.name", "c.email", "c.phone", "c.created_at",
		).
		From("orders " + filter.OrderAlias).
		Join("customers " + filter.CustomerAlias + " ON c.id = o.customer_id").
		Where(f.Where()).
		OrderBy("o.order_date", "o.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list orders query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		var (
			o     model.Order
			total pgtype.Numeric
		)
		if err := rows.Scan(
			&o.ID, &o.CustomerID, &total, &o.OrderDate,
			&o.Customer.ID, &o.Customer.Name, &o.Customer.Email, &o.Customer.Phone, &o.Customer.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if o.TotalAmount, err = decimalFromNumeric(total); err != nil {
			return nil, fmt.Errorf("convert total amount of order %s: %w", o.ID, err)
		}
		o.Products = []model.Product{}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	if err := r.loadProducts(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// loadProducts fills the Products of every order with a single query.
func (r orderRepository) loadProducts(ctx context.Context, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(orders))
	index := make(map[uuid.UUID]int, len(orders))
	for i, o := range orders {
		ids = append(ids, o.ID)
		index[o.ID] = i
	}

	// same order as model.SortProducts
	rows, err := r.db.Query(ctx, `
		SELECT op.order_id, `+productColumns+`
		FROM order_products op
		JOIN products p ON p.id = op.product_id
		WHERE op.order_id = ANY($1)
		ORDER BY p.created_at, p.id
	`, ids)
	if err != nil {
		return fmt.Errorf("list order products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID uuid.UUID
			p       model.Product
			price   pgtype.Numeric
		)
		if err := rows.Scan(&orderID, &p.ID, &p.Name, &price, &p.Stock, &p.CreatedAt); err != nil {
			return fmt.Errorf("scan order product: %w", err)
		}
		if p.Price, err = decimalFromNumeric(price); err != nil {
			return fmt.Errorf("convert price of product %s: %w", p.ID, err)
		}

		i := index[orderID]
		orders[i].Products = append(orders[i].Products, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate order products: %w", err)
	}

	return nil
}
