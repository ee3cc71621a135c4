package repository

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tuanvumaihuynh/crm-graphql/internal/filter"
	"github.com/tuanvumaihuynh/crm-graphql/internal/model"
	"github.com/tuanvumaihuynh/crm-graphql/internal/storage/db"
)

type ProductRepository interface {
	WithDB(db db.DB) ProductRepository
	CreateProduct(ctx context.Context, product model.Product) error
	// GetProductsByIDs returns the products that exist among ids, in no
	// particular order. Duplicate ids yield one product.
	GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error)
	ListProducts(ctx context.Context, f filter.ProductFilter) ([]model.Product, error)
}

type productRepository struct {
	db db.DB
}

func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = "p.id, p.name, p.price, p.stock, p.created_at"

func (r productRepository) CreateProduct(ctx context.Context, product model.Product) error {
	price, err := numericFromDecimal(product.Price)
	if err != nil {
		return fmt.Errorf("convert price: %w", err)
	}

	if product.Stock > math.MaxInt32 || product.Stock < math.MinInt32 {
		return fmt.Errorf("stock out of range: %d", product.Stock)
	}

	if _, err := r.db.Exec(ctx, `
		INSERT INTO products (id, name, price, stock, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, product.ID, product.Name, price, int32(product.Stock), product.CreatedAt); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

func (r productRepository) GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products p WHERE p.id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("get products by ids: %w", err)
	}

	return collectProducts(rows)
}

func (r productRepository) ListProducts(ctx context.Context, f filter.ProductFilter) ([]model.Product, error) {
	query, args, err := psql.
		Select(productColumns).
		From("products " + filter.ProductAlias).
		Where(f.Where()).
		OrderBy("p.created_at", "p.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list products query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return collectProducts(rows)
}

func collectProducts(rows pgx.Rows) ([]model.Product, error) {
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var (
			p     model.Product
			price pgtype.Numeric
		)
		if err := rows.Scan(&p.ID, &p.Name, &price, &p.Stock, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}

		var err error
		if p.Price, err = decimalFromNumeric(price); err != nil {
			return nil, fmt.Errorf("convert price of product %s: %w", p.ID, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}
