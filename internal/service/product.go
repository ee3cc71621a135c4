package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/crm-graphql/internal/event"
	"github.com/tuanvumaihuynh/crm-graphql/internal/filter"
	"github.com/tuanvumaihuynh/crm-graphql/internal/model"
	"github.com/tuanvumaihuynh/crm-graphql/internal/repository"
	"github.com/tuanvumaihuynh/crm-graphql/internal/storage/db"
	"github.com/tuanvumaihuynh/crm-graphql/internal/validation"
)

type CreateProductParams struct {
	Name  string
	Price decimal.Decimal
	// Stock defaults to 0 when nil.
	Stock *int
}

type ProductService interface {
	// CreateProduct returns apperr.PriceNotPositiveErr or
	// apperr.StockNegativeErr for invalid input.
	CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error)
	ListProducts(ctx context.Context, f filter.ProductFilter) ([]model.Product, error)
}

type productService struct {
	logger        *slog.Logger
	db            db.DB
	productRepo   repository.ProductRepository
	outboxMsgRepo repository.OutboxMsgRepository
}

func NewProductService(
	logger *slog.Logger,
	db db.DB,
	productRepo repository.ProductRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) ProductService {
	return &productService{
		logger:        logger.With(slog.String("service", "product")),
		db:            db,
		productRepo:   productRepo,
		outboxMsgRepo: outboxMsgRepo,
	}
}

func (s *productService) CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error) {
	if err := validation.ValidatePrice(&params.Price); err != nil {
		return model.Product{}, err
	}
	if err := validation.ValidateStock(params.Stock); err != nil {
		return model.Product{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return model.Product{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	product := model.Product{
		ID:        id,
		Name:      params.Name,
		Price:     params.Price,
		CreatedAt: now(),
	}
	if params.Stock != nil {
		product.Stock = *params.Stock
	}

	ev := event.ProductCreatedEvent{
		ProductID: product.ID.String(),
		Name:      product.Name,
		Price:     product.Price,
		Stock:     product.Stock,
	}

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		if err := s.productRepo.
			WithDB(db).
			CreateProduct(ctx, product); err != nil {
			return fmt.Errorf("product repository create product: %w", err)
		}

		return writeEvent(ctx, db, s.outboxMsgRepo, event.TopicProductCreated, product.ID.String(), ev)
	}); err != nil {
		return model.Product{}, fmt.Errorf("db with tx: %w", err)
	}

	s.logger.InfoContext(ctx, "product created", slog.String("product_id", product.ID.String()))

	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, f filter.ProductFilter) ([]model.Product, error) {
	products, err := s.productRepo.ListProducts(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("product repository list products: %w", err)
	}

	return products, nil
}
