package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/crm-graphql/internal/apperr"
	"github.com/tuanvumaihuynh/crm-graphql/internal/event"
	"github.com/tuanvumaihuynh/crm-graphql/internal/filter"
	"github.com/tuanvumaihuynh/crm-graphql/internal/model"
	"github.com/tuanvumaihuynh/crm-graphql/internal/repository"
	"github.com/tuanvumaihuynh/crm-graphql/internal/storage/db"
)

type CreateOrderParams struct {
	CustomerID uuid.UUID
	ProductIDs []uuid.UUID
	// OrderDate defaults to the creation time when nil. It is stored with
	// microsecond precision.
	OrderDate *time.Time
}

type OrderService interface {
	// CreateOrder returns apperr.CustomerNotFoundErr,
	// apperr.NoProductsSelectedErr or apperr.InvalidProductIDsErr, checked in
	// that order. Repeated product ids count as invalid.
	CreateOrder(ctx context.Context, params CreateOrderParams) (model.Order, error)
	ListOrders(ctx context.Context, f filter.OrderFilter) ([]model.Order, error)
}

type orderService struct {
	logger        *slog.Logger
	db            db.DB
	customerRepo  repository.CustomerRepository
	productRepo   repository.ProductRepository
	orderRepo     repository.OrderRepository
	outboxMsgRepo repository.OutboxMsgRepository
}

func NewOrderService(
	logger *slog.Logger,
	db db.DB,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) OrderService {
	return &orderService{
		logger:        logger.With(slog.String("service", "order")),
		db:            db,
		customerRepo:  customerRepo,
		productRepo:   productRepo,
		orderRepo:     orderRepo,
		outboxMsgRepo: outboxMsgRepo,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, params CreateOrderParams) (model.Order, error) {
	var order model.Order
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		customer, err := s.customerRepo.WithDB(db).GetCustomer(ctx, params.CustomerID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperr.CustomerNotFoundErr
			}
			return fmt.Errorf("customer repository get customer: %w", err)
		}

		if len(params.ProductIDs) == 0 {
			return apperr.NoProductsSelectedErr
		}

		found, err := s.productRepo.WithDB(db).GetProductsByIDs(ctx, params.ProductIDs)
		if err != nil {
			return fmt.Errorf("product repository get products by ids: %w", err)
		}
		if len(found) != len(params.ProductIDs) {
			return apperr.InvalidProductIDsErr
		}

		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generate uuid v7: %w", err)
		}

		products := model.SortProducts(found)
		order = model.Order{
			ID:          id,
			CustomerID:  customer.ID,
			TotalAmount: model.SumPrices(products),
			OrderDate:   now(),
			Customer:    customer,
			Products:    products,
		}
		if params.OrderDate != nil {
			order.OrderDate = params.OrderDate.Round(timestampPrecision)
		}

		if err := s.orderRepo.WithDB(db).CreateOrder(ctx, order); err != nil {
			return fmt.Errorf("order repository create order: %w", err)
		}

		productIDs := make([]string, 0, len(products))
		for _, p := range products {
			productIDs = append(productIDs, p.ID.String())
		}

		return writeEvent(ctx, db, s.outboxMsgRepo, event.TopicOrderCreated, customer.ID.String(),
			event.OrderCreatedEvent{
				OrderID:     order.ID.String(),
				CustomerID:  customer.ID.String(),
				ProductIDs:  productIDs,
				TotalAmount: order.TotalAmount,
				OrderDate:   order.OrderDate,
			})
	}); err != nil {
		return model.Order{}, fmt.Errorf("db with tx: %w", err)
	}

	s.logger.InfoContext(ctx, "order created",
		slog.String("order_id", order.ID.String()),
		slog.String("total_amount", order.TotalAmount.String()),
	)

	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, f filter.OrderFilter) ([]model.Order, error) {
	orders, err := s.orderRepo.ListOrders(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("order repository list orders: %w", err)
	}

	return orders, nil
}
