package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/crm-graphql/internal/apperr"
	"github.com/tuanvumaihuynh/crm-graphql/internal/event"
	"github.com/tuanvumaihuynh/crm-graphql/internal/filter"
	"github.com/tuanvumaihuynh/crm-graphql/internal/model"
	"github.com/tuanvumaihuynh/crm-graphql/internal/repository"
	"github.com/tuanvumaihuynh/crm-graphql/internal/storage/db"
	"github.com/tuanvumaihuynh/crm-graphql/internal/validation"
	"github.com/tuanvumaihuynh/crm-graphql/pkg/ptr"
)

type CreateCustomerParams struct {
	Name  string
	Email string
	// Phone is stored as "" when nil.
	Phone *string
}

// BulkCreateCustomersResult holds the created customers and the "Row N: ..."
// messages of the rejected rows, both in input order.
type BulkCreateCustomersResult struct {
	Customers []model.Customer
	Errors    []string
}

type CustomerService interface {
	// CreateCustomer returns apperr.InvalidEmailFormatErr,
	// apperr.EmailAlreadyExistsErr or apperr.InvalidPhoneFormatErr for
	// invalid input, checked in that order.
	CreateCustomer(ctx context.Context, params CreateCustomerParams) (model.Customer, error)
	// BulkCreateCustomers creates every valid row in one transaction. Rejected
	// rows are reported, not fatal; any other persistence error rolls the
	// whole batch back and is returned.
	BulkCreateCustomers(ctx context.Context, params []CreateCustomerParams) (BulkCreateCustomersResult, error)
	ListCustomers(ctx context.Context, f filter.CustomerFilter) ([]model.Customer, error)
}

type customerService struct {
	logger        *slog.Logger
	db            db.DB
	rules         *validation.Rules
	customerRepo  repository.CustomerRepository
	outboxMsgRepo repository.OutboxMsgRepository
}

func NewCustomerService(
	logger *slog.Logger,
	db db.DB,
	rules *validation.Rules,
	customerRepo repository.CustomerRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) CustomerService {
	return &customerService{
		logger:        logger.With(slog.String("service", "customer")),
		db:            db,
		rules:         rules,
		customerRepo:  customerRepo,
		outboxMsgRepo: outboxMsgRepo,
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, params CreateCustomerParams) (model.Customer, error) {
	if err := s.validate(ctx, params, nil); err != nil {
		return model.Customer{}, err
	}

	customer, err := newCustomer(params)
	if err != nil {
		return model.Customer{}, err
	}

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		return s.insert(ctx, db, customer)
	}); err != nil {
		return model.Customer{}, fmt.Errorf("db with tx: %w", err)
	}

	s.logger.InfoContext(ctx, "customer created", slog.String("customer_id", customer.ID.String()))

	return customer, nil
}

func (s *customerService) BulkCreateCustomers(ctx context.Context, params []CreateCustomerParams) (BulkCreateCustomersResult, error) {
	type row struct {
		idx      int
		customer model.Customer
	}

	rowErrs := make([]string, len(params))
	created := make([]bool, len(params))
	accepted := make([]row, 0, len(params))
	seen := make(map[string]struct{}, len(params))

	for i, p := range params {
		if err := s.validate(ctx, p, seen); err != nil {
			msg, ok := apperr.Message(err)
			if !ok {
				return BulkCreateCustomersResult{}, fmt.Errorf("validate row %d: %w", i+1, err)
			}
			rowErrs[i] = rowMessage(i, msg)
			s.logger.DebugContext(ctx, "customer row rejected",
				slog.Int("row", i+1),
				slog.String("email", p.Email),
				slog.String("reason", msg),
			)
			continue
		}

		customer, err := newCustomer(p)
		if err != nil {
			return BulkCreateCustomersResult{}, err
		}
		seen[p.Email] = struct{}{}
		accepted = append(accepted, row{idx: i, customer: customer})
	}

	if len(accepted) > 0 {
		if err := s.db.WithTx(ctx, func(tx db.DB) error {
			for _, r := range accepted {
				err := tx.WithTx(ctx, func(sp db.DB) error {
					return s.insert(ctx, sp, r.customer)
				})
				switch {
				case errors.Is(err, apperr.EmailAlreadyExistsErr):
					rowErrs[r.idx] = rowMessage(r.idx, apperr.EmailAlreadyExistsErr.Msg())
				case err != nil:
					return fmt.Errorf("create customer of row %d: %w", r.idx+1, err)
				default:
					created[r.idx] = true
				}
			}
			return nil
		}); err != nil {
			return BulkCreateCustomersResult{}, fmt.Errorf("db with tx: %w", err)
		}
	}

	result := BulkCreateCustomersResult{
		Customers: []model.Customer{},
		Errors:    []string{},
	}
	for _, r := range accepted {
		if created[r.idx] {
			result.Customers = append(result.Customers, r.customer)
		}
	}
	for _, msg := range rowErrs {
		if msg != "" {
			result.Errors = append(result.Errors, msg)
		}
	}

	s.logger.InfoContext(ctx, "customers bulk created",
		slog.Int("created", len(result.Customers)),
		slog.Int("rejected", len(result.Errors)),
	)

	return result, nil
}

func (s *customerService) ListCustomers(ctx context.Context, f filter.CustomerFilter) ([]model.Customer, error) {
	customers, err := s.customerRepo.ListCustomers(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("customer repository list customers: %w", err)
	}

	return customers, nil
}

// validate runs the customer checks in order: email format, email
// uniqueness, phone format. seen holds emails accepted earlier in the same
// batch and may be nil.
func (s *customerService) validate(ctx context.Context, p CreateCustomerParams, seen map[string]struct{}) error {
	if err := s.rules.ValidateEmail(p.Email); err != nil {
		return err
	}

	if _, dup := seen[p.Email]; dup {
		return apperr.EmailAlreadyExistsErr
	}
	exists, err := s.customerRepo.EmailExists(ctx, p.Email)
	if err != nil {
		return fmt.Errorf("customer repository email exists: %w", err)
	}
	if exists {
		return apperr.EmailAlreadyExistsErr
	}

	if p.Phone != nil {
		if err := s.rules.ValidatePhone(*p.Phone); err != nil {
			return err
		}
	}

	return nil
}

func (s *customerService) insert(ctx context.Context, db db.DB, customer model.Customer) error {
	if err := s.customerRepo.
		WithDB(db).
		CreateCustomer(ctx, customer); err != nil {
		return fmt.Errorf("customer repository create customer: %w", err)
	}

	return writeEvent(ctx, db, s.outboxMsgRepo, event.TopicCustomerCreated, customer.ID.String(),
		event.CustomerCreatedEvent{
			CustomerID: customer.ID.String(),
			Name:       customer.Name,
			Email:      customer.Email,
			Phone:      customer.Phone,
			CreatedAt:  customer.CreatedAt,
		})
}

func newCustomer(p CreateCustomerParams) (model.Customer, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return model.Customer{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	return model.Customer{
		ID:        id,
		Name:      p.Name,
		Email:     p.Email,
		Phone:     ptr.Deref(p.Phone),
		CreatedAt: now(),
	}, nil
}

// rowMessage prefixes msg with the 1-based row number of idx.
func rowMessage(idx int, msg string) string {
	return fmt.Sprintf("Row %d: %s", idx+1, msg)
}
