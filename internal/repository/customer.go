package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/crm-graphql/internal/apperr"
	"github.com/tuanvumaihuynh/crm-graphql/internal/filter"
	"github.com/tuanvumaihuynh/crm-graphql/internal/model"
	"github.com/tuanvumaihuynh/crm-graphql/internal/storage/db"
)

// CustomerEmailConstraint is the unique constraint backing email uniqueness.
const CustomerEmailConstraint = "customers_email_key"

type CustomerRepository interface {
	WithDB(db db.DB) CustomerRepository
	// CreateCustomer returns apperr.EmailAlreadyExistsErr when the email
	// unique constraint rejects the row.
	CreateCustomer(ctx context.Context, customer model.Customer) error
	EmailExists(ctx context.Context, email string) (bool, error)
	// GetCustomer returns ErrNotFound when no customer has the id.
	GetCustomer(ctx context.Context, id uuid.UUID) (model.Customer, error)
	ListCustomers(ctx context.Context, f filter.CustomerFilter) ([]model.Customer, error)
}

type customerRepository struct {
	db db.DB
}

func NewCustomerRepository(db db.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r customerRepository) WithDB(db db.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r customerRepository) CreateCustomer(ctx context.Context, customer model.Customer) error {
	if _, err := r.db.Exec(ctx, `
		INSERT INTO customers (id, name, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, customer.ID, customer.Name, customer.Email, customer.Phone, customer.CreatedAt); err != nil {
		if db.IsUniqueViolation(err, CustomerEmailConstraint) {
			return apperr.EmailAlreadyExistsErr.WrapParent(err)
		}
		return fmt.Errorf("insert customer: %w", err)
	}

	return nil
}

func (r customerRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM customers WHERE email = $1)`, email,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("check customer email: %w", err)
	}

	return exists, nil
}

func (r customerRepository) GetCustomer(ctx context.Context, id uuid.UUID) (model.Customer, error) {
	var c model.Customer
	if err := r.db.QueryRow(ctx, `
		SELECT id, name, email, phone, created_at
		FROM customers
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Customer{}, ErrNotFound
		}
		return model.Customer{}, fmt.Errorf("get customer: %w", err)
	}

	return c, nil
}

func (r customerRepository) ListCustomers(ctx context.Context, f filter.CustomerFilter) ([]model.Customer, error) {
	query, args, err := psql.
		Select("c.id", "c.name", "c.email", "c.phone", "c.created_at").
		From("customers " + filter.CustomerAlias).
		Where(f.Where()).
		OrderBy("c.created_at", "c.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list customers query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	customers := []model.Customer{}
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}

	return customers, nil
}
