package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tuanvumaihuynh/crm-graphql/internal/apperr"
	"github.com/tuanvumaihuynh/crm-graphql/internal/filter"
	"github.com/tuanvumaihuynh/crm-graphql/internal/model"
	"github.com/tuanvumaihuynh/crm-graphql/internal/repository"
	"github.com/tuanvumaihuynh/crm-graphql/internal/storage/db"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var errConnReset = errors.New("connection reset by peer")

// fakeDB runs transaction functions directly and counts their outcome.
type fakeDB struct {
	commits   int
	rollbacks int
}

var _ db.DB = (*fakeDB)(nil)

func (d *fakeDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (d *fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not supported")
}

func (d *fakeDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}

func (d *fakeDB) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (d *fakeDB) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults {
	return nil
}

func (d *fakeDB) WithTx(_ context.Context, txFunc func(db.DB) error) error {
	if err := txFunc(d); err != nil {
		d.rollbacks++
		return err
	}
	d.commits++
	return nil
}

type fakeCustomerRepo struct {
	customers []model.Customer
	// racing emails pass EmailExists but hit the unique index on insert.
	racing map[string]bool
	// failing emails make the insert fail with errConnReset.
	failing map[string]bool
}

func (r *fakeCustomerRepo) WithDB(db.DB) repository.CustomerRepository {
	return r
}

func (r *fakeCustomerRepo) CreateCustomer(_ context.Context, c model.Customer) error {
	if r.failing[c.Email] {
		return errConnReset
	}
	if r.racing[c.Email] {
		return apperr.EmailAlreadyExistsErr.WrapParent(errors.New("duplicate key value violates unique constraint"))
	}
	r.customers = append(r.customers, c)
	return nil
}

func (r *fakeCustomerRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, c := range r.customers {
		if c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCustomerRepo) GetCustomer(_ context.Context, id uuid.UUID) (model.Customer, error) {
	for _, c := range r.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Customer{}, repository.ErrNotFound
}

func (r *fakeCustomerRepo) ListCustomers(context.Context, filter.CustomerFilter) ([]model.Customer, error) {
	return r.customers, nil
}

type fakeProductRepo struct {
	products []model.Product
}

func (r *fakeProductRepo) WithDB(db.DB) repository.ProductRepository {
	return r
}

func (r *fakeProductRepo) CreateProduct(_ context.Context, p model.Product) error {
	r.products = append(r.products, p)
	return nil
}

func (r *fakeProductRepo) GetProductsByIDs(_ context.Context, ids []uuid.UUID) ([]model.Product, error) {
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	found := []model.Product{}
	for _, p := range r.products {
		if want[p.ID] {
			found = append(found, p)
		}
	}
	// Storage returns rows in no particular order.
	sort.Slice(found, func(i, j int) bool { return found[i].Name > found[j].Name })
	return found, nil
}

func (r *fakeProductRepo) ListProducts(context.Context, filter.ProductFilter) ([]model.Product, error) {
	return r.products, nil
}

type fakeOrderRepo struct {
	orders []model.Order
}

func (r *fakeOrderRepo) WithDB(db.DB) repository.OrderRepository {
	return r
}

func (r *fakeOrderRepo) CreateOrder(_ context.Context, o model.Order) error {
	r.orders = append(r.orders, o)
	return nil
}

func (r *fakeOrderRepo) ListOrders(context.Context, filter.OrderFilter) ([]model.Order, error) {
	return r.orders, nil
}

type fakeOutboxMsgRepo struct {
	msgs []repository.CreateOutboxMsgParams
}

func (r *fakeOutboxMsgRepo) WithDB(db.DB) repository.OutboxMsgRepository {
	return r
}

func (r *fakeOutboxMsgRepo) CreateOutboxMsg(_ context.Context, params repository.CreateOutboxMsgParams) error {
	r.msgs = append(r.msgs, params)
	return nil
}

func (r *fakeOutboxMsgRepo) ListUnprocessedOutboxMsgs(context.Context, repository.ListUnprocessedOutboxMsgsParams) ([]repository.ListUnprocessedOutboxMsgsResult, error) {
	return nil, nil
}

func (r *fakeOutboxMsgRepo) BulkUpdateOutboxMsgs(context.Context, repository.BulkUpdateOutboxMsgsParams) error {
	return nil
}

func topics(msgs []repository.CreateOutboxMsgParams) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Topic)
	}
	return out
}
