package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/crm-graphql/internal/apperr"
	"github.com/tuanvumaihuynh/crm-graphql/internal/event"
	"github.com/tuanvumaihuynh/crm-graphql/internal/model"
	"github.com/tuanvumaihuynh/crm-graphql/internal/service"
	"github.com/tuanvumaihuynh/crm-graphql/internal/validation"
	"github.com/tuanvumaihuynh/crm-graphql/pkg/outbox"
	"github.com/tuanvumaihuynh/crm-graphql/pkg/ptr"
	"github.com/tuanvumaihuynh/crm-graphql/pkg/validator"
)

type customerFixture struct {
	db       *fakeDB
	repo     *fakeCustomerRepo
	outbox   *fakeOutboxMsgRepo
	customer service.CustomerService
}

func newCustomerFixture(existing ...string) customerFixture {
	f := customerFixture{
		db:     &fakeDB{},
		repo:   &fakeCustomerRepo{racing: map[string]bool{}, failing: map[string]bool{}},
		outbox: &fakeOutboxMsgRepo{},
	}
	for _, email := range existing {
		f.repo.customers = append(f.repo.customers, model.Customer{Name: "Existing", Email: email})
	}
	f.customer = service.NewCustomerService(
		discardLogger,
		f.db,
		validation.New(validator.MustNewDefaultValidator()),
		f.repo,
		f.outbox,
	)
	return f
}

func TestCreateCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create customer with empty phone and an outbox event", func(t *testing.T) {
		f := newCustomerFixture()

		c, err := f.customer.CreateCustomer(ctx, service.CreateCustomerParams{Name: "Alice", Email: "alice@example.com"})
		require.NoError(t, err)

		assert.Equal(t, "Alice", c.Name)
		assert.Equal(t, "", c.Phone)
		assert.Equal(t, uint8(7), uint8(c.ID.Version()))
		assert.False(t, c.CreatedAt.IsZero())
		assert.Zero(t, c.CreatedAt.Nanosecond()%1000, "created_at must fit TIMESTAMPTZ precision")
		assert.Len(t, f.repo.customers, 1)

		require.Len(t, f.outbox.msgs, 1)
		msg := f.outbox.msgs[0]
		assert.Equal(t, event.TopicCustomerCreated, msg.Topic)
		assert.Equal(t, event.TopicCustomerCreated, msg.Headers[outbox.HeaderEventType])
		assert.Equal(t, c.ID.String(), *msg.PartitionKey)
		assert.Contains(t, string(msg.Payload), `"email":"alice@example.com"`)
	})

	t.Run("Should keep a valid phone", func(t *testing.T) {
		f := newCustomerFixture()

		c, err := f.customer.CreateCustomer(ctx, service.CreateCustomerParams{
			Name: "Bob", Email: "bob@example.com", Phone: ptr.New("123-456-7890"),
		})
		require.NoError(t, err)
		assert.Equal(t, "123-456-7890", c.Phone)
	})

	t.Run("Should check email format before uniqueness and phone", func(t *testing.T) {
		f := newCustomerFixture("taken@example.com")

		_, err := f.customer.CreateCustomer(ctx, service.CreateCustomerParams{
			Name: "X", Email: "not-an-email", Phone: ptr.New("bad"),
		})
		assert.ErrorIs(t, err, apperr.InvalidEmailFormatErr)

		_, err = f.customer.CreateCustomer(ctx, service.CreateCustomerParams{
			Name: "X", Email: "taken@example.com", Phone: ptr.New("bad"),
		})
		assert.ErrorIs(t, err, apperr.EmailAlreadyExistsErr)

		_, err = f.customer.CreateCustomer(ctx, service.CreateCustomerParams{
			Name: "X", Email: "free@example.com", Phone: ptr.New("bad"),
		})
		assert.ErrorIs(t, err, apperr.InvalidPhoneFormatErr)

		assert.Len(t, f.repo.customers, 1)
		assert.Empty(t, f.outbox.msgs)
		assert.Zero(t, f.db.commits+f.db.rollbacks)
	})

	t.Run("Should report a lost uniqueness race as duplicate email", func(t *testing.T) {
		f := newCustomerFixture()
		f.repo.racing["race@example.com"] = true

		_, err := f.customer.CreateCustomer(ctx, service.CreateCustomerParams{Name: "R", Email: "race@example.com"})
		assert.ErrorIs(t, err, apperr.EmailAlreadyExistsErr)

		msg, ok := apperr.Message(err)
		assert.True(t, ok)
		assert.Equal(t, "Email already exists.", msg)
		assert.Equal(t, 1, f.db.rollbacks)
	})

	t.Run("Should return persistence errors as is", func(t *testing.T) {
		f := newCustomerFixture()
		f.repo.failing["down@example.com"] = true

		_, err := f.customer.CreateCustomer(ctx, service.CreateCustomerParams{Name: "D", Email: "down@example.com"})
		assert.ErrorIs(t, err, errConnReset)

		_, ok := apperr.Message(err)
		assert.False(t, ok)
	})
}

func TestBulkCreateCustomers(t *testing.T) {
	ctx := context.Background()

	t.Run("Should skip a duplicate row and keep order", func(t *testing.T) {
		f := newCustomerFixture("dup@example.com")

		res, err := f.customer.BulkCreateCustomers(ctx, []service.CreateCustomerParams{
			{Name: "One", Email: "one@example.com"},
			{Name: "Two", Email: "dup@example.com"},
			{Name: "Three", Email: "three@example.com"},
		})
		require.NoError(t, err)

		require.Len(t, res.Customers, 2)
		assert.Equal(t, "One", res.Customers[0].Name)
		assert.Equal(t, "Three", res.Customers[1].Name)
		assert.Equal(t, []string{"Row 2: Email already exists."}, res.Errors)
		assert.Len(t, f.outbox.msgs, 2)
	})

	t.Run("Should report every kind of row failure with its position", func(t *testing.T) {
		f := newCustomerFixture()

		res, err := f.customer.BulkCreateCustomers(ctx, []service.CreateCustomerParams{
			{Name: "A", Email: "bad"},
			{Name: "B", Email: "b@example.com", Phone: ptr.New("555")},
			{Name: "C", Email: "c@example.com"},
			{Name: "D", Email: "c@example.com"},
		})
		require.NoError(t, err)

		require.Len(t, res.Customers, 1)
		assert.Equal(t, "C", res.Customers[0].Name)
		assert.Equal(t, []string{
			"Row 1: Invalid email format.",
			"Row 2: Invalid phone format.",
			"Row 4: Email already exists.",
		}, res.Errors)
	})

	t.Run("Should not reserve the email of a rejected row", func(t *testing.T) {
		f := newCustomerFixture()

		res, err := f.customer.BulkCreateCustomers(ctx, []service.CreateCustomerParams{
			{Name: "A", Email: "same@example.com", Phone: ptr.New("nope")},
			{Name: "B", Email: "same@example.com"},
		})
		require.NoError(t, err)

		require.Len(t, res.Customers, 1)
		assert.Equal(t, "B", res.Customers[0].Name)
		assert.Equal(t, []string{"Row 1: Invalid phone format."}, res.Errors)
	})

	t.Run("Should record rows rejected by the unique index and continue", func(t *testing.T) {
		f := newCustomerFixture()
		f.repo.racing["race@example.com"] = true

		res, err := f.customer.BulkCreateCustomers(ctx, []service.CreateCustomerParams{
			{Name: "A", Email: "bad-email"},
			{Name: "B", Email: "race@example.com"},
			{Name: "C", Email: "c@example.com"},
		})
		require.NoError(t, err)

		require.Len(t, res.Customers, 1)
		assert.Equal(t, "C", res.Customers[0].Name)
		assert.Equal(t, []string{
			"Row 1: Invalid email format.",
			"Row 2: Email already exists.",
		}, res.Errors)
	})

	t.Run("Should fail the whole batch on other persistence errors", func(t *testing.T) {
		f := newCustomerFixture()
		f.repo.failing["down@example.com"] = true

		res, err := f.customer.BulkCreateCustomers(ctx, []service.CreateCustomerParams{
			{Name: "A", Email: "a@example.com"},
			{Name: "B", Email: "down@example.com"},
		})
		assert.ErrorIs(t, err, errConnReset)
		assert.ErrorContains(t, err, "row 2")
		assert.Empty(t, res.Customers)
		assert.Positive(t, f.db.rollbacks)
	})

	t.Run("Should not open a transaction when nothing is valid", func(t *testing.T) {
		f := newCustomerFixture()

		res, err := f.customer.BulkCreateCustomers(ctx, []service.CreateCustomerParams{{Name: "A", Email: "x"}})
		require.NoError(t, err)
		assert.Empty(t, res.Customers)
		assert.NotNil(t, res.Customers)
		assert.Equal(t, []string{"Row 1: Invalid email format."}, res.Errors)
		assert.Zero(t, f.db.commits)
	})

	t.Run("Should accept an empty batch", func(t *testing.T) {
		f := newCustomerFixture()

		res, err := f.customer.BulkCreateCustomers(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, res.Customers)
		assert.Empty(t, res.Errors)
	})
}
