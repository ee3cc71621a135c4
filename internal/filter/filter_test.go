package filter_test

import (
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/crm-graphql/internal/filter"
	"github.com/tuanvumaihuynh/crm-graphql/pkg/ptr"
)

func toSQL(t *testing.T, from string, pred sq.Sqlizer) (string, []any) {
	t.Helper()
	query, args, err := sq.Select("*").From(from).Where(pred).PlaceholderFormat(sq.Dollar).ToSql()
	require.NoError(t, err)
	return query, args
}

func TestCustomerFilter(t *testing.T) {
	t.Run("Should be unrestricted without arguments", func(t *testing.T) {
		f := filter.CustomerFilter{}
		assert.Nil(t, f.Where())
		assert.Empty(t, f.Applied())

		query, args := toSQL(t, "customers c", f.Where())
		assert.Equal(t, "SELECT * FROM customers c", query)
		assert.Empty(t, args)
	})

	t.Run("Should treat empty strings as absent", func(t *testing.T) {
		f := filter.CustomerFilter{Name: ptr.New(""), PhonePattern: ptr.New("")}
		assert.Nil(t, f.Where())
	})

	t.Run("Should combine created_at range with AND", func(t *testing.T) {
		from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)
		f := filter.CustomerFilter{CreatedAtGte: &from, CreatedAtLte: &to}

		query, args := toSQL(t, "customers c", f.Where())
		assert.Equal(t, "SELECT * FROM customers c WHERE (c.created_at >= $1 AND c.created_at <= $2)", query)
		assert.Equal(t, []any{from, to}, args)
		assert.Equal(t, []string{"createdAtGte", "createdAtLte"}, f.Applied())
	})

	t.Run("Should match substrings case-insensitively and phone prefixes literally", func(t *testing.T) {
		f := filter.CustomerFilter{
			Name:         ptr.New("ali"),
			Email:        ptr.New("50%_off"),
			PhonePattern: ptr.New("+1"),
		}

		query, args := toSQL(t, "customers c", f.Where())
		assert.Equal(t, "SELECT * FROM customers c WHERE (c.name ILIKE $1 AND c.email ILIKE $2 AND c.phone LIKE $3)", query)
		assert.Equal(t, []any{"%ali%", `%50\%\_off%`, "+1%"}, args)
	})
}

func TestProductFilter(t *testing.T) {
	t.Run("Should restrict low stock to stock below ten", func(t *testing.T) {
		f := filter.ProductFilter{LowStock: ptr.New(true)}

		query, args := toSQL(t, "products p", f.Where())
		assert.Equal(t, "SELECT * FROM products p WHERE (p.stock < $1)", query)
		assert.Equal(t, []any{10}, args)
	})

	t.Run("Should ignore low stock false", func(t *testing.T) {
		f := filter.ProductFilter{LowStock: ptr.New(false)}
		assert.Nil(t, f.Where())
	})

	t.Run("Should pass prices as exact text", func(t *testing.T) {
		f := filter.ProductFilter{
			PriceGte: ptr.New(decimal.RequireFromString("9.99")),
			PriceLte: ptr.New(decimal.RequireFromString("100")),
		}

		query, args := toSQL(t, "products p", f.Where())
		assert.Equal(t, "SELECT * FROM products p WHERE (p.price >= $1 AND p.price <= $2)", query)
		assert.Equal(t, []any{"9.99", "100"}, args)
	})

	t.Run("Should support exact stock and range together", func(t *testing.T) {
		f := filter.ProductFilter{Name: ptr.New("Lap"), StockGte: ptr.New(1), StockLte: ptr.New(5), Stock: ptr.New(3)}

		query, args := toSQL(t, "products p", f.Where())
		assert.Equal(t, "SELECT * FROM products p WHERE (p.name ILIKE $1 AND p.stock >= $2 AND p.stock <= $3 AND p.stock = $4)", query)
		assert.Equal(t, []any{"%Lap%", 1, 5, 3}, args)
		assert.Equal(t, []string{"name", "stockGte", "stockLte", "stock"}, f.Applied())
	})
}

func TestOrderFilter(t *testing.T) {
	t.Run("Should filter on related customer and products", func(t *testing.T) {
		productID := uuid.MustParse("0190a5f4-4bb0-7c4e-8a8b-1c2d3e4f5a6b")
		f := filter.OrderFilter{
			CustomerName: ptr.New("alice"),
			ProductName:  ptr.New("phone"),
			ProductID:    &productID,
		}

		query, args := toSQL(t, "orders o", f.Where())
		assert.Equal(t, "SELECT * FROM orders o WHERE (c.name ILIKE $1"+
			" AND EXISTS (SELECT 1 FROM order_products op JOIN products p ON p.id = op.product_id WHERE op.order_id = o.id AND p.name ILIKE $2)"+
			" AND EXISTS (SELECT 1 FROM order_products op WHERE op.order_id = o.id AND op.product_id = $3))", query)
		assert.Equal(t, []any{"%alice%", "%phone%", productID}, args)
	})

	t.Run("Should filter on total and date ranges", func(t *testing.T) {
		day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		f := filter.OrderFilter{
			TotalAmountGte: ptr.New(decimal.NewFromInt(50)),
			TotalAmountLte: ptr.New(decimal.RequireFromString("150.5")),
			OrderDateGte:   &day,
		}

		query, args := toSQL(t, "orders o", f.Where())
		assert.Equal(t, "SELECT * FROM orders o WHERE (o.total_amount >= $1 AND o.total_amount <= $2 AND o.order_date >= $3)", query)
		assert.Equal(t, []any{"50", "150.5", day}, args)
	})
}
