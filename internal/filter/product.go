package filter

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
)

// LowStockThreshold is the stock level below which a product counts as low.
const LowStockThreshold = 10

// ProductFilter narrows the product listing. Nil fields are not applied.
type ProductFilter struct {
	Name     *string
	PriceGte *decimal.Decimal
	PriceLte *decimal.Decimal
	StockGte *int
	StockLte *int
	Stock    *int
	// LowStock restricts to stock below LowStockThreshold when true.
	LowStock *bool
}

var productPredicates = []predicate[ProductFilter]{
	{"name", func(f ProductFilter) sq.Sqlizer { return containsFold(col(ProductAlias, "name"), f.Name) }},
	{"priceGte", func(f ProductFilter) sq.Sqlizer { return gte(col(ProductAlias, "price"), decimalArg(f.PriceGte)) }},
	{"priceLte", func(f ProductFilter) sq.Sqlizer { return lte(col(ProductAlias, "price"), decimalArg(f.PriceLte)) }},
	{"stockGte", func(f ProductFilter) sq.Sqlizer { return gte(col(ProductAlias, "stock"), f.StockGte) }},
	{"stockLte", func(f ProductFilter) sq.Sqlizer { return lte(col(ProductAlias, "stock"), f.StockLte) }},
	{"stock", func(f ProductFilter) sq.Sqlizer { return eq(col(ProductAlias, "stock"), f.Stock) }},
	{"lowStock", func(f ProductFilter) sq.Sqlizer {
		if f.LowStock == nil || !*f.LowStock {
			return nil
		}
		return sq.Lt{col(ProductAlias, "stock"): LowStockThreshold}
	}},
}

// Where returns the AND of the supplied predicates, or nil.
func (f ProductFilter) Where() sq.Sqlizer {
	return where(f, productPredicates)
}

// Applied lists the names of the supplied predicates.
func (f ProductFilter) Applied() []string {
	return applied(f, productPredicates)
}

// decimalArg passes decimals as text so the server parses them as exact
// numerics.
func decimalArg(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}
