package model

import (
	"bytes"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
}

// SortProducts returns a copy of products ordered by creation time, then id.
// Listings of an order's products use the same order.
func SortProducts(products []Product) []Product {
	sorted := slices.Clone(products)
	slices.SortFunc(sorted, func(a, b Product) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return bytes.Compare(a.ID[:], b.ID[:])
	})
	return sorted
}
