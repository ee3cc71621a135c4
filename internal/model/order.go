package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is a customer's purchase of a fixed set of products. TotalAmount is
// the sum of the product prices when the order was placed and is never
// recomputed.
type Order struct {
	ID          uuid.UUID       `json:"id"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	OrderDate   time.Time       `json:"order_date"`

	Customer Customer  `json:"customer"`
	Products []Product `json:"products"`
}

// SumPrices returns the exact sum of the given product prices.
func SumPrices(products []Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price)
	}
	return total
}
