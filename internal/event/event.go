// Package event defines the domain events written to the outbox by the
// creation workflows and the service that consumes them from Kafka.
package event

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TopicCustomerCreated = "customer.created"
	TopicProductCreated  = "product.created"
	TopicOrderCreated    = "order.created"
)

// Topics lists every topic the event service consumes.
var Topics = []string{TopicCustomerCreated, TopicProductCreated, TopicOrderCreated}

type CustomerCreatedEvent struct {
	CustomerID string    `json:"customer_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	CreatedAt  time.Time `json:"created_at"`
}

type ProductCreatedEvent struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
}

type OrderCreatedEvent struct {
	OrderID     string          `json:"order_id"`
	CustomerID  string          `json:"customer_id"`
	ProductIDs  []string        `json:"product_ids"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	OrderDate   time.Time       `json:"order_date"`
}
