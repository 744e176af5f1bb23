// Package store holds the storefront API response models.
package store

import (
	"time"
)

//go:generate go run payload-binder/cmd/binder gen -pkg . -namespace store -out registry_gen.go

// Order is an order as returned by the storefront API.
// Line items arrive untyped and resolve to Item by naming convention.
type Order struct {
	ID         int64          `json:"id"`
	Number     string         `json:"number"`
	Status     OrderStatus    `json:"status"`
	TotalCents int64          `json:"total_cents"`
	Customer   any            `bind:",type=store.Customer" json:"customer"`
	Items      []any          `json:"items"`
	Shipping   *Address       `json:"shipping,omitempty"`
	Notes      []any          `json:"notes,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	OrderedAt  time.Time      `json:"ordered_at"`
}

// Customer represents the user placing orders.
type Customer struct {
	ID       int64    `json:"id"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	IsActive bool     `json:"is_active"`
	Address  *Address `json:"address,omitempty"`
}

// NewCustomer returns a customer that is active until the payload says otherwise.
func NewCustomer() *Customer {
	return &Customer{IsActive: true}
}

// Item is a product line within an order. It snapshots the price at the
// time of purchase.
type Item struct {
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice int64   `json:"unit_price"`
	Weight    float64 `json:"weight,omitempty"`
}

// Address is a shipping or billing address.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// OrderStatus is a custom type for type-safe status handling.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)
