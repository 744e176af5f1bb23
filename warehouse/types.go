// Package warehouse holds the fulfillment API response models. Keys are
// snake_case, so list fields such as order_items resolve to OrderItem.
package warehouse

import (
	"time"
)

//go:generate go run payload-binder/cmd/binder gen -pkg . -namespace warehouse -out registry_gen.go

// Customer represents a warehouse customer account.
type Customer struct {
	ID          uint       `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Addresses   []any      `json:"addresses,omitempty"`

	// PasswordHash never leaves the service.
	PasswordHash string `json:"-"`
}

// Address represents a physical or billing/shipping address.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"is_default"`
}

// Product represents a stocked item.
type Product struct {
	ID          uint           `json:"id"`
	SKU         string         `json:"sku"`
	Name        string         `json:"name"`
	Price       int64          `json:"price"`  // in cents (minor currency unit)
	Weight      float64        `json:"weight"` // in grams, useful for shipping
	IsActive    bool           `json:"is_active"`
	StockLevels []any          `json:"stock_levels"`
	Dimensions  [3]float64     `json:"dimensions"`
	Attributes  map[string]any `json:"attributes,omitempty"`
}

// StockLevel is the on-hand quantity of a product in one bin.
type StockLevel struct {
	Bin      string `json:"bin"`
	Quantity int    `json:"quantity"`
}

// Order represents a fulfillment order.
type Order struct {
	ID              uint               `json:"id"`
	OrderNumber     string             `json:"order_number"`
	Status          string             `json:"status"`
	TotalAmount     int64              `json:"total_amount"`
	Currency        string             `json:"currency"`
	Customer        Customer           `json:"customer"`
	ShippingAddress *Address           `json:"shipping_address"`
	OrderItems      []any              `json:"order_items"`
	Shipments       []Shipment         `json:"shipments"`
	Totals          map[string]int64   `json:"totals,omitempty"`
	Parcels         map[string]*Parcel `json:"parcels,omitempty"`
	HandlingTime    time.Duration      `json:"handling_time"`
	PlacedAt        *time.Time         `json:"placed_at,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
}

// NewOrder returns an order priced in the warehouse's default currency.
func NewOrder() (*Order, error) {
	return &Order{Currency: "USD"}, nil
}

// OrderItem is a line item within an order.
type OrderItem struct {
	ID        uint  `json:"id"`
	ProductID uint  `json:"product_id"`
	Quantity  int   `json:"quantity"`
	UnitPrice int64 `json:"unit_price"` // price at time of purchase (in cents)
	Product   any   `bind:",type=warehouse.Product" json:"product"`
}

// Shipment is one outbound parcel group of an order.
type Shipment struct {
	Carrier   string    `json:"carrier"`
	Tracking  string    `json:"tracking"`
	ShippedAt time.Time `json:"shipped_at"`
}

// Parcel is a single package of a shipment.
type Parcel struct {
	WeightGrams int      `json:"weight_grams"`
	Labels      []string `json:"labels"`
}
