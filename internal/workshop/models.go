// Package workshop owns the workshop's transactional tables (suppliers,
// products, customers, service orders and inventory movements) and exposes
// the raw rows the analytics module aggregates.
package workshop

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement directions for inventory facts.
const (
	MovementIn  = "IN"
	MovementOut = "OUT"
)

// Supplier is a parts supplier or brand.
type Supplier struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Product is a stocked part.
type Product struct {
	ID         string          `json:"id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	SupplierID string          `json:"supplier_id,omitempty"`
	Price      decimal.Decimal `json:"price"`
	Stock      int64           `json:"stock"`
}

// Customer is a workshop customer.
type Customer struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CustomerType string    `json:"customer_type"` // INDIVIDU, KOMUNITAS, RACING_TEAM
	CreatedAt    time.Time `json:"created_at"`
}

// Vehicle is a motorcycle owned by a customer.
type Vehicle struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	Brand      string `json:"brand"`
}

// ServiceOrder is one booked or completed job.
type ServiceOrder struct {
	ID            string              `json:"id"`
	CustomerID    string              `json:"customer_id"`
	ServiceType   string              `json:"service_type"`
	ScheduledDate time.Time           `json:"scheduled_date"`
	TotalCost     decimal.NullDecimal `json:"total_cost"`
}

// InventoryFact is one stock movement.
type InventoryFact struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	Type            string          `json:"type"` // IN or OUT
	Quantity        int64           `json:"quantity"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate time.Time       `json:"transaction_date"`
}

// ServiceRow is one service order as read for analytics.
// ServiceType is already normalised; Label is the text as recorded.
type ServiceRow struct {
	ScheduledAt time.Time
	ServiceType string
	Label       string
	TotalCost   decimal.Decimal // zero when the order carries no cost
}

// PartsRow is one outgoing inventory movement as read for analytics.
type PartsRow struct {
	At       time.Time
	Category string
	Quantity decimal.Decimal
	Amount   decimal.Decimal
}

// VisitRow is one customer visit (a scheduled service order).
// CustomerType is already normalised.
type VisitRow struct {
	At           time.Time
	CustomerID   string
	CustomerType string
}

// VehicleRow links a customer to the brand of one of their vehicles.
type VehicleRow struct {
	CustomerID string
	Brand      string
}

// CustomerStats are the lifetime order count and spend of one customer.
type CustomerStats struct {
	CustomerID   string
	CustomerType string
	Orders       int
	Revenue      decimal.Decimal
}
