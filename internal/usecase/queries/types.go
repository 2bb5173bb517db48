package queries

import (
	"time"

	"github.com/google/uuid"
)

// SerialView represents read-optimized serial data
type SerialView struct {
	ID            uuid.UUID  `json:"id"`
	SerialNumber  string     `json:"serial_number"`
	Shop          string     `json:"shop"`
	Status        string     `json:"status"`
	ProductID     *string    `json:"product_id,omitempty"`
	VariantID     *string    `json:"variant_id,omitempty"`
	OrderID       *string    `json:"order_id,omitempty"`
	CustomerID    *string    `json:"customer_id,omitempty"`
	ReservedAt    *time.Time `json:"reserved_at,omitempty"`
	ReservedUntil *time.Time `json:"reserved_until,omitempty"`
	SoldAt        *time.Time `json:"sold_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ExportRow is a serial joined with the catalog titles it belongs to.
type ExportRow struct {
	SerialNumber string
	Status       string
	ProductTitle string
	VariantTitle string
	SKU          string
	OrderID      string
	SoldAt       *time.Time
	CreatedAt    time.Time
}

type SerialFilters struct {
	Status    *string
	ProductID *string
	VariantID *string
}

// Validation is the POS pre-check answer for one serial number.
type Validation struct {
	Valid        bool
	Message      string
	Serial       *SerialView
	ProductTitle string
	VariantTitle string
}

type VariantCapacity struct {
	VariantID    string `json:"variant_id"`
	Active       int    `json:"active"`
	InventoryQty *int   `json:"inventory_qty,omitempty"`
	// Remaining is nil when the variant has no mirrored inventory quantity.
	Remaining *int `json:"remaining,omitempty"`
}

type ReconciliationTaskView struct {
	ID         uuid.UUID  `json:"id"`
	OrderID    string     `json:"order_id"`
	Kind       string     `json:"kind"`
	Payload    []byte     `json:"payload"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}
