//go:build unit || e2e

package builder

import (
	"fmt"
	"time"

	"serial-inventory/internal/domain/serial"
	"serial-inventory/internal/usecase/queries"

	"github.com/google/uuid"
)

type SerialBuilder struct {
	ID            uuid.UUID
	SerialNumber  string
	Shop          string
	Status        serial.Status
	ProductID     *string
	VariantID     *string
	OrderID       *string
	CustomerID    *string
	ReservedAt    *time.Time
	ReservedUntil *time.Time
	SoldAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

var serialSeq int

func NewSerialBuilder() *SerialBuilder {
	serialSeq++
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return &SerialBuilder{
		ID:           uuid.New(),
		SerialNumber: fmt.Sprintf("SN-%04d", serialSeq),
		Shop:         "test-shop.myshopify.com",
		Status:       serial.StatusAvailable,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (b *SerialBuilder) With(mutate func(*SerialBuilder)) *SerialBuilder {
	mutate(b)
	return b
}

func (b *SerialBuilder) WithNumber(n string) *SerialBuilder {
	b.SerialNumber = n
	return b
}

func (b *SerialBuilder) WithShop(shop string) *SerialBuilder {
	b.Shop = shop
	return b
}

func (b *SerialBuilder) Assigned(productID, variantID string) *SerialBuilder {
	b.Status = serial.StatusAssigned
	b.ProductID = &productID
	b.VariantID = &variantID
	return b
}

func (b *SerialBuilder) Reserved(productID, variantID string, orderID *string) *SerialBuilder {
	b.Assigned(productID, variantID)
	b.Status = serial.StatusReserved
	b.OrderID = orderID
	at := b.UpdatedAt
	b.ReservedAt = &at
	return b
}

func (b *SerialBuilder) Sold(productID, variantID, orderID string) *SerialBuilder {
	b.Assigned(productID, variantID)
	b.Status = serial.StatusSold
	b.OrderID = &orderID
	at := b.UpdatedAt
	b.SoldAt = &at
	return b
}

func (b *SerialBuilder) WithStatus(s serial.Status) *SerialBuilder {
	b.Status = s
	return b
}

func (b *SerialBuilder) Snapshot() serial.Snapshot {
	return serial.Snapshot{
		ID:            b.ID,
		SerialNumber:  b.SerialNumber,
		Shop:          b.Shop,
		Status:        b.Status,
		ProductID:     b.ProductID,
		VariantID:     b.VariantID,
		OrderID:       b.OrderID,
		CustomerID:    b.CustomerID,
		ReservedAt:    b.ReservedAt,
		ReservedUntil: b.ReservedUntil,
		SoldAt:        b.SoldAt,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func (b *SerialBuilder) BuildDomain() *serial.Serial {
	return serial.Reconstruct(b.Snapshot())
}

func (b *SerialBuilder) BuildView() *queries.SerialView {
	return &queries.SerialView{
		ID:            b.ID,
		SerialNumber:  b.SerialNumber,
		Shop:          b.Shop,
		Status:        b.Status.String(),
		ProductID:     b.ProductID,
		VariantID:     b.VariantID,
		OrderID:       b.OrderID,
		CustomerID:    b.CustomerID,
		ReservedAt:    b.ReservedAt,
		ReservedUntil: b.ReservedUntil,
		SoldAt:        b.SoldAt,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
