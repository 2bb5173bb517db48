package request

import (
	"serial-inventory/internal/usecase/commands"

	"github.com/google/uuid"
)

type ReserveAssignedRequest struct {
	SerialIDs []uuid.UUID `json:"serial_ids" binding:"required,min=1"`
	OrderID   *string     `json:"order_id"`
}

type ReserveBySerialRequest struct {
	SerialNumber string  `json:"serial_number" binding:"required"`
	VariantID    string  `json:"variant_id" binding:"required"`
	ProductID    string  `json:"product_id"`
	OrderID      *string `json:"order_id"`
}

func (r *ReserveBySerialRequest) ToInput() commands.ReserveBySerialInput {
	return commands.ReserveBySerialInput{
		SerialNumber: r.SerialNumber,
		VariantID:    r.VariantID,
		ProductID:    r.ProductID,
		OrderID:      r.OrderID,
	}
}

type MarkSoldRequest struct {
	SerialNumber string  `json:"serial_number" binding:"required"`
	OrderID      *string `json:"order_id"`
	CustomerID   *string `json:"customer_id"`
	VariantID    string  `json:"variant_id"`
	ProductID    string  `json:"product_id"`
}

func (r *MarkSoldRequest) ToInput() commands.MarkSoldInput {
	return commands.MarkSoldInput{
		SerialNumber: r.SerialNumber,
		OrderID:      r.OrderID,
		CustomerID:   r.CustomerID,
		VariantID:    r.VariantID,
		ProductID:    r.ProductID,
	}
}

type ReleaseReservedRequest struct {
	SerialNumber string  `json:"serial_number" binding:"required"`
	OrderID      *string `json:"order_id"`
}

type BulkMarkSoldRequest struct {
	SerialNumbers []string `json:"serial_numbers" binding:"required,min=1"`
	OrderID       *string  `json:"order_id"`
}
