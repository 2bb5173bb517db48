package request

import (
	"serial-inventory/internal/usecase/commands"
	"serial-inventory/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateSerialRequest struct {
	SerialNumber string  `json:"serial_number" binding:"required"`
	ProductID    *string `json:"product_id"`
	VariantID    *string `json:"variant_id"`
}

func (r *CreateSerialRequest) ToInput() commands.CreateSerialInput {
	return commands.CreateSerialInput{
		SerialNumber: r.SerialNumber,
		ProductID:    r.ProductID,
		VariantID:    r.VariantID,
	}
}

type BulkCreateSerialsRequest struct {
	SerialNumbers []string `json:"serial_numbers" binding:"required,min=1,max=1000"`
}

type AssignSerialsRequest struct {
	SerialIDs []uuid.UUID `json:"serial_ids" binding:"required,min=1"`
	ProductID string      `json:"product_id" binding:"required"`
	VariantID string      `json:"variant_id" binding:"required"`
}

func (r *AssignSerialsRequest) ToInput() commands.AssignInput {
	return commands.AssignInput{
		SerialIDs: r.SerialIDs,
		ProductID: r.ProductID,
		VariantID: r.VariantID,
	}
}

type SerialIDsRequest struct {
	SerialIDs []uuid.UUID `json:"serial_ids" binding:"required,min=1"`
}

type RenameSerialRequest struct {
	SerialNumber string `json:"serial_number" binding:"required"`
}

type ListSerialsQuery struct {
	Status    *string `form:"status"`
	ProductID *string `form:"product_id"`
	VariantID *string `form:"variant_id"`
	Cursor    string  `form:"cursor"`
	Limit     int     `form:"limit" binding:"omitempty,min=1"`
}

func (q *ListSerialsQuery) Filters() queries.SerialFilters {
	return queries.SerialFilters{
		Status:    blankToNil(q.Status),
		ProductID: blankToNil(q.ProductID),
		VariantID: blankToNil(q.VariantID),
	}
}

func (q *ListSerialsQuery) PageCursor() *queries.Cursor {
	if q.Cursor == "" {
		return nil
	}
	return &queries.Cursor{After: q.Cursor}
}

type ValidateSerialQuery struct {
	SerialNumber string  `form:"serial_number" binding:"required"`
	ProductID    *string `form:"product_id"`
	VariantID    *string `form:"variant_id"`
}

type ListTasksQuery struct {
	Status *string `form:"status"`
	Limit  int     `form:"limit" binding:"omitempty,min=1"`
}

func blankToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
