package request

import (
	"serial-inventory/internal/usecase/commands"
)

type SyncVariantRequest struct {
	ID            string `json:"id" binding:"required"`
	Title         string `json:"title"`
	SKU           string `json:"sku"`
	RequireSerial bool   `json:"require_serial"`
	InventoryQty  *int   `json:"inventory_qty" binding:"omitempty,min=0"`
}

type SyncProductRequest struct {
	ID            string               `json:"id" binding:"required"`
	Title         string               `json:"title"`
	RequireSerial bool                 `json:"require_serial"`
	Variants      []SyncVariantRequest `json:"variants" binding:"dive"`
}

func (r *SyncProductRequest) ToInput() commands.SyncProductInput {
	in := commands.SyncProductInput{
		ID:            r.ID,
		Title:         r.Title,
		RequireSerial: r.RequireSerial,
		Variants:      make([]commands.SyncVariantInput, 0, len(r.Variants)),
	}
	for _, v := range r.Variants {
		in.Variants = append(in.Variants, commands.SyncVariantInput{
			ID:            v.ID,
			Title:         v.Title,
			SKU:           v.SKU,
			RequireSerial: v.RequireSerial,
			InventoryQty:  v.InventoryQty,
		})
	}
	return in
}

type SetRequireSerialRequest struct {
	RequireSerial *bool `json:"require_serial" binding:"required"`
}
