package catalog

import (
	"strings"
	"time"

	"serial-inventory/internal/pkg/errs"
)

var (
	ErrMissingProductID = errs.Mark(errs.New("product id is required"), errs.ErrValidation)
	ErrMissingVariantID = errs.Mark(errs.New("variant id is required"), errs.ErrValidation)
	ErrNegativeQuantity = errs.Mark(errs.New("inventory quantity cannot be negative"), errs.ErrValidation)
)

// Product mirrors a storefront product. The storefront owns it; this service only stores the copy.
type Product struct {
	Shop          string
	ID            string
	Title         string
	RequireSerial bool
	UpdatedAt     time.Time
}

type Variant struct {
	Shop          string
	ID            string
	ProductID     string
	Title         string
	SKU           string
	RequireSerial bool
	InventoryQty  *int
	UpdatedAt     time.Time
}

func NewProduct(shop, id, title string, requireSerial bool, now time.Time) (*Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrMissingProductID
	}
	return &Product{Shop: shop, ID: id, Title: title, RequireSerial: requireSerial, UpdatedAt: now}, nil
}

func NewVariant(shop, productID, id, title, sku string, requireSerial bool, qty *int, now time.Time) (*Variant, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrMissingVariantID
	}
	if strings.TrimSpace(productID) == "" {
		return nil, ErrMissingProductID
	}
	if qty != nil && *qty < 0 {
		return nil, ErrNegativeQuantity
	}
	return &Variant{
		Shop:          shop,
		ID:            id,
		ProductID:     productID,
		Title:         title,
		SKU:           sku,
		RequireSerial: requireSerial,
		InventoryQty:  qty,
		UpdatedAt:     now,
	}, nil
}

// RequiresSerial is true when either the variant or its product asks for serial tracking.
func (v *Variant) RequiresSerial(p *Product) bool {
	if v.RequireSerial {
		return true
	}
	return p != nil && p.RequireSerial
}
