package queries

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"serial-inventory/internal/domain/serial"
	"serial-inventory/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrMissingShop         = errs.Mark(errs.New("shop is required"), errs.ErrValidation)
	ErrMissingVariant      = errs.Mark(errs.New("variant id is required"), errs.ErrValidation)
	ErrMissingSerialNumber = errs.Mark(errs.New("serial number is required"), errs.ErrValidation)
)

// CatalogTitles are the mirrored names a serial is displayed with.
type CatalogTitles struct {
	ProductTitle string
	VariantTitle string
	SKU          string
}

type SerialReadStore interface {
	FindByShopFirstPage(ctx context.Context, shop string, filters SerialFilters, limit int32) ([]*SerialView, error)
	FindByShopKeyset(ctx context.Context, shop string, filters SerialFilters, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*SerialView, error)
	// FindUnassigned and FindForVariant order by serial number ascending.
	FindUnassigned(ctx context.Context, shop string) ([]*SerialView, error)
	FindForVariant(ctx context.Context, shop, variantID string, statuses ...string) ([]*SerialView, error)
	FindByNumber(ctx context.Context, shop, number string) (*SerialView, *CatalogTitles, error)
	FindForExport(ctx context.Context, shop string, filters SerialFilters) ([]*ExportRow, error)
	FindVariantCapacity(ctx context.Context, shop, variantID string) (*VariantCapacity, error)
	FindReconciliationTasks(ctx context.Context, shop string, status *string, limit int32) ([]*ReconciliationTaskView, error)
}

type SerialQueries interface {
	ListByShop(ctx context.Context, shop string, filters SerialFilters, cursor *Cursor, limit int) ([]*SerialView, *Cursor, error)
	ListUnassigned(ctx context.Context, shop string) ([]*SerialView, error)
	ListAvailableForVariant(ctx context.Context, shop, variantID string) ([]*SerialView, error)
	ListAssignedForVariant(ctx context.Context, shop, variantID string) ([]*SerialView, error)
	ListAllForVariant(ctx context.Context, shop, variantID string) ([]*SerialView, error)
	Export(ctx context.Context, shop string, filters SerialFilters) ([]*ExportRow, error)
	Validate(ctx context.Context, shop, serialNumber string, productID, variantID *string) (*Validation, error)
	VariantCapacity(ctx context.Context, shop, variantID string) (*VariantCapacity, error)
	ListReconciliationTasks(ctx context.Context, shop string, status *string, limit int) ([]*ReconciliationTaskView, error)
}

type serialQueriesImpl struct {
	store SerialReadStore
}

func NewSerialQueries(store SerialReadStore) SerialQueries {
	return &serialQueriesImpl{store: store}
}

// ListByShop pages most-recent-first. DELETED rows appear only when asked for by status.
func (q *serialQueriesImpl) ListByShop(ctx context.Context, shop string, filters SerialFilters, cursor *Cursor, limit int) ([]*SerialView, *Cursor, error) {
	if shop == "" {
		return nil, nil, ErrMissingShop
	}
	if filters.Status != nil {
		if _, err := serial.ParseStatus(*filters.Status); err != nil {
			return nil, nil, err
		}
	}

	limit = ValidateLimit(limit)
	var rows []*SerialView
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.store.FindByShopFirstPage(ctx, shop, filters, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, derr
		}
		rows, err = q.store.FindByShopKeyset(ctx, shop, filters, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}

func (q *serialQueriesImpl) ListUnassigned(ctx context.Context, shop string) ([]*SerialView, error) {
	if shop == "" {
		return nil, ErrMissingShop
	}
	return q.store.FindUnassigned(ctx, shop)
}

// ListAvailableForVariant returns what a checkout can pick for the variant:
// its ASSIGNED serials plus the unassigned pool, by serial number.
func (q *serialQueriesImpl) ListAvailableForVariant(ctx context.Context, shop, variantID string) ([]*SerialView, error) {
	if err := requireScope(shop, variantID); err != nil {
		return nil, err
	}
	assigned, err := q.store.FindForVariant(ctx, shop, variantID, serial.StatusAssigned.String())
	if err != nil {
		return nil, err
	}
	pool, err := q.store.FindUnassigned(ctx, shop)
	if err != nil {
		return nil, err
	}
	out := append(assigned, pool...)
	slices.SortStableFunc(out, func(a, b *SerialView) int {
		return strings.Compare(a.SerialNumber, b.SerialNumber)
	})
	return out, nil
}

func (q *serialQueriesImpl) ListAssignedForVariant(ctx context.Context, shop, variantID string) ([]*SerialView, error) {
	if err := requireScope(shop, variantID); err != nil {
		return nil, err
	}
	return q.store.FindForVariant(ctx, shop, variantID, serial.StatusAssigned.String())
}

func (q *serialQueriesImpl) ListAllForVariant(ctx context.Context, shop, variantID string) ([]*SerialView, error) {
	if err := requireScope(shop, variantID); err != nil {
		return nil, err
	}
	return q.store.FindForVariant(ctx, shop, variantID,
		serial.StatusAssigned.String(),
		serial.StatusReserved.String(),
		serial.StatusSold.String(),
		serial.StatusReturned.String(),
	)
}

func (q *serialQueriesImpl) Export(ctx context.Context, shop string, filters SerialFilters) ([]*ExportRow, error) {
	if shop == "" {
		return nil, ErrMissingShop
	}
	if filters.Status != nil {
		if _, err := serial.ParseStatus(*filters.Status); err != nil {
			return nil, err
		}
	}
	return q.store.FindForExport(ctx, shop, filters)
}

// Validate answers whether a POS may reserve serialNumber by number for the given product
// and variant. Valid means the row is in a state ReserveBySerialNumber accepts.
// An unknown or unusable serial is a negative answer, not an error.
func (q *serialQueriesImpl) Validate(ctx context.Context, shop, serialNumber string, productID, variantID *string) (*Validation, error) {
	if shop == "" {
		return nil, ErrMissingShop
	}
	serialNumber = strings.TrimSpace(serialNumber)
	if serialNumber == "" {
		return nil, ErrMissingSerialNumber
	}

	view, titles, err := q.store.FindByNumber(ctx, shop, serialNumber)
	if errs.Is(err, errs.ErrNotFound) {
		return &Validation{Message: fmt.Sprintf("Serial number %s not found", serialNumber)}, nil
	}
	if err != nil {
		return nil, err
	}

	res := &Validation{Serial: view}
	if titles != nil {
		res.ProductTitle = titles.ProductTitle
		res.VariantTitle = titles.VariantTitle
	}
	switch serial.Status(view.Status) {
	case serial.StatusSold:
		res.Message = fmt.Sprintf("Serial number %s has already been sold", serialNumber)
	case serial.StatusReserved:
		res.Message = fmt.Sprintf("Serial number %s is currently reserved", serialNumber)
	case serial.StatusDeleted, serial.StatusReturned:
		res.Message = fmt.Sprintf("Serial number %s is not in stock", serialNumber)
	default:
		switch {
		case mismatch(productID, view.ProductID):
			res.Message = fmt.Sprintf("Serial number %s is not for this product", serialNumber)
		case mismatch(variantID, view.VariantID):
			res.Message = fmt.Sprintf("Serial number %s is not for this variant", serialNumber)
		case serial.Status(view.Status) == serial.StatusAssigned:
			res.Message = fmt.Sprintf("Serial number %s is assigned to this variant; reserve it from the assigned list", serialNumber)
		default:
			res.Valid = true
			res.Message = fmt.Sprintf("Serial number %s is valid and available", serialNumber)
		}
	}
	return res, nil
}

func (q *serialQueriesImpl) VariantCapacity(ctx context.Context, shop, variantID string) (*VariantCapacity, error) {
	if err := requireScope(shop, variantID); err != nil {
		return nil, err
	}
	c, err := q.store.FindVariantCapacity(ctx, shop, variantID)
	if err != nil {
		return nil, err
	}
	if c.InventoryQty != nil {
		remaining := max(*c.InventoryQty-c.Active, 0)
		c.Remaining = &remaining
	}
	return c, nil
}

func (q *serialQueriesImpl) ListReconciliationTasks(ctx context.Context, shop string, status *string, limit int) ([]*ReconciliationTaskView, error) {
	if shop == "" {
		return nil, ErrMissingShop
	}
	return q.store.FindReconciliationTasks(ctx, shop, status, int32(ValidateLimit(limit)))
}

func requireScope(shop, variantID string) error {
	if shop == "" {
		return ErrMissingShop
	}
	if strings.TrimSpace(variantID) == "" {
		return ErrMissingVariant
	}
	return nil
}

// mismatch is true when a wanted id is given and the serial is attached elsewhere.
// An unattached serial can still be attached, so it never mismatches.
func mismatch(want, got *string) bool {
	if want == nil || *want == "" || got == nil {
		return false
	}
	return *want != *got
}
