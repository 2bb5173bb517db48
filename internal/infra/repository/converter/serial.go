package converter

import (
	"serial-inventory/internal/domain/catalog"
	"serial-inventory/internal/domain/serial"
	"serial-inventory/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// SerialColumns is the column order shared by SerialRow.Targets and SerialArgs.
const SerialColumns = `id, serial_number, shop, status, product_id, variant_id, order_id, customer_id,
	reserved_at, reserved_until, sold_at, returned_at, created_at, updated_at`

type SerialRow struct {
	ID            uuid.UUID
	SerialNumber  string
	Shop          string
	Status        string
	ProductID     pgtype.Text
	VariantID     pgtype.Text
	OrderID       pgtype.Text
	CustomerID    pgtype.Text
	ReservedAt    pgtype.Timestamptz
	ReservedUntil pgtype.Timestamptz
	SoldAt        pgtype.Timestamptz
	ReturnedAt    pgtype.Timestamptz
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

func (r *SerialRow) Targets() []any {
	return []any{
		&r.ID, &r.SerialNumber, &r.Shop, &r.Status, &r.ProductID, &r.VariantID, &r.OrderID, &r.CustomerID,
		&r.ReservedAt, &r.ReservedUntil, &r.SoldAt, &r.ReturnedAt, &r.CreatedAt, &r.UpdatedAt,
	}
}

func ScanSerial(row pgx.Row) (*serial.Serial, error) {
	var r SerialRow
	if err := row.Scan(r.Targets()...); err != nil {
		return nil, err
	}
	return SerialToDomain(r), nil
}

func SerialToDomain(r SerialRow) *serial.Serial {
	return serial.Reconstruct(serial.Snapshot{
		ID:            r.ID,
		SerialNumber:  r.SerialNumber,
		Shop:          r.Shop,
		Status:        serial.Status(r.Status),
		ProductID:     pgconv.StringPtrFromPgtype(r.ProductID),
		VariantID:     pgconv.StringPtrFromPgtype(r.VariantID),
		OrderID:       pgconv.StringPtrFromPgtype(r.OrderID),
		CustomerID:    pgconv.StringPtrFromPgtype(r.CustomerID),
		ReservedAt:    pgconv.TimePtrFromPgtype(r.ReservedAt),
		ReservedUntil: pgconv.TimePtrFromPgtype(r.ReservedUntil),
		SoldAt:        pgconv.TimePtrFromPgtype(r.SoldAt),
		ReturnedAt:    pgconv.TimePtrFromPgtype(r.ReturnedAt),
		CreatedAt:     pgconv.TimeFromPgtype(r.CreatedAt),
		UpdatedAt:     pgconv.TimeFromPgtype(r.UpdatedAt),
	})
}

// SerialArgs returns query arguments in SerialColumns order.
func SerialArgs(s *serial.Serial) []any {
	snap := s.Snapshot()
	return []any{
		snap.ID,
		snap.SerialNumber,
		snap.Shop,
		snap.Status.String(),
		pgconv.StringPtrToPgtype(snap.ProductID),
		pgconv.StringPtrToPgtype(snap.VariantID),
		pgconv.StringPtrToPgtype(snap.OrderID),
		pgconv.StringPtrToPgtype(snap.CustomerID),
		pgconv.TimePtrToPgtype(snap.ReservedAt),
		pgconv.TimePtrToPgtype(snap.ReservedUntil),
		pgconv.TimePtrToPgtype(snap.SoldAt),
		pgconv.TimePtrToPgtype(snap.ReturnedAt),
		pgconv.TimeToPgtype(snap.CreatedAt),
		pgconv.TimeToPgtype(snap.UpdatedAt),
	}
}

type VariantRow struct {
	Shop          string
	ID            string
	ProductID     string
	Title         string
	SKU           string
	RequireSerial bool
	InventoryQty  pgtype.Int4
	UpdatedAt     pgtype.Timestamptz
}

func VariantToDomain(r VariantRow) *catalog.Variant {
	return &catalog.Variant{
		Shop:          r.Shop,
		ID:            r.ID,
		ProductID:     r.ProductID,
		Title:         r.Title,
		SKU:           r.SKU,
		RequireSerial: r.RequireSerial,
		InventoryQty:  pgconv.Int4PtrFromPgtype(r.InventoryQty),
		UpdatedAt:     pgconv.TimeFromPgtype(r.UpdatedAt),
	}
}

type ProductRow struct {
	Shop          pgtype.Text
	ID            pgtype.Text
	Title         pgtype.Text
	RequireSerial pgtype.Bool
	UpdatedAt     pgtype.Timestamptz
}

// ProductToDomain returns nil for a row that came back empty from an outer join.
func ProductToDomain(r ProductRow) *catalog.Product {
	if !r.ID.Valid {
		return nil
	}
	return &catalog.Product{
		Shop:          r.Shop.String,
		ID:            r.ID.String,
		Title:         r.Title.String,
		RequireSerial: r.RequireSerial.Bool,
		UpdatedAt:     pgconv.TimeFromPgtype(r.UpdatedAt),
	}
}
