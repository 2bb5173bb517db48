package readstore

import (
	"context"
	"time"

	"serial-inventory/internal/infra"
	"serial-inventory/internal/infra/db"
	"serial-inventory/internal/infra/repository/converter"
	"serial-inventory/internal/pkg/pgconv"
	"serial-inventory/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	// $2 status, $3 product, $4 variant. Without a status filter DELETED rows are hidden.
	serialFilterSQL = `
		AND (($2::text IS NULL AND s.status <> 'DELETED') OR s.status = $2)
		AND ($3::text IS NULL OR s.product_id = $3)
		AND ($4::text IS NULL OR s.variant_id = $4)`

	selectSerialViewSQL = `SELECT s.id, s.serial_number, s.shop, s.status, s.product_id, s.variant_id,
		s.order_id, s.customer_id, s.reserved_at, s.reserved_until, s.sold_at, s.returned_at,
		s.created_at, s.updated_at
		FROM serials s`

	serialsFirstPageSQL = selectSerialViewSQL + `
		WHERE s.shop = $1` + serialFilterSQL + `
		ORDER BY s.created_at DESC, s.id DESC
		LIMIT $5`

	serialsKeysetSQL = selectSerialViewSQL + `
		WHERE s.shop = $1` + serialFilterSQL + `
		AND (s.created_at, s.id) < ($5, $6)
		ORDER BY s.created_at DESC, s.id DESC
		LIMIT $7`

	unassignedSerialsSQL = selectSerialViewSQL + `
		WHERE s.shop = $1 AND s.status = 'AVAILABLE' AND s.variant_id IS NULL
		ORDER BY s.serial_number`

	variantSerialsSQL = selectSerialViewSQL + `
		WHERE s.shop = $1 AND s.variant_id = $2 AND s.status = ANY($3::text[])
		ORDER BY s.serial_number`

	serialByNumberSQL = `SELECT s.id, s.serial_number, s.shop, s.status, s.product_id, s.variant_id,
		s.order_id, s.customer_id, s.reserved_at, s.reserved_until, s.sold_at, s.returned_at,
		s.created_at, s.updated_at, p.title, v.title, v.sku
		FROM serials s
		LEFT JOIN products p ON p.shop = s.shop AND p.id = s.product_id
		LEFT JOIN product_variants v ON v.shop = s.shop AND v.id = s.variant_id
		WHERE s.shop = $1 AND s.serial_number = $2`

	exportSerialsSQL = `SELECT s.serial_number, s.status, p.title, v.title, v.sku, s.order_id, s.sold_at, s.created_at
		FROM serials s
		LEFT JOIN products p ON p.shop = s.shop AND p.id = s.product_id
		LEFT JOIN product_variants v ON v.shop = s.shop AND v.id = s.variant_id
		WHERE s.shop = $1` + serialFilterSQL + `
		ORDER BY s.created_at DESC, s.id DESC`

	variantCapacitySQL = `SELECT
		(SELECT count(*) FROM serials
			WHERE shop = $1 AND variant_id = $2 AND status IN ('ASSIGNED', 'RESERVED', 'SOLD')),
		(SELECT inventory_qty FROM product_variants WHERE shop = $1 AND id = $2)`

	reconciliationTasksSQL = `SELECT id, order_id, kind, payload, status, created_at, resolved_at
		FROM reconciliation_tasks
		WHERE shop = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3`
)

type SerialReadStore struct {
	db db.DBTX
}

func NewSerialReadStore(db db.DBTX) *SerialReadStore {
	return &SerialReadStore{db: db}
}

func (r *SerialReadStore) FindByShopFirstPage(ctx context.Context, shop string, filters queries.SerialFilters, limit int32) ([]*queries.SerialView, error) {
	args := append(filterArgs(shop, filters), limit)
	rows, err := r.db.Query(ctx, serialsFirstPageSQL, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list serials first page", err)
	}
	return collectViews(rows, "failed to scan serials first page")
}

func (r *SerialReadStore) FindByShopKeyset(ctx context.Context, shop string, filters queries.SerialFilters, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.SerialView, error) {
	args := append(filterArgs(shop, filters), pgconv.TimeToPgtype(lastCreatedAt), lastID, limit)
	rows, err := r.db.Query(ctx, serialsKeysetSQL, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list serials keyset", err)
	}
	return collectViews(rows, "failed to scan serials keyset")
}

func (r *SerialReadStore) FindUnassigned(ctx context.Context, shop string) ([]*queries.SerialView, error) {
	rows, err := r.db.Query(ctx, unassignedSerialsSQL, shop)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list unassigned serials", err)
	}
	return collectViews(rows, "failed to scan unassigned serials")
}

func (r *SerialReadStore) FindForVariant(ctx context.Context, shop, variantID string, statuses ...string) ([]*queries.SerialView, error) {
	rows, err := r.db.Query(ctx, variantSerialsSQL, shop, variantID, statuses)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list serials for variant", err)
	}
	return collectViews(rows, "failed to scan serials for variant")
}

func (r *SerialReadStore) FindByNumber(ctx context.Context, shop, number string) (*queries.SerialView, *queries.CatalogTitles, error) {
	var row converter.SerialRow
	var productTitle, variantTitle, sku pgtype.Text
	targets := append(row.Targets(), &productTitle, &variantTitle, &sku)

	if err := r.db.QueryRow(ctx, serialByNumberSQL, shop, number).Scan(targets...); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil, infra.WrapRepoErr("serial not found", err, infra.KindNotFound)
		}
		return nil, nil, infra.WrapRepoErr("failed to get serial by number", err)
	}
	return toView(row), &queries.CatalogTitles{
		ProductTitle: productTitle.String,
		VariantTitle: variantTitle.String,
		SKU:          sku.String,
	}, nil
}

func (r *SerialReadStore) FindForExport(ctx context.Context, shop string, filters queries.SerialFilters) ([]*queries.ExportRow, error) {
	rows, err := r.db.Query(ctx, exportSerialsSQL, filterArgs(shop, filters)...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to export serials", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.ExportRow, error) {
		var (
			e                                  queries.ExportRow
			productTitle, variantTitle, sku, o pgtype.Text
			soldAt, createdAt                  pgtype.Timestamptz
		)
		if err := row.Scan(&e.SerialNumber, &e.Status, &productTitle, &variantTitle, &sku, &o, &soldAt, &createdAt); err != nil {
			return nil, err
		}
		e.ProductTitle = productTitle.String
		e.VariantTitle = variantTitle.String
		e.SKU = sku.String
		e.OrderID = o.String
		e.SoldAt = pgconv.TimePtrFromPgtype(soldAt)
		e.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		return &e, nil
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan export rows", err)
	}
	return out, nil
}

func (r *SerialReadStore) FindVariantCapacity(ctx context.Context, shop, variantID string) (*queries.VariantCapacity, error) {
	var active int64
	var qty pgtype.Int4
	if err := r.db.QueryRow(ctx, variantCapacitySQL, shop, variantID).Scan(&active, &qty); err != nil {
		return nil, infra.WrapRepoErr("failed to get variant capacity", err)
	}
	return &queries.VariantCapacity{
		VariantID:    variantID,
		Active:       int(active),
		InventoryQty: pgconv.Int4PtrFromPgtype(qty),
	}, nil
}

func (r *SerialReadStore) FindReconciliationTasks(ctx context.Context, shop string, status *string, limit int32) ([]*queries.ReconciliationTaskView, error) {
	rows, err := r.db.Query(ctx, reconciliationTasksSQL, shop, pgconv.StringPtrToPgtype(status), limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reconciliation tasks", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.ReconciliationTaskView, error) {
		var (
			t          queries.ReconciliationTaskView
			createdAt  pgtype.Timestamptz
			resolvedAt pgtype.Timestamptz
		)
		if err := row.Scan(&t.ID, &t.OrderID, &t.Kind, &t.Payload, &t.Status, &createdAt, &resolvedAt); err != nil {
			return nil, err
		}
		t.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		t.ResolvedAt = pgconv.TimePtrFromPgtype(resolvedAt)
		return &t, nil
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan reconciliation tasks", err)
	}
	return out, nil
}

func filterArgs(shop string, f queries.SerialFilters) []any {
	return []any{
		shop,
		pgconv.StringPtrToPgtype(f.Status),
		pgconv.StringPtrToPgtype(f.ProductID),
		pgconv.StringPtrToPgtype(f.VariantID),
	}
}

func collectViews(rows pgx.Rows, msg string) ([]*queries.SerialView, error) {
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.SerialView, error) {
		var r converter.SerialRow
		if err := row.Scan(r.Targets()...); err != nil {
			return nil, err
		}
		return toView(r), nil
	})
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	return out, nil
}

func toView(r converter.SerialRow) *queries.SerialView {
	return &queries.SerialView{
		ID:            r.ID,
		SerialNumber:  r.SerialNumber,
		Shop:          r.Shop,
		Status:        r.Status,
		ProductID:     pgconv.StringPtrFromPgtype(r.ProductID),
		VariantID:     pgconv.StringPtrFromPgtype(r.VariantID),
		OrderID:       pgconv.StringPtrFromPgtype(r.OrderID),
		CustomerID:    pgconv.StringPtrFromPgtype(r.CustomerID),
		ReservedAt:    pgconv.TimePtrFromPgtype(r.ReservedAt),
		ReservedUntil: pgconv.TimePtrFromPgtype(r.ReservedUntil),
		SoldAt:        pgconv.TimePtrFromPgtype(r.SoldAt),
		CreatedAt:     pgconv.TimeFromPgtype(r.CreatedAt),
		UpdatedAt:     pgconv.TimeFromPgtype(r.UpdatedAt),
	}
}
