package repository

import (
	"context"

	"serial-inventory/internal/domain/catalog"
	"serial-inventory/internal/infra"
	"serial-inventory/internal/infra/db"
	"serial-inventory/internal/infra/repository/converter"
	"serial-inventory/internal/pkg/pgconv"
)

const (
	upsertProductSQL = `INSERT INTO products (shop, id, title, require_serial, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (shop, id) DO UPDATE SET
			title = EXCLUDED.title,
			require_serial = EXCLUDED.require_serial,
			updated_at = EXCLUDED.updated_at`

	upsertVariantSQL = `INSERT INTO product_variants (shop, id, product_id, title, sku, require_serial, inventory_qty, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (shop, id) DO UPDATE SET
			product_id = EXCLUDED.product_id,
			title = EXCLUDED.title,
			sku = EXCLUDED.sku,
			require_serial = EXCLUDED.require_serial,
			inventory_qty = EXCLUDED.inventory_qty,
			updated_at = EXCLUDED.updated_at`

	findVariantSQL = `SELECT v.shop, v.id, v.product_id, v.title, v.sku, v.require_serial, v.inventory_qty, v.updated_at,
			p.shop, p.id, p.title, p.require_serial, p.updated_at
		FROM product_variants v
		LEFT JOIN products p ON p.shop = v.shop AND p.id = v.product_id
		WHERE v.shop = $1 AND v.id = $2`

	setProductRequireSerialSQL = `UPDATE products SET require_serial = $3, updated_at = now() WHERE shop = $1 AND id = $2`
	setVariantRequireSerialSQL = `UPDATE product_variants SET require_serial = $3, updated_at = now() WHERE shop = $1 AND id = $2`
)

type CatalogRepository struct {
	db db.DBTX
}

func NewCatalogRepository(db db.DBTX) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) UpsertProduct(ctx context.Context, p *catalog.Product) error {
	_, err := r.db.Exec(ctx, upsertProductSQL, p.Shop, p.ID, p.Title, p.RequireSerial, pgconv.TimeToPgtype(p.UpdatedAt))
	if err != nil {
		return infra.WrapRepoErr("failed to upsert product", err)
	}
	return nil
}

func (r *CatalogRepository) UpsertVariant(ctx context.Context, v *catalog.Variant) error {
	_, err := r.db.Exec(ctx, upsertVariantSQL,
		v.Shop, v.ID, v.ProductID, v.Title, v.SKU, v.RequireSerial,
		pgconv.IntPtrToPgtype(v.InventoryQty), pgconv.TimeToPgtype(v.UpdatedAt))
	if err != nil {
		return infra.WrapRepoErr("failed to upsert variant", err)
	}
	return nil
}

// FindVariant returns the variant and its product. The product is nil when it was never synced.
func (r *CatalogRepository) FindVariant(ctx context.Context, shop, variantID string) (*catalog.Variant, *catalog.Product, error) {
	var (
		v converter.VariantRow
		p converter.ProductRow
	)
	err := r.db.QueryRow(ctx, findVariantSQL, shop, variantID).Scan(
		&v.Shop, &v.ID, &v.ProductID, &v.Title, &v.SKU, &v.RequireSerial, &v.InventoryQty, &v.UpdatedAt,
		&p.Shop, &p.ID, &p.Title, &p.RequireSerial, &p.UpdatedAt,
	)
	if err != nil {
		return nil, nil, infra.WrapRepoErr("failed to find variant", err)
	}
	return converter.VariantToDomain(v), converter.ProductToDomain(p), nil
}

func (r *CatalogRepository) SetProductRequireSerial(ctx context.Context, shop, productID string, required bool) error {
	return r.setFlag(ctx, "product", setProductRequireSerialSQL, shop, productID, required)
}

func (r *CatalogRepository) SetVariantRequireSerial(ctx context.Context, shop, variantID string, required bool) error {
	return r.setFlag(ctx, "variant", setVariantRequireSerialSQL, shop, variantID, required)
}

func (r *CatalogRepository) setFlag(ctx context.Context, kind, sql, shop, id string, required bool) error {
	tag, err := r.db.Exec(ctx, sql, shop, id, required)
	if err != nil {
		return infra.WrapRepoErr("failed to update "+kind+" requireSerial", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(kind+" not found", nil, infra.KindNotFound)
	}
	return nil
}
