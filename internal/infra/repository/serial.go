package repository

import (
	"context"

	"serial-inventory/internal/domain/serial"
	"serial-inventory/internal/infra"
	"serial-inventory/internal/infra/db"
	"serial-inventory/internal/infra/repository/converter"
	"serial-inventory/internal/pkg/errs"
	"serial-inventory/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	insertSerialSQL = `INSERT INTO serials (` + converter.SerialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	insertSerialIfMissingSQL = insertSerialSQL + `
		ON CONFLICT (serial_number) DO NOTHING
		RETURNING id`

	existsSerialByNumberSQL = `SELECT EXISTS (SELECT 1 FROM serials WHERE serial_number = $1)`

	lockSerialsByIDsSQL = `SELECT ` + converter.SerialColumns + `
		FROM serials
		WHERE shop = $1 AND id = ANY($2::uuid[])
		ORDER BY id
		FOR UPDATE`

	lockSerialsByNumbersSQL = `SELECT ` + converter.SerialColumns + `
		FROM serials
		WHERE shop = $1 AND serial_number = ANY($2::text[])
		ORDER BY id
		FOR UPDATE`

	lockPendingForVariantSQL = `SELECT ` + converter.SerialColumns + `
		FROM serials
		WHERE shop = $1 AND variant_id = $2 AND status = 'RESERVED' AND order_id IS NULL
		ORDER BY reserved_at DESC NULLS LAST, updated_at DESC, id
		LIMIT $3
		FOR UPDATE`

	lockSerialsByOrderSQL = `SELECT ` + converter.SerialColumns + `
		FROM serials
		WHERE shop = $1 AND order_id = $2 AND status = ANY($3::text[])
		ORDER BY id
		FOR UPDATE`

	lockVariantSQL = `SELECT pg_advisory_xact_lock(hashtext($1::text || '/' || $2::text))`

	countOccupiedForVariantSQL = `SELECT count(*)
		FROM serials
		WHERE shop = $1 AND variant_id = $2 AND status IN ('ASSIGNED', 'RESERVED', 'SOLD')`

	countLinkedByVariantSQL = `SELECT variant_id, count(*)
		FROM serials
		WHERE shop = $1 AND order_id = $2 AND variant_id IS NOT NULL AND status IN ('RESERVED', 'SOLD')
		GROUP BY variant_id`

	updateSerialSQL = `UPDATE serials SET
		serial_number = $2, status = $4, product_id = $5, variant_id = $6, order_id = $7, customer_id = $8,
		reserved_at = $9, reserved_until = $10, sold_at = $11, returned_at = $12, updated_at = $14
		WHERE id = $1 AND shop = $3`

	deleteSerialSQL = `DELETE FROM serials WHERE shop = $1 AND id = $2`
)

var errSerialVanished = errs.New("serial row vanished during update")

type SerialRepository struct {
	db db.DBTX
}

func NewSerialRepository(db db.DBTX) *SerialRepository {
	return &SerialRepository{db: db}
}

func (r *SerialRepository) Insert(ctx context.Context, s *serial.Serial) error {
	if _, err := r.db.Exec(ctx, insertSerialSQL, converter.SerialArgs(s)...); err != nil {
		return infra.WrapRepoErr("failed to insert serial", err)
	}
	return nil
}

func (r *SerialRepository) InsertMissing(ctx context.Context, ss []*serial.Serial) ([]*serial.Serial, error) {
	if len(ss) == 0 {
		return nil, nil
	}

	batch := &pgx.Batch{}
	for _, s := range ss {
		batch.Queue(insertSerialIfMissingSQL, converter.SerialArgs(s)...)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	inserted := make([]*serial.Serial, 0, len(ss))
	for _, s := range ss {
		var id uuid.UUID
		err := br.QueryRow().Scan(&id)
		if pgconv.IsNoRows(err) {
			continue
		}
		if err != nil {
			return nil, infra.WrapRepoErr("failed to import serial", err)
		}
		inserted = append(inserted, s)
	}
	return inserted, nil
}

func (r *SerialRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, existsSerialByNumberSQL, number).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check serial number", err)
	}
	return exists, nil
}

func (r *SerialRepository) LockByIDs(ctx context.Context, shop string, ids []uuid.UUID) ([]*serial.Serial, error) {
	return r.lock(ctx, "failed to lock serials by id", lockSerialsByIDsSQL, shop, ids)
}

func (r *SerialRepository) LockByNumbers(ctx context.Context, shop string, numbers []string) ([]*serial.Serial, error) {
	return r.lock(ctx, "failed to lock serials by number", lockSerialsByNumbersSQL, shop, numbers)
}

func (r *SerialRepository) LockPendingForVariant(ctx context.Context, shop, variantID string, limit int) ([]*serial.Serial, error) {
	return r.lock(ctx, "failed to lock pending reservations", lockPendingForVariantSQL, shop, variantID, limit)
}

func (r *SerialRepository) LockByOrder(ctx context.Context, shop, orderID string, statuses ...serial.Status) ([]*serial.Serial, error) {
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}
	return r.lock(ctx, "failed to lock serials by order", lockSerialsByOrderSQL, shop, orderID, names)
}

// LockVariant takes a transaction-scoped advisory lock on the shop's variant.
func (r *SerialRepository) LockVariant(ctx context.Context, shop, variantID string) error {
	if _, err := r.db.Exec(ctx, lockVariantSQL, shop, variantID); err != nil {
		return infra.WrapRepoErr("failed to lock variant", err)
	}
	return nil
}

func (r *SerialRepository) CountOccupiedForVariant(ctx context.Context, shop, variantID string) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, countOccupiedForVariantSQL, shop, variantID).Scan(&n); err != nil {
		return 0, infra.WrapRepoErr("failed to count variant serials", err)
	}
	return n, nil
}

func (r *SerialRepository) CountLinkedByVariant(ctx context.Context, shop, orderID string) (map[string]int, error) {
	rows, err := r.db.Query(ctx, countLinkedByVariantSQL, shop, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count order serials", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			variantID string
			n         int
		)
		if err := rows.Scan(&variantID, &n); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order serial count", err)
		}
		out[variantID] = n
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read order serial counts", err)
	}
	return out, nil
}

// Update writes every serial in one batch. A row that no longer exists fails the whole batch.
func (r *SerialRepository) Update(ctx context.Context, ss ...*serial.Serial) error {
	if len(ss) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, s := range ss {
		batch.Queue(updateSerialSQL, converter.SerialArgs(s)...)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	for _, s := range ss {
		tag, err := br.Exec()
		if err != nil {
			return infra.WrapRepoErr("failed to update serial", err)
		}
		if tag.RowsAffected() == 0 {
			return infra.WrapRepoErr("failed to update serial "+s.SerialNumber().String(), errSerialVanished, infra.KindNotFound)
		}
	}
	return nil
}

func (r *SerialRepository) Delete(ctx context.Context, shop string, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteSerialSQL, shop, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete serial", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("serial not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *SerialRepository) lock(ctx context.Context, msg, sql string, args ...any) ([]*serial.Serial, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	defer rows.Close()

	var out []*serial.Serial
	for rows.Next() {
		s, err := converter.ScanSerial(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(msg, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	return out, nil
}
