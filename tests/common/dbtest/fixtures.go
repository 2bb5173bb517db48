//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by the pool and by a transaction.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CreateTestSerial inserts a serial row directly, bypassing the lifecycle checks.
func CreateTestSerial(t *testing.T, db DBLike, shop, number, status string, productID, variantID, orderID *string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	var reservedAt, soldAt *time.Time
	now := time.Now().UTC()
	switch status {
	case "RESERVED":
		reservedAt = &now
	case "SOLD":
		soldAt = &now
	}

	_, err := db.Exec(context.Background(), `
		INSERT INTO serials (id, serial_number, shop, status, product_id, variant_id, order_id, reserved_at, sold_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id, number, shop, status, productID, variantID, orderID, reservedAt, soldAt)
	require.NoError(t, err)
	return id
}

// CreateTestVariant mirrors a catalog product and one variant.
func CreateTestVariant(t *testing.T, db DBLike, shop, productID, variantID string, requireSerial bool, qty *int) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx, `
		INSERT INTO products (shop, id, title) VALUES ($1, $2, $3)
		ON CONFLICT (shop, id) DO NOTHING`, shop, productID, "Product "+productID)
	require.NoError(t, err)

	_, err = db.Exec(ctx, `
		INSERT INTO product_variants (shop, id, product_id, title, require_serial, inventory_qty)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (shop, id) DO UPDATE SET require_serial = EXCLUDED.require_serial, inventory_qty = EXCLUDED.inventory_qty`,
		shop, variantID, productID, "Variant "+variantID, requireSerial, qty)
	require.NoError(t, err)
}

// SerialStatus reads the stored status of a serial.
func SerialStatus(t *testing.T, db DBLike, id uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(), "SELECT status FROM serials WHERE id = $1", id).Scan(&status)
	require.NoError(t, err)
	return status
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
