package repository

import (
	"context"

	"serial-inventory/internal/domain/order"
	"serial-inventory/internal/infra"
	"serial-inventory/internal/infra/db"
	"serial-inventory/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

const (
	ensureOrderSQL = `INSERT INTO order_lifecycle (shop, order_id)
		VALUES ($1, $2)
		ON CONFLICT (shop, order_id) DO NOTHING`

	lockOrderSQL = `SELECT paid_at, customer_id, cancelled_at, linked_at
		FROM order_lifecycle
		WHERE shop = $1 AND order_id = $2
		FOR UPDATE`

	saveOrderSQL = `UPDATE order_lifecycle
		SET paid_at = $3, customer_id = $4, cancelled_at = $5, linked_at = $6, updated_at = now()
		WHERE shop = $1 AND order_id = $2`
)

type OrderRepository struct {
	db db.DBTX
}

func NewOrderRepository(db db.DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Lock(ctx context.Context, shop, orderID string) (order.Lifecycle, error) {
	if _, err := r.db.Exec(ctx, ensureOrderSQL, shop, orderID); err != nil {
		return order.Lifecycle{}, infra.WrapRepoErr("failed to create order lifecycle", err)
	}

	var (
		paidAt, cancelledAt, linkedAt pgtype.Timestamptz
		customerID                    pgtype.Text
	)
	err := r.db.QueryRow(ctx, lockOrderSQL, shop, orderID).Scan(&paidAt, &customerID, &cancelledAt, &linkedAt)
	if err != nil {
		return order.Lifecycle{}, infra.WrapRepoErr("failed to lock order lifecycle", err)
	}
	return order.Lifecycle{
		PaidAt:      pgconv.TimePtrFromPgtype(paidAt),
		CustomerID:  pgconv.StringPtrFromPgtype(customerID),
		CancelledAt: pgconv.TimePtrFromPgtype(cancelledAt),
		LinkedAt:    pgconv.TimePtrFromPgtype(linkedAt),
	}, nil
}

func (r *OrderRepository) Save(ctx context.Context, shop, orderID string, lc order.Lifecycle) error {
	_, err := r.db.Exec(ctx, saveOrderSQL, shop, orderID,
		pgconv.TimePtrToPgtype(lc.PaidAt),
		pgconv.StringPtrToPgtype(lc.CustomerID),
		pgconv.TimePtrToPgtype(lc.CancelledAt),
		pgconv.TimePtrToPgtype(lc.LinkedAt))
	if err != nil {
		return infra.WrapRepoErr("failed to save order lifecycle", err)
	}
	return nil
}
