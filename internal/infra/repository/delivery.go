package repository

import (
	"context"
	"time"

	"serial-inventory/internal/infra"
	"serial-inventory/internal/infra/db"
	"serial-inventory/internal/pkg/pgconv"
)

const (
	// An expired row is taken over by the next claim of the same key.
	claimDeliverySQL = `INSERT INTO webhook_deliveries (key, claimed_at, expires_at)
		VALUES ($1, now(), now() + make_interval(secs => $2::double precision))
		ON CONFLICT (key) DO UPDATE
			SET claimed_at = EXCLUDED.claimed_at, expires_at = EXCLUDED.expires_at
			WHERE webhook_deliveries.expires_at <= now()
		RETURNING key`

	forgetDeliverySQL = `DELETE FROM webhook_deliveries WHERE key = $1`

	deleteExpiredDeliveriesSQL = `DELETE FROM webhook_deliveries WHERE expires_at <= now()`
)

// DeliveryRepository records claimed webhook delivery keys in Postgres. It backs
// delivery dedupe when Redis is not configured.
type DeliveryRepository struct {
	db db.DBTX
}

func NewDeliveryRepository(db db.DBTX) *DeliveryRepository {
	return &DeliveryRepository{db: db}
}

func (r *DeliveryRepository) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	var claimed string
	err := r.db.QueryRow(ctx, claimDeliverySQL, key, ttl.Seconds()).Scan(&claimed)
	if pgconv.IsNoRows(err) {
		return false, nil
	}
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim delivery", err)
	}
	return true, nil
}

func (r *DeliveryRepository) Forget(ctx context.Context, key string) error {
	if _, err := r.db.Exec(ctx, forgetDeliverySQL, key); err != nil {
		return infra.WrapRepoErr("failed to forget delivery", err)
	}
	return nil
}

func (r *DeliveryRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteExpiredDeliveriesSQL)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired deliveries", err)
	}
	return tag.RowsAffected(), nil
}
