package repository

import (
	"context"

	"serial-inventory/internal/infra"
	"serial-inventory/internal/infra/db"
	"serial-inventory/internal/pkg/pgconv"
	"serial-inventory/internal/usecase/shared"
)

const insertReconciliationTaskSQL = `INSERT INTO reconciliation_tasks (id, shop, order_id, kind, payload, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)`

type ReconciliationRepository struct {
	db db.DBTX
}

func NewReconciliationRepository(db db.DBTX) *ReconciliationRepository {
	return &ReconciliationRepository{db: db}
}

func (r *ReconciliationRepository) Record(ctx context.Context, task shared.ReconciliationTask) error {
	payload := task.Payload
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	_, err := r.db.Exec(ctx, insertReconciliationTaskSQL,
		task.ID, task.Shop, task.OrderID, task.Kind, payload, pgconv.TimeToPgtype(task.CreatedAt))
	if err != nil {
		return infra.WrapRepoErr("failed to record reconciliation task", err)
	}
	return nil
}
