package shared

import (
	"time"

	"github.com/google/uuid"
)

const ReconciliationKindPartialRefund = "partial_refund"

// ReconciliationTask is an event that needs a human decision.
type ReconciliationTask struct {
	ID        uuid.UUID
	Shop      string
	OrderID   string
	Kind      string
	Payload   []byte
	CreatedAt time.Time
}
