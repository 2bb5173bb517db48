package shared

import (
	"context"

	"serial-inventory/internal/domain/catalog"
	"serial-inventory/internal/domain/order"
	"serial-inventory/internal/domain/serial"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: read-committed transaction for write operations
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Serials() SerialRepository
	Catalog() CatalogRepository
	Reconciliation() ReconciliationRepository
	Orders() OrderRepository
}

// SerialRepository methods named Lock* take row locks held until the transaction ends.
// Locked rows are returned ordered by id so concurrent callers acquire locks in the same order.
type SerialRepository interface {
	Insert(ctx context.Context, s *serial.Serial) error
	// InsertMissing inserts the serials whose numbers do not exist yet and returns those inserted.
	InsertMissing(ctx context.Context, ss []*serial.Serial) ([]*serial.Serial, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	LockByIDs(ctx context.Context, shop string, ids []uuid.UUID) ([]*serial.Serial, error)
	LockByNumbers(ctx context.Context, shop string, numbers []string) ([]*serial.Serial, error)
	// LockPendingForVariant returns RESERVED serials without an order, most recently reserved first.
	LockPendingForVariant(ctx context.Context, shop, variantID string, limit int) ([]*serial.Serial, error)
	LockByOrder(ctx context.Context, shop, orderID string, statuses ...serial.Status) ([]*serial.Serial, error)
	// LockVariant serializes attachments to one variant until the transaction ends.
	LockVariant(ctx context.Context, shop, variantID string) error
	CountOccupiedForVariant(ctx context.Context, shop, variantID string) (int, error)
	CountLinkedByVariant(ctx context.Context, shop, orderID string) (map[string]int, error)
	Update(ctx context.Context, ss ...*serial.Serial) error
	Delete(ctx context.Context, shop string, id uuid.UUID) error
}

type CatalogRepository interface {
	UpsertProduct(ctx context.Context, p *catalog.Product) error
	UpsertVariant(ctx context.Context, v *catalog.Variant) error
	FindVariant(ctx context.Context, shop, variantID string) (*catalog.Variant, *catalog.Product, error)
	SetProductRequireSerial(ctx context.Context, shop, productID string, required bool) error
	SetVariantRequireSerial(ctx context.Context, shop, variantID string, required bool) error
}

type ReconciliationRepository interface {
	Record(ctx context.Context, task ReconciliationTask) error
}

// OrderRepository keeps the lifecycle seen so far for each order.
type OrderRepository interface {
	// Lock returns the order's lifecycle, creating an empty one, and holds its row
	// until the transaction ends. Handlers for one order run one at a time.
	Lock(ctx context.Context, shop, orderID string) (order.Lifecycle, error)
	Save(ctx context.Context, shop, orderID string, lc order.Lifecycle) error
}
