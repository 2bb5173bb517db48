package commands

import (
	"context"
	"log/slog"

	"serial-inventory/internal/domain/order"
	"serial-inventory/internal/domain/serial"
	"serial-inventory/internal/pkg/clock"
	"serial-inventory/internal/pkg/errs"
	"serial-inventory/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrUnknownTopic = errs.Mark(errs.New("unsupported order event topic"), errs.ErrValidation)

// Event is one decoded order-lifecycle delivery. Exactly one payload field matches Topic.
type Event struct {
	Topic      order.Topic
	DeliveryID string
	Created    *order.OrderCreated
	Paid       *order.OrderPaid
	Cancelled  *order.OrderCancelled
	Refund     *order.RefundCreated
	// Raw is the payload as received; kept on reconciliation tasks.
	Raw []byte
}

type ReconcileResult struct {
	Topic     order.Topic
	Shop      string
	OrderID   string
	Duplicate bool
	Outcome   order.Outcome
}

type Reconciler interface {
	Handle(ctx context.Context, ev Event) (*ReconcileResult, error)
	OnOrderCreated(ctx context.Context, deliveryID string, ev order.OrderCreated) (*ReconcileResult, error)
	OnOrderPaid(ctx context.Context, deliveryID string, ev order.OrderPaid) (*ReconcileResult, error)
	OnOrderCancelled(ctx context.Context, deliveryID string, ev order.OrderCancelled) (*ReconcileResult, error)
	OnRefundCreated(ctx context.Context, deliveryID string, ev order.RefundCreated, raw []byte) (*ReconcileResult, error)
}

type reconcilerImpl struct {
	uow     shared.UnitOfWork
	deduper Deduper
	clock   clock.Clock
	opts    Options
}

func NewReconciler(uow shared.UnitOfWork, deduper Deduper, clk clock.Clock, opts Options) Reconciler {
	return &reconcilerImpl{uow: uow, deduper: deduper, clock: clk, opts: opts}
}

func (r *reconcilerImpl) Handle(ctx context.Context, ev Event) (*ReconcileResult, error) {
	switch {
	case ev.Topic == order.TopicOrderCreated && ev.Created != nil:
		return r.OnOrderCreated(ctx, ev.DeliveryID, *ev.Created)
	case ev.Topic == order.TopicOrderPaid && ev.Paid != nil:
		return r.OnOrderPaid(ctx, ev.DeliveryID, *ev.Paid)
	case ev.Topic == order.TopicOrderCancelled && ev.Cancelled != nil:
		return r.OnOrderCancelled(ctx, ev.DeliveryID, *ev.Cancelled)
	case ev.Topic == order.TopicRefundCreated && ev.Refund != nil:
		return r.OnRefundCreated(ctx, ev.DeliveryID, *ev.Refund, ev.Raw)
	default:
		return nil, errs.Wrapf(ErrUnknownTopic, "topic %q", ev.Topic)
	}
}

// OnOrderCreated links pending reservations to the new order. Variants the catalog
// marks as not serialized are skipped; unknown variants are still matched. When the
// order's paid or cancelled event was processed first, the linked serials are
// settled in the same transaction.
func (r *reconcilerImpl) OnOrderCreated(ctx context.Context, deliveryID string, ev order.OrderCreated) (*ReconcileResult, error) {
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	return r.run(ctx, order.TopicOrderCreated, deliveryID, ev.Shop, ev.OrderID, func(ctx context.Context, tx shared.Tx) (order.Plan, error) {
		lc, err := tx.Orders().Lock(ctx, ev.Shop, ev.OrderID)
		if err != nil {
			return order.Plan{}, err
		}

		wanted := make(map[string]int)
		var variants []string
		for _, li := range ev.LineItems {
			if li.VariantID == "" {
				continue
			}
			if _, ok := wanted[li.VariantID]; !ok {
				variants = append(variants, li.VariantID)
			}
			wanted[li.VariantID] += li.Quantity
		}

		st := order.CreatedState{Pending: make(map[string][]*serial.Serial, len(variants)), Lifecycle: lc}
		for _, variantID := range variants {
			tracked, err := variantTracksSerials(ctx, tx, ev.Shop, variantID)
			if err != nil {
				return order.Plan{}, err
			}
			if !tracked {
				continue
			}
			rows, err := tx.Serials().LockPendingForVariant(ctx, ev.Shop, variantID, wanted[variantID])
			if err != nil {
				return order.Plan{}, err
			}
			st.Pending[variantID] = rows
		}

		linked, err := tx.Serials().CountLinkedByVariant(ctx, ev.Shop, ev.OrderID)
		if err != nil {
			return order.Plan{}, err
		}
		st.Linked = linked

		return order.ReduceOrderCreated(ev, st, r.clock.Now())
	})
}

func (r *reconcilerImpl) OnOrderPaid(ctx context.Context, deliveryID string, ev order.OrderPaid) (*ReconcileResult, error) {
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	return r.run(ctx, order.TopicOrderPaid, deliveryID, ev.Shop, ev.OrderID, func(ctx context.Context, tx shared.Tx) (order.Plan, error) {
		lc, err := tx.Orders().Lock(ctx, ev.Shop, ev.OrderID)
		if err != nil {
			return order.Plan{}, err
		}
		rows, err := tx.Serials().LockByOrder(ctx, ev.Shop, ev.OrderID, serial.StatusReserved)
		if err != nil {
			return order.Plan{}, err
		}
		now := r.clock.Now()
		plan, err := order.ReduceOrderPaid(ev, rows, now)
		if err != nil {
			return order.Plan{}, err
		}
		lc = lc.MarkPaid(now, ev.CustomerID)
		plan.Lifecycle = &lc
		return plan, nil
	})
}

func (r *reconcilerImpl) OnOrderCancelled(ctx context.Context, deliveryID string, ev order.OrderCancelled) (*ReconcileResult, error) {
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	return r.run(ctx, order.TopicOrderCancelled, deliveryID, ev.Shop, ev.OrderID, func(ctx context.Context, tx shared.Tx) (order.Plan, error) {
		lc, err := tx.Orders().Lock(ctx, ev.Shop, ev.OrderID)
		if err != nil {
			return order.Plan{}, err
		}
		rows, err := tx.Serials().LockByOrder(ctx, ev.Shop, ev.OrderID, serial.StatusReserved, serial.StatusSold)
		if err != nil {
			return order.Plan{}, err
		}
		now := r.clock.Now()
		plan, err := order.ReduceOrderCancelled(ev, rows, now)
		if err != nil {
			return order.Plan{}, err
		}
		lc = lc.MarkCancelled(now)
		plan.Lifecycle = &lc
		return plan, nil
	})
}

// OnRefundCreated reverts a full refund. A partial refund is recorded for manual review.
func (r *reconcilerImpl) OnRefundCreated(ctx context.Context, deliveryID string, ev order.RefundCreated, raw []byte) (*ReconcileResult, error) {
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	return r.run(ctx, order.TopicRefundCreated, deliveryID, ev.Shop, ev.OrderID, func(ctx context.Context, tx shared.Tx) (order.Plan, error) {
		if !ev.IsFull() {
			plan, err := order.ReduceRefundCreated(ev, nil, r.clock.Now())
			if err != nil {
				return order.Plan{}, err
			}
			task := shared.ReconciliationTask{
				ID:        uuid.New(),
				Shop:      ev.Shop,
				OrderID:   ev.OrderID,
				Kind:      shared.ReconciliationKindPartialRefund,
				Payload:   raw,
				CreatedAt: r.clock.Now(),
			}
			return plan, tx.Reconciliation().Record(ctx, task)
		}

		rows, err := tx.Serials().LockByOrder(ctx, ev.Shop, ev.OrderID, serial.StatusSold)
		if err != nil {
			return order.Plan{}, err
		}
		return order.ReduceRefundCreated(ev, rows, r.clock.Now())
	})
}

// run claims the delivery id, reduces inside one transaction and writes the plan.
// A failed run forgets the claim so the redelivery is processed.
func (r *reconcilerImpl) run(
	ctx context.Context,
	topic order.Topic,
	deliveryID, shop, orderID string,
	reduce func(ctx context.Context, tx shared.Tx) (order.Plan, error),
) (*ReconcileResult, error) {
	result := &ReconcileResult{Topic: topic, Shop: shop, OrderID: orderID}
	key := dedupeKey(topic, shop, deliveryID)

	if key != "" {
		claimed, err := r.deduper.Claim(ctx, key, r.opts.DedupeTTL)
		if err != nil {
			slog.WarnContext(ctx, "delivery dedupe unavailable, processing anyway",
				"topic", string(topic), "delivery_id", deliveryID, "error", err.Error())
			key = ""
		} else if !claimed {
			result.Duplicate = true
			slog.InfoContext(ctx, "duplicate delivery ignored",
				"topic", string(topic), "shop", shop, "order_id", orderID, "delivery_id", deliveryID)
			return result, nil
		}
	}

	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		plan, err := reduce(ctx, tx)
		if err != nil {
			return err
		}
		if err := tx.Serials().Update(ctx, plan.Updates...); err != nil {
			return err
		}
		if plan.Lifecycle != nil {
			if err := tx.Orders().Save(ctx, shop, orderID, *plan.Lifecycle); err != nil {
				return err
			}
		}
		result.Outcome = plan.Outcome
		return nil
	})
	if err != nil {
		if key != "" {
			if ferr := r.deduper.Forget(ctx, key); ferr != nil {
				slog.WarnContext(ctx, "failed to forget delivery", "delivery_id", deliveryID, "error", ferr.Error())
			}
		}
		slog.ErrorContext(ctx, "order event failed",
			"topic", string(topic), "shop", shop, "order_id", orderID, "error", err.Error())
		return nil, err
	}

	logOutcome(ctx, result)
	return result, nil
}

func logOutcome(ctx context.Context, res *ReconcileResult) {
	attrs := []any{
		"topic", string(res.Topic),
		"shop", res.Shop,
		"order_id", res.OrderID,
		"count", res.Outcome.Count,
	}
	if len(res.Outcome.Skipped) > 0 {
		attrs = append(attrs, "skipped_variants", res.Outcome.Skipped)
	}
	for _, s := range res.Outcome.Shortfalls {
		slog.WarnContext(ctx, "order line short of reserved serials",
			"order_id", res.OrderID, "variant_id", s.VariantID, "requested", s.Requested, "matched", s.Matched)
	}
	if res.Outcome.ManualReview {
		slog.WarnContext(ctx, "partial refund needs manual reconciliation", "shop", res.Shop, "order_id", res.OrderID)
	}
	slog.InfoContext(ctx, "order event reconciled", attrs...)
}

func variantTracksSerials(ctx context.Context, tx shared.Tx, shop, variantID string) (bool, error) {
	v, p, err := tx.Catalog().FindVariant(ctx, shop, variantID)
	if errs.Is(err, errs.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return v.RequiresSerial(p), nil
}

func dedupeKey(topic order.Topic, shop, deliveryID string) string {
	if deliveryID == "" {
		return ""
	}
	return "webhook:" + shop + ":" + string(topic) + ":" + deliveryID
}
