package order

import (
	"time"

	"serial-inventory/internal/domain/serial"
)

// Shortfall records a line item that could not be matched to enough reserved serials.
type Shortfall struct {
	VariantID string
	Requested int
	Matched   int
}

type Outcome struct {
	Count        int
	Skipped      []string
	Shortfalls   []Shortfall
	ManualReview bool
}

// Plan is what a reducer decided: the serials to write back and a summary.
// Lifecycle, when set, is the order state to store.
type Plan struct {
	Updates   []*serial.Serial
	Outcome   Outcome
	Lifecycle *Lifecycle
}

// CreatedState is the store state an order-created event is reconciled against.
// Pending holds, per variant, RESERVED serials without an order, most recently
// updated first. A line item whose variant has no Pending entry does not track
// serials and is skipped. Linked counts serials already tied to this order, so a
// redelivered event matches nothing new. Lifecycle is the stored order state;
// serials linked to an order already paid or cancelled are settled in the same plan.
type CreatedState struct {
	Pending   map[string][]*serial.Serial
	Linked    map[string]int
	Lifecycle Lifecycle
}

func ReduceOrderCreated(ev OrderCreated, st CreatedState, at time.Time) (Plan, error) {
	var plan Plan
	orderID := ev.OrderID

	lc := st.Lifecycle
	if ev.Paid {
		lc = lc.MarkPaid(at, ev.CustomerID)
	}
	if ev.Cancelled {
		lc = lc.MarkCancelled(at)
	}
	replayed := lc.LinkedAt != nil
	lc = lc.MarkLinked(at)
	plan.Lifecycle = &lc

	// Serials of a cancelled order went back to the pool; a replay must not take others.
	if lc.Cancelled() && replayed {
		return plan, nil
	}
	settle := settlement(orderID, lc, at)

	taken := make(map[string]int)
	linked := make(map[string]int, len(st.Linked))
	for k, v := range st.Linked {
		linked[k] = v
	}

	for _, li := range ev.LineItems {
		if li.VariantID == "" {
			continue
		}
		pending, tracked := st.Pending[li.VariantID]
		if !tracked {
			plan.Outcome.Skipped = append(plan.Outcome.Skipped, li.VariantID)
			continue
		}

		need := li.Quantity
		already := min(linked[li.VariantID], need)
		linked[li.VariantID] -= already
		need -= already

		matched := already
		for need > 0 && taken[li.VariantID] < len(pending) {
			s := pending[taken[li.VariantID]]
			taken[li.VariantID]++
			next, err := serial.Apply(s, serial.Transition{Action: serial.ActionLinkOrder, OrderID: &orderID, At: at})
			if err != nil {
				return Plan{}, err
			}
			if settle != nil {
				if next, err = serial.Apply(next, *settle); err != nil {
					return Plan{}, err
				}
			}
			plan.Updates = append(plan.Updates, next)
			need--
			matched++
		}
		if matched < li.Quantity {
			plan.Outcome.Shortfalls = append(plan.Outcome.Shortfalls, Shortfall{
				VariantID: li.VariantID,
				Requested: li.Quantity,
				Matched:   matched,
			})
		}
	}

	plan.Outcome.Count = len(plan.Updates)
	return plan, nil
}

// settlement is the follow-up for serials linked to an order whose paid or
// cancelled event has already been seen. Cancellation wins over payment.
func settlement(orderID string, lc Lifecycle, at time.Time) *serial.Transition {
	switch {
	case lc.Cancelled():
		return &serial.Transition{Action: serial.ActionCancel, OrderID: &orderID, At: at}
	case lc.Paid():
		return &serial.Transition{Action: serial.ActionPay, OrderID: &orderID, CustomerID: lc.CustomerID, At: at}
	default:
		return nil
	}
}

// ReduceOrderPaid sells every RESERVED serial linked to the order.
func ReduceOrderPaid(ev OrderPaid, rows []*serial.Serial, at time.Time) (Plan, error) {
	orderID := ev.OrderID
	return reduceEach(rows, func(s *serial.Serial) bool {
		return s.Status() == serial.StatusReserved
	}, serial.Transition{Action: serial.ActionPay, OrderID: &orderID, CustomerID: ev.CustomerID, At: at})
}

// ReduceOrderCancelled returns every RESERVED or SOLD serial of the order to the pool.
func ReduceOrderCancelled(ev OrderCancelled, rows []*serial.Serial, at time.Time) (Plan, error) {
	orderID := ev.OrderID
	return reduceEach(rows, func(s *serial.Serial) bool {
		return s.Status() == serial.StatusReserved || s.Status() == serial.StatusSold
	}, serial.Transition{Action: serial.ActionCancel, OrderID: &orderID, At: at})
}

// ReduceRefundCreated reverts SOLD serials to ASSIGNED on a full refund.
// Partial refunds are not guessed at and only flag the order for manual review.
func ReduceRefundCreated(ev RefundCreated, rows []*serial.Serial, at time.Time) (Plan, error) {
	if !ev.IsFull() {
		return Plan{Outcome: Outcome{ManualReview: true}}, nil
	}
	orderID := ev.OrderID
	return reduceEach(rows, func(s *serial.Serial) bool {
		return s.Status() == serial.StatusSold
	}, serial.Transition{Action: serial.ActionRefund, OrderID: &orderID, At: at})
}

func reduceEach(rows []*serial.Serial, eligible func(*serial.Serial) bool, tr serial.Transition) (Plan, error) {
	var plan Plan
	for _, s := range rows {
		if !eligible(s) || s.OrderID() == nil || *s.OrderID() != *tr.OrderID {
			continue
		}
		next, err := serial.Apply(s, tr)
		if err != nil {
			return Plan{}, err
		}
		plan.Updates = append(plan.Updates, next)
	}
	plan.Outcome.Count = len(plan.Updates)
	return plan, nil
}
