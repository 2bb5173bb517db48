package order

import "time"

// Lifecycle is what has been seen of an order's payment and cancellation.
// Events for one order can arrive in any order, so orders/create consults it
// to settle serials whose paid or cancelled event was processed first.
type Lifecycle struct {
	PaidAt      *time.Time
	CustomerID  *string
	CancelledAt *time.Time
	// LinkedAt is set once orders/create has been reconciled.
	LinkedAt *time.Time
}

func (l Lifecycle) Paid() bool      { return l.PaidAt != nil }
func (l Lifecycle) Cancelled() bool { return l.CancelledAt != nil }

// MarkPaid keeps the first payment time and the latest known customer.
func (l Lifecycle) MarkPaid(at time.Time, customerID *string) Lifecycle {
	if l.PaidAt == nil {
		l.PaidAt = &at
	}
	if customerID != nil {
		c := *customerID
		l.CustomerID = &c
	}
	return l
}

func (l Lifecycle) MarkCancelled(at time.Time) Lifecycle {
	if l.CancelledAt == nil {
		l.CancelledAt = &at
	}
	return l
}

func (l Lifecycle) MarkLinked(at time.Time) Lifecycle {
	if l.LinkedAt == nil {
		l.LinkedAt = &at
	}
	return l
}
