//go:build unit

package order_test

import (
	"testing"
	"time"

	"serial-inventory/internal/domain/order"
	"serial-inventory/internal/domain/serial"
	"serial-inventory/internal/pkg/errs"
	"serial-inventory/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var at = time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

func strp(s string) *string { return &s }

func numbers(ss []*serial.Serial) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		out = append(out, s.SerialNumber().String())
	}
	return out
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		errIs error
	}{
		{name: "created ok", err: order.OrderCreated{OrderID: "1001", Shop: "s", LineItems: []order.LineItem{{VariantID: "V1", Quantity: 1}}}.Validate()},
		{name: "created missing order", err: order.OrderCreated{Shop: "s"}.Validate(), errIs: order.ErrMissingOrderID},
		{name: "created missing shop", err: order.OrderCreated{OrderID: "1001"}.Validate(), errIs: order.ErrMissingShop},
		{name: "created zero quantity", err: order.OrderCreated{OrderID: "1", Shop: "s", LineItems: []order.LineItem{{VariantID: "V1"}}}.Validate(), errIs: order.ErrInvalidQuantity},
		{name: "paid blank order", err: order.OrderPaid{OrderID: "  ", Shop: "s"}.Validate(), errIs: order.ErrMissingOrderID},
		{name: "cancelled missing shop", err: order.OrderCancelled{OrderID: "1"}.Validate(), errIs: order.ErrMissingShop},
		{name: "refund ok", err: order.RefundCreated{OrderID: "1", Shop: "s"}.Validate()},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.errIs == nil {
				assert.NoError(t, c.err)
				return
			}
			require.ErrorIs(t, c.err, c.errIs)
			assert.True(t, errs.Is(c.err, errs.ErrValidation))
		})
	}
}

func TestReduceOrderCreated(t *testing.T) {
	ev := order.OrderCreated{
		OrderID: "1001",
		Shop:    "shop-a",
		LineItems: []order.LineItem{
			{VariantID: "V1", Quantity: 2},
			{VariantID: "V2", Quantity: 1},
			{VariantID: "V3", Quantity: 4},
		},
	}

	t.Run("links the newest pending reservations per line", func(t *testing.T) {
		st := order.CreatedState{
			Pending: map[string][]*serial.Serial{
				"V1": {
					builder.NewSerialBuilder().WithNumber("V1-NEW").Reserved("P1", "V1", nil).BuildDomain(),
					builder.NewSerialBuilder().WithNumber("V1-MID").Reserved("P1", "V1", nil).BuildDomain(),
					builder.NewSerialBuilder().WithNumber("V1-OLD").Reserved("P1", "V1", nil).BuildDomain(),
				},
				"V3": {
					builder.NewSerialBuilder().WithNumber("V3-ONLY").Reserved("P3", "V3", nil).BuildDomain(),
				},
			},
		}

		plan, err := order.ReduceOrderCreated(ev, st, at)
		require.NoError(t, err)

		assert.Equal(t, []string{"V1-NEW", "V1-MID", "V3-ONLY"}, numbers(plan.Updates))
		for _, s := range plan.Updates {
			assert.Equal(t, serial.StatusReserved, s.Status())
			require.NotNil(t, s.OrderID())
			assert.Equal(t, "1001", *s.OrderID())
		}
		assert.Equal(t, 3, plan.Outcome.Count)
		assert.Equal(t, []string{"V2"}, plan.Outcome.Skipped)
		if diff := cmp.Diff([]order.Shortfall{{VariantID: "V3", Requested: 4, Matched: 1}}, plan.Outcome.Shortfalls); diff != "" {
			t.Errorf("shortfalls (-want +got):\n%s", diff)
		}
	})

	t.Run("redelivery matches nothing new", func(t *testing.T) {
		st := order.CreatedState{
			Pending: map[string][]*serial.Serial{
				"V1": {builder.NewSerialBuilder().Reserved("P1", "V1", nil).BuildDomain()},
			},
			Linked: map[string]int{"V1": 2},
		}
		plan, err := order.ReduceOrderCreated(order.OrderCreated{
			OrderID: "1001", Shop: "shop-a",
			LineItems: []order.LineItem{{VariantID: "V1", Quantity: 2}},
		}, st, at)
		require.NoError(t, err)
		assert.Empty(t, plan.Updates)
		assert.Empty(t, plan.Outcome.Shortfalls)
	})

	t.Run("same variant on two lines consumes distinct serials", func(t *testing.T) {
		st := order.CreatedState{
			Pending: map[string][]*serial.Serial{
				"V1": {
					builder.NewSerialBuilder().WithNumber("A-1").Reserved("P1", "V1", nil).BuildDomain(),
					builder.NewSerialBuilder().WithNumber("A-2").Reserved("P1", "V1", nil).BuildDomain(),
				},
			},
		}
		plan, err := order.ReduceOrderCreated(order.OrderCreated{
			OrderID: "1001", Shop: "shop-a",
			LineItems: []order.LineItem{{VariantID: "V1", Quantity: 1}, {VariantID: "V1", Quantity: 1}},
		}, st, at)
		require.NoError(t, err)
		assert.Equal(t, []string{"A-1", "A-2"}, numbers(plan.Updates))
	})
}

func TestReduceOrderCreated_AfterLaterEvents(t *testing.T) {
	paidAt := at.Add(-time.Minute)
	ev := order.OrderCreated{
		OrderID:   "1001",
		Shop:      "shop-a",
		LineItems: []order.LineItem{{VariantID: "V1", Quantity: 1}},
	}
	pending := func() order.CreatedState {
		return order.CreatedState{Pending: map[string][]*serial.Serial{
			"V1": {builder.NewSerialBuilder().WithNumber("SN-001").Reserved("P1", "V1", nil).BuildDomain()},
		}}
	}

	t.Run("payment seen first sells the serial it links", func(t *testing.T) {
		st := pending()
		st.Lifecycle = order.Lifecycle{PaidAt: &paidAt, CustomerID: strp("C1")}

		plan, err := order.ReduceOrderCreated(ev, st, at)
		require.NoError(t, err)
		require.Len(t, plan.Updates, 1)

		s := plan.Updates[0]
		assert.Equal(t, serial.StatusSold, s.Status())
		assert.Equal(t, "1001", *s.OrderID())
		assert.Equal(t, "C1", *s.CustomerID())
		assert.Equal(t, at, *s.SoldAt())
		assert.Equal(t, 1, plan.Outcome.Count)
		require.NotNil(t, plan.Lifecycle)
		assert.Equal(t, paidAt, *plan.Lifecycle.PaidAt)
		assert.Equal(t, at, *plan.Lifecycle.LinkedAt)
	})

	t.Run("cancellation seen first returns the serial to the pool", func(t *testing.T) {
		st := pending()
		st.Lifecycle = order.Lifecycle{CancelledAt: &paidAt}

		plan, err := order.ReduceOrderCreated(ev, st, at)
		require.NoError(t, err)
		require.Len(t, plan.Updates, 1)

		s := plan.Updates[0]
		assert.Equal(t, serial.StatusAvailable, s.Status())
		assert.Nil(t, s.OrderID())
		assert.Nil(t, s.VariantID())
	})

	t.Run("replay of a cancelled order takes no other reservations", func(t *testing.T) {
		st := pending()
		st.Lifecycle = order.Lifecycle{CancelledAt: &paidAt, LinkedAt: &paidAt}

		plan, err := order.ReduceOrderCreated(ev, st, at)
		require.NoError(t, err)
		assert.Empty(t, plan.Updates)
		assert.Zero(t, plan.Outcome.Count)
	})

	t.Run("paid state in the create payload settles immediately", func(t *testing.T) {
		paid := ev
		paid.Paid = true
		paid.CustomerID = strp("C2")

		plan, err := order.ReduceOrderCreated(paid, pending(), at)
		require.NoError(t, err)
		require.Len(t, plan.Updates, 1)
		assert.Equal(t, serial.StatusSold, plan.Updates[0].Status())
		assert.Equal(t, "C2", *plan.Lifecycle.CustomerID)
	})

	t.Run("plain creation only links", func(t *testing.T) {
		plan, err := order.ReduceOrderCreated(ev, pending(), at)
		require.NoError(t, err)
		require.Len(t, plan.Updates, 1)
		assert.Equal(t, serial.StatusReserved, plan.Updates[0].Status())
		assert.False(t, plan.Lifecycle.Paid())
		assert.False(t, plan.Lifecycle.Cancelled())
	})
}

func TestReduceOrderPaid(t *testing.T) {
	rows := []*serial.Serial{
		builder.NewSerialBuilder().WithNumber("R-1").Reserved("P1", "V1", strp("1001")).BuildDomain(),
		builder.NewSerialBuilder().WithNumber("S-1").Sold("P1", "V1", "1001").BuildDomain(),
		builder.NewSerialBuilder().WithNumber("R-2").Reserved("P1", "V1", strp("2002")).BuildDomain(),
	}

	plan, err := order.ReduceOrderPaid(order.OrderPaid{OrderID: "1001", Shop: "shop-a", CustomerID: strp("C1")}, rows, at)
	require.NoError(t, err)
	require.Len(t, plan.Updates, 1)

	s := plan.Updates[0]
	assert.Equal(t, "R-1", s.SerialNumber().String())
	assert.Equal(t, serial.StatusSold, s.Status())
	assert.Equal(t, at, *s.SoldAt())
	assert.Equal(t, "C1", *s.CustomerID())

	t.Run("no matching rows is success with zero count", func(t *testing.T) {
		plan, err := order.ReduceOrderPaid(order.OrderPaid{OrderID: "9999", Shop: "shop-a"}, rows, at)
		require.NoError(t, err)
		assert.Equal(t, 0, plan.Outcome.Count)
	})
}

func TestReduceOrderCancelled(t *testing.T) {
	rows := []*serial.Serial{
		builder.NewSerialBuilder().Reserved("P1", "V1", strp("1001")).BuildDomain(),
		builder.NewSerialBuilder().Sold("P1", "V1", "1001").BuildDomain(),
		builder.NewSerialBuilder().Assigned("P1", "V1").BuildDomain(),
	}

	plan, err := order.ReduceOrderCancelled(order.OrderCancelled{OrderID: "1001", Shop: "shop-a"}, rows, at)
	require.NoError(t, err)
	assert.Equal(t, 2, plan.Outcome.Count)
	for _, s := range plan.Updates {
		assert.Equal(t, serial.StatusAvailable, s.Status())
		assert.Nil(t, s.OrderID())
		assert.Nil(t, s.VariantID())
		assert.Nil(t, s.SoldAt())
	}
}

func TestReduceRefundCreated(t *testing.T) {
	rows := []*serial.Serial{
		builder.NewSerialBuilder().Sold("P1", "V1", "1001").BuildDomain(),
	}

	t.Run("full refund reverts to assigned", func(t *testing.T) {
		plan, err := order.ReduceRefundCreated(order.RefundCreated{OrderID: "1001", Shop: "shop-a"}, rows, at)
		require.NoError(t, err)
		require.Len(t, plan.Updates, 1)
		s := plan.Updates[0]
		assert.Equal(t, serial.StatusAssigned, s.Status())
		assert.Nil(t, s.OrderID())
		assert.Nil(t, s.SoldAt())
		assert.Equal(t, "V1", *s.VariantID())
		assert.False(t, plan.Outcome.ManualReview)
	})

	t.Run("partial refund changes nothing", func(t *testing.T) {
		plan, err := order.ReduceRefundCreated(order.RefundCreated{
			OrderID: "1001", Shop: "shop-a",
			LineItems: []order.RefundLineItem{{LineItemID: "L1", Quantity: 1}},
		}, rows, at)
		require.NoError(t, err)
		assert.Empty(t, plan.Updates)
		assert.True(t, plan.Outcome.ManualReview)
	})
}
