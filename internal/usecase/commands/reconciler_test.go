//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"serial-inventory/internal/domain/catalog"
	"serial-inventory/internal/domain/order"
	"serial-inventory/internal/domain/serial"
	"serial-inventory/internal/pkg/clock"
	"serial-inventory/internal/pkg/errs"
	"serial-inventory/internal/usecase/commands"
	"serial-inventory/internal/usecase/shared"
	"serial-inventory/tests/common/builder"
	"serial-inventory/tests/common/memstore"
	commandsmock "serial-inventory/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type alwaysNew struct{}

func (alwaysNew) Claim(context.Context, string, time.Duration) (bool, error) { return true, nil }
func (alwaysNew) Forget(context.Context, string) error                       { return nil }

type fixture struct {
	store    *memstore.Store
	serials  commands.SerialCommands
	checkout commands.CheckoutCommands
	recon    commands.Reconciler
}

func newFixture(t *testing.T, deduper commands.Deduper) *fixture {
	t.Helper()
	store := memstore.New()
	clk := clock.NewMockClock(now)
	opts := multi()
	return &fixture{
		store:    store,
		serials:  commands.NewSerialUseCase(store, clk, opts),
		checkout: commands.NewCheckoutUseCase(store, clk, opts),
		recon:    commands.NewReconciler(store, deduper, clk, opts),
	}
}

// soldSerial drives SN-001 through the whole checkout lifecycle for order 1001.
func (f *fixture) soldSerial(t *testing.T) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	s, err := f.serials.Create(ctx, shop, commands.CreateSerialInput{SerialNumber: "SN-001"})
	require.NoError(t, err)
	require.Equal(t, serial.StatusAvailable, s.Status())

	_, err = f.serials.Assign(ctx, shop, commands.AssignInput{SerialIDs: []uuid.UUID{s.ID()}, ProductID: "P1", VariantID: "V1"})
	require.NoError(t, err)
	require.Equal(t, serial.StatusAssigned, f.store.Get(s.ID()).Status)

	_, err = f.checkout.ReserveAssigned(ctx, shop, []uuid.UUID{s.ID()}, nil)
	require.NoError(t, err)
	require.Equal(t, serial.StatusReserved, f.store.Get(s.ID()).Status)

	res, err := f.recon.OnOrderCreated(ctx, "", order.OrderCreated{
		OrderID: "1001", Shop: shop,
		LineItems: []order.LineItem{{VariantID: "V1", Quantity: 1}},
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.Outcome.Count)
	require.Equal(t, "1001", *f.store.Get(s.ID()).OrderID)

	res, err = f.recon.OnOrderPaid(ctx, "", order.OrderPaid{OrderID: "1001", Shop: shop})
	require.NoError(t, err)
	require.Equal(t, 1, res.Outcome.Count)
	return s.ID()
}

func TestReconciler_HappyPath(t *testing.T) {
	f := newFixture(t, alwaysNew{})
	id := f.soldSerial(t)

	got := f.store.Get(id)
	assert.Equal(t, serial.StatusSold, got.Status)
	require.NotNil(t, got.SoldAt)
	assert.Equal(t, "1001", *got.OrderID)
	assert.NoError(t, serial.Reconstruct(got).CheckInvariants())

	t.Run("paid redelivery is a no-op", func(t *testing.T) {
		before := f.store.Get(id)
		res, err := f.recon.OnOrderPaid(context.Background(), "", order.OrderPaid{OrderID: "1001", Shop: shop})
		require.NoError(t, err)
		assert.Equal(t, 0, res.Outcome.Count)
		assert.Equal(t, before, f.store.Get(id))
	})

	t.Run("created redelivery links nothing new", func(t *testing.T) {
		res, err := f.recon.OnOrderCreated(context.Background(), "", order.OrderCreated{
			OrderID: "1001", Shop: shop,
			LineItems: []order.LineItem{{VariantID: "V1", Quantity: 1}},
		})
		require.NoError(t, err)
		assert.Equal(t, 0, res.Outcome.Count)
		assert.Empty(t, res.Outcome.Shortfalls)
	})
}

func TestReconciler_Cancellation(t *testing.T) {
	f := newFixture(t, alwaysNew{})
	id := f.soldSerial(t)

	res, err := f.recon.OnOrderCancelled(context.Background(), "", order.OrderCancelled{OrderID: "1001", Shop: shop})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Outcome.Count)

	got := f.store.Get(id)
	assert.Equal(t, serial.StatusAvailable, got.Status)
	assert.Nil(t, got.ProductID)
	assert.Nil(t, got.VariantID)
	assert.Nil(t, got.OrderID)
	assert.Nil(t, got.SoldAt)

	res, err = f.recon.OnOrderCancelled(context.Background(), "", order.OrderCancelled{OrderID: "1001", Shop: shop})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Outcome.Count)
}

func TestReconciler_Refund(t *testing.T) {
	t.Run("full refund reverts to assigned", func(t *testing.T) {
		f := newFixture(t, alwaysNew{})
		id := f.soldSerial(t)

		res, err := f.recon.OnRefundCreated(context.Background(), "", order.RefundCreated{OrderID: "1001", Shop: shop}, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Outcome.Count)

		got := f.store.Get(id)
		assert.Equal(t, serial.StatusAssigned, got.Status)
		assert.Nil(t, got.OrderID)
		assert.Nil(t, got.SoldAt)
		assert.Equal(t, "P1", *got.ProductID)
		assert.Equal(t, "V1", *got.VariantID)
	})

	t.Run("partial refund is recorded for review", func(t *testing.T) {
		f := newFixture(t, alwaysNew{})
		id := f.soldSerial(t)
		raw := []byte(`{"order_id":1001,"refund_line_items":[{"line_item_id":1,"quantity":1}]}`)

		res, err := f.recon.OnRefundCreated(context.Background(), "", order.RefundCreated{
			OrderID: "1001", Shop: shop,
			LineItems: []order.RefundLineItem{{LineItemID: "1", Quantity: 1}},
		}, raw)
		require.NoError(t, err)
		assert.True(t, res.Outcome.ManualReview)
		assert.Equal(t, serial.StatusSold, f.store.Get(id).Status)

		tasks := f.store.Tasks()
		require.Len(t, tasks, 1)
		assert.Equal(t, shared.ReconciliationKindPartialRefund, tasks[0].Kind)
		assert.Equal(t, "1001", tasks[0].OrderID)
		assert.JSONEq(t, string(raw), string(tasks[0].Payload))
	})
}

func TestReconciler_OrderCreated(t *testing.T) {
	ctx := context.Background()

	t.Run("variants marked as not serialized are skipped", func(t *testing.T) {
		f := newFixture(t, alwaysNew{})
		f.store.SeedVariant(catalog.Product{Shop: shop, ID: "P2"}, catalog.Variant{Shop: shop, ID: "V2", ProductID: "P2"})
		pending := builder.NewSerialBuilder().Reserved("P2", "V2", nil).BuildDomain()
		f.store.Seed(pending)

		res, err := f.recon.OnOrderCreated(ctx, "", order.OrderCreated{
			OrderID: "1001", Shop: shop,
			LineItems: []order.LineItem{{VariantID: "V2", Quantity: 1}},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"V2"}, res.Outcome.Skipped)
		assert.Nil(t, f.store.Get(pending.ID()).OrderID)
	})

	t.Run("shortfall is reported, not failed", func(t *testing.T) {
		f := newFixture(t, alwaysNew{})
		f.store.Seed(builder.NewSerialBuilder().Reserved("P1", "V1", nil).BuildDomain())

		res, err := f.recon.OnOrderCreated(ctx, "", order.OrderCreated{
			OrderID: "1001", Shop: shop,
			LineItems: []order.LineItem{{VariantID: "V1", Quantity: 3}},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Outcome.Count)
		require.Len(t, res.Outcome.Shortfalls, 1)
		assert.Equal(t, 1, res.Outcome.Shortfalls[0].Matched)
	})

	t.Run("missing order id is rejected before the store", func(t *testing.T) {
		f := newFixture(t, alwaysNew{})
		_, err := f.recon.OnOrderCreated(ctx, "", order.OrderCreated{Shop: shop})
		assert.True(t, errs.Is(err, errs.ErrValidation))
		assert.Zero(t, f.store.Commits)
	})
}

func TestReconciler_OutOfOrder(t *testing.T) {
	ctx := context.Background()
	created := order.OrderCreated{
		OrderID: "1001", Shop: shop,
		LineItems: []order.LineItem{{VariantID: "V1", Quantity: 1}},
	}

	t.Run("paid before created still sells the reservation", func(t *testing.T) {
		f := newFixture(t, alwaysNew{})
		pending := builder.NewSerialBuilder().WithNumber("SN-001").Reserved("P1", "V1", nil).BuildDomain()
		f.store.Seed(pending)

		res, err := f.recon.OnOrderPaid(ctx, "", order.OrderPaid{OrderID: "1001", Shop: shop, CustomerID: strp("C1")})
		require.NoError(t, err)
		assert.Equal(t, 0, res.Outcome.Count)
		assert.True(t, f.store.Order(shop, "1001").Paid())

		res, err = f.recon.OnOrderCreated(ctx, "", created)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Outcome.Count)

		got := f.store.Get(pending.ID())
		assert.Equal(t, serial.StatusSold, got.Status)
		assert.Equal(t, "1001", *got.OrderID)
		assert.Equal(t, "C1", *got.CustomerID)
		require.NotNil(t, got.SoldAt)
		assert.NoError(t, serial.Reconstruct(got).CheckInvariants())
	})

	t.Run("cancelled before created releases the reservation", func(t *testing.T) {
		f := newFixture(t, alwaysNew{})
		pending := builder.NewSerialBuilder().WithNumber("SN-002").Reserved("P1", "V1", nil).BuildDomain()
		other := builder.NewSerialBuilder().WithNumber("SN-003").Reserved("P1", "V1", nil).BuildDomain()
		f.store.Seed(pending)

		_, err := f.recon.OnOrderCancelled(ctx, "", order.OrderCancelled{OrderID: "1001", Shop: shop})
		require.NoError(t, err)

		res, err := f.recon.OnOrderCreated(ctx, "", created)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Outcome.Count)
		got := f.store.Get(pending.ID())
		assert.Equal(t, serial.StatusAvailable, got.Status)
		assert.Nil(t, got.OrderID)

		f.store.Seed(other)
		res, err = f.recon.OnOrderCreated(ctx, "", created)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Outcome.Count)
		assert.Equal(t, serial.StatusReserved, f.store.Get(other.ID()).Status)
	})

	t.Run("in-order delivery records the lifecycle", func(t *testing.T) {
		f := newFixture(t, alwaysNew{})
		f.soldSerial(t)

		lc := f.store.Order(shop, "1001")
		require.NotNil(t, lc.LinkedAt)
		require.NotNil(t, lc.PaidAt)
		assert.False(t, lc.Cancelled())
	})
}

func TestReconciler_Dedupe(t *testing.T) {
	ctx := context.Background()
	ev := order.OrderPaid{OrderID: "1001", Shop: shop}
	key := "webhook:" + shop + ":orders/paid:delivery-1"

	t.Run("duplicate delivery skips the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		deduper := commandsmock.NewMockDeduper(ctrl)
		deduper.EXPECT().Claim(gomock.Any(), key, time.Hour).Return(false, nil)

		f := newFixture(t, deduper)
		res, err := f.recon.OnOrderPaid(ctx, "delivery-1", ev)
		require.NoError(t, err)
		assert.True(t, res.Duplicate)
		assert.Zero(t, f.store.Commits)
	})

	t.Run("failed delivery is forgotten for redelivery", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		deduper := commandsmock.NewMockDeduper(ctrl)
		gomock.InOrder(
			deduper.EXPECT().Claim(gomock.Any(), key, time.Hour).Return(true, nil),
			deduper.EXPECT().Forget(gomock.Any(), key).Return(nil),
		)

		f := newFixture(t, deduper)
		f.store.FailNextUpdate = errs.Mark(errs.New("connection reset"), errs.ErrDatabaseOperationFailed)

		_, err := f.recon.OnOrderPaid(ctx, "delivery-1", ev)
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrDatabaseOperationFailed))
	})

	t.Run("dedupe outage does not block processing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		deduper := commandsmock.NewMockDeduper(ctrl)
		deduper.EXPECT().Claim(gomock.Any(), key, time.Hour).Return(false, assert.AnError)

		f := newFixture(t, deduper)
		res, err := f.recon.OnOrderPaid(ctx, "delivery-1", ev)
		require.NoError(t, err)
		assert.False(t, res.Duplicate)
		assert.Equal(t, 1, f.store.Commits)
	})
}

func TestReconciler_Handle(t *testing.T) {
	f := newFixture(t, alwaysNew{})

	_, err := f.recon.Handle(context.Background(), commands.Event{Topic: order.TopicOrderPaid})
	require.ErrorIs(t, err, commands.ErrUnknownTopic)

	res, err := f.recon.Handle(context.Background(), commands.Event{
		Topic:     order.TopicOrderCancelled,
		Cancelled: &order.OrderCancelled{OrderID: "1001", Shop: shop},
	})
	require.NoError(t, err)
	assert.Equal(t, order.TopicOrderCancelled, res.Topic)
}
