//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"serial-inventory/internal/domain/catalog"
	"serial-inventory/internal/domain/serial"
	"serial-inventory/internal/pkg/clock"
	"serial-inventory/internal/pkg/errs"
	"serial-inventory/internal/usecase/commands"
	"serial-inventory/internal/usecase/shared"
	"serial-inventory/tests/common/builder"
	"serial-inventory/tests/common/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCheckout(t *testing.T, opts commands.Options) (commands.CheckoutCommands, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	return commands.NewCheckoutUseCase(store, clock.NewMockClock(now), opts), store
}

func TestCheckoutCommands_ReserveAssigned(t *testing.T) {
	ctx := context.Background()

	t.Run("reserves without order and applies the hold", func(t *testing.T) {
		uc, store := newCheckout(t, commands.Options{Hold: 15 * time.Minute})
		a := builder.NewSerialBuilder().Assigned("P1", "V1").BuildDomain()
		store.Seed(a)

		n, err := uc.ReserveAssigned(ctx, shop, []uuid.UUID{a.ID()}, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		got := store.Get(a.ID())
		assert.Equal(t, serial.StatusReserved, got.Status)
		assert.Nil(t, got.OrderID)
		assert.Equal(t, now, *got.ReservedAt)
		assert.Equal(t, now.Add(15*time.Minute), *got.ReservedUntil)
	})

	t.Run("one unassigned serial blocks the batch", func(t *testing.T) {
		uc, store := newCheckout(t, multi())
		a := builder.NewSerialBuilder().Assigned("P1", "V1").BuildDomain()
		b := builder.NewSerialBuilder().WithNumber("SN-FREE").BuildDomain()
		store.Seed(a, b)

		_, err := uc.ReserveAssigned(ctx, shop, []uuid.UUID{a.ID(), b.ID()}, strp("1001"))
		var pm *shared.PartialMatchError
		require.True(t, errs.As(err, &pm))
		assert.Equal(t, "SN-FREE", pm.Failures[0].Ref)
		assert.Equal(t, serial.ErrNotAssigned.Error(), pm.Failures[0].Reason)
		assert.Equal(t, serial.StatusAssigned, store.Get(a.ID()).Status)
	})
}

func TestCheckoutCommands_ReserveBySerialNumber(t *testing.T) {
	ctx := context.Background()

	t.Run("unassigned serial is attached with catalog product", func(t *testing.T) {
		uc, store := newCheckout(t, multi())
		store.SeedVariant(catalog.Product{Shop: shop, ID: "P1"}, catalog.Variant{Shop: shop, ID: "V1", ProductID: "P1"})
		store.Seed(builder.NewSerialBuilder().WithNumber("SN-POS").BuildDomain())

		s, err := uc.ReserveBySerialNumber(ctx, shop, commands.ReserveBySerialInput{SerialNumber: "SN-POS", VariantID: "V1", OrderID: strp("1001")})
		require.NoError(t, err)
		assert.Equal(t, serial.StatusReserved, s.Status())
		assert.Equal(t, "P1", *s.ProductID())
		assert.Equal(t, "1001", *s.OrderID())
	})

	t.Run("unknown variant cannot be resolved", func(t *testing.T) {
		uc, store := newCheckout(t, multi())
		store.Seed(builder.NewSerialBuilder().WithNumber("SN-POS2").BuildDomain())

		_, err := uc.ReserveBySerialNumber(ctx, shop, commands.ReserveBySerialInput{SerialNumber: "SN-POS2", VariantID: "V9"})
		require.ErrorIs(t, err, commands.ErrVariantNotFound)
	})

	t.Run("named failures", func(t *testing.T) {
		uc, store := newCheckout(t, multi())
		store.Seed(builder.NewSerialBuilder().WithNumber("SN-TAKEN").Assigned("P1", "V1").BuildDomain())

		_, err := uc.ReserveBySerialNumber(ctx, shop, commands.ReserveBySerialInput{SerialNumber: "SN-NOPE", VariantID: "V1", ProductID: "P1"})
		assert.True(t, errs.Is(err, errs.ErrNotFound))

		_, err = uc.ReserveBySerialNumber(ctx, shop, commands.ReserveBySerialInput{SerialNumber: "SN-TAKEN", VariantID: "V1", ProductID: "P1"})
		require.ErrorIs(t, err, serial.ErrNotAvailable)
	})

	t.Run("concurrent reservations of one serial", func(t *testing.T) {
		uc, store := newCheckout(t, multi())
		store.Seed(builder.NewSerialBuilder().WithNumber("SN-RACE").BuildDomain())

		var wg sync.WaitGroup
		results := make([]error, 2)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, results[i] = uc.ReserveBySerialNumber(ctx, shop, commands.ReserveBySerialInput{
					SerialNumber: "SN-RACE", VariantID: "V1", ProductID: "P1",
				})
			}(i)
		}
		wg.Wait()

		var ok, refused int
		for _, err := range results {
			switch {
			case err == nil:
				ok++
			case errs.Is(err, errs.ErrPreconditionFailed):
				refused++
			}
		}
		assert.Equal(t, 1, ok)
		assert.Equal(t, 1, refused)
	})
}

func TestCheckoutCommands_MarkSold(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps stored order when none is supplied", func(t *testing.T) {
		uc, store := newCheckout(t, multi())
		store.Seed(builder.NewSerialBuilder().WithNumber("SN-R").Reserved("P1", "V1", strp("1001")).BuildDomain())

		s, err := uc.MarkSold(ctx, shop, commands.MarkSoldInput{SerialNumber: "SN-R"})
		require.NoError(t, err)
		assert.Equal(t, serial.StatusSold, s.Status())
		assert.Equal(t, "1001", *s.OrderID())
		assert.Equal(t, now, *s.SoldAt())
	})

	t.Run("cross-order sale is refused", func(t *testing.T) {
		uc, store := newCheckout(t, multi())
		store.Seed(builder.NewSerialBuilder().WithNumber("SN-R2").Reserved("P1", "V1", strp("1001")).BuildDomain())

		_, err := uc.MarkSold(ctx, shop, commands.MarkSoldInput{SerialNumber: "SN-R2", OrderID: strp("2002")})
		require.ErrorIs(t, err, serial.ErrOrderMismatch)
	})

	t.Run("unattached serial needs a variant", func(t *testing.T) {
		uc, store := newCheckout(t, multi())
		store.Seed(builder.NewSerialBuilder().WithNumber("SN-U").BuildDomain())

		_, err := uc.MarkSold(ctx, shop, commands.MarkSoldInput{SerialNumber: "SN-U"})
		require.ErrorIs(t, err, serial.ErrNotAttached)

		s, err := uc.MarkSold(ctx, shop, commands.MarkSoldInput{SerialNumber: "SN-U", VariantID: "V1", ProductID: "P1", OrderID: strp("3003")})
		require.NoError(t, err)
		assert.Equal(t, "V1", *s.VariantID())
	})
}

func TestCheckoutCommands_SinglePolicy(t *testing.T) {
	ctx := context.Background()
	single := commands.Options{Policy: serial.PolicySingle}

	t.Run("point of sale cannot attach a second serial to a variant", func(t *testing.T) {
		uc, store := newCheckout(t, single)
		held := builder.NewSerialBuilder().WithNumber("SN-A").Assigned("P1", "V1").BuildDomain()
		b := builder.NewSerialBuilder().WithNumber("SN-B").BuildDomain()
		c := builder.NewSerialBuilder().WithNumber("SN-C").BuildDomain()
		store.Seed(held, b, c)

		_, err := uc.ReserveBySerialNumber(ctx, shop, commands.ReserveBySerialInput{SerialNumber: "SN-B", VariantID: "V1", ProductID: "P1"})
		require.ErrorIs(t, err, serial.ErrVariantAlreadyInUse)

		_, err = uc.MarkSold(ctx, shop, commands.MarkSoldInput{SerialNumber: "SN-C", VariantID: "V1", ProductID: "P1"})
		require.ErrorIs(t, err, serial.ErrVariantAlreadyInUse)

		assert.Equal(t, serial.StatusAvailable, store.Get(b.ID()).Status)
		assert.Nil(t, store.Get(b.ID()).VariantID)
		assert.Equal(t, serial.StatusAvailable, store.Get(c.ID()).Status)
		assert.Nil(t, store.Get(c.ID()).VariantID)
	})

	t.Run("first serial for a free variant goes through under the variant lock", func(t *testing.T) {
		uc, store := newCheckout(t, single)
		store.Seed(builder.NewSerialBuilder().WithNumber("SN-D").BuildDomain())

		s, err := uc.ReserveBySerialNumber(ctx, shop, commands.ReserveBySerialInput{SerialNumber: "SN-D", VariantID: "V2", ProductID: "P2"})
		require.NoError(t, err)
		assert.Equal(t, "V2", *s.VariantID())
		assert.Equal(t, []string{shop + "/V2"}, store.VariantLocks)
	})

	t.Run("selling a serial already on the variant is not an attachment", func(t *testing.T) {
		uc, store := newCheckout(t, single)
		store.Seed(builder.NewSerialBuilder().WithNumber("SN-E").Reserved("P1", "V1", strp("1001")).BuildDomain())

		_, err := uc.MarkSold(ctx, shop, commands.MarkSoldInput{SerialNumber: "SN-E", VariantID: "V1"})
		require.NoError(t, err)
		assert.Empty(t, store.VariantLocks)
	})

	t.Run("inventory cap applies at the point of sale", func(t *testing.T) {
		uc, store := newCheckout(t, commands.Options{Policy: serial.PolicyMulti, EnforceCap: true})
		qty := 1
		store.SeedVariant(catalog.Product{Shop: shop, ID: "P1"}, catalog.Variant{Shop: shop, ID: "V1", ProductID: "P1", InventoryQty: &qty})
		store.Seed(
			builder.NewSerialBuilder().WithNumber("SN-F").Assigned("P1", "V1").BuildDomain(),
			builder.NewSerialBuilder().WithNumber("SN-G").BuildDomain(),
		)

		_, err := uc.MarkSold(ctx, shop, commands.MarkSoldInput{SerialNumber: "SN-G", VariantID: "V1"})
		require.ErrorIs(t, err, serial.ErrCapacityExceeded)
	})
}

func TestCheckoutCommands_ReleaseReserved(t *testing.T) {
	ctx := context.Background()
	uc, store := newCheckout(t, multi())
	r := builder.NewSerialBuilder().WithNumber("SN-REL").Reserved("P1", "V1", strp("1001")).BuildDomain()
	store.Seed(r)

	_, err := uc.ReleaseReserved(ctx, shop, "SN-REL", strp("2002"))
	require.ErrorIs(t, err, serial.ErrOrderMismatch)

	s, err := uc.ReleaseReserved(ctx, shop, "SN-REL", strp("1001"))
	require.NoError(t, err)
	assert.Equal(t, serial.StatusAvailable, s.Status())
	assert.Nil(t, s.OrderID())

	_, err = uc.ReleaseReserved(ctx, shop, "SN-REL", nil)
	require.ErrorIs(t, err, serial.ErrNotReserved)
}

func TestCheckoutCommands_BulkMarkSold(t *testing.T) {
	ctx := context.Background()

	t.Run("all or nothing", func(t *testing.T) {
		uc, store := newCheckout(t, multi())
		a := builder.NewSerialBuilder().WithNumber("SN-1").Reserved("P1", "V1", strp("1001")).BuildDomain()
		b := builder.NewSerialBuilder().WithNumber("SN-2").Reserved("P1", "V1", strp("2002")).BuildDomain()
		store.Seed(a, b)

		_, err := uc.BulkMarkSold(ctx, shop, []string{"SN-1", "SN-2"}, strp("1001"))
		var pm *shared.PartialMatchError
		require.True(t, errs.As(err, &pm))
		assert.Equal(t, "SN-2", pm.Failures[0].Ref)
		assert.Equal(t, serial.StatusReserved, store.Get(a.ID()).Status)
	})

	t.Run("sells every listed serial", func(t *testing.T) {
		uc, store := newCheckout(t, multi())
		a := builder.NewSerialBuilder().WithNumber("SN-3").Reserved("P1", "V1", strp("1001")).BuildDomain()
		b := builder.NewSerialBuilder().WithNumber("SN-5").Reserved("P1", "V1", nil).BuildDomain()
		store.Seed(a, b)

		res, err := uc.BulkMarkSold(ctx, shop, []string{"SN-3", "SN-5"}, strp("1001"))
		require.NoError(t, err)
		assert.Equal(t, 2, res.Count)
		for _, s := range res.Updated {
			assert.Equal(t, serial.StatusSold, s.Status())
			assert.Equal(t, "1001", *s.OrderID())
		}
	})

	t.Run("unknown number is reported", func(t *testing.T) {
		uc, _ := newCheckout(t, multi())
		_, err := uc.BulkMarkSold(ctx, shop, []string{"SN-GHOST"}, nil)
		var pm *shared.PartialMatchError
		require.True(t, errs.As(err, &pm))
		assert.Equal(t, "not found", pm.Failures[0].Reason)
	})
}
