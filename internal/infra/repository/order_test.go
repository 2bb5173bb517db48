//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"serial-inventory/internal/domain/order"
	"serial-inventory/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository_Lock(t *testing.T) {
	paidAt := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

	t.Run("creates the row and reads it back", func(t *testing.T) {
		db := new(MockDB)
		db.On("Exec", mock.Anything, ensureOrderSQL, []any{"shop-a", "1001"}).Return(pgconn.NewCommandTag("INSERT 0 1"), nil)
		db.On("QueryRow", mock.Anything, lockOrderSQL, []any{"shop-a", "1001"}).Return(rowFunc(func(dest ...any) error {
			*dest[0].(*pgtype.Timestamptz) = pgtype.Timestamptz{Time: paidAt, Valid: true}
			*dest[1].(*pgtype.Text) = pgtype.Text{String: "C1", Valid: true}
			return nil
		}))

		lc, err := NewOrderRepository(db).Lock(context.Background(), "shop-a", "1001")
		require.NoError(t, err)
		assert.True(t, lc.Paid())
		assert.Equal(t, "C1", *lc.CustomerID)
		assert.False(t, lc.Cancelled())
		assert.Nil(t, lc.LinkedAt)
		db.AssertExpectations(t)
	})

	t.Run("read failure is a database error", func(t *testing.T) {
		db := new(MockDB)
		db.On("Exec", mock.Anything, ensureOrderSQL, mock.Anything).Return(pgconn.NewCommandTag("INSERT 0 0"), nil)
		db.On("QueryRow", mock.Anything, lockOrderSQL, mock.Anything).Return(rowFunc(func(...any) error { return pgx.ErrTxClosed }))

		_, err := NewOrderRepository(db).Lock(context.Background(), "shop-a", "1001")
		assert.True(t, errs.Is(err, errs.ErrDatabaseOperationFailed))
	})
}

func TestOrderRepository_Save(t *testing.T) {
	at := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	db := new(MockDB)
	db.On("Exec", mock.Anything, saveOrderSQL, mock.MatchedBy(func(args []any) bool {
		return len(args) == 6 && args[0] == "shop-a" && args[1] == "1001" &&
			args[4].(pgtype.Timestamptz).Valid && !args[2].(pgtype.Timestamptz).Valid
	})).Return(pgconn.NewCommandTag("UPDATE 1"), nil)

	err := NewOrderRepository(db).Save(context.Background(), "shop-a", "1001", order.Lifecycle{CancelledAt: &at})
	require.NoError(t, err)
	db.AssertExpectations(t)
}
