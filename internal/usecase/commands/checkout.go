package commands

import (
	"context"

	"serial-inventory/internal/domain/serial"
	"serial-inventory/internal/pkg/clock"
	"serial-inventory/internal/pkg/errs"
	"serial-inventory/internal/pkg/ptr"
	"serial-inventory/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReserveBySerialInput struct {
	SerialNumber string
	VariantID    string
	// ProductID is resolved from the catalog when empty and the serial is unassigned.
	ProductID string
	OrderID   *string
}

type MarkSoldInput struct {
	SerialNumber string
	OrderID      *string
	CustomerID   *string
	// VariantID attaches an unassigned serial at the point of sale.
	VariantID string
	ProductID string
}

type BulkMarkSoldResult struct {
	Count   int
	Updated []*serial.Serial
}

type CheckoutCommands interface {
	ReserveAssigned(ctx context.Context, shop string, ids []uuid.UUID, orderID *string) (int, error)
	ReserveBySerialNumber(ctx context.Context, shop string, in ReserveBySerialInput) (*serial.Serial, error)
	MarkSold(ctx context.Context, shop string, in MarkSoldInput) (*serial.Serial, error)
	ReleaseReserved(ctx context.Context, shop, serialNumber string, orderID *string) (*serial.Serial, error)
	BulkMarkSold(ctx context.Context, shop string, serialNumbers []string, orderID *string) (*BulkMarkSoldResult, error)
}

type checkoutUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	opts  Options
}

func NewCheckoutUseCase(uow shared.UnitOfWork, clk clock.Clock, opts Options) CheckoutCommands {
	return &checkoutUseCaseImpl{uow: uow, clock: clk, opts: opts}
}

func (uc *checkoutUseCaseImpl) ReserveAssigned(ctx context.Context, shop string, ids []uuid.UUID, orderID *string) (int, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return 0, ErrEmptySelection
	}

	var count int
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rows, err := tx.Serials().LockByIDs(ctx, shop, ids)
		if err != nil {
			return err
		}

		// Each row is reserved for the variant it is already assigned to.
		now := uc.clock.Now()
		byKey := make(map[uuid.UUID]*serial.Serial, len(rows))
		for _, s := range rows {
			byKey[s.ID()] = s
		}
		var failures []shared.Failure
		updated := make([]*serial.Serial, 0, len(ids))
		for _, id := range ids {
			s, ok := byKey[id]
			if !ok {
				failures = append(failures, shared.Failure{Ref: id.String(), Reason: reasonNotFound})
				continue
			}
			next, err := serial.Apply(s, serial.Transition{
				Action:    serial.ActionReserve,
				VariantID: ptr.Deref(s.VariantID()),
				OrderID:   ptr.NonEmpty(ptr.Deref(orderID)),
				At:        now,
				HoldFor:   uc.opts.Hold,
			})
			if err != nil {
				failures = append(failures, shared.Failure{Ref: s.SerialNumber().String(), Reason: shared.FailureReason(err)})
				continue
			}
			updated = append(updated, next)
		}
		if len(failures) > 0 {
			return shared.NewPartialMatchError(serial.ActionReserve, len(ids), failures)
		}

		count = len(updated)
		return tx.Serials().Update(ctx, updated...)
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ReserveBySerialNumber is the single-row POS path. Two concurrent calls for the same
// AVAILABLE serial serialize on the row lock and the second sees it RESERVED.
func (uc *checkoutUseCaseImpl) ReserveBySerialNumber(ctx context.Context, shop string, in ReserveBySerialInput) (*serial.Serial, error) {
	if in.VariantID == "" {
		return nil, serial.ErrMissingVariant
	}

	var out *serial.Serial
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := lockOneByNumber(ctx, tx, shop, in.SerialNumber)
		if err != nil {
			return err
		}

		productID := in.ProductID
		if productID == "" && s.VariantID() == nil && s.Status() == serial.StatusAvailable {
			if productID, err = resolveProduct(ctx, tx, shop, in.VariantID); err != nil {
				return err
			}
		}

		if s.VariantID() == nil && s.Status() == serial.StatusAvailable {
			if err := checkAssignable(ctx, tx, uc.opts, shop, in.VariantID, 1); err != nil {
				return err
			}
		}

		next, err := serial.Apply(s, serial.Transition{
			Action:    serial.ActionReserveDirect,
			ProductID: productID,
			VariantID: in.VariantID,
			OrderID:   ptr.NonEmpty(ptr.Deref(in.OrderID)),
			At:        uc.clock.Now(),
			HoldFor:   uc.opts.Hold,
		})
		if err != nil {
			return err
		}
		out = next
		return tx.Serials().Update(ctx, next)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MarkSold keeps the stored order id when none is supplied.
func (uc *checkoutUseCaseImpl) MarkSold(ctx context.Context, shop string, in MarkSoldInput) (*serial.Serial, error) {
	var out *serial.Serial
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := lockOneByNumber(ctx, tx, shop, in.SerialNumber)
		if err != nil {
			return err
		}

		productID := in.ProductID
		if in.VariantID != "" && s.VariantID() == nil && s.Status() == serial.StatusAvailable {
			if productID == "" {
				if productID, err = resolveProduct(ctx, tx, shop, in.VariantID); err != nil {
					return err
				}
			}
			if err := checkAssignable(ctx, tx, uc.opts, shop, in.VariantID, 1); err != nil {
				return err
			}
		}

		next, err := serial.Apply(s, serial.Transition{
			Action:     serial.ActionSell,
			ProductID:  productID,
			VariantID:  in.VariantID,
			OrderID:    ptr.NonEmpty(ptr.Deref(in.OrderID)),
			CustomerID: ptr.NonEmpty(ptr.Deref(in.CustomerID)),
			At:         uc.clock.Now(),
		})
		if err != nil {
			return err
		}
		out = next
		return tx.Serials().Update(ctx, next)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *checkoutUseCaseImpl) ReleaseReserved(ctx context.Context, shop, serialNumber string, orderID *string) (*serial.Serial, error) {
	var out *serial.Serial
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := lockOneByNumber(ctx, tx, shop, serialNumber)
		if err != nil {
			return err
		}
		next, err := serial.Apply(s, serial.Transition{
			Action:  serial.ActionReleaseReserved,
			OrderID: ptr.NonEmpty(ptr.Deref(orderID)),
			At:      uc.clock.Now(),
		})
		if err != nil {
			return err
		}
		out = next
		return tx.Serials().Update(ctx, next)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// BulkMarkSold sells every listed serial or none. Serials that are not yet attached
// to a variant are refused, since a batch carries no variant to attach them to.
func (uc *checkoutUseCaseImpl) BulkMarkSold(ctx context.Context, shop string, serialNumbers []string, orderID *string) (*BulkMarkSoldResult, error) {
	numbers := uniqueNumbers(serialNumbers)
	if len(numbers) == 0 {
		return nil, ErrEmptySelection
	}

	tr := serial.Transition{
		Action:  serial.ActionSell,
		OrderID: ptr.NonEmpty(ptr.Deref(orderID)),
		At:      uc.clock.Now(),
	}

	result := &BulkMarkSoldResult{}
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rows, err := tx.Serials().LockByNumbers(ctx, shop, numbers)
		if err != nil {
			return err
		}
		updated, err := applyToAll(numbers, rows, byNumber, numberLabel, tr)
		if err != nil {
			return err
		}
		if err := tx.Serials().Update(ctx, updated...); err != nil {
			return err
		}
		result.Updated = updated
		result.Count = len(updated)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func resolveProduct(ctx context.Context, tx shared.Tx, shop, variantID string) (string, error) {
	v, _, err := tx.Catalog().FindVariant(ctx, shop, variantID)
	if errs.Is(err, errs.ErrNotFound) {
		return "", errs.Wrapf(ErrVariantNotFound, "variant %s", variantID)
	}
	if err != nil {
		return "", err
	}
	return v.ProductID, nil
}
