package commands

import (
	"context"
	"log/slog"

	"serial-inventory/internal/domain/serial"
	"serial-inventory/internal/pkg/clock"
	"serial-inventory/internal/pkg/errs"
	"serial-inventory/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateSerialInput struct {
	SerialNumber string
	ProductID    *string
	VariantID    *string
}

type AssignInput struct {
	SerialIDs []uuid.UUID
	ProductID string
	VariantID string
}

type InvalidSerial struct {
	SerialNumber string
	Reason       string
}

type BulkCreateResult struct {
	Created []*serial.Serial
	Skipped []string
	Invalid []InvalidSerial
}

func (r *BulkCreateResult) CreatedCount() int {
	return len(r.Created)
}

type SerialCommands interface {
	Create(ctx context.Context, shop string, in CreateSerialInput) (*serial.Serial, error)
	CreateBulk(ctx context.Context, shop string, numbers []string) (*BulkCreateResult, error)
	Assign(ctx context.Context, shop string, in AssignInput) (int, error)
	Release(ctx context.Context, shop string, ids []uuid.UUID) (int, error)
	SoftDelete(ctx context.Context, shop string, id uuid.UUID) (*serial.Serial, error)
	Delete(ctx context.Context, shop string, id uuid.UUID) error
	RenameSerial(ctx context.Context, shop string, id uuid.UUID, number string) (*serial.Serial, error)
}

type serialUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	opts  Options
}

func NewSerialUseCase(uow shared.UnitOfWork, clk clock.Clock, opts Options) SerialCommands {
	return &serialUseCaseImpl{uow: uow, clock: clk, opts: opts}
}

// Create fails with ErrDuplicateSerial when the number exists in any shop.
// A racing insert of the same number surfaces as a conflict from the unique key.
func (uc *serialUseCaseImpl) Create(ctx context.Context, shop string, in CreateSerialInput) (*serial.Serial, error) {
	s, err := serial.New(uuid.Nil, in.SerialNumber, shop, in.ProductID, in.VariantID, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		exists, err := tx.Serials().ExistsByNumber(ctx, s.SerialNumber().String())
		if err != nil {
			return err
		}
		if exists {
			return errs.Wrapf(ErrDuplicateSerial, "serial %s", s.SerialNumber())
		}

		if v := s.VariantID(); v != nil {
			if err := checkAssignable(ctx, tx, uc.opts, shop, *v, 1); err != nil {
				return err
			}
		}
		return tx.Serials().Insert(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// CreateBulk imports unassigned serials. Numbers that already exist are skipped,
// malformed ones are reported without failing the rest.
func (uc *serialUseCaseImpl) CreateBulk(ctx context.Context, shop string, numbers []string) (*BulkCreateResult, error) {
	if shop == "" {
		return nil, ErrMissingShopScope
	}
	numbers = uniqueNumbers(numbers)
	if len(numbers) == 0 {
		return nil, ErrEmptySelection
	}

	now := uc.clock.Now()
	result := &BulkCreateResult{}
	candidates := make([]*serial.Serial, 0, len(numbers))
	for _, n := range numbers {
		s, err := serial.New(uuid.Nil, n, shop, nil, nil, now)
		if err != nil {
			result.Invalid = append(result.Invalid, InvalidSerial{SerialNumber: n, Reason: shared.FailureReason(err)})
			continue
		}
		candidates = append(candidates, s)
	}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		inserted, err := tx.Serials().InsertMissing(ctx, candidates)
		if err != nil {
			return err
		}
		result.Created = inserted
		return nil
	})
	if err != nil {
		return nil, err
	}

	created := make(map[uuid.UUID]struct{}, len(result.Created))
	for _, s := range result.Created {
		created[s.ID()] = struct{}{}
	}
	for _, s := range candidates {
		if _, ok := created[s.ID()]; !ok {
			result.Skipped = append(result.Skipped, s.SerialNumber().String())
		}
	}

	slog.Info("serials imported",
		"shop", shop,
		"created", len(result.Created),
		"skipped", len(result.Skipped),
		"invalid", len(result.Invalid))
	return result, nil
}

// Assign moves every requested serial to ASSIGNED for one variant, or none of them.
func (uc *serialUseCaseImpl) Assign(ctx context.Context, shop string, in AssignInput) (int, error) {
	ids := uniqueIDs(in.SerialIDs)
	if len(ids) == 0 {
		return 0, ErrEmptySelection
	}
	if in.ProductID == "" || in.VariantID == "" {
		return 0, serial.ErrMissingVariant
	}

	tr := serial.Transition{
		Action:    serial.ActionAssign,
		ProductID: in.ProductID,
		VariantID: in.VariantID,
		At:        uc.clock.Now(),
	}

	var count int
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rows, err := tx.Serials().LockByIDs(ctx, shop, ids)
		if err != nil {
			return err
		}
		updated, err := applyToAll(ids, rows, byID, idLabel, tr)
		if err != nil {
			return err
		}
		if err := checkAssignable(ctx, tx, uc.opts, shop, in.VariantID, len(updated)); err != nil {
			return err
		}
		if err := tx.Serials().Update(ctx, updated...); err != nil {
			return err
		}
		count = len(updated)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Release returns every requested serial to the unassigned pool, or none of them.
func (uc *serialUseCaseImpl) Release(ctx context.Context, shop string, ids []uuid.UUID) (int, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return 0, ErrEmptySelection
	}
	tr := serial.Transition{Action: serial.ActionRelease, At: uc.clock.Now()}

	var count int
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rows, err := tx.Serials().LockByIDs(ctx, shop, ids)
		if err != nil {
			return err
		}
		updated, err := applyToAll(ids, rows, byID, idLabel, tr)
		if err != nil {
			return err
		}
		count = len(updated)
		return tx.Serials().Update(ctx, updated...)
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (uc *serialUseCaseImpl) SoftDelete(ctx context.Context, shop string, id uuid.UUID) (*serial.Serial, error) {
	var out *serial.Serial
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := lockOneByID(ctx, tx, shop, id)
		if err != nil {
			return err
		}
		next, err := serial.Apply(s, serial.Transition{Action: serial.ActionDelete, At: uc.clock.Now()})
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

// Delete removes the row entirely. Admin only.
func (uc *serialUseCaseImpl) Delete(ctx context.Context, shop string, id uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := lockOneByID(ctx, tx, shop, id); err != nil {
			return err
		}
		return tx.Serials().Delete(ctx, shop, id)
	})
}

// RenameSerial is the admin override for correcting a mistyped serial number.
func (uc *serialUseCaseImpl) RenameSerial(ctx context.Context, shop string, id uuid.UUID, number string) (*serial.Serial, error) {
	sn, err := serial.NewSerialNumber(number)
	if err != nil {
		return nil, err
	}

	var out *serial.Serial
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := lockOneByID(ctx, tx, shop, id)
		if err != nil {
			return err
		}
		if s.SerialNumber() == sn {
			out = s
			return nil
		}
		exists, err := tx.Serials().ExistsByNumber(ctx, sn.String())
		if err != nil {
			return err
		}
		if exists {
			return errs.Wrapf(ErrDuplicateSerial, "serial %s", sn)
		}
		if err := s.Rename(sn.String(), uc.clock.Now()); err != nil {
			return err
		}
		out = s
		return tx.Serials().Update(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// checkAssignable applies the assignment policy and, when enabled, the inventory cap.
// requested serials are about to become occupied for variantID. Every path that
// attaches a serial to a variant goes through here; the variant lock it takes is
// held until the transaction ends, so concurrent attachments count one at a time.
func checkAssignable(ctx context.Context, tx shared.Tx, opts Options, shop, variantID string, requested int) error {
	if opts.Policy != serial.PolicySingle && !opts.EnforceCap {
		return nil
	}
	if err := tx.Serials().LockVariant(ctx, shop, variantID); err != nil {
		return err
	}
	occupied, err := tx.Serials().CountOccupiedForVariant(ctx, shop, variantID)
	if err != nil {
		return err
	}
	if err := opts.Policy.CheckAssign(requested, occupied); err != nil {
		return errs.Wrapf(err, "variant %s", variantID)
	}
	if !opts.EnforceCap {
		return nil
	}

	v, _, err := tx.Catalog().FindVariant(ctx, shop, variantID)
	if errs.Is(err, errs.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return errs.Wrapf(serial.CheckCapacity(v.InventoryQty, requested, occupied), "variant %s", variantID)
}

func lockOneByID(ctx context.Context, tx shared.Tx, shop string, id uuid.UUID) (*serial.Serial, error) {
	rows, err := tx.Serials().LockByIDs(ctx, shop, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errs.Wrapf(ErrSerialNotFound, "serial %s", id)
	}
	return rows[0], nil
}

func lockOneByNumber(ctx context.Context, tx shared.Tx, shop, number string) (*serial.Serial, error) {
	sn, err := serial.NewSerialNumber(number)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Serials().LockByNumbers(ctx, shop, []string{sn.String()})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errs.Wrapf(ErrSerialNotFound, "serial %s", sn)
	}
	return rows[0], nil
}
