package commands

import (
	"context"

	"serial-inventory/internal/domain/catalog"
	"serial-inventory/internal/pkg/clock"
	"serial-inventory/internal/pkg/errs"
	"serial-inventory/internal/usecase/shared"
)

var ErrUnknownCatalogTarget = errs.Mark(errs.New("target must be product or variant"), errs.ErrValidation)

type CatalogTarget string

const (
	TargetProduct CatalogTarget = "product"
	TargetVariant CatalogTarget = "variant"
)

type SyncVariantInput struct {
	ID            string
	Title         string
	SKU           string
	RequireSerial bool
	InventoryQty  *int
}

// SyncProductInput is one product as the storefront reports it, with all its variants.
type SyncProductInput struct {
	ID            string
	Title         string
	RequireSerial bool
	Variants      []SyncVariantInput
}

type CatalogCommands interface {
	SyncProduct(ctx context.Context, shop string, in SyncProductInput) error
	SetRequireSerial(ctx context.Context, shop string, target CatalogTarget, id string, required bool) error
}

type catalogUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewCatalogUseCase(uow shared.UnitOfWork, clk clock.Clock) CatalogCommands {
	return &catalogUseCaseImpl{uow: uow, clock: clk}
}

func (uc *catalogUseCaseImpl) SyncProduct(ctx context.Context, shop string, in SyncProductInput) error {
	if shop == "" {
		return ErrMissingShopScope
	}
	now := uc.clock.Now()

	p, err := catalog.NewProduct(shop, in.ID, in.Title, in.RequireSerial, now)
	if err != nil {
		return err
	}
	variants := make([]*catalog.Variant, 0, len(in.Variants))
	for _, vi := range in.Variants {
		v, err := catalog.NewVariant(shop, p.ID, vi.ID, vi.Title, vi.SKU, vi.RequireSerial, vi.InventoryQty, now)
		if err != nil {
			return errs.Wrapf(err, "variant %q", vi.ID)
		}
		variants = append(variants, v)
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Catalog().UpsertProduct(ctx, p); err != nil {
			return err
		}
		for _, v := range variants {
			if err := tx.Catalog().UpsertVariant(ctx, v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (uc *catalogUseCaseImpl) SetRequireSerial(ctx context.Context, shop string, target CatalogTarget, id string, required bool) error {
	if id == "" {
		if target == TargetProduct {
			return catalog.ErrMissingProductID
		}
		return catalog.ErrMissingVariantID
	}
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		switch target {
		case TargetProduct:
			return tx.Catalog().SetProductRequireSerial(ctx, shop, id, required)
		case TargetVariant:
			return tx.Catalog().SetVariantRequireSerial(ctx, shop, id, required)
		default:
			return errs.Wrapf(ErrUnknownCatalogTarget, "target %q", target)
		}
	})
}
