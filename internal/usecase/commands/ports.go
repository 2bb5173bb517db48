package commands

import (
	"context"
	"time"

	"serial-inventory/internal/domain/serial"
	"serial-inventory/internal/pkg/config"
	"serial-inventory/internal/pkg/errs"
)

var (
	ErrEmptySelection   = errs.Mark(errs.New("at least one serial is required"), errs.ErrValidation)
	ErrDuplicateSerial  = errs.Mark(errs.New("serial number already exists"), errs.ErrPreconditionFailed)
	ErrSerialNotFound   = errs.Mark(errs.New("serial not found"), errs.ErrNotFound)
	ErrVariantNotFound  = errs.Mark(errs.New("variant not found in catalog"), errs.ErrNotFound)
	ErrMissingShopScope = errs.Mark(errs.New("shop scope is required"), errs.ErrValidation)
)

// Deduper remembers delivery ids of at-least-once event deliveries.
type Deduper interface {
	// Claim returns false when key was claimed before and has not expired.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Forget drops a claim so a failed delivery can be processed again.
	Forget(ctx context.Context, key string) error
}

// Options are the store-wide serial rules read from configuration.
type Options struct {
	Policy     serial.AssignmentPolicy
	EnforceCap bool
	Hold       time.Duration
	DedupeTTL  time.Duration
}

func NewOptions(cfg config.Config) (Options, error) {
	policy, err := serial.ParseAssignmentPolicy(cfg.Serial.AssignmentPolicy)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Policy:     policy,
		EnforceCap: cfg.Serial.EnforceInventoryCap,
		Hold:       cfg.Serial.ReservationHold,
		DedupeTTL:  cfg.Webhook.DedupeTTL,
	}, nil
}
