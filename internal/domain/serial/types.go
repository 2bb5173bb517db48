package serial

import (
	"serial-inventory/internal/pkg/errs"
)

type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusAssigned  Status = "ASSIGNED"
	StatusReserved  Status = "RESERVED"
	StatusSold      Status = "SOLD"
	StatusReturned  Status = "RETURNED"
	StatusDeleted   Status = "DELETED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusAssigned, StatusReserved, StatusSold, StatusReturned, StatusDeleted:
		return true
	default:
		return false
	}
}

// Occupied statuses count against a variant's serial capacity.
func (s Status) Occupied() bool {
	return s == StatusAssigned || s == StatusReserved || s == StatusSold
}

func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if !s.IsValid() {
		return "", errs.Wrapf(ErrInvalidStatus, "status %q", v)
	}
	return s, nil
}

var (
	ErrInvalidSerialNumber = errs.Mark(errs.New("serial number must be 3-50 characters of letters, digits, '-' or '_'"), errs.ErrValidation)
	ErrInvalidStatus       = errs.Mark(errs.New("unknown serial status"), errs.ErrValidation)
	ErrMissingShop         = errs.Mark(errs.New("shop is required"), errs.ErrValidation)
	ErrMissingVariant      = errs.Mark(errs.New("product and variant are required"), errs.ErrValidation)
	ErrPartialLinkage      = errs.Mark(errs.New("product and variant must be given together"), errs.ErrValidation)

	ErrNotAvailable      = errs.Mark(errs.New("serial is not available"), errs.ErrPreconditionFailed)
	ErrNotAssigned       = errs.Mark(errs.New("serial is not assigned"), errs.ErrPreconditionFailed)
	ErrNotReserved       = errs.Mark(errs.New("serial is not reserved"), errs.ErrPreconditionFailed)
	ErrNotSellable       = errs.Mark(errs.New("serial cannot be sold from its current status"), errs.ErrPreconditionFailed)
	ErrWrongVariant      = errs.Mark(errs.New("serial belongs to a different variant"), errs.ErrPreconditionFailed)
	ErrOrderMismatch     = errs.Mark(errs.New("serial is linked to a different order"), errs.ErrPreconditionFailed)
	ErrNotAttached       = errs.Mark(errs.New("serial is not attached to a variant"), errs.ErrPreconditionFailed)
	ErrIllegalTransition = errs.Mark(errs.New("transition not allowed from current status"), errs.ErrPreconditionFailed)
	ErrDeleted           = errs.Mark(errs.New("serial is deleted"), errs.ErrPreconditionFailed)
)
