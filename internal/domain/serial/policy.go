package serial

import (
	"strings"

	"serial-inventory/internal/pkg/errs"
)

// AssignmentPolicy controls how many serials a variant may hold.
type AssignmentPolicy string

const (
	PolicyMulti  AssignmentPolicy = "multi"
	PolicySingle AssignmentPolicy = "single"
)

var (
	ErrInvalidPolicy       = errs.New("unknown assignment policy")
	ErrSingleSerialOnly    = errs.Mark(errs.New("exactly one serial may be assigned per variant"), errs.ErrValidation)
	ErrVariantAlreadyInUse = errs.Mark(errs.New("variant already holds a serial"), errs.ErrPreconditionFailed)
	ErrCapacityExceeded    = errs.Mark(errs.New("variant inventory quantity would be exceeded"), errs.ErrPreconditionFailed)
)

func ParseAssignmentPolicy(v string) (AssignmentPolicy, error) {
	switch p := AssignmentPolicy(strings.ToLower(strings.TrimSpace(v))); p {
	case "":
		return PolicyMulti, nil
	case PolicyMulti, PolicySingle:
		return p, nil
	default:
		return "", errs.Wrapf(ErrInvalidPolicy, "policy %q", v)
	}
}

// CheckAssign validates an assignment of requested serials to a variant that
// already holds occupied serials.
func (p AssignmentPolicy) CheckAssign(requested, occupied int) error {
	if p != PolicySingle {
		return nil
	}
	if requested != 1 {
		return ErrSingleSerialOnly
	}
	if occupied > 0 {
		return ErrVariantAlreadyInUse
	}
	return nil
}

// CheckCapacity reports whether occupied+requested fits in capacity.
// A nil capacity means the variant has no mirrored quantity.
func CheckCapacity(capacity *int, requested, occupied int) error {
	if capacity == nil {
		return nil
	}
	if occupied+requested > *capacity {
		return errs.Wrapf(ErrCapacityExceeded, "%d occupied + %d requested > %d", occupied, requested, *capacity)
	}
	return nil
}
