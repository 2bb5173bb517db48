package shared

import (
	"fmt"
	"strings"

	"serial-inventory/internal/domain/serial"
	"serial-inventory/internal/pkg/errs"
)

// Failure explains why one requested serial could not take part in a batch.
type Failure struct {
	Ref    string
	Reason string
}

// PartialMatchError rejects a whole batch. Failures names every serial that blocked it.
type PartialMatchError struct {
	Action    serial.Action
	Requested int
	Matched   int
	Failures  []Failure
}

func (e *PartialMatchError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, f.Ref+": "+f.Reason)
	}
	return fmt.Sprintf("%s: %d of %d serials eligible (%s)", e.Action, e.Matched, e.Requested, strings.Join(parts, "; "))
}

func (e *PartialMatchError) Is(target error) bool {
	return target == errs.ErrPartialMatch
}

func NewPartialMatchError(action serial.Action, requested int, failures []Failure) error {
	return errs.Mark(&PartialMatchError{
		Action:    action,
		Requested: requested,
		Matched:   requested - len(failures),
		Failures:  failures,
	}, errs.ErrPartialMatch)
}

// FailureReason is the user-facing text for a transition rejection.
func FailureReason(err error) string {
	var te *serial.TransitionError
	if errs.As(err, &te) {
		return te.Reason.Error()
	}
	return err.Error()
}
