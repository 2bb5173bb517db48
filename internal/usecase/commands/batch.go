package commands

import (
	"strings"

	"serial-inventory/internal/domain/serial"
	"serial-inventory/internal/usecase/shared"

	"github.com/google/uuid"
)

const reasonNotFound = "not found"

// applyToAll applies tr to every requested serial, or returns a PartialMatchError
// listing each one that was missing or refused. Callers pass rows locked in the
// current transaction.
func applyToAll[K comparable](
	requested []K,
	rows []*serial.Serial,
	keyOf func(*serial.Serial) K,
	label func(K) string,
	tr serial.Transition,
) ([]*serial.Serial, error) {
	byKey := make(map[K]*serial.Serial, len(rows))
	for _, s := range rows {
		byKey[keyOf(s)] = s
	}

	var failures []shared.Failure
	updated := make([]*serial.Serial, 0, len(requested))
	for _, k := range requested {
		s, ok := byKey[k]
		if !ok {
			failures = append(failures, shared.Failure{Ref: label(k), Reason: reasonNotFound})
			continue
		}
		next, err := serial.Apply(s, tr)
		if err != nil {
			failures = append(failures, shared.Failure{Ref: s.SerialNumber().String(), Reason: shared.FailureReason(err)})
			continue
		}
		updated = append(updated, next)
	}

	if len(failures) > 0 {
		return nil, shared.NewPartialMatchError(tr.Action, len(requested), failures)
	}
	return updated, nil
}

func byID(s *serial.Serial) uuid.UUID { return s.ID() }

func byNumber(s *serial.Serial) string { return s.SerialNumber().String() }

func idLabel(id uuid.UUID) string { return id.String() }

func numberLabel(number string) string { return number }

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func uniqueNumbers(numbers []string) []string {
	seen := make(map[string]struct{}, len(numbers))
	out := make([]string, 0, len(numbers))
	for _, n := range numbers {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
