package serial

import (
	"regexp"
	"strings"
)

const (
	MinSerialNumberLength = 3
	MaxSerialNumberLength = 50
)

var serialNumberPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// SerialNumber is compared case-sensitively.
type SerialNumber struct {
	value string
}

func NewSerialNumber(s string) (SerialNumber, error) {
	t := strings.TrimSpace(s)
	if len(t) < MinSerialNumberLength || len(t) > MaxSerialNumberLength || !serialNumberPattern.MatchString(t) {
		return SerialNumber{}, ErrInvalidSerialNumber
	}
	return SerialNumber{value: t}, nil
}

func (n SerialNumber) String() string { return n.value }

func (n SerialNumber) IsZero() bool { return n.value == "" }
