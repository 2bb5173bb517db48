package serial

import (
	"fmt"
	"time"
)

type Action string

const (
	ActionAssign          Action = "assign"
	ActionReserve         Action = "reserve"
	ActionReserveDirect   Action = "reserve_direct"
	ActionSell            Action = "sell"
	ActionRelease         Action = "release"
	ActionReleaseReserved Action = "release_reserved"
	ActionLinkOrder       Action = "link_order"
	ActionPay             Action = "pay"
	ActionCancel          Action = "cancel"
	ActionRefund          Action = "refund"
	ActionDelete          Action = "delete"
)

// Transition is one requested state change together with the context it needs.
// ProductID and VariantID name the target variant for assign and reserve actions,
// and the variant to attach for sales of unassigned serials.
type Transition struct {
	Action     Action
	ProductID  string
	VariantID  string
	OrderID    *string
	CustomerID *string
	At         time.Time
	HoldFor    time.Duration
}

// TransitionError names the serial a rule rejected. It unwraps to the rule's sentinel.
type TransitionError struct {
	SerialID     string
	SerialNumber string
	Action       Action
	Reason       error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("serial %s: %s: %s", e.SerialNumber, e.Action, e.Reason.Error())
}

func (e *TransitionError) Unwrap() error {
	return e.Reason
}

// Apply computes the serial that results from t without touching s.
// It is the only place where status changes are decided.
func Apply(s *Serial, t Transition) (*Serial, error) {
	if s.status == StatusDeleted {
		return nil, reject(s, t, ErrDeleted)
	}

	next := s.clone()
	var err error
	switch t.Action {
	case ActionAssign:
		err = next.assign(t)
	case ActionReserve:
		err = next.reserve(t)
	case ActionReserveDirect:
		err = next.reserveDirect(t)
	case ActionSell:
		err = next.sell(t)
	case ActionRelease:
		err = next.release()
	case ActionReleaseReserved:
		err = next.releaseReserved(t)
	case ActionLinkOrder:
		err = next.linkOrder(t)
	case ActionPay:
		err = next.pay(t)
	case ActionCancel:
		err = next.cancel(t)
	case ActionRefund:
		err = next.refund(t)
	case ActionDelete:
		next.status = StatusDeleted
	default:
		err = ErrIllegalTransition
	}
	if err != nil {
		return nil, reject(s, t, err)
	}

	next.updatedAt = t.At
	return next, nil
}

func reject(s *Serial, t Transition, reason error) error {
	return &TransitionError{
		SerialID:     s.id.String(),
		SerialNumber: s.serialNumber.String(),
		Action:       t.Action,
		Reason:       reason,
	}
}

func (s *Serial) assign(t Transition) error {
	if t.ProductID == "" || t.VariantID == "" {
		return ErrMissingVariant
	}
	if s.status != StatusAvailable {
		return ErrNotAvailable
	}
	if s.variantID != nil && *s.variantID != t.VariantID {
		return ErrWrongVariant
	}
	s.status = StatusAssigned
	s.productID = strPtr(t.ProductID)
	s.variantID = strPtr(t.VariantID)
	return nil
}

func (s *Serial) reserve(t Transition) error {
	if s.status != StatusAssigned {
		return ErrNotAssigned
	}
	if t.VariantID == "" {
		return ErrMissingVariant
	}
	if !s.IsAssignedTo(t.VariantID) {
		return ErrWrongVariant
	}
	s.markReserved(t)
	return nil
}

func (s *Serial) reserveDirect(t Transition) error {
	if t.VariantID == "" {
		return ErrMissingVariant
	}
	if s.status != StatusAvailable {
		return ErrNotAvailable
	}
	if s.variantID != nil && *s.variantID != t.VariantID {
		return ErrWrongVariant
	}
	if s.variantID == nil {
		if t.ProductID == "" {
			return ErrMissingVariant
		}
		s.productID = strPtr(t.ProductID)
		s.variantID = strPtr(t.VariantID)
	}
	s.markReserved(t)
	return nil
}

func (s *Serial) sell(t Transition) error {
	switch s.status {
	case StatusAvailable, StatusReserved:
	default:
		return ErrNotSellable
	}
	if s.orderID != nil && t.OrderID != nil && *s.orderID != *t.OrderID {
		return ErrOrderMismatch
	}
	if s.variantID != nil && t.VariantID != "" && *s.variantID != t.VariantID {
		return ErrWrongVariant
	}
	if s.variantID == nil {
		if t.ProductID == "" || t.VariantID == "" {
			return ErrNotAttached
		}
		s.productID = strPtr(t.ProductID)
		s.variantID = strPtr(t.VariantID)
	}

	if t.OrderID != nil {
		s.orderID = strPtr(*t.OrderID)
	}
	if t.CustomerID != nil {
		s.customerID = strPtr(*t.CustomerID)
	}
	s.markSold(t.At)
	return nil
}

func (s *Serial) release() error {
	switch s.status {
	case StatusAvailable, StatusAssigned, StatusReserved:
		s.toAvailable()
		return nil
	default:
		return ErrIllegalTransition
	}
}

// releaseReserved requires a supplied order id to equal the stored one.
func (s *Serial) releaseReserved(t Transition) error {
	if s.status != StatusReserved {
		return ErrNotReserved
	}
	if t.OrderID != nil && !s.linkedTo(t.OrderID) {
		return ErrOrderMismatch
	}
	s.toAvailable()
	return nil
}

func (s *Serial) linkOrder(t Transition) error {
	if s.status != StatusReserved {
		return ErrNotReserved
	}
	if t.OrderID == nil {
		return ErrOrderMismatch
	}
	if s.orderID != nil && *s.orderID != *t.OrderID {
		return ErrOrderMismatch
	}
	s.orderID = strPtr(*t.OrderID)
	return nil
}

func (s *Serial) pay(t Transition) error {
	if s.status != StatusReserved {
		return ErrNotReserved
	}
	if !s.linkedTo(t.OrderID) {
		return ErrOrderMismatch
	}
	if t.CustomerID != nil {
		s.customerID = strPtr(*t.CustomerID)
	}
	s.markSold(t.At)
	return nil
}

func (s *Serial) cancel(t Transition) error {
	if s.status != StatusReserved && s.status != StatusSold {
		return ErrIllegalTransition
	}
	if !s.linkedTo(t.OrderID) {
		return ErrOrderMismatch
	}
	s.toAvailable()
	return nil
}

func (s *Serial) refund(t Transition) error {
	if s.status != StatusSold {
		return ErrIllegalTransition
	}
	if !s.linkedTo(t.OrderID) {
		return ErrOrderMismatch
	}
	s.status = StatusAssigned
	s.orderID = nil
	s.customerID = nil
	s.soldAt = nil
	s.reservedAt = nil
	s.reservedUntil = nil
	return nil
}

func (s *Serial) markReserved(t Transition) {
	s.status = StatusReserved
	s.orderID = nil
	if t.OrderID != nil {
		s.orderID = strPtr(*t.OrderID)
	}
	at := t.At
	s.reservedAt = &at
	s.reservedUntil = nil
	if t.HoldFor > 0 {
		until := t.At.Add(t.HoldFor)
		s.reservedUntil = &until
	}
}

func (s *Serial) markSold(at time.Time) {
	s.status = StatusSold
	s.soldAt = &at
	s.reservedAt = nil
	s.reservedUntil = nil
}

func (s *Serial) toAvailable() {
	s.status = StatusAvailable
	s.productID = nil
	s.variantID = nil
	s.orderID = nil
	s.customerID = nil
	s.reservedAt = nil
	s.reservedUntil = nil
	s.soldAt = nil
	s.returnedAt = nil
}

func (s *Serial) linkedTo(orderID *string) bool {
	return orderID != nil && s.orderID != nil && *s.orderID == *orderID
}

func strPtr(v string) *string {
	return &v
}
