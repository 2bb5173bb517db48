package order

import (
	"strings"

	"serial-inventory/internal/pkg/errs"
)

var (
	ErrMissingOrderID  = errs.Mark(errs.New("order id is required"), errs.ErrValidation)
	ErrMissingShop     = errs.Mark(errs.New("shop is required"), errs.ErrValidation)
	ErrInvalidQuantity = errs.Mark(errs.New("line item quantity must be positive"), errs.ErrValidation)
)

type Topic string

const (
	TopicOrderCreated   Topic = "orders/create"
	TopicOrderPaid      Topic = "orders/paid"
	TopicOrderCancelled Topic = "orders/cancelled"
	TopicRefundCreated  Topic = "refunds/create"
)

func (t Topic) IsValid() bool {
	switch t {
	case TopicOrderCreated, TopicOrderPaid, TopicOrderCancelled, TopicRefundCreated:
		return true
	default:
		return false
	}
}

type LineItem struct {
	VariantID string
	ProductID string
	Quantity  int
}

// OrderCreated carries the order's payment and cancellation state as of creation.
type OrderCreated struct {
	OrderID    string
	Shop       string
	LineItems  []LineItem
	Paid       bool
	Cancelled  bool
	CustomerID *string
}

type OrderPaid struct {
	OrderID    string
	Shop       string
	CustomerID *string
}

type OrderCancelled struct {
	OrderID string
	Shop    string
}

type RefundLineItem struct {
	LineItemID string
	Quantity   int
}

// RefundCreated with no line items is a full refund.
type RefundCreated struct {
	OrderID   string
	Shop      string
	LineItems []RefundLineItem
}

func (e RefundCreated) IsFull() bool {
	return len(e.LineItems) == 0
}

func (e OrderCreated) Validate() error {
	if err := validateRef(e.OrderID, e.Shop); err != nil {
		return err
	}
	for _, li := range e.LineItems {
		if li.VariantID != "" && li.Quantity <= 0 {
			return errs.Wrapf(ErrInvalidQuantity, "variant %s", li.VariantID)
		}
	}
	return nil
}

func (e OrderPaid) Validate() error      { return validateRef(e.OrderID, e.Shop) }
func (e OrderCancelled) Validate() error { return validateRef(e.OrderID, e.Shop) }
func (e RefundCreated) Validate() error  { return validateRef(e.OrderID, e.Shop) }

func validateRef(orderID, shop string) error {
	if strings.TrimSpace(orderID) == "" {
		return ErrMissingOrderID
	}
	if strings.TrimSpace(shop) == "" {
		return ErrMissingShop
	}
	return nil
}
