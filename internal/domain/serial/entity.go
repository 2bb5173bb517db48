package serial

import (
	"time"

	"serial-inventory/internal/pkg/errs"

	"github.com/google/uuid"
)

// Serial is a single physical unit tracked by its serial number.
// Product and variant ids are the storefront's external ids.
type Serial struct {
	id            uuid.UUID
	serialNumber  SerialNumber
	shop          string
	status        Status
	productID     *string
	variantID     *string
	orderID       *string
	customerID    *string
	reservedAt    *time.Time
	reservedUntil *time.Time
	soldAt        *time.Time
	returnedAt    *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

// Snapshot is the flat form used by persistence and tests.
type Snapshot struct {
	ID            uuid.UUID
	SerialNumber  string
	Shop          string
	Status        Status
	ProductID     *string
	VariantID     *string
	OrderID       *string
	CustomerID    *string
	ReservedAt    *time.Time
	ReservedUntil *time.Time
	SoldAt        *time.Time
	ReturnedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// New creates an AVAILABLE serial, or an ASSIGNED one when product and variant are given.
func New(id uuid.UUID, number, shop string, productID, variantID *string, now time.Time) (*Serial, error) {
	sn, err := NewSerialNumber(number)
	if err != nil {
		return nil, err
	}
	if shop == "" {
		return nil, ErrMissingShop
	}

	productID, variantID = normalizeID(productID), normalizeID(variantID)
	if (productID == nil) != (variantID == nil) {
		return nil, ErrPartialLinkage
	}

	if id == uuid.Nil {
		id = uuid.New()
	}

	status := StatusAvailable
	if variantID != nil {
		status = StatusAssigned
	}

	return &Serial{
		id:           id,
		serialNumber: sn,
		shop:         shop,
		status:       status,
		productID:    productID,
		variantID:    variantID,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a serial from stored state without validation.
func Reconstruct(s Snapshot) *Serial {
	return &Serial{
		id:            s.ID,
		serialNumber:  SerialNumber{value: s.SerialNumber},
		shop:          s.Shop,
		status:        s.Status,
		productID:     s.ProductID,
		variantID:     s.VariantID,
		orderID:       s.OrderID,
		customerID:    s.CustomerID,
		reservedAt:    s.ReservedAt,
		reservedUntil: s.ReservedUntil,
		soldAt:        s.SoldAt,
		returnedAt:    s.ReturnedAt,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
	}
}

func (s *Serial) ID() uuid.UUID              { return s.id }
func (s *Serial) SerialNumber() SerialNumber { return s.serialNumber }
func (s *Serial) Shop() string               { return s.shop }
func (s *Serial) Status() Status             { return s.status }
func (s *Serial) ProductID() *string         { return s.productID }
func (s *Serial) VariantID() *string         { return s.variantID }
func (s *Serial) OrderID() *string           { return s.orderID }
func (s *Serial) CustomerID() *string        { return s.customerID }
func (s *Serial) ReservedAt() *time.Time     { return s.reservedAt }
func (s *Serial) ReservedUntil() *time.Time  { return s.reservedUntil }
func (s *Serial) SoldAt() *time.Time         { return s.soldAt }
func (s *Serial) ReturnedAt() *time.Time     { return s.returnedAt }
func (s *Serial) CreatedAt() time.Time       { return s.createdAt }
func (s *Serial) UpdatedAt() time.Time       { return s.updatedAt }
func (s *Serial) IsAssignedTo(variantID string) bool {
	return s.variantID != nil && *s.variantID == variantID
}

func (s *Serial) Snapshot() Snapshot {
	return Snapshot{
		ID:            s.id,
		SerialNumber:  s.serialNumber.String(),
		Shop:          s.shop,
		Status:        s.status,
		ProductID:     s.productID,
		VariantID:     s.variantID,
		OrderID:       s.orderID,
		CustomerID:    s.customerID,
		ReservedAt:    s.reservedAt,
		ReservedUntil: s.reservedUntil,
		SoldAt:        s.soldAt,
		ReturnedAt:    s.returnedAt,
		CreatedAt:     s.createdAt,
		UpdatedAt:     s.updatedAt,
	}
}

// Rename replaces the serial number. Only used by the admin override.
func (s *Serial) Rename(number string, now time.Time) error {
	sn, err := NewSerialNumber(number)
	if err != nil {
		return err
	}
	if s.status == StatusDeleted {
		return ErrDeleted
	}
	s.serialNumber = sn
	s.updatedAt = now
	return nil
}

// CheckInvariants reports the first linkage rule the serial violates.
func (s *Serial) CheckInvariants() error {
	switch s.status {
	case StatusAvailable:
		if s.productID != nil || s.variantID != nil || s.orderID != nil {
			return errs.Newf("AVAILABLE serial %s carries product, variant or order linkage", s.serialNumber)
		}
		if s.reservedAt != nil || s.soldAt != nil || s.customerID != nil {
			return errs.Newf("AVAILABLE serial %s carries reservation or sale data", s.serialNumber)
		}
	case StatusAssigned:
		if s.productID == nil || s.variantID == nil {
			return errs.Newf("ASSIGNED serial %s has no product or variant", s.serialNumber)
		}
		if s.orderID != nil || s.soldAt != nil {
			return errs.Newf("ASSIGNED serial %s carries order or sale data", s.serialNumber)
		}
	case StatusReserved:
		if s.productID == nil || s.variantID == nil {
			return errs.Newf("RESERVED serial %s has no product or variant", s.serialNumber)
		}
		if s.reservedAt == nil {
			return errs.Newf("RESERVED serial %s has no reservedAt", s.serialNumber)
		}
	case StatusSold:
		if s.productID == nil || s.variantID == nil {
			return errs.Newf("SOLD serial %s has no product or variant", s.serialNumber)
		}
		if s.soldAt == nil {
			return errs.Newf("SOLD serial %s has no soldAt", s.serialNumber)
		}
	case StatusReturned, StatusDeleted:
	default:
		return errs.Wrapf(ErrInvalidStatus, "serial %s", s.serialNumber)
	}
	return nil
}

func (s *Serial) clone() *Serial {
	c := *s
	return &c
}

func normalizeID(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	v := *id
	return &v
}
