package response

import (
	"encoding/json"
	"time"

	"serial-inventory/internal/domain/serial"
	"serial-inventory/internal/usecase/commands"
	"serial-inventory/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type SerialResponse struct {
	ID            uuid.UUID  `json:"id"`
	SerialNumber  string     `json:"serial_number"`
	Status        string     `json:"status"`
	ProductID     *string    `json:"product_id"`
	VariantID     *string    `json:"variant_id"`
	OrderID       *string    `json:"order_id"`
	CustomerID    *string    `json:"customer_id"`
	ReservedAt    *time.Time `json:"reserved_at,omitempty"`
	ReservedUntil *time.Time `json:"reserved_until,omitempty"`
	SoldAt        *time.Time `json:"sold_at,omitempty"`
	ReturnedAt    *time.Time `json:"returned_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func FromSerial(s *serial.Serial) *SerialResponse {
	var res SerialResponse
	snap := s.Snapshot()
	_ = copier.Copy(&res, &snap)
	return &res
}

func FromSerials(items []*serial.Serial) []*SerialResponse {
	res := make([]*SerialResponse, len(items))
	for i, s := range items {
		res[i] = FromSerial(s)
	}
	return res
}

func FromSerialView(v *queries.SerialView) *SerialResponse {
	var res SerialResponse
	_ = copier.Copy(&res, v)
	return &res
}

func FromSerialViews(items []*queries.SerialView) []*SerialResponse {
	res := make([]*SerialResponse, len(items))
	for i, v := range items {
		res[i] = FromSerialView(v)
	}
	return res
}

type SerialListResponse struct {
	Items      []*SerialResponse `json:"items"`
	NextCursor *string           `json:"next_cursor"`
}

func FromSerialPage(items []*queries.SerialView, next *queries.Cursor) *SerialListResponse {
	res := &SerialListResponse{Items: FromSerialViews(items)}
	if next != nil {
		res.NextCursor = &next.After
	}
	return res
}

type InvalidSerialResponse struct {
	SerialNumber string `json:"serial_number"`
	Reason       string `json:"reason"`
}

type BulkCreateResponse struct {
	Created int                     `json:"created"`
	Serials []*SerialResponse       `json:"serials"`
	Skipped []string                `json:"skipped"`
	Invalid []InvalidSerialResponse `json:"invalid"`
}

func FromBulkCreate(r *commands.BulkCreateResult) *BulkCreateResponse {
	res := &BulkCreateResponse{
		Created: r.CreatedCount(),
		Serials: FromSerials(r.Created),
		Skipped: r.Skipped,
		Invalid: make([]InvalidSerialResponse, 0, len(r.Invalid)),
	}
	if res.Skipped == nil {
		res.Skipped = []string{}
	}
	if len(r.Invalid) > 0 {
		_ = copier.Copy(&res.Invalid, &r.Invalid)
	}
	return res
}

type CountResponse struct {
	Count int `json:"count"`
}

type BulkMarkSoldResponse struct {
	Count   int               `json:"count"`
	Serials []*SerialResponse `json:"serials"`
}

func FromBulkMarkSold(r *commands.BulkMarkSoldResult) *BulkMarkSoldResponse {
	return &BulkMarkSoldResponse{Count: r.Count, Serials: FromSerials(r.Updated)}
}

type ValidationResponse struct {
	Valid        bool            `json:"valid"`
	Message      string          `json:"message"`
	Serial       *SerialResponse `json:"serial,omitempty"`
	ProductTitle string          `json:"product_title,omitempty"`
	VariantTitle string          `json:"variant_title,omitempty"`
}

func FromValidation(v *queries.Validation) *ValidationResponse {
	res := &ValidationResponse{
		Valid:        v.Valid,
		Message:      v.Message,
		ProductTitle: v.ProductTitle,
		VariantTitle: v.VariantTitle,
	}
	if v.Serial != nil {
		res.Serial = FromSerialView(v.Serial)
	}
	return res
}

type ReconciliationTaskResponse struct {
	ID         uuid.UUID       `json:"id"`
	OrderID    string          `json:"order_id"`
	Kind       string          `json:"kind"`
	Payload    json.RawMessage `json:"payload"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	ResolvedAt *time.Time      `json:"resolved_at,omitempty"`
}

func FromReconciliationTasks(items []*queries.ReconciliationTaskView) []*ReconciliationTaskResponse {
	res := make([]*ReconciliationTaskResponse, len(items))
	for i, t := range items {
		var payload json.RawMessage
		if len(t.Payload) > 0 {
			payload = t.Payload
		}
		res[i] = &ReconciliationTaskResponse{
			ID:         t.ID,
			OrderID:    t.OrderID,
			Kind:       t.Kind,
			Payload:    payload,
			Status:     t.Status,
			CreatedAt:  t.CreatedAt,
			ResolvedAt: t.ResolvedAt,
		}
	}
	return res
}
