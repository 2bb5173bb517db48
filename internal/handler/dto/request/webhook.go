package request

import (
	"bytes"
	"encoding/json"
	"strings"

	"serial-inventory/internal/domain/order"
	"serial-inventory/internal/pkg/errs"
	"serial-inventory/internal/usecase/commands"
)

// Delivery headers set by the storefront platform on webhooks and forwarded onto Kafka records.
const (
	HeaderTopic      = "X-Shopify-Topic"
	HeaderShopDomain = "X-Shopify-Shop-Domain"
	HeaderWebhookID  = "X-Shopify-Webhook-Id"
	HeaderHmac       = "X-Shopify-Hmac-Sha256"
)

var ErrMalformedPayload = errs.Mark(errs.New("webhook payload is not a JSON object"), errs.ErrValidation)

// ExternalID accepts storefront ids sent either as JSON numbers or strings.
type ExternalID string

func (id *ExternalID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ExternalID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ExternalID(n.String())
	return nil
}

func (id ExternalID) String() string { return string(id) }

type webhookCustomer struct {
	ID ExternalID `json:"id"`
}

type webhookLineItem struct {
	ID        ExternalID `json:"id"`
	VariantID ExternalID `json:"variant_id"`
	ProductID ExternalID `json:"product_id"`
	Quantity  *int       `json:"quantity"`
}

type webhookRefundLineItem struct {
	LineItemID ExternalID `json:"line_item_id"`
	Quantity   *int       `json:"quantity"`
}

// OrderWebhookPayload holds the fields read from order and refund deliveries.
// Everything is optional; presence is checked by the domain events.
type OrderWebhookPayload struct {
	ID              ExternalID              `json:"id"`
	OrderID         ExternalID              `json:"order_id"`
	ShopDomain      string                  `json:"shop_domain"`
	FinancialStatus string                  `json:"financial_status"`
	CancelledAt     *string                 `json:"cancelled_at"`
	Customer        *webhookCustomer        `json:"customer"`
	LineItems       []webhookLineItem       `json:"line_items"`
	RefundLineItems []webhookRefundLineItem `json:"refund_line_items"`
}

func (p *OrderWebhookPayload) customerID() *string {
	if p.Customer == nil || p.Customer.ID == "" {
		return nil
	}
	id := p.Customer.ID.String()
	return &id
}

// WebhookMeta is the delivery metadata the transport carries next to the body.
type WebhookMeta struct {
	Topic      order.Topic
	Shop       string
	DeliveryID string
}

// DecodeOrderEvent turns a raw delivery into a reconciler event. The shop comes from
// the transport and falls back to shop_domain in the body.
func DecodeOrderEvent(meta WebhookMeta, body []byte) (commands.Event, error) {
	if !meta.Topic.IsValid() {
		return commands.Event{}, errs.Wrapf(commands.ErrUnknownTopic, "topic %q", meta.Topic)
	}
	var p OrderWebhookPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return commands.Event{}, errs.Wrap(ErrMalformedPayload, err.Error())
	}

	shop := strings.TrimSpace(meta.Shop)
	if shop == "" {
		shop = strings.TrimSpace(p.ShopDomain)
	}

	ev := commands.Event{Topic: meta.Topic, DeliveryID: meta.DeliveryID, Raw: body}
	switch meta.Topic {
	case order.TopicOrderCreated:
		items := make([]order.LineItem, 0, len(p.LineItems))
		for _, li := range p.LineItems {
			items = append(items, order.LineItem{
				VariantID: li.VariantID.String(),
				ProductID: li.ProductID.String(),
				Quantity:  quantityOrOne(li.Quantity),
			})
		}
		ev.Created = &order.OrderCreated{
			OrderID:    p.ID.String(),
			Shop:       shop,
			LineItems:  items,
			Paid:       strings.EqualFold(p.FinancialStatus, "paid"),
			Cancelled:  p.CancelledAt != nil && strings.TrimSpace(*p.CancelledAt) != "",
			CustomerID: p.customerID(),
		}
	case order.TopicOrderPaid:
		ev.Paid = &order.OrderPaid{OrderID: p.ID.String(), Shop: shop, CustomerID: p.customerID()}
	case order.TopicOrderCancelled:
		ev.Cancelled = &order.OrderCancelled{OrderID: p.ID.String(), Shop: shop}
	case order.TopicRefundCreated:
		items := make([]order.RefundLineItem, 0, len(p.RefundLineItems))
		for _, li := range p.RefundLineItems {
			items = append(items, order.RefundLineItem{
				LineItemID: li.LineItemID.String(),
				Quantity:   quantityOrOne(li.Quantity),
			})
		}
		ev.Refund = &order.RefundCreated{OrderID: p.OrderID.String(), Shop: shop, LineItems: items}
	}
	return ev, nil
}

func quantityOrOne(q *int) int {
	if q == nil || *q == 0 {
		return 1
	}
	return *q
}

// ParseTopic normalizes spellings such as "ORDERS_CREATE" to "orders/create".
func ParseTopic(raw string) order.Topic {
	t := strings.ToLower(strings.TrimSpace(raw))
	return order.Topic(strings.ReplaceAll(t, "_", "/"))
}
