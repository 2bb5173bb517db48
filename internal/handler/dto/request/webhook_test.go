//go:build unit

package request_test

import (
	"testing"

	"serial-inventory/internal/domain/order"
	"serial-inventory/internal/handler/dto/request"
	"serial-inventory/internal/pkg/errs"
	"serial-inventory/internal/usecase/commands"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shop = "test-shop.myshopify.com"

func TestDecodeOrderEvent(t *testing.T) {
	customer := "77"

	testCases := []struct {
		name  string
		meta  request.WebhookMeta
		body  string
		check func(t *testing.T, ev commands.Event)
	}{
		{
			name: "order created with numeric ids and missing quantity",
			meta: request.WebhookMeta{Topic: order.TopicOrderCreated, Shop: shop, DeliveryID: "d-1"},
			body: `{"id": 820982911946154500, "line_items": [
				{"variant_id": 4455, "product_id": 12, "quantity": 2},
				{"variant_id": "4456", "product_id": "12"},
				{"title": "gift card"}
			]}`,
			check: func(t *testing.T, ev commands.Event) {
				want := &order.OrderCreated{
					OrderID: "820982911946154500",
					Shop:    shop,
					LineItems: []order.LineItem{
						{VariantID: "4455", ProductID: "12", Quantity: 2},
						{VariantID: "4456", ProductID: "12", Quantity: 1},
						{Quantity: 1},
					},
				}
				if diff := cmp.Diff(want, ev.Created); diff != "" {
					t.Errorf("OrderCreated mismatch (-want +got):\n%s", diff)
				}
				assert.Equal(t, "d-1", ev.DeliveryID)
			},
		},
		{
			name: "order created carries payment and cancellation state",
			meta: request.WebhookMeta{Topic: order.TopicOrderCreated, Shop: shop},
			body: `{"id": 1002, "financial_status": "PAID", "cancelled_at": "2025-04-01T12:00:00Z",
				"customer": {"id": 77}, "line_items": [{"variant_id": 4455, "quantity": 1}]}`,
			check: func(t *testing.T, ev commands.Event) {
				require.NotNil(t, ev.Created)
				assert.True(t, ev.Created.Paid)
				assert.True(t, ev.Created.Cancelled)
				assert.Equal(t, &customer, ev.Created.CustomerID)
			},
		},
		{
			name: "pending order with null cancellation",
			meta: request.WebhookMeta{Topic: order.TopicOrderCreated, Shop: shop},
			body: `{"id": 1003, "financial_status": "pending", "cancelled_at": null}`,
			check: func(t *testing.T, ev commands.Event) {
				require.NotNil(t, ev.Created)
				assert.False(t, ev.Created.Paid)
				assert.False(t, ev.Created.Cancelled)
			},
		},
		{
			name: "order paid keeps customer and falls back to shop_domain",
			meta: request.WebhookMeta{Topic: order.TopicOrderPaid},
			body: `{"id": 1001, "shop_domain": "fallback.myshopify.com", "customer": {"id": 77}}`,
			check: func(t *testing.T, ev commands.Event) {
				assert.Equal(t, &order.OrderPaid{OrderID: "1001", Shop: "fallback.myshopify.com", CustomerID: &customer}, ev.Paid)
			},
		},
		{
			name: "cancelled without id is decoded and left to validation",
			meta: request.WebhookMeta{Topic: order.TopicOrderCancelled, Shop: shop},
			body: `{"id": null}`,
			check: func(t *testing.T, ev commands.Event) {
				require.NotNil(t, ev.Cancelled)
				assert.True(t, errs.Is(ev.Cancelled.Validate(), errs.ErrValidation))
			},
		},
		{
			name: "refund reads order_id and keeps raw body",
			meta: request.WebhookMeta{Topic: order.TopicRefundCreated, Shop: shop},
			body: `{"id": 9, "order_id": 1001, "refund_line_items": [{"line_item_id": 5, "quantity": 1}]}`,
			check: func(t *testing.T, ev commands.Event) {
				require.NotNil(t, ev.Refund)
				assert.Equal(t, "1001", ev.Refund.OrderID)
				assert.False(t, ev.Refund.IsFull())
				assert.Contains(t, string(ev.Raw), "refund_line_items")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ev, err := request.DecodeOrderEvent(tc.meta, []byte(tc.body))
			require.NoError(t, err)
			assert.Equal(t, tc.meta.Topic, ev.Topic)
			tc.check(t, ev)
		})
	}

	t.Run("rejects unknown topics and non-objects", func(t *testing.T) {
		_, err := request.DecodeOrderEvent(request.WebhookMeta{Topic: "products/update"}, []byte(`{}`))
		require.ErrorIs(t, err, commands.ErrUnknownTopic)

		_, err = request.DecodeOrderEvent(request.WebhookMeta{Topic: order.TopicOrderPaid}, []byte(`[1,2]`))
		require.ErrorIs(t, err, request.ErrMalformedPayload)
	})
}

func TestParseTopic(t *testing.T) {
	assert.Equal(t, order.TopicOrderCreated, request.ParseTopic("ORDERS_CREATE"))
	assert.Equal(t, order.TopicRefundCreated, request.ParseTopic(" refunds/create "))
}
