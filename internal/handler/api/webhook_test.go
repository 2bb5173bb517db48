//go:build unit

package api_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"testing"

	"serial-inventory/internal/domain/order"
	"serial-inventory/internal/handler/api"
	reqdto "serial-inventory/internal/handler/dto/request"
	resdto "serial-inventory/internal/handler/dto/response"
	"serial-inventory/internal/handler/middleware"
	"serial-inventory/internal/pkg/errs"
	"serial-inventory/internal/usecase/commands"
	"serial-inventory/tests/common/httptest"
	commandsmock "serial-inventory/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const webhookSecret = "test-webhook-secret"

type WebhookHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockCtrl       *gomock.Controller
	mockReconciler *commandsmock.MockReconciler
}

func (s *WebhookHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockReconciler = commandsmock.NewMockReconciler(s.mockCtrl)
	h := api.NewWebhookHandler(s.mockReconciler)
	mw := middleware.NewWebhookMiddleware(webhookSecret)

	s.router.POST("/webhooks/*topic", mw.VerifyWebhook(), h.Receive)
}

func (s *WebhookHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestWebhookHandlerSuite(t *testing.T) {
	suite.Run(t, new(WebhookHandlerTestSuite))
}

func sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func deliveryHeaders(body []byte, topic string) map[string]string {
	return map[string]string{
		reqdto.HeaderHmac:       sign(body),
		reqdto.HeaderTopic:      topic,
		reqdto.HeaderShopDomain: testShop,
		reqdto.HeaderWebhookID:  "delivery-1",
	}
}

func (s *WebhookHandlerTestSuite) TestReceive() {
	paid := []byte(`{"id": 1001, "customer": {"id": 77}}`)

	s.Run("success: paid event is reconciled", func() {
		customer := "77"
		s.mockReconciler.EXPECT().Handle(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, ev commands.Event) (*commands.ReconcileResult, error) {
				s.Equal(order.TopicOrderPaid, ev.Topic)
				s.Equal("delivery-1", ev.DeliveryID)
				s.Require().NotNil(ev.Paid)
				s.Equal(order.OrderPaid{OrderID: "1001", Shop: testShop, CustomerID: &customer}, *ev.Paid)
				return &commands.ReconcileResult{
					Topic: ev.Topic, Shop: testShop, OrderID: "1001",
					Outcome: order.Outcome{Count: 2},
				}, nil
			}).Times(1)

		rec := httptest.PerformRaw(s.T(), s.router, http.MethodPost, "/webhooks/orders/paid", paid, deliveryHeaders(paid, "orders/paid"))

		var body resdto.ReconcileResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(2, body.Count)
		s.False(body.Duplicate)
	})

	s.Run("success: topic falls back to the path", func() {
		s.mockReconciler.EXPECT().Handle(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, ev commands.Event) (*commands.ReconcileResult, error) {
				s.Equal(order.TopicOrderCancelled, ev.Topic)
				return &commands.ReconcileResult{Topic: ev.Topic, Duplicate: true}, nil
			}).Times(1)

		headers := deliveryHeaders(paid, "")
		delete(headers, reqdto.HeaderTopic)
		rec := httptest.PerformRaw(s.T(), s.router, http.MethodPost, "/webhooks/orders/cancelled", paid, headers)

		var body resdto.ReconcileResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Duplicate)
	})

	s.Run("error: 401 on a bad signature", func() {
		headers := deliveryHeaders(paid, "orders/paid")
		headers[reqdto.HeaderHmac] = sign([]byte("something else"))

		rec := httptest.PerformRaw(s.T(), s.router, http.MethodPost, "/webhooks/orders/paid", paid, headers)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid webhook signature")
	})

	s.Run("error: 400 on an unknown topic", func() {
		rec := httptest.PerformRaw(s.T(), s.router, http.MethodPost, "/webhooks/products/update", paid, deliveryHeaders(paid, "products/update"))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "unsupported order event topic")
	})

	s.Run("error: 400 on a malformed body", func() {
		body := []byte(`[1, 2]`)
		rec := httptest.PerformRaw(s.T(), s.router, http.MethodPost, "/webhooks/orders/paid", body, deliveryHeaders(body, "orders/paid"))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 500 on infrastructure failure so the platform redelivers", func() {
		s.mockReconciler.EXPECT().Handle(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("connection refused"), errs.ErrDatabaseOperationFailed)).Times(1)

		rec := httptest.PerformRaw(s.T(), s.router, http.MethodPost, "/webhooks/orders/paid", paid, deliveryHeaders(paid, "orders/paid"))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Webhook processing failed")
	})
}
