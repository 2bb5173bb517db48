package api

import (
	"log/slog"
	"net/http"
	"strings"

	reqdto "serial-inventory/internal/handler/dto/request"
	resdto "serial-inventory/internal/handler/dto/response"
	"serial-inventory/internal/handler/httperr"
	"serial-inventory/internal/handler/middleware"
	"serial-inventory/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	reconciler commands.Reconciler
}

func NewWebhookHandler(reconciler commands.Reconciler) *WebhookHandler {
	return &WebhookHandler{reconciler: reconciler}
}

// @Summary Order lifecycle webhook
// @Description Reconciles serials for orders/create, orders/paid, orders/cancelled and refunds/create.
// @Description Infrastructure failures answer 500 so the platform redelivers.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param topic path string false "Topic, when the X-Shopify-Topic header is absent"
// @Param X-Shopify-Hmac-Sha256 header string true "Base64 HMAC-SHA256 of the body"
// @Success 200 {object} resdto.ReconcileResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} map[string]string
// @Failure 500 {object} httperr.Response
// @Router /webhooks/{topic} [post]
func (h *WebhookHandler) Receive(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unreadable body", nil)
		return
	}

	topic := c.GetHeader(reqdto.HeaderTopic)
	if topic == "" {
		topic = strings.Trim(c.Param("topic"), "/")
	}
	meta := reqdto.WebhookMeta{
		Topic:      reqdto.ParseTopic(topic),
		DeliveryID: c.GetHeader(reqdto.HeaderWebhookID),
	}
	if shop, ok := middleware.GetShop(c); ok {
		meta.Shop = shop
	}

	ev, err := reqdto.DecodeOrderEvent(meta, body)
	if err != nil {
		httperr.Abort(c, err, "Webhook rejected")
		return
	}
	res, err := h.reconciler.Handle(c.Request.Context(), ev)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "webhook processing failed",
			"topic", meta.Topic, "delivery_id", meta.DeliveryID, "error", err.Error())
		httperr.Abort(c, err, "Webhook processing failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromReconcileResult(res))
}
