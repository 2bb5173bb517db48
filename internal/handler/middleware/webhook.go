package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"serial-inventory/internal/handler/dto/request"

	"github.com/gin-gonic/gin"
)

const (
	HeaderWebhookTopic = request.HeaderTopic
	HeaderWebhookShop  = request.HeaderShopDomain
	HeaderWebhookID    = request.HeaderWebhookID

	maxWebhookBody = 5 << 20
)

type WebhookMiddleware struct {
	secret []byte
}

func NewWebhookMiddleware(secret string) *WebhookMiddleware {
	return &WebhookMiddleware{secret: []byte(secret)}
}

// VerifyWebhook rejects deliveries whose body does not match the HMAC-SHA256 header.
// The body is restored for the handler.
func (m *WebhookMiddleware) VerifyWebhook() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Unreadable webhook body"}})
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		if !m.Valid(body, c.GetHeader(request.HeaderHmac)) {
			slog.Warn("Webhook signature rejected",
				"topic", c.GetHeader(HeaderWebhookTopic), "shop", c.GetHeader(HeaderWebhookShop))
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Invalid webhook signature"}})
			c.Abort()
			return
		}

		if shop := strings.TrimSpace(c.GetHeader(HeaderWebhookShop)); shop != "" {
			setShop(c, shop)
		}
		c.Next()
	}
}

func (m *WebhookMiddleware) Valid(body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	got, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(got, m.Sign(body))
}

func (m *WebhookMiddleware) Sign(body []byte) []byte {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write(body)
	return mac.Sum(nil)
}
