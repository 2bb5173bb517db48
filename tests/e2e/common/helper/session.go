//go:build e2e

package helper

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"
	"time"

	"serial-inventory/internal/handler/dto/request"
	"serial-inventory/internal/pkg/config"
	"serial-inventory/internal/pkg/jwt"

	"github.com/stretchr/testify/require"
)

// SessionToken issues an embedded-app session token for shop, signed like the admin would.
func SessionToken(t *testing.T, cfg config.JWTConfig, shop string) string {
	t.Helper()
	token, err := jwt.NewService(cfg.Secret, cfg.Audience, time.Hour).GenerateToken(shop)
	require.NoError(t, err)
	return token
}

// WebhookHeaders returns the delivery headers for body, signed with secret.
func WebhookHeaders(secret, shop, topic, deliveryID string, body []byte) map[string]string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return map[string]string{
		request.HeaderHmac:       base64.StdEncoding.EncodeToString(mac.Sum(nil)),
		request.HeaderTopic:      topic,
		request.HeaderShopDomain: shop,
		request.HeaderWebhookID:  deliveryID,
	}
}
