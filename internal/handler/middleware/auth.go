package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenValidator resolves a session token to the shop it was issued for.
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

type AuthMiddleware struct {
	tokenValidator TokenValidator
}

const ctxShopKey = "shop"

func NewAuthMiddleware(tokenValidator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

// RequireShop scopes the request to the shop named by the bearer session token.
func (m *AuthMiddleware) RequireShop() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Session token required"},
			})
			c.Abort()
			return
		}

		shop, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Session token validation failed", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Invalid or expired session token"},
			})
			c.Abort()
			return
		}

		c.Set(ctxShopKey, shop)
		c.Next()
	}
}

func GetShop(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxShopKey)
	if !exists {
		return "", false
	}
	shop, ok := v.(string)
	return shop, ok && shop != ""
}

func setShop(c *gin.Context, shop string) {
	c.Set(ctxShopKey, shop)
}
