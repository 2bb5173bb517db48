package jwt

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrMissingShop  = errors.New("token has no shop destination")
)

// Claims are the admin session token claims. Dest is the shop's admin URL.
type Claims struct {
	Dest string `json:"dest"`
	jwt.RegisteredClaims
}

// Shop strips the scheme and path from Dest, leaving the shop domain.
func (c *Claims) Shop() string {
	dest := strings.TrimSpace(c.Dest)
	if dest == "" {
		return ""
	}
	if u, err := url.Parse(dest); err == nil && u.Host != "" {
		return u.Host
	}
	dest = strings.TrimPrefix(dest, "https://")
	dest = strings.TrimPrefix(dest, "http://")
	host, _, _ := strings.Cut(dest, "/")
	return host
}

type Service struct {
	secretKey     []byte
	audience      string
	tokenDuration time.Duration
}

func NewService(secretKey, audience string, tokenDuration time.Duration) *Service {
	return &Service{
		secretKey:     []byte(secretKey),
		audience:      audience,
		tokenDuration: tokenDuration,
	}
}

// GenerateToken signs a session token for shop. The storefront platform issues these in production.
func (s *Service) GenerateToken(shop string) (string, error) {
	now := time.Now()
	claims := Claims{
		Dest: "https://" + shop,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenDuration)),
		},
	}
	if s.audience != "" {
		claims.Audience = jwt.ClaimStrings{s.audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// ValidateToken verifies an HS256 session token and returns the shop it is scoped to.
func (s *Service) ValidateToken(tokenString string) (string, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.audience != "" {
		opts = append(opts, jwt.WithAudience(s.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	}, opts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	shop := claims.Shop()
	if shop == "" {
		return "", ErrMissingShop
	}
	return shop, nil
}
