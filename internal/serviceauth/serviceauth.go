// Package serviceauth issues and validates the HS256 tokens services use to call
// each other's mutating endpoints.
package serviceauth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingSecret is returned when a token service is built without a secret.
var ErrMissingSecret = errors.New("service auth secret is empty")

const defaultTokenTTL = time.Hour

// Claims identifies the calling service.
type Claims struct {
	Service string `json:"service"`
	jwt.RegisteredClaims
}

// TokenService signs and validates service tokens with a shared secret.
type TokenService struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
	now       func() time.Time
}

func NewTokenService(secretKey, issuer string) *TokenService {
	return &TokenService{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		ttl:       defaultTokenTTL,
		now:       time.Now,
	}
}

// GenerateToken generates a token for service-to-service communication.
func (s *TokenService) GenerateToken() (string, error) {
	if len(s.secretKey) == 0 {
		return "", ErrMissingSecret
	}

	now := s.now()
	claims := Claims{
		Service: s.issuer,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Subject:   "service-auth",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// ValidateToken validates a token and returns its claims.
func (s *TokenService) ValidateToken(tokenString string) (*Claims, error) {
	if len(s.secretKey) == 0 {
		return nil, ErrMissingSecret
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}

// BearerHeader returns a ready-to-use Authorization header value.
func (s *TokenService) BearerHeader() (string, error) {
	token, err := s.GenerateToken()
	if err != nil {
		return "", err
	}
	return "Bearer " + token, nil
}

// Middleware rejects requests without a valid service token.
func Middleware(tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "authorization_required",
				"message": "Authorization header is required",
			})
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "invalid_token_format",
				"message": "Authorization header must be Bearer token",
			})
			return
		}

		claims, err := tokens.ValidateToken(tokenParts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "invalid_token",
				"message": "Invalid or expired token",
			})
			return
		}

		c.Set("calling_service", claims.Service)
		c.Next()
	}
}
