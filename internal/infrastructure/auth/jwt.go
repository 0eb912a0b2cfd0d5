package auth

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"
	"time"

	"subsidy_pilot_service/internal/pkg/config"
	"subsidy_pilot_service/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// UserIDKey is the gin context key holding the authenticated user id.
const UserIDKey = "userID"

// TokenIssuer signs and validates HS256 access tokens. The token subject
// carries the user id.
type TokenIssuer struct {
	signingKey []byte
	demoSecret []byte
	issuer     string
	tokenTTL   time.Duration
	logger     logger.Logger
}

// NewTokenIssuer creates a TokenIssuer from auth settings.
func NewTokenIssuer(settings *config.AuthSettings, logger logger.Logger) (*TokenIssuer, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid auth settings: %w", err)
	}
	settings.ApplyDefaults()

	return &TokenIssuer{
		signingKey: []byte(settings.SigningKey),
		demoSecret: []byte(settings.DemoSecret),
		issuer:     settings.Issuer,
		tokenTTL:   settings.TokenTTL,
		logger:     logger,
	}, nil
}

// VerifyCredential checks the shared secret presented with a token request.
func (i *TokenIssuer) VerifyCredential(secret string) error {
	if subtle.ConstantTimeCompare([]byte(secret), i.demoSecret) != 1 {
		return fmt.Errorf("invalid credential")
	}
	return nil
}

// Issue creates a signed token for the given user id.
func (i *TokenIssuer) Issue(userID string) (string, time.Time, error) {
	if userID == "" {
		return "", time.Time{}, fmt.Errorf("user id is required")
	}

	now := time.Now()
	expiresAt := now.Add(i.tokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    i.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})

	signed, err := token.SignedString(i.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Validate parses a token string and returns the user id from its subject.
func (i *TokenIssuer) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.signingKey, nil
	}, jwt.WithIssuer(i.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", fmt.Errorf("token carries no subject")
	}

	return claims.Subject, nil
}

// Middleware authenticates requests with a Bearer token and stores the user
// id in the gin context.
func (i *TokenIssuer) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing authorization header"})
			return
		}

		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authorization header is not a bearer token"})
			return
		}

		userID, err := i.Validate(tokenString)
		if err != nil {
			i.logger.Warn("Rejected token: ", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// UserIDFromContext returns the authenticated user id set by the middleware.
func UserIDFromContext(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
