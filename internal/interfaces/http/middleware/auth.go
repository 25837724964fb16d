// Package middleware holds the gin middleware chain: authentication, request
// logging, CORS and rate limiting.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/turtacn/TalentMatch-AI/internal/config"
	"github.com/turtacn/TalentMatch-AI/internal/domain/identity"
)

// identityKey is the gin context key holding the authenticated Identity.
const identityKey = "auth.identity"

// Claims is the JWT payload the platform issues.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Auth verifies the bearer token and stores the caller's Identity in the
// request context.  Requests without a valid token are rejected with 401.
func Auth(cfg config.AuthConfig) gin.HandlerFunc {
	keyFunc := func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.JWTSecret), nil
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "COMMON_004",
				"message": "missing bearer token",
			})
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(header[len(prefix):], claims, keyFunc,
			jwt.WithAudience(cfg.Audience),
			jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "COMMON_004",
				"message": "invalid or expired token",
			})
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "COMMON_004",
				"message": "token subject is not a user id",
			})
			return
		}

		c.Set(identityKey, identity.Identity{
			UserID: userID,
			Role:   identity.Role(claims.Role),
		})
		c.Next()
	}
}

// IdentityFrom extracts the authenticated Identity stored by Auth.
func IdentityFrom(c *gin.Context) (identity.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return identity.Identity{}, false
	}
	ident, ok := v.(identity.Identity)
	return ident, ok
}
