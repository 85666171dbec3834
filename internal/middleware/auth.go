package middleware

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Rejection reasons returned verbatim to the caller. A failed check
// short-circuits the whole request; no scan runs and nothing is persisted.
const (
	ErrNoAuthHeader  = "no authorization header"
	ErrInvalidToken  = "invalid token"
	ErrNotSuperadmin = "not a superadmin"
)

// GetJWTSecret returns the HMAC signing secret from the environment.
func GetJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("FATAL: JWT_SECRET environment variable is required in production mode")
		}
		secret = "default_super_secret_key" // Development fallback only — DO NOT use in production
	}
	return []byte(secret)
}

// SuperadminChecker resolves whether a user id holds the superadmin role.
// Implemented by repository.UserRepository; injected so the guard carries no
// package-global store handle and stays unit-testable.
type SuperadminChecker interface {
	IsSuperadmin(ctx context.Context, userID string) (bool, error)
}

// RequireSuperadmin validates the bearer token, resolves the subject and
// confirms superadmin membership before any scan is allowed to run.
func RequireSuperadmin(authz SuperadminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrNoAuthHeader})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidToken})
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return GetJWTSecret(), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidToken})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidToken})
			return
		}

		userID, ok := claims["sub"].(string)
		if !ok || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidToken})
			return
		}

		// A subject that cannot be resolved is an invalid credential, not a
		// permission failure.
		isSuper, err := authz.IsSuperadmin(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidToken})
			return
		}
		if !isSuper {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrNotSuperadmin})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
