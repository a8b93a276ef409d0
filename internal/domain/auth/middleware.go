package auth

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"sic/internal/pkg/jwt"
	"sic/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type lastSeenToucher interface {
	TouchLastSeen(ctx context.Context, id string, at time.Time) error
}

// JWTAuth validates the bearer token, puts user_id, email and role into the
// Gin context, and bumps the user's last_seen so presence tracking works
// without a dedicated heartbeat endpoint.
func JWTAuth(jwtService *jwt.Service, users lastSeenToucher) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Error(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		if err := users.TouchLastSeen(c.Request.Context(), claims.UserID, time.Now()); err != nil {
			log.Printf("auth: failed to update last_seen for %s: %v", claims.UserID, err)
		}

		c.Next()
	}
}

// RequireAdmin must run after JWTAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != string(RoleAdmin) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
