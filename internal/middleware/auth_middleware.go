package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/logging"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AdminEmailKey is the context key holding the authenticated admin email
const AdminEmailKey = "adminEmail"

// JWTAuthMiddleware rejects requests without a valid Bearer token signed with secret. An empty secret rejects everything.
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	if secret == "" {
		logging.Log.Error("JWTAuthMiddleware: no signing secret configured, rejecting all requests")
		return func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		}
	}

	return func(c *gin.Context) {
		const bearerSchema = "Bearer "
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}
		if !strings.HasPrefix(authHeader, bearerSchema) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := utils.ValidateJWT(strings.TrimPrefix(authHeader, bearerSchema), secret)
		if err != nil {
			logging.Log.WithError(err).Warn("JWTAuthMiddleware: token validation failed")
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			} else {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			return
		}

		c.Set(AdminEmailKey, claims.Subject)
		c.Next()
	}
}
