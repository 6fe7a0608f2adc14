package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"tatvadirect/backend/utils"
)

func abortError(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, gin.H{"status": "error", "message": msg})
}

// Auth verifies the bearer token and stores the caller id under "user_id".
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		t := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if !strings.HasPrefix(h, "Bearer ") || t == "" {
			abortError(c, http.StatusUnauthorized, "Access token required")
			return
		}
		claims, err := utils.ParseJWT(secret, t)
		if errors.Is(err, utils.ErrTokenExpired) {
			abortError(c, http.StatusUnauthorized, "Token expired")
			return
		}
		if err != nil {
			abortError(c, http.StatusUnauthorized, "Invalid token")
			return
		}
		c.Set("user_id", claims.UserID)
		c.Next()
	}
}
