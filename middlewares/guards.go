package middlewares

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"tatvadirect/backend/database"
	"tatvadirect/backend/models"
)

const userKey = "user"

type UserFinder interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// LoadUser resolves the authenticated id to a stored, active user.
func LoadUser(finder UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		u, err := finder.GetUserByID(ctx, c.GetString("user_id"))
		if errors.Is(err, database.ErrNotFound) {
			abortError(c, http.StatusUnauthorized, "User not found")
			return
		}
		if err != nil {
			log.Printf("load user %s: %v", c.GetString("user_id"), err)
			abortError(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		if !u.IsActive {
			abortError(c, http.StatusForbidden, "Account is deactivated")
			return
		}
		c.Set(userKey, u)
		c.Next()
	}
}

// CurrentUser returns the user placed by LoadUser, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}

func RequireUserType(types ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u != nil {
			for _, t := range types {
				if u.UserType == t {
					c.Next()
					return
				}
			}
		}
		abortError(c, http.StatusForbidden, "Access denied. "+strings.Join(types, " or ")+" account required.")
	}
}

func RequireAdmin(adminEmail string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil || !u.IsAdmin(adminEmail) {
			abortError(c, http.StatusForbidden, "Access denied. Admin privileges required.")
			return
		}
		c.Next()
	}
}

// Recovery turns panics into the JSON error envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("panic on %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		abortError(c, http.StatusInternalServerError, "Internal server error")
	})
}
