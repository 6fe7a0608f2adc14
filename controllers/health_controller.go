package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "success",
			"message":   "Server is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		})
	}
}

// Ready reports whether the database answers.
func Ready(store Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx(c)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			respondError(c, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Database reachable"})
	}
}

func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "Route "+c.Request.URL.Path+" not found")
	}
}
