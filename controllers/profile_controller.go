package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"tatvadirect/backend/middlewares"
	"tatvadirect/backend/models"
	"tatvadirect/backend/utils"
)

func GetProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := middlewares.CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"profile": u.ProfileView()})
	}
}

func UpdateProfile(store Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ProfileUpdateRequest
		if !bindJSON(c, &req) {
			return
		}
		u := middlewares.CurrentUser(c)
		req.Apply(u)
		ctx, cancel := dbCtx(c)
		defer cancel()
		if err := store.UpdateUser(ctx, u); err != nil {
			respondStoreError(c, err, "User not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "profile": u.ProfileView()})
	}
}

func ChangePassword(store Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.PasswordChangeRequest
		if !bindJSON(c, &req) {
			return
		}
		u := middlewares.CurrentUser(c)
		if !utils.CheckPassword(u.Password, req.CurrentPassword) {
			respondError(c, http.StatusUnauthorized, "Current password is incorrect")
			return
		}
		hash, err := utils.HashPassword(req.NewPassword)
		if err != nil {
			internalError(c, err)
			return
		}
		now := time.Now().UTC()
		u.Password = hash
		u.PasswordChangedAt = &now
		ctx, cancel := dbCtx(c)
		defer cancel()
		if err := store.UpdateUser(ctx, u); err != nil {
			respondStoreError(c, err, "User not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
	}
}
