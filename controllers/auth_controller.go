package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"tatvadirect/backend/config"
	"tatvadirect/backend/database"
	"tatvadirect/backend/middlewares"
	"tatvadirect/backend/models"
	"tatvadirect/backend/utils"
)

func Signup(cfg config.Config, store Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SignupRequest
		if !bindJSON(c, &req) {
			return
		}
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			internalError(c, err)
			return
		}
		u := &models.User{
			Name:     strings.TrimSpace(req.Name),
			Email:    req.Email,
			Password: hash,
			UserType: req.UserType,
			Company:  strings.TrimSpace(req.Company),
			Phone:    req.Phone,
			IsActive: true,
		}
		ctx, cancel := dbCtx(c)
		defer cancel()
		if err := store.CreateUser(ctx, u); err != nil {
			respondStoreError(c, err, "User not found")
			return
		}
		token, err := utils.GenerateJWT(cfg.JWTSecret, u.ID, cfg.JWTTTL)
		if err != nil {
			internalError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.AuthResponse{Message: "User created successfully", Token: token, User: u})
	}
}

func Login(cfg config.Config, store Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if !bindJSON(c, &req) {
			return
		}
		ctx, cancel := dbCtx(c)
		defer cancel()

		message := "Login successful"
		var u *models.User
		var err error
		if strings.EqualFold(strings.TrimSpace(req.Email), cfg.AdminEmail) && req.Password == cfg.AdminPassword {
			u, err = ensureAdmin(ctx, cfg, store)
			if err != nil {
				internalError(c, err)
				return
			}
			message = "Admin login successful"
		} else {
			u, err = store.GetUserByEmail(ctx, req.Email)
			if errors.Is(err, database.ErrNotFound) || (err == nil && !utils.CheckPassword(u.Password, req.Password)) {
				respondError(c, http.StatusUnauthorized, "Invalid email or password")
				return
			}
			if err != nil {
				internalError(c, err)
				return
			}
		}
		if !u.IsActive {
			respondError(c, http.StatusForbidden, "Account is deactivated")
			return
		}

		now := time.Now().UTC()
		u.LastLogin = &now
		if err := store.UpdateUser(ctx, u); err != nil {
			internalError(c, err)
			return
		}
		token, err := utils.GenerateJWT(cfg.JWTSecret, u.ID, cfg.JWTTTL)
		if err != nil {
			internalError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.AuthResponse{Message: message, Token: token, User: u})
	}
}

// ensureAdmin returns the admin account for the configured credentials,
// creating it on first use or promoting an existing account with that email.
func ensureAdmin(ctx context.Context, cfg config.Config, store Storage) (*models.User, error) {
	u, err := store.GetUserByEmail(ctx, cfg.AdminEmail)
	if errors.Is(err, database.ErrNotFound) {
		hash, err := utils.HashPassword(cfg.AdminPassword)
		if err != nil {
			return nil, err
		}
		u = &models.User{
			Name:          "Admin User",
			Email:         cfg.AdminEmail,
			Password:      hash,
			UserType:      models.UserTypeAdmin,
			Company:       "Tatva Direct",
			IsActive:      true,
			EmailVerified: true,
		}
		if err := store.CreateUser(ctx, u); err != nil {
			return nil, err
		}
		return u, nil
	}
	if err != nil {
		return nil, err
	}
	if u.UserType != models.UserTypeAdmin {
		u.UserType = models.UserTypeAdmin
	}
	return u, nil
}

func AuthProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": middlewares.CurrentUser(c)})
	}
}
