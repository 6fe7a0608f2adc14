package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"tatvadirect/backend/middlewares"
	"tatvadirect/backend/models"
)

func loadAdminReport(ctx context.Context, store Storage) (AdminReport, error) {
	users, err := store.ListUsers(ctx)
	if err != nil {
		return AdminReport{}, err
	}
	products, err := store.ListProducts(ctx)
	if err != nil {
		return AdminReport{}, err
	}
	boqs, err := store.ListBOQs(ctx)
	if err != nil {
		return AdminReport{}, err
	}
	orders, err := store.ListOrders(ctx)
	if err != nil {
		return AdminReport{}, err
	}
	return BuildAdminReport(users, products, boqs, orders), nil
}

func AdminDashboard(store Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx(c)
		defer cancel()
		r, err := loadAdminReport(ctx, store)
		if err != nil {
			internalError(c, err)
			return
		}
		if len(r.Transactions) > dashboardTransactions {
			r.Transactions = r.Transactions[:dashboardTransactions]
		}
		c.JSON(http.StatusOK, r)
	}
}

func AdminUsers(store Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx(c)
		defer cancel()
		users, err := store.ListUsers(ctx)
		if err != nil {
			internalError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": SummarizeUsers(users)})
	}
}

func AdminUser(store Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx(c)
		defer cancel()
		u, err := store.GetUserByID(ctx, c.Param("id"))
		if err != nil {
			respondStoreError(c, err, "User not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": u})
	}
}

func AdminTransactions(store Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := dbCtx(c)
		defer cancel()
		users, err := store.ListUsers(ctx)
		if err != nil {
			internalError(c, err)
			return
		}
		orders, err := store.ListOrders(ctx)
		if err != nil {
			internalError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"transactions": BuildTransactions(users, orders)})
	}
}

// UpdateUserStatus activates or deactivates an account. Admins cannot
// deactivate themselves.
func UpdateUserStatus(store Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.UserStatusRequest
		if !bindJSON(c, &req) {
			return
		}
		id := c.Param("id")
		if me := middlewares.CurrentUser(c); me != nil && me.ID == id && req.Status == "inactive" {
			respondError(c, http.StatusBadRequest, "You cannot deactivate your own account")
			return
		}
		ctx, cancel := dbCtx(c)
		defer cancel()
		u, err := store.GetUserByID(ctx, id)
		if err != nil {
			respondStoreError(c, err, "User not found")
			return
		}
		u.IsActive = req.Status == "active"
		if err := store.UpdateUser(ctx, u); err != nil {
			respondStoreError(c, err, "User not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User status updated successfully", "user": u})
	}
}
