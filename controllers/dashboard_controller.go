package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"tatvadirect/backend/middlewares"
	"tatvadirect/backend/models"
)

const recentLimit = 5

type ServiceProviderStats struct {
	TotalBOQs        int     `json:"totalBOQs"`
	ActivePOs        int     `json:"activePOs"`
	TotalSpent       float64 `json:"totalSpent"`
	PendingApprovals int     `json:"pendingApprovals"`
}

type SupplierStats struct {
	TotalProducts int     `json:"totalProducts"`
	ActiveOrders  int     `json:"activeOrders"`
	TotalRevenue  float64 `json:"totalRevenue"`
	PendingQuotes int     `json:"pendingQuotes"`
}

type recentBOQ struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ItemCount  int       `json:"itemCount"`
	TotalValue float64   `json:"totalValue"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

type orderLine struct {
	ID          string    `json:"id"`
	OrderNumber string    `json:"orderNumber"`
	Vendor      string    `json:"vendor,omitempty"`
	Customer    string    `json:"customer,omitempty"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// openOrder is an order still in flight: not delivered, cancelled or returned.
func openOrder(status string) bool {
	switch status {
	case models.OrderStatusDelivered, models.OrderStatusCancelled, models.OrderStatusReturned:
		return false
	}
	return true
}

func serviceProviderStats(boqs []models.BOQ, orders []models.Order) ServiceProviderStats {
	s := ServiceProviderStats{TotalBOQs: len(boqs)}
	for _, o := range orders {
		if openOrder(o.Status) {
			s.ActivePOs++
		}
		if o.Status == models.OrderStatusDelivered {
			s.TotalSpent += o.TotalAmount
		}
		if o.Status == models.OrderStatusPending {
			s.PendingApprovals++
		}
	}
	return s
}

func supplierStats(products []models.Product, orders []models.Order) SupplierStats {
	s := SupplierStats{TotalProducts: len(products)}
	for _, o := range orders {
		if openOrder(o.Status) {
			s.ActiveOrders++
		}
		if o.Status == models.OrderStatusDelivered {
			s.TotalRevenue += o.TotalAmount
		}
		if o.Status == models.OrderStatusPending {
			s.PendingQuotes++
		}
	}
	return s
}

// displayNames resolves user ids to company-or-name, caching per request.
func displayNames(ctx context.Context, store Storage) func(id string) string {
	cache := map[string]string{}
	return func(id string) string {
		if n, ok := cache[id]; ok {
			return n
		}
		n := ""
		if u, err := store.GetUserByID(ctx, id); err == nil {
			n = u.DisplayName()
		}
		cache[id] = n
		return n
	}
}

func ServiceProviderDashboard(store Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := middlewares.CurrentUser(c)
		ctx, cancel := dbCtx(c)
		defer cancel()
		boqs, err := store.ListBOQsByServiceProvider(ctx, u.ID)
		if err != nil {
			internalError(c, err)
			return
		}
		all, err := store.ListOrdersForUser(ctx, u.ID)
		if err != nil {
			internalError(c, err)
			return
		}
		orders := make([]models.Order, 0, len(all))
		for _, o := range all {
			if o.ServiceProvider == u.ID {
				orders = append(orders, o)
			}
		}

		recentBOQs := make([]recentBOQ, 0, recentLimit)
		for _, b := range boqs {
			if len(recentBOQs) == recentLimit {
				break
			}
			recentBOQs = append(recentBOQs, recentBOQ{
				ID: b.ID, Name: b.Name, ItemCount: b.ItemCount(), TotalValue: b.TotalValue,
				Status: b.Status, CreatedAt: b.CreatedAt,
			})
		}
		name := displayNames(ctx, store)
		recentPOs := make([]orderLine, 0, recentLimit)
		for _, o := range orders {
			if len(recentPOs) == recentLimit {
				break
			}
			recentPOs = append(recentPOs, orderLine{
				ID: o.ID, OrderNumber: o.OrderNumber, Vendor: name(o.Supplier), Amount: o.TotalAmount,
				Status: o.Status, CreatedAt: o.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, gin.H{
			"stats":      serviceProviderStats(boqs, orders),
			"recentBOQs": recentBOQs,
			"recentPOs":  recentPOs,
		})
	}
}

func SupplierDashboard(store Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := middlewares.CurrentUser(c)
		ctx, cancel := dbCtx(c)
		defer cancel()
		products, err := store.ListProductsBySupplier(ctx, u.ID)
		if err != nil {
			internalError(c, err)
			return
		}
		all, err := store.ListOrdersForUser(ctx, u.ID)
		if err != nil {
			internalError(c, err)
			return
		}
		orders := make([]models.Order, 0, len(all))
		for _, o := range all {
			if o.Supplier == u.ID {
				orders = append(orders, o)
			}
		}
		name := displayNames(ctx, store)
		lines := make([]orderLine, 0, len(orders))
		for _, o := range orders {
			lines = append(lines, orderLine{
				ID: o.ID, OrderNumber: o.OrderNumber, Customer: name(o.ServiceProvider), Amount: o.TotalAmount,
				Status: o.Status, CreatedAt: o.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, gin.H{
			"stats":    supplierStats(products, orders),
			"products": products,
			"orders":   lines,
		})
	}
}
