package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"tatvadirect/backend/database"
	"tatvadirect/backend/middlewares"
	"tatvadirect/backend/models"
)

// CreateOrder places an order with one supplier. Unit prices always come from
// the supplier's catalog, never from the request.
func CreateOrder(store Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.OrderCreateRequest
		if !bindJSON(c, &req) {
			return
		}
		u := middlewares.CurrentUser(c)
		ctx, cancel := dbCtx(c)
		defer cancel()

		supplier, err := store.GetUserByID(ctx, req.Supplier)
		if errors.Is(err, database.ErrNotFound) || (err == nil && supplier.UserType != models.UserTypeSupplier) {
			respondError(c, http.StatusNotFound, "Supplier not found")
			return
		}
		if err != nil {
			internalError(c, err)
			return
		}
		if req.BOQ != "" {
			if _, err := store.GetBOQ(ctx, u.ID, req.BOQ); err != nil {
				respondStoreError(c, err, "BOQ not found")
				return
			}
		}

		items := make([]models.OrderItem, 0, len(req.Items))
		for _, in := range req.Items {
			p, err := store.GetSupplierProduct(ctx, supplier.ID, in.Product)
			if err != nil {
				respondStoreError(c, err, "Product not found")
				return
			}
			if !p.IsActive {
				respondError(c, http.StatusBadRequest, "Product "+p.Name+" is not available")
				return
			}
			if in.Quantity < p.MinOrderQuantity {
				respondError(c, http.StatusBadRequest, "Quantity for "+p.Name+" is below the minimum order quantity")
				return
			}
			items = append(items, models.OrderItem{
				Product:        p.ID,
				Name:           p.Name,
				Quantity:       in.Quantity,
				UnitPrice:      p.Price,
				TotalPrice:     in.Quantity * p.Price,
				Specifications: in.Specifications,
				DeliveryDate:   in.DeliveryDate,
			})
		}

		addr := req.DeliveryAddress
		if strings.TrimSpace(addr.Country) == "" {
			addr.Country = "India"
		}
		o := &models.Order{
			ServiceProvider:      u.ID,
			Supplier:             supplier.ID,
			BOQ:                  req.BOQ,
			Items:                items,
			PaymentStatus:        models.PaymentPending,
			PaymentMethod:        req.PaymentMethod,
			DeliveryAddress:      addr,
			ExpectedDeliveryDate: req.ExpectedDeliveryDate,
			Notes:                req.Notes,
			IsActive:             true,
		}
		o.AddStatusHistory(models.OrderStatusPending, u.ID, "Order placed")
		if err := store.CreateOrder(ctx, o); err != nil {
			respondStoreError(c, err, "Order not found")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Order created successfully", "order": o})
	}
}

func ListOrders(store Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := middlewares.CurrentUser(c)
		ctx, cancel := dbCtx(c)
		defer cancel()
		orders, err := store.ListOrdersForUser(ctx, u.ID)
		if err != nil {
			internalError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

func GetOrder(store Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := middlewares.CurrentUser(c)
		ctx, cancel := dbCtx(c)
		defer cancel()
		o, err := store.GetOrder(ctx, c.Param("id"))
		if err == nil && !o.IsParty(u.ID) {
			err = database.ErrNotFound
		}
		if err != nil {
			respondStoreError(c, err, "Order not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": o})
	}
}

// UpdateOrderStatus lets either party move the order to any status.
func UpdateOrderStatus(store Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.OrderStatusRequest
		if !bindJSON(c, &req) {
			return
		}
		u := middlewares.CurrentUser(c)
		ctx, cancel := dbCtx(c)
		defer cancel()
		o, err := store.GetOrder(ctx, c.Param("id"))
		if err == nil && !o.IsParty(u.ID) {
			err = database.ErrNotFound
		}
		if err != nil {
			respondStoreError(c, err, "Order not found")
			return
		}
		o.AddStatusHistory(req.Status, u.ID, req.Notes)
		if req.PaymentStatus != "" {
			o.PaymentStatus = req.PaymentStatus
		}
		if err := store.UpdateOrder(ctx, o); err != nil {
			respondStoreError(c, err, "Order not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully", "order": o})
	}
}
