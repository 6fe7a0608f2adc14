package models

import (
	"fmt"
	"time"
)

type OrderItem struct {
	Product        string     `json:"product"`
	Name           string     `json:"name,omitempty"`
	Quantity       float64    `json:"quantity"`
	UnitPrice      float64    `json:"unitPrice"`
	TotalPrice     float64    `json:"totalPrice"`
	Specifications string     `json:"specifications,omitempty"`
	DeliveryDate   *time.Time `json:"deliveryDate,omitempty"`
}

type DeliveryAddress struct {
	Street        string `json:"street,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	ZipCode       string `json:"zipCode,omitempty"`
	Country       string `json:"country,omitempty"`
	ContactPerson string `json:"contactPerson,omitempty"`
	ContactPhone  string `json:"contactPhone,omitempty"`
}

type StatusHistoryEntry struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	UpdatedBy string    `json:"updatedBy,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}

type Order struct {
	ID                   string               `json:"id"`
	OrderNumber          string               `json:"orderNumber"`
	ServiceProvider      string               `json:"serviceProvider"`
	Supplier             string               `json:"supplier"`
	BOQ                  string               `json:"boq,omitempty"`
	Items                []OrderItem          `json:"items"`
	Status               string               `json:"status"`
	TotalAmount          float64              `json:"totalAmount"`
	PaymentStatus        string               `json:"paymentStatus"`
	PaymentMethod        string               `json:"paymentMethod,omitempty"`
	DeliveryAddress      DeliveryAddress      `json:"deliveryAddress"`
	ExpectedDeliveryDate *time.Time           `json:"expectedDeliveryDate,omitempty"`
	ActualDeliveryDate   *time.Time           `json:"actualDeliveryDate,omitempty"`
	Notes                string               `json:"notes,omitempty"`
	StatusHistory        []StatusHistoryEntry `json:"statusHistory"`
	IsActive             bool                 `json:"isActive"`
	CreatedAt            time.Time            `json:"createdAt"`
	UpdatedAt            time.Time            `json:"updatedAt"`
}

// RecalculateTotal derives TotalAmount from item totals. Called on every save.
func (o *Order) RecalculateTotal() {
	var total float64
	for _, it := range o.Items {
		total += it.TotalPrice
	}
	o.TotalAmount = total
}

// AddStatusHistory records the change and applies the new status.
func (o *Order) AddStatusHistory(status, updatedBy, notes string) {
	now := time.Now().UTC()
	o.StatusHistory = append(o.StatusHistory, StatusHistoryEntry{
		Status:    status,
		Timestamp: now,
		UpdatedBy: updatedBy,
		Notes:     notes,
	})
	o.Status = status
	if status == OrderStatusDelivered && o.ActualDeliveryDate == nil {
		o.ActualDeliveryDate = &now
	}
}

// DeliveryStatus mirrors how dashboards label shipment timeliness.
func (o *Order) DeliveryStatus(now time.Time) string {
	if o.ActualDeliveryDate != nil {
		return "delivered"
	}
	if o.ExpectedDeliveryDate != nil && o.ExpectedDeliveryDate.Before(now) {
		return "overdue"
	}
	return "on-time"
}

// IsParty reports whether userID is the buyer or the supplier on the order.
func (o *Order) IsParty(userID string) bool {
	return o.ServiceProvider == userID || o.Supplier == userID
}

// FormatOrderNumber builds ORD + year + month + 4 digit sequence.
func FormatOrderNumber(t time.Time, seq int) string {
	return fmt.Sprintf("ORD%04d%02d%04d", t.Year(), int(t.Month()), seq)
}

// MonthBounds returns [start of month, start of next month) for t.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

func IsOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusReturned:
		return true
	}
	return false
}

func IsPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentPartial, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}
