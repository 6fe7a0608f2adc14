package models

import "time"

type ProductCreateRequest struct {
	Name             string                `json:"name" binding:"required,max=100"`
	Description      string                `json:"description" binding:"max=500"`
	Category         string                `json:"category" binding:"required,oneof=steel cement aggregates masonry electrical plumbing hardware other"`
	Price            *float64              `json:"price" binding:"required,min=0"`
	Unit             string                `json:"unit" binding:"required,oneof=kg ton bag cft nos sqft meter liter"`
	Stock            *float64              `json:"stock" binding:"required,min=0"`
	MinOrderQuantity float64               `json:"minOrderQuantity" binding:"omitempty,min=1"`
	Specifications   ProductSpecifications `json:"specifications"`
	Images           []string              `json:"images"`
	Tags             []string              `json:"tags"`
}

type ProductUpdateRequest struct {
	Name             *string                `json:"name" binding:"omitempty,min=1,max=100"`
	Description      *string                `json:"description" binding:"omitempty,max=500"`
	Category         *string                `json:"category" binding:"omitempty,oneof=steel cement aggregates masonry electrical plumbing hardware other"`
	Price            *float64               `json:"price" binding:"omitempty,min=0"`
	Unit             *string                `json:"unit" binding:"omitempty,oneof=kg ton bag cft nos sqft meter liter"`
	Stock            *float64               `json:"stock" binding:"omitempty,min=0"`
	MinOrderQuantity *float64               `json:"minOrderQuantity" binding:"omitempty,min=1"`
	Specifications   *ProductSpecifications `json:"specifications"`
	Images           []string               `json:"images"`
	Tags             []string               `json:"tags"`
	IsActive         *bool                  `json:"isActive"`
}

// Apply copies the set fields onto p.
func (r ProductUpdateRequest) Apply(p *Product) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Category != nil {
		p.Category = *r.Category
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.Unit != nil {
		p.Unit = *r.Unit
	}
	if r.Stock != nil {
		p.Stock = *r.Stock
	}
	if r.MinOrderQuantity != nil {
		p.MinOrderQuantity = *r.MinOrderQuantity
	}
	if r.Specifications != nil {
		p.Specifications = *r.Specifications
	}
	if r.Images != nil {
		p.Images = r.Images
	}
	if r.Tags != nil {
		p.Tags = r.Tags
	}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
}

type BOQItemInput struct {
	Description    string  `json:"description" binding:"required"`
	Quantity       float64 `json:"quantity" binding:"min=0"`
	Unit           string  `json:"unit" binding:"required,oneof=kg ton bag cft nos sqft meter liter"`
	Rate           float64 `json:"rate" binding:"min=0"`
	Amount         float64 `json:"amount" binding:"min=0"`
	Category       string  `json:"category" binding:"omitempty,oneof=steel cement aggregates masonry electrical plumbing hardware other"`
	Specifications string  `json:"specifications"`
}

type BOQCreateRequest struct {
	Name        string         `json:"name" binding:"required,max=100"`
	Description string         `json:"description" binding:"max=500"`
	Project     BOQProject     `json:"project"`
	Items       []BOQItemInput `json:"items" binding:"dive"`
}

type BOQStatusRequest struct {
	Status  string `json:"status" binding:"required,oneof=draft processing normalized vendor_selection completed cancelled"`
	Details string `json:"details"`
}

type OrderItemInput struct {
	Product        string     `json:"product" binding:"required"`
	Quantity       float64    `json:"quantity" binding:"required,min=1"`
	Specifications string     `json:"specifications"`
	DeliveryDate   *time.Time `json:"deliveryDate"`
}

type OrderCreateRequest struct {
	Supplier             string           `json:"supplier" binding:"required"`
	BOQ                  string           `json:"boq"`
	Items                []OrderItemInput `json:"items" binding:"required,min=1,dive"`
	PaymentMethod        string           `json:"paymentMethod" binding:"omitempty,oneof=cash bank_transfer cheque online credit"`
	DeliveryAddress      DeliveryAddress  `json:"deliveryAddress"`
	ExpectedDeliveryDate *time.Time       `json:"expectedDeliveryDate"`
	Notes                string           `json:"notes"`
}

type OrderStatusRequest struct {
	Status        string `json:"status" binding:"required,oneof=pending confirmed processing shipped delivered cancelled returned"`
	PaymentStatus string `json:"paymentStatus" binding:"omitempty,oneof=pending partial paid refunded"`
	Notes         string `json:"notes"`
}
