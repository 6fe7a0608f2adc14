package models

import "time"

type ProductSpecifications struct {
	Grade         string   `json:"grade,omitempty"`
	Brand         string   `json:"brand,omitempty"`
	Dimensions    string   `json:"dimensions,omitempty"`
	Weight        float64  `json:"weight,omitempty"`
	Color         string   `json:"color,omitempty"`
	Material      string   `json:"material,omitempty"`
	Certification []string `json:"certification,omitempty"`
}

type Product struct {
	ID               string                `json:"id"`
	Supplier         string                `json:"supplier"`
	Name             string                `json:"name"`
	Description      string                `json:"description"`
	Category         string                `json:"category"`
	Price            float64               `json:"price"`
	Unit             string                `json:"unit"`
	Stock            float64               `json:"stock"`
	MinOrderQuantity float64               `json:"minOrderQuantity"`
	Specifications   ProductSpecifications `json:"specifications"`
	Images           []string              `json:"images"`
	Tags             []string              `json:"tags"`
	AverageRating    float64               `json:"averageRating"`
	TotalReviews     int                   `json:"totalReviews"`
	IsActive         bool                  `json:"isActive"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
}

func (p *Product) StockValue() float64 { return p.Price * p.Stock }
