package controllers

import (
	"sort"
	"time"

	"tatvadirect/backend/models"
)

const dashboardTransactions = 20

type AdminStats struct {
	TotalUsers          int     `json:"totalUsers"`
	ServiceProviders    int     `json:"serviceProviders"`
	Suppliers           int     `json:"suppliers"`
	TotalTransactions   int     `json:"totalTransactions"`
	TotalRevenue        float64 `json:"totalRevenue"`
	ActiveBOQs          int     `json:"activeBOQs"`
	TotalProducts       int     `json:"totalProducts"`
	TotalInventoryValue float64 `json:"totalInventoryValue"`
	ActiveOrders        int     `json:"activeOrders"`
}

type UserSummary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Company    string    `json:"company"`
	UserType   string    `json:"userType"`
	JoinedDate time.Time `json:"joinedDate"`
	Status     string    `json:"status"`
}

type Transaction struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	ServiceProvider string    `json:"serviceProvider"`
	Supplier        string    `json:"supplier"`
	Amount          float64   `json:"amount"`
	Date            time.Time `json:"date"`
	Status          string    `json:"status"`
}

type SupplierRollup struct {
	models.User
	Products            []models.Product `json:"products"`
	Orders              []models.Order   `json:"orders"`
	TotalProducts       int              `json:"totalProducts"`
	TotalInventoryValue float64          `json:"totalInventoryValue"`
	TotalRevenue        float64          `json:"totalRevenue"`
	ActiveOrders        int              `json:"activeOrders"`
	Categories          []string         `json:"categories"`
}

type ServiceProviderRollup struct {
	models.User
	BOQs          []models.BOQ   `json:"boqs"`
	POs           []models.Order `json:"pos"`
	TotalBOQs     int            `json:"totalBOQs"`
	TotalBOQValue float64        `json:"totalBOQValue"`
	TotalSpent    float64        `json:"totalSpent"`
	ActivePOs     int            `json:"activePOs"`
	ActiveBOQs    int            `json:"activeBOQs"`
}

type AdminReport struct {
	Stats               AdminStats              `json:"stats"`
	Users               []UserSummary           `json:"users"`
	Transactions        []Transaction           `json:"transactions"`
	SupplierData        []SupplierRollup        `json:"supplierData"`
	ServiceProviderData []ServiceProviderRollup `json:"serviceProviderData"`
	Products            []models.Product        `json:"products"`
	BOQs                []models.BOQ            `json:"boqs"`
	Orders              []models.Order          `json:"orders"`
}

func SummarizeUsers(users []models.User) []UserSummary {
	out := make([]UserSummary, 0, len(users))
	for _, u := range users {
		s := UserSummary{
			ID:         u.ID,
			Name:       u.Name,
			Email:      u.Email,
			Company:    u.Company,
			UserType:   u.UserType,
			JoinedDate: u.CreatedAt,
			Status:     "active",
		}
		if s.Company == "" {
			s.Company = "Individual"
		}
		if s.UserType == "" {
			s.UserType = "general"
		}
		if !u.IsActive {
			s.Status = "inactive"
		}
		out = append(out, s)
	}
	return out
}

// BuildTransactions emits one "order" transaction per order, newest first.
// Parties are shown by company, falling back to name, then "Unknown ...".
func BuildTransactions(users []models.User, orders []models.Order) []Transaction {
	byID := make(map[string]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	party := func(id, unknown string) string {
		if u, ok := byID[id]; ok {
			return u.DisplayName()
		}
		return unknown
	}
	out := make([]Transaction, 0, len(orders))
	for _, o := range orders {
		out = append(out, Transaction{
			ID:              o.OrderNumber,
			Type:            "order",
			ServiceProvider: party(o.ServiceProvider, "Unknown Service Provider"),
			Supplier:        party(o.Supplier, "Unknown Supplier"),
			Amount:          o.TotalAmount,
			Date:            o.CreatedAt,
			Status:          o.Status,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// BuildAdminReport joins every entity by owner id in memory. Revenue and
// spend count delivered orders; "active" orders are those not yet delivered.
func BuildAdminReport(users []models.User, products []models.Product, boqs []models.BOQ, orders []models.Order) AdminReport {
	productsBySupplier := map[string][]models.Product{}
	for _, p := range products {
		productsBySupplier[p.Supplier] = append(productsBySupplier[p.Supplier], p)
	}
	ordersBySupplier := map[string][]models.Order{}
	ordersByBuyer := map[string][]models.Order{}
	for _, o := range orders {
		ordersBySupplier[o.Supplier] = append(ordersBySupplier[o.Supplier], o)
		ordersByBuyer[o.ServiceProvider] = append(ordersByBuyer[o.ServiceProvider], o)
	}
	boqsByOwner := map[string][]models.BOQ{}
	for _, b := range boqs {
		boqsByOwner[b.ServiceProvider] = append(boqsByOwner[b.ServiceProvider], b)
	}

	r := AdminReport{
		Users:               SummarizeUsers(users),
		Transactions:        BuildTransactions(users, orders),
		SupplierData:        []SupplierRollup{},
		ServiceProviderData: []ServiceProviderRollup{},
		Products:            nonNil(products),
		BOQs:                nonNil(boqs),
		Orders:              nonNil(orders),
	}

	for _, u := range users {
		switch u.UserType {
		case models.UserTypeSupplier:
			r.Stats.Suppliers++
			ps, ords := nonNil(productsBySupplier[u.ID]), nonNil(ordersBySupplier[u.ID])
			roll := SupplierRollup{User: u, Products: ps, Orders: ords, TotalProducts: len(ps), Categories: []string{}}
			seen := map[string]bool{}
			for _, p := range ps {
				roll.TotalInventoryValue += p.StockValue()
				if !seen[p.Category] {
					seen[p.Category] = true
					roll.Categories = append(roll.Categories, p.Category)
				}
			}
			for _, o := range ords {
				if o.Status == models.OrderStatusDelivered {
					roll.TotalRevenue += o.TotalAmount
				} else {
					roll.ActiveOrders++
				}
			}
			r.SupplierData = append(r.SupplierData, roll)
		case models.UserTypeServiceProvider:
			r.Stats.ServiceProviders++
			bs, ords := nonNil(boqsByOwner[u.ID]), nonNil(ordersByBuyer[u.ID])
			roll := ServiceProviderRollup{User: u, BOQs: bs, POs: ords, TotalBOQs: len(bs)}
			for _, b := range bs {
				roll.TotalBOQValue += b.TotalValue
				if b.Status != models.BOQStatusCompleted {
					roll.ActiveBOQs++
				}
			}
			for _, o := range ords {
				if o.Status == models.OrderStatusDelivered {
					roll.TotalSpent += o.TotalAmount
				} else {
					roll.ActivePOs++
				}
			}
			r.ServiceProviderData = append(r.ServiceProviderData, roll)
		}
	}

	r.Stats.TotalUsers = len(users)
	r.Stats.TotalTransactions = len(r.Transactions)
	r.Stats.TotalProducts = len(products)
	for _, p := range products {
		r.Stats.TotalInventoryValue += p.StockValue()
	}
	for _, b := range boqs {
		if b.Status != models.BOQStatusCompleted {
			r.Stats.ActiveBOQs++
		}
	}
	for _, o := range orders {
		if o.Status == models.OrderStatusDelivered {
			r.Stats.TotalRevenue += o.TotalAmount
		} else {
			r.Stats.ActiveOrders++
		}
	}
	return r
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
