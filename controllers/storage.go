package controllers

import (
	"context"

	"tatvadirect/backend/models"
)

// Storage is everything the handlers need from persistence. *database.Store
// implements it; tests use an in-memory double.
type Storage interface {
	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	ListUsers(ctx context.Context) ([]models.User, error)

	CreateProduct(ctx context.Context, p *models.Product) error
	GetSupplierProduct(ctx context.Context, supplierID, id string) (*models.Product, error)
	ListProductsBySupplier(ctx context.Context, supplierID string) ([]models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, supplierID, id string) error

	CreateBOQ(ctx context.Context, b *models.BOQ) error
	GetBOQ(ctx context.Context, ownerID, id string) (*models.BOQ, error)
	ListBOQsByServiceProvider(ctx context.Context, ownerID string) ([]models.BOQ, error)
	ListBOQs(ctx context.Context) ([]models.BOQ, error)
	UpdateBOQ(ctx context.Context, b *models.BOQ) error

	CreateOrder(ctx context.Context, o *models.Order) error
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	ListOrdersForUser(ctx context.Context, userID string) ([]models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrder(ctx context.Context, o *models.Order) error
}
