package testutils

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"tatvadirect/backend/database"
	"tatvadirect/backend/models"
)

// MemoryStore is an in-memory controllers.Storage with the same ownership
// scoping and derived-total rules as the Postgres store.
type MemoryStore struct {
	mu       sync.Mutex
	users    []*models.User
	products []*models.Product
	boqs     []*models.BOQ
	orders   []*models.Order

	PingErr error
	// ProductErr, when set, is called before each product insert and may
	// fail it.
	ProductErr func(p *models.Product) error
	// Now stamps created/updated times; tests may pin it.
	Now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{Now: func() time.Time { return time.Now().UTC() }}
}

func (m *MemoryStore) Ping(ctx context.Context) error { return m.PingErr }

func (m *MemoryStore) CreateUser(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	for _, x := range m.users {
		if x.Email == u.Email {
			return &database.DuplicateError{Field: "email"}
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := m.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	cp := *u
	m.users = append(m.users, &cp)
	return nil
}

func (m *MemoryStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *MemoryStore) UpdateUser(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, x := range m.users {
		if x.ID == u.ID {
			u.Email = x.Email
			u.UpdatedAt = m.Now()
			cp := *u
			m.users[i] = &cp
			return nil
		}
	}
	return database.ErrNotFound
}

func (m *MemoryStore) ListUsers(ctx context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.User{}
	for i := len(m.users) - 1; i >= 0; i-- {
		out = append(out, *m.users[i])
	}
	return out, nil
}

func (m *MemoryStore) CreateProduct(ctx context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ProductErr != nil {
		if err := m.ProductErr(p); err != nil {
			return err
		}
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	now := m.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	cp := *p
	m.products = append(m.products, &cp)
	return nil
}

func (m *MemoryStore) GetSupplierProduct(ctx context.Context, supplierID, id string) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.ID == id && p.Supplier == supplierID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *MemoryStore) ListProductsBySupplier(ctx context.Context, supplierID string) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Product{}
	for i := len(m.products) - 1; i >= 0; i-- {
		if m.products[i].Supplier == supplierID {
			out = append(out, *m.products[i])
		}
	}
	return out, nil
}

func (m *MemoryStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Product{}
	for i := len(m.products) - 1; i >= 0; i-- {
		out = append(out, *m.products[i])
	}
	return out, nil
}

func (m *MemoryStore) UpdateProduct(ctx context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, x := range m.products {
		if x.ID == p.ID && x.Supplier == p.Supplier {
			p.UpdatedAt = m.Now()
			cp := *p
			m.products[i] = &cp
			return nil
		}
	}
	return database.ErrNotFound
}

func (m *MemoryStore) DeleteProduct(ctx context.Context, supplierID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, x := range m.products {
		if x.ID == id && x.Supplier == supplierID {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return database.ErrNotFound
}

func (m *MemoryStore) CreateBOQ(ctx context.Context, b *models.BOQ) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = models.BOQStatusDraft
	}
	b.RecalculateTotal()
	now := m.Now()
	b.CreatedAt, b.UpdatedAt = now, now
	cp := *b
	m.boqs = append(m.boqs, &cp)
	return nil
}

func (m *MemoryStore) GetBOQ(ctx context.Context, ownerID, id string) (*models.BOQ, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.boqs {
		if b.ID == id && b.ServiceProvider == ownerID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *MemoryStore) ListBOQsByServiceProvider(ctx context.Context, ownerID string) ([]models.BOQ, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.BOQ{}
	for i := len(m.boqs) - 1; i >= 0; i-- {
		if m.boqs[i].ServiceProvider == ownerID {
			out = append(out, *m.boqs[i])
		}
	}
	return out, nil
}

func (m *MemoryStore) ListBOQs(ctx context.Context) ([]models.BOQ, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.BOQ{}
	for i := len(m.boqs) - 1; i >= 0; i-- {
		out = append(out, *m.boqs[i])
	}
	return out, nil
}

func (m *MemoryStore) UpdateBOQ(ctx context.Context, b *models.BOQ) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, x := range m.boqs {
		if x.ID == b.ID && x.ServiceProvider == b.ServiceProvider {
			b.RecalculateTotal()
			b.UpdatedAt = m.Now()
			cp := *b
			m.boqs[i] = &cp
			return nil
		}
	}
	return database.ErrNotFound
}

func (m *MemoryStore) CreateOrder(ctx context.Context, o *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.Now()
	seq := 0
	if o.OrderNumber == "" {
		start, end := models.MonthBounds(now)
		for _, x := range m.orders {
			if !x.CreatedAt.Before(start) && x.CreatedAt.Before(end) {
				seq++
			}
		}
		seq++
		o.OrderNumber = models.FormatOrderNumber(now, seq)
	}
	if m.hasOrderNumber(o.OrderNumber) {
		if seq == 0 || m.hasOrderNumber(models.FormatOrderNumber(now, seq+1)) {
			return &database.DuplicateError{Field: "orderNumber"}
		}
		o.OrderNumber = models.FormatOrderNumber(now, seq+1)
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = models.OrderStatusPending
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = models.PaymentPending
	}
	o.RecalculateTotal()
	o.CreatedAt, o.UpdatedAt = now, now
	cp := *o
	m.orders = append(m.orders, &cp)
	return nil
}

func (m *MemoryStore) hasOrderNumber(num string) bool {
	for _, x := range m.orders {
		if x.OrderNumber == num {
			return true
		}
	}
	return false
}

func (m *MemoryStore) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.ID == id {
			cp := *o
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *MemoryStore) ListOrdersForUser(ctx context.Context, userID string) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Order{}
	for i := len(m.orders) - 1; i >= 0; i-- {
		if m.orders[i].IsParty(userID) {
			out = append(out, *m.orders[i])
		}
	}
	return out, nil
}

func (m *MemoryStore) ListOrders(ctx context.Context) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Order{}
	for i := len(m.orders) - 1; i >= 0; i-- {
		out = append(out, *m.orders[i])
	}
	return out, nil
}

func (m *MemoryStore) UpdateOrder(ctx context.Context, o *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, x := range m.orders {
		if x.ID == o.ID {
			o.RecalculateTotal()
			o.UpdatedAt = m.Now()
			cp := *o
			m.orders[i] = &cp
			return nil
		}
	}
	return database.ErrNotFound
}
