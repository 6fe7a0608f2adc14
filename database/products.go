package database

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"tatvadirect/backend/models"
)

const productColumns = `id, supplier_id, name, description, category, price, unit, stock, min_order_quantity,
specifications::text, images::text, tags::text, average_rating, total_reviews, is_active, created_at, updated_at`

func scanProduct(row pgx.Row) (*models.Product, error) {
	var p models.Product
	var specs, images, tags string
	err := row.Scan(&p.ID, &p.Supplier, &p.Name, &p.Description, &p.Category, &p.Price, &p.Unit, &p.Stock,
		&p.MinOrderQuantity, &specs, &images, &tags, &p.AverageRating, &p.TotalReviews, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := fromJSON(specs, &p.Specifications); err != nil {
		return nil, err
	}
	if err := fromJSON(images, &p.Images); err != nil {
		return nil, err
	}
	if err := fromJSON(tags, &p.Tags); err != nil {
		return nil, err
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]models.Product, error) {
	defer rows.Close()
	out := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	js, err := jsonArgs(p.Specifications, p.Images, p.Tags)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `INSERT INTO products(id, supplier_id, name, description, category, price, unit, stock,
min_order_quantity, specifications, images, tags, average_rating, total_reviews, is_active, created_at, updated_at)
VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10::jsonb,$11::jsonb,$12::jsonb,$13,$14,$15,$16,$17)`,
		p.ID, p.Supplier, p.Name, p.Description, p.Category, p.Price, p.Unit, p.Stock,
		p.MinOrderQuantity, js[0], js[1], js[2], p.AverageRating, p.TotalReviews, p.IsActive, p.CreatedAt, p.UpdatedAt)
	return mapWriteErr(err)
}

// GetSupplierProduct loads a product only when it belongs to supplierID.
func (s *Store) GetSupplierProduct(ctx context.Context, supplierID, id string) (*models.Product, error) {
	return scanProduct(s.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id=$1 AND supplier_id=$2`, id, supplierID))
}

// ListProductsBySupplier returns the supplier's catalog, newest first.
func (s *Store) ListProductsBySupplier(ctx context.Context, supplierID string) ([]models.Product, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE supplier_id=$1 ORDER BY created_at DESC`, supplierID)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

// UpdateProduct saves p, scoped to its owning supplier.
func (s *Store) UpdateProduct(ctx context.Context, p *models.Product) error {
	p.UpdatedAt = time.Now().UTC()
	js, err := jsonArgs(p.Specifications, p.Images, p.Tags)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `UPDATE products SET name=$3, description=$4, category=$5, price=$6, unit=$7,
stock=$8, min_order_quantity=$9, specifications=$10::jsonb, images=$11::jsonb, tags=$12::jsonb, is_active=$13,
updated_at=$14 WHERE id=$1 AND supplier_id=$2`,
		p.ID, p.Supplier, p.Name, p.Description, p.Category, p.Price, p.Unit,
		p.Stock, p.MinOrderQuantity, js[0], js[1], js[2], p.IsActive, p.UpdatedAt)
	if err != nil {
		return mapWriteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, supplierID, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM products WHERE id=$1 AND supplier_id=$2`, id, supplierID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
