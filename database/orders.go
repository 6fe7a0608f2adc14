package database

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"tatvadirect/backend/models"
)

const orderColumns = `id, order_number, service_provider_id, supplier_id, COALESCE(boq_id, ''), items::text, status,
total_amount, payment_status, payment_method, delivery_address::text, expected_delivery_date, actual_delivery_date,
notes, status_history::text, is_active, created_at, updated_at`

func scanOrder(row pgx.Row) (*models.Order, error) {
	var o models.Order
	var items, addr, history string
	err := row.Scan(&o.ID, &o.OrderNumber, &o.ServiceProvider, &o.Supplier, &o.BOQ, &items, &o.Status,
		&o.TotalAmount, &o.PaymentStatus, &o.PaymentMethod, &addr, &o.ExpectedDeliveryDate, &o.ActualDeliveryDate,
		&o.Notes, &history, &o.IsActive, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := fromJSON(items, &o.Items); err != nil {
		return nil, err
	}
	if err := fromJSON(addr, &o.DeliveryAddress); err != nil {
		return nil, err
	}
	if err := fromJSON(history, &o.StatusHistory); err != nil {
		return nil, err
	}
	if o.Items == nil {
		o.Items = []models.OrderItem{}
	}
	if o.StatusHistory == nil {
		o.StatusHistory = []models.StatusHistoryEntry{}
	}
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]models.Order, error) {
	defer rows.Close()
	out := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// CreateOrder inserts o. A missing order number is derived from the count of
// orders already placed this month. If a concurrent placement takes that
// number first, the next one is tried once before the DuplicateError surfaces.
func (s *Store) CreateOrder(ctx context.Context, o *models.Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	seq := 0
	if o.OrderNumber == "" {
		start, end := models.MonthBounds(now)
		if err := s.pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM orders WHERE created_at >= $1 AND created_at < $2`, start, end).Scan(&seq); err != nil {
			return err
		}
		seq++
		o.OrderNumber = models.FormatOrderNumber(now, seq)
	}
	if o.Status == "" {
		o.Status = models.OrderStatusPending
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = models.PaymentPending
	}
	if o.StatusHistory == nil {
		o.StatusHistory = []models.StatusHistoryEntry{}
	}
	o.RecalculateTotal()
	o.CreatedAt, o.UpdatedAt = now, now

	err := s.insertOrder(ctx, o)
	if seq > 0 && isOrderNumberClash(err) {
		o.OrderNumber = models.FormatOrderNumber(now, seq+1)
		err = s.insertOrder(ctx, o)
	}
	return err
}

func isOrderNumberClash(err error) bool {
	var dup *DuplicateError
	return errors.As(err, &dup) && dup.Field == "orderNumber"
}

func (s *Store) insertOrder(ctx context.Context, o *models.Order) error {
	js, err := jsonArgs(o.Items, o.DeliveryAddress, o.StatusHistory)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `INSERT INTO orders(id, order_number, service_provider_id, supplier_id, boq_id, items,
status, total_amount, payment_status, payment_method, delivery_address, expected_delivery_date, actual_delivery_date,
notes, status_history, is_active, created_at, updated_at)
VALUES($1,$2,$3,$4,$5,$6::jsonb,$7,$8,$9,$10,$11::jsonb,$12,$13,$14,$15::jsonb,$16,$17,$18)`,
		o.ID, o.OrderNumber, o.ServiceProvider, o.Supplier, nullable(o.BOQ), js[0],
		o.Status, o.TotalAmount, o.PaymentStatus, o.PaymentMethod, js[1], o.ExpectedDeliveryDate, o.ActualDeliveryDate,
		o.Notes, js[2], o.IsActive, o.CreatedAt, o.UpdatedAt)
	return mapWriteErr(err)
}

func (s *Store) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return scanOrder(s.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
}

// ListOrdersForUser returns orders where userID is buyer or supplier, newest first.
func (s *Store) ListOrdersForUser(ctx context.Context, userID string) ([]models.Order, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+orderColumns+` FROM orders
WHERE service_provider_id=$1 OR supplier_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

// UpdateOrder saves the mutable state of o and re-derives its total.
func (s *Store) UpdateOrder(ctx context.Context, o *models.Order) error {
	o.RecalculateTotal()
	o.UpdatedAt = time.Now().UTC()
	js, err := jsonArgs(o.Items, o.DeliveryAddress, o.StatusHistory)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `UPDATE orders SET items=$2::jsonb, status=$3, total_amount=$4, payment_status=$5,
payment_method=$6, delivery_address=$7::jsonb, expected_delivery_date=$8, actual_delivery_date=$9, notes=$10,
status_history=$11::jsonb, is_active=$12, updated_at=$13 WHERE id=$1`,
		o.ID, js[0], o.Status, o.TotalAmount, o.PaymentStatus,
		o.PaymentMethod, js[1], o.ExpectedDeliveryDate, o.ActualDeliveryDate, o.Notes,
		js[2], o.IsActive, o.UpdatedAt)
	if err != nil {
		return mapWriteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
