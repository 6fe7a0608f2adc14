package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate value")
)

// DuplicateError names the field whose unique constraint was violated.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string { return e.Field + " already exists" }

func (e *DuplicateError) Unwrap() error { return ErrDuplicate }

// uniqueFields maps unique constraint names to API field names.
var uniqueFields = map[string]string{
	"users_email_key":         "email",
	"orders_order_number_key": "orderNumber",
}

// Store is the Postgres backed persistence for users, products, BOQs and orders.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func mapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		field, ok := uniqueFields[pgErr.ConstraintName]
		if !ok {
			field = pgErr.ConstraintName
		}
		return &DuplicateError{Field: field}
	}
	return err
}

// toJSON renders v for a $n::jsonb parameter.
func toJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func fromJSON(raw string, dst any) error {
	if raw == "" || raw == "null" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("decode jsonb: %w", err)
	}
	return nil
}

// jsonArgs marshals each value in order, stopping at the first failure.
func jsonArgs(vs ...any) ([]string, error) {
	out := make([]string, len(vs))
	for i, v := range vs {
		s, err := toJSON(v)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}
