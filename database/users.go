package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"tatvadirect/backend/models"
)

const userColumns = `id, name, email, password, user_type, company, phone, address::text, profile::text,
is_active, email_verified, last_login, password_changed_at, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	var addr, prof string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.UserType, &u.Company, &u.Phone, &addr, &prof,
		&u.IsActive, &u.EmailVerified, &u.LastLogin, &u.PasswordChangedAt, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := fromJSON(addr, &u.Address); err != nil {
		return nil, err
	}
	if err := fromJSON(prof, &u.Profile); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts u, assigning its id and timestamps. Emails are stored lower-cased.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	js, err := jsonArgs(u.Address, u.Profile)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `INSERT INTO users(id, name, email, password, user_type, company, phone, address, profile,
is_active, email_verified, last_login, password_changed_at, created_at, updated_at)
VALUES($1,$2,$3,$4,$5,$6,$7,$8::jsonb,$9::jsonb,$10,$11,$12,$13,$14,$15)`,
		u.ID, u.Name, u.Email, u.Password, u.UserType, u.Company, u.Phone, js[0], js[1],
		u.IsActive, u.EmailVerified, u.LastLogin, u.PasswordChangedAt, u.CreatedAt, u.UpdatedAt)
	return mapWriteErr(err)
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email))
}

// UpdateUser writes every mutable column of u. Email is immutable here.
func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	u.UpdatedAt = time.Now().UTC()
	js, err := jsonArgs(u.Address, u.Profile)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `UPDATE users SET name=$2, password=$3, user_type=$4, company=$5, phone=$6,
address=$7::jsonb, profile=$8::jsonb, is_active=$9, email_verified=$10, last_login=$11,
password_changed_at=$12, updated_at=$13 WHERE id=$1`,
		u.ID, u.Name, u.Password, u.UserType, u.Company, u.Phone, js[0], js[1],
		u.IsActive, u.EmailVerified, u.LastLogin, u.PasswordChangedAt, u.UpdatedAt)
	if err != nil {
		return mapWriteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListUsers returns every user, newest first.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}
