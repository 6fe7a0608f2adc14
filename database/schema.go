package database

import (
	"embed"
	"errors"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// EnsureSchema applies pending migrations on the connected pool.
func EnsureSchema() error {
	if Pool == nil {
		return errors.New("database not connected")
	}
	db := stdlib.OpenDBFromPool(Pool)
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, "migrations")
}
