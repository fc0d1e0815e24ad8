package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id CHAR(36) NOT NULL PRIMARY KEY,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at DATETIME(6) NOT NULL,
		UNIQUE KEY uq_users_email (email)
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id CHAR(36) NOT NULL PRIMARY KEY,
		owner_id CHAR(36) NOT NULL,
		name VARCHAR(255) NOT NULL,
		description TEXT NULL,
		created_at DATETIME(6) NOT NULL,
		INDEX idx_products_owner (owner_id, created_at)
	)`,
	`CREATE TABLE IF NOT EXISTS movements (
		id CHAR(36) NOT NULL PRIMARY KEY,
		owner_id CHAR(36) NOT NULL,
		product_id CHAR(36) NOT NULL,
		direction VARCHAR(16) NOT NULL,
		quantity INT NOT NULL,
		date DATE NOT NULL,
		created_at DATETIME(6) NOT NULL,
		INDEX idx_movements_owner (owner_id, date, created_at),
		INDEX idx_movements_product (product_id),
		CONSTRAINT fk_movements_product FOREIGN KEY (product_id) REFERENCES products(id),
		CONSTRAINT chk_movements_quantity CHECK (quantity > 0),
		CONSTRAINT chk_movements_direction CHECK (direction IN ('inbound', 'outbound'))
	)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id TEXT NOT NULL PRIMARY KEY,
		owner_id TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_owner ON products (owner_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS movements (
		id TEXT NOT NULL PRIMARY KEY,
		owner_id TEXT NOT NULL,
		product_id TEXT NOT NULL REFERENCES products(id),
		direction TEXT NOT NULL CHECK (direction IN ('inbound', 'outbound')),
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		date DATE NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_movements_owner ON movements (owner_id, date, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_movements_product ON movements (product_id)`,
}

// EnsureSchema creates the tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	statements := mysqlSchema
	if db.DriverName() == DriverSQLite {
		statements = sqliteSchema
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}

	return nil
}

// IsDuplicateKey reports whether err is a unique constraint violation in
// either supported driver.
func IsDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	return false
}
