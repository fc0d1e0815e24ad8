package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"stockledger/internal/config"
	"stockledger/internal/infrastructure/database"
)

// SetupTestDB opens a private in-memory SQLite database with the schema applied.
// When TEST_MYSQL_DSN is set the tests run against that MySQL database instead
// and are skipped if it cannot be reached.
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver: database.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString()),
	}
	if dsn := os.Getenv("TEST_MYSQL_DSN"); dsn != "" {
		cfg = config.DatabaseConfig{Driver: database.DriverMySQL, DSN: dsn, MaxOpenConns: 5, MaxIdleConns: 5}
	}

	db, err := database.NewConnection(cfg)
	if err != nil {
		if cfg.Driver == database.DriverMySQL {
			t.Skipf("test database not available: %v", err)
		}
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	return db
}

// CleanupTestDB empties the tables and closes the connection.
func CleanupTestDB(t *testing.T, db *sqlx.DB) {
	if db == nil {
		return
	}

	tables := []string{"movements", "products", "users"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}
