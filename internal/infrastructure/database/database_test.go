package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockledger/internal/config"
	"stockledger/internal/infrastructure/database"
	"stockledger/internal/testutil"
)

func TestDSN_MySQLFromFields(t *testing.T) {
	dsn, err := database.DSN(config.DatabaseConfig{
		Driver:   "mysql",
		Host:     "db.local",
		Port:     3307,
		User:     "stock",
		Password: "pw",
		Name:     "ledger",
	})
	require.NoError(t, err)

	assert.Contains(t, dsn, "stock:pw@tcp(db.local:3307)/ledger")
	assert.Contains(t, dsn, "parseTime=true")
}

func TestDSN_ExplicitWins(t *testing.T) {
	dsn, err := database.DSN(config.DatabaseConfig{Driver: "sqlite3", DSN: "file::memory:"})
	require.NoError(t, err)
	assert.Equal(t, "file::memory:", dsn)
}

func TestDSN_SQLiteFromName(t *testing.T) {
	dsn, err := database.DSN(config.DatabaseConfig{Driver: "sqlite3", Name: "stock"})
	require.NoError(t, err)
	assert.Equal(t, "file:stock.db?_foreign_keys=on", dsn)
}

func TestDSN_UnknownDriver(t *testing.T) {
	_, err := database.DSN(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	require.NoError(t, database.EnsureSchema(context.Background(), db))
}

func TestIsDuplicateKey(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	insert := `INSERT INTO users (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)`
	_, err := db.Exec(insert, "u1", "a@example.com", "hash", time.Now().UTC())
	require.NoError(t, err)

	_, err = db.Exec(insert, "u2", "a@example.com", "hash", time.Now().UTC())
	require.Error(t, err)
	assert.True(t, database.IsDuplicateKey(err))
	assert.False(t, database.IsDuplicateKey(assert.AnError))
}

func TestSchema_RejectsNonPositiveQuantity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO products (id, owner_id, name, created_at) VALUES (?, ?, ?, ?)`, "p1", "u1", "Bolt", now)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO movements (id, owner_id, product_id, direction, quantity, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`, "m1", "u1", "p1", "inbound", 0, now, now)
	assert.Error(t, err)
}
