package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockledger/internal/domain"
	apperrors "stockledger/internal/errors"
	"stockledger/internal/testutil"
)

func strPtr(s string) *string { return &s }

func seedProduct(t *testing.T, repo *SQLRepository, id, owner, name string, createdAt time.Time) domain.Product {
	t.Helper()
	p := domain.Product{ID: id, OwnerID: owner, Name: name, CreatedAt: createdAt}
	require.NoError(t, repo.Insert(context.Background(), p))
	return p
}

// Unit Tests

func TestNewSQLRepository(t *testing.T) {
	db := &sqlx.DB{}
	repo := NewSQLRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

// Integration Tests

func TestRepository_InsertAndFindByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSQLRepository(db)
	ctx := context.Background()
	createdAt := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	err := repo.Insert(ctx, domain.Product{
		ID:          "p1",
		OwnerID:     "u1",
		Name:        "Bolt M6",
		Description: strPtr("zinc plated"),
		CreatedAt:   createdAt,
	})
	require.NoError(t, err)

	p, err := repo.FindByID(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Equal(t, "Bolt M6", p.Name)
	require.NotNil(t, p.Description)
	assert.Equal(t, "zinc plated", *p.Description)
	assert.True(t, createdAt.Equal(p.CreatedAt))
}

func TestRepository_FindByID_OtherOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSQLRepository(db)
	seedProduct(t, repo, "p1", "u1", "Bolt", time.Now().UTC())

	_, err := repo.FindByID(context.Background(), "u2", "p1")

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestRepository_ListByOwner_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSQLRepository(db)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seedProduct(t, repo, "p1", "u1", "Washer", base)
	seedProduct(t, repo, "p2", "u1", "Bolt", base.Add(time.Hour))
	seedProduct(t, repo, "p3", "u1", "Nut", base.Add(2*time.Hour))
	seedProduct(t, repo, "p4", "u2", "Foreign", base.Add(3*time.Hour))

	products, err := repo.ListByOwner(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, products, 3)
	assert.Equal(t, "p3", products[0].ID)
	assert.Equal(t, "p2", products[1].ID)
	assert.Equal(t, "p1", products[2].ID)
	assert.Nil(t, products[0].Description)
}

func TestRepository_ListByOwner_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	products, err := NewSQLRepository(db).ListByOwner(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestRepository_ListByOwnerOrderedByName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSQLRepository(db)
	now := time.Now().UTC()
	seedProduct(t, repo, "p1", "u1", "Washer", now)
	seedProduct(t, repo, "p2", "u1", "Bolt", now)
	seedProduct(t, repo, "p3", "u1", "Nut", now)

	products, err := repo.ListByOwnerOrderedByName(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, products, 3)
	assert.Equal(t, "Bolt", products[0].Name)
	assert.Equal(t, "Nut", products[1].Name)
	assert.Equal(t, "Washer", products[2].Name)
}

func TestRepository_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSQLRepository(db)
	ctx := context.Background()
	original := seedProduct(t, repo, "p1", "u1", "Bolt", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	err := repo.Update(ctx, domain.Product{ID: "p1", OwnerID: "u1", Name: "Bolt M6", Description: strPtr("steel")})
	require.NoError(t, err)

	p, err := repo.FindByID(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Equal(t, "Bolt M6", p.Name)
	assert.Equal(t, "steel", *p.Description)
	assert.True(t, original.CreatedAt.Equal(p.CreatedAt))
}

func TestRepository_Update_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSQLRepository(db)
	seedProduct(t, repo, "p1", "u1", "Bolt", time.Now().UTC())

	err := repo.Update(context.Background(), domain.Product{ID: "p1", OwnerID: "u2", Name: "Stolen"})

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestRepository_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSQLRepository(db)
	ctx := context.Background()
	seedProduct(t, repo, "p1", "u1", "Bolt", time.Now().UTC())

	require.NoError(t, repo.Delete(ctx, "u1", "p1"))

	_, err := repo.FindByID(ctx, "u1", "p1")
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)

	err = repo.Delete(ctx, "u1", "p1")
	_, ok = apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}
