package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockledger/internal/domain"
	apperrors "stockledger/internal/errors"
	"stockledger/internal/testutil"
)

func TestRepository_InsertAndFindByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSQLRepository(db)
	ctx := context.Background()
	createdAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Insert(ctx, domain.User{ID: "u1", Email: "ana@example.com", PasswordHash: "hash", CreatedAt: createdAt}))

	u, err := repo.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "hash", u.PasswordHash)
	assert.True(t, createdAt.Equal(u.CreatedAt))
}

func TestRepository_Insert_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSQLRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Insert(ctx, domain.User{ID: "u1", Email: "ana@example.com", PasswordHash: "a", CreatedAt: time.Now().UTC()}))

	err := repo.Insert(ctx, domain.User{ID: "u2", Email: "ana@example.com", PasswordHash: "b", CreatedAt: time.Now().UTC()})

	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
}

func TestRepository_FindByEmail_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	_, err := NewSQLRepository(db).FindByEmail(context.Background(), "nobody@example.com")

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}
