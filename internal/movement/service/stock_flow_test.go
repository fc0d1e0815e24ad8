package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stockledger/internal/cache"
	"stockledger/internal/domain"
	apperrors "stockledger/internal/errors"
	movementrepo "stockledger/internal/movement/repository"
	movementsvc "stockledger/internal/movement/service"
	productrepo "stockledger/internal/product/repository"
	productsvc "stockledger/internal/product/service"
	"stockledger/internal/testutil"
)

func TestStockFlow_BoltM6(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	ctx := context.Background()
	owner := domain.Owner{UserID: "u1"}
	views := cache.NewViews(time.Minute)
	inv := cache.NewInvalidator(views, nil, zap.NewNop())
	movementsRepo := movementrepo.NewSQLRepository(db)
	productsRepo := productrepo.NewSQLRepository(db)
	products := productsvc.NewService(productsRepo, movementsRepo, views, inv, zap.NewNop())
	movements := movementsvc.NewService(movementsRepo, productsRepo, views, inv, zap.NewNop())

	bolt, err := products.Create(ctx, owner, productsvc.ProductInput{Name: "Bolt M6"})
	require.NoError(t, err)

	move := func(dir domain.Direction, qty int, day int) (*domain.Movement, error) {
		return movements.Create(ctx, owner, domain.MovementInput{
			ProductID: bolt.ID,
			Direction: dir,
			Quantity:  qty,
			Date:      time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
		})
	}

	_, err = move(domain.DirectionInbound, 10, 1)
	require.NoError(t, err)
	_, err = move(domain.DirectionOutbound, 3, 2)
	require.NoError(t, err)

	balance, err := movements.CurrentBalance(ctx, owner, bolt.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, balance)

	_, err = move(domain.DirectionOutbound, 8, 2)
	require.Error(t, err)
	assert.Equal(t, "insufficient balance, current balance: 7", err.Error())

	listed, err := movements.List(ctx, owner, "")
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	last, err := move(domain.DirectionOutbound, 7, 2)
	require.NoError(t, err)

	balance, err = movements.CurrentBalance(ctx, owner, bolt.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, balance)

	listed, err = movements.List(ctx, owner, "bolt")
	require.NoError(t, err)
	assert.Len(t, listed, 3)

	err = products.Delete(ctx, owner, bolt.ID)
	de, ok := apperrors.IsDependencyError(err)
	require.True(t, ok)
	assert.Equal(t, 3, de.Dependents)

	kept, err := products.Get(ctx, owner, bolt.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bolt M6", kept.Name)
	listed, err = movements.List(ctx, owner, "")
	require.NoError(t, err)
	assert.Len(t, listed, 3)
	assert.Equal(t, "2024-01-02", listed[0].Date.Format(domain.DateLayout))
	assert.Equal(t, "2024-01-01", listed[2].Date.Format(domain.DateLayout))

	require.NoError(t, movements.Delete(ctx, owner, last.ID))
	balance, err = movements.CurrentBalance(ctx, owner, bolt.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, balance)
}

func TestStockFlow_DeletingInboundCanLeaveNegativeBalance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	ctx := context.Background()
	owner := domain.Owner{UserID: "u1"}
	movementsRepo := movementrepo.NewSQLRepository(db)
	productsRepo := productrepo.NewSQLRepository(db)
	inv := cache.NewInvalidator(nil, nil, zap.NewNop())
	products := productsvc.NewService(productsRepo, movementsRepo, nil, inv, zap.NewNop())
	movements := movementsvc.NewService(movementsRepo, productsRepo, nil, inv, zap.NewNop())

	nut, err := products.Create(ctx, owner, productsvc.ProductInput{Name: "Nut"})
	require.NoError(t, err)

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	in, err := movements.Create(ctx, owner, domain.MovementInput{ProductID: nut.ID, Direction: domain.DirectionInbound, Quantity: 5, Date: date})
	require.NoError(t, err)
	_, err = movements.Create(ctx, owner, domain.MovementInput{ProductID: nut.ID, Direction: domain.DirectionOutbound, Quantity: 5, Date: date})
	require.NoError(t, err)

	require.NoError(t, movements.Delete(ctx, owner, in.ID))

	balance, err := movements.CurrentBalance(ctx, owner, nut.ID)
	require.NoError(t, err)
	assert.Equal(t, -5, balance)
}

func TestStockFlow_RenamedProductShowsInMovements(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	ctx := context.Background()
	owner := domain.Owner{UserID: "u1"}
	views := cache.NewViews(30 * time.Second)
	inv := cache.NewInvalidator(views, nil, zap.NewNop())
	movementsRepo := movementrepo.NewSQLRepository(db)
	productsRepo := productrepo.NewSQLRepository(db)
	products := productsvc.NewService(productsRepo, movementsRepo, views, inv, zap.NewNop())
	movements := movementsvc.NewService(movementsRepo, productsRepo, views, inv, zap.NewNop())

	bolt, err := products.Create(ctx, owner, productsvc.ProductInput{Name: "Bolt M6"})
	require.NoError(t, err)
	_, err = movements.Create(ctx, owner, domain.MovementInput{
		ProductID: bolt.ID,
		Direction: domain.DirectionInbound,
		Quantity:  10,
		Date:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	listed, err := movements.List(ctx, owner, "")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Bolt M6", listed[0].ProductName)

	_, err = products.Update(ctx, owner, bolt.ID, productsvc.ProductInput{Name: "Bolt M8"})
	require.NoError(t, err)

	listed, err = movements.List(ctx, owner, "")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Bolt M8", listed[0].ProductName)

	found, err := movements.List(ctx, owner, "m8")
	require.NoError(t, err)
	assert.Len(t, found, 1)
}
