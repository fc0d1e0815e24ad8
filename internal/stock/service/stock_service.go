package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"stockledger/internal/cache"
	"stockledger/internal/domain"
	apperrors "stockledger/internal/errors"
	"stockledger/internal/textsearch"
)

type ProductLister interface {
	ListByOwnerOrderedByName(ctx context.Context, ownerID string) ([]domain.Product, error)
}

type MovementLister interface {
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Movement, error)
}

type StockService struct {
	products  ProductLister
	movements MovementLister
	views     *cache.Views
	logger    *zap.Logger
}

func NewService(products ProductLister, movements MovementLister, views *cache.Views, logger *zap.Logger) *StockService {
	return &StockService{
		products:  products,
		movements: movements,
		views:     views,
		logger:    logger,
	}
}

// List returns every product of the owner ordered by name with its balance
// and band, optionally narrowed to names matching query.
func (s *StockService) List(ctx context.Context, owner domain.Owner, query string) ([]domain.StockItem, error) {
	all, err := s.balances(ctx, owner)
	if err != nil {
		return nil, err
	}

	items := make([]domain.StockItem, 0, len(all))
	for _, item := range all {
		if textsearch.Match(query, item.ProductName) {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *StockService) Get(ctx context.Context, owner domain.Owner, productID string) (*domain.StockItem, error) {
	all, err := s.balances(ctx, owner)
	if err != nil {
		return nil, err
	}

	for _, item := range all {
		if item.ProductID == productID {
			return &item, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("product with id %s not found", productID))
}

func (s *StockService) Summary(ctx context.Context, owner domain.Owner) (domain.Summary, error) {
	all, err := s.balances(ctx, owner)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summarize(all), nil
}

func (s *StockService) balances(ctx context.Context, owner domain.Owner) ([]domain.StockItem, error) {
	if owner.IsZero() {
		return nil, apperrors.NewUnauthorizedError("an authenticated owner is required")
	}

	return cache.Load(ctx, s.views, owner.UserID, cache.ViewBalances, "", func(ctx context.Context) ([]domain.StockItem, error) {
		var (
			products  []domain.Product
			movements []domain.Movement
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			products, err = s.products.ListByOwnerOrderedByName(gctx, owner.UserID)
			return err
		})
		g.Go(func() error {
			var err error
			movements, err = s.movements.ListByOwner(gctx, owner.UserID)
			return err
		})
		if err := g.Wait(); err != nil {
			s.logger.Error("failed to compute balances", zap.String("ownerId", owner.UserID), zap.Error(err))
			return nil, err
		}

		s.logger.Debug("balances recomputed",
			zap.String("ownerId", owner.UserID),
			zap.Int("products", len(products)),
			zap.Int("movements", len(movements)),
		)
		return domain.Balances(products, movements), nil
	})
}
