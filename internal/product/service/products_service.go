package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stockledger/internal/cache"
	"stockledger/internal/domain"
	apperrors "stockledger/internal/errors"
	"stockledger/internal/textsearch"
)

type Repository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Product, error)
	FindByID(ctx context.Context, ownerID, id string) (*domain.Product, error)
	Insert(ctx context.Context, p domain.Product) error
	Update(ctx context.Context, p domain.Product) error
	Delete(ctx context.Context, ownerID, id string) error
}

type MovementCounter interface {
	CountByProduct(ctx context.Context, ownerID, productID string) (int, error)
}

type Invalidator interface {
	Invalidate(ctx context.Context, owner domain.Owner, views ...cache.View)
}

type ProductInput struct {
	Name        string
	Description *string
}

type ProductService struct {
	repo        Repository
	movements   MovementCounter
	views       *cache.Views
	invalidator Invalidator
	logger      *zap.Logger
	now         func() time.Time
	newID       func() string
}

func NewService(
	repo Repository,
	movements MovementCounter,
	views *cache.Views,
	invalidator Invalidator,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		repo:        repo,
		movements:   movements,
		views:       views,
		invalidator: invalidator,
		logger:      logger,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// List returns the owner's products newest first, optionally narrowed to those
// whose name or description matches query.
func (s *ProductService) List(ctx context.Context, owner domain.Owner, query string) ([]domain.Product, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}

	all, err := cache.Load(ctx, s.views, owner.UserID, cache.ViewProducts, "", func(ctx context.Context) ([]domain.Product, error) {
		return s.repo.ListByOwner(ctx, owner.UserID)
	})
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(all))
	for _, p := range all {
		desc := ""
		if p.Description != nil {
			desc = *p.Description
		}
		if textsearch.Match(query, p.Name, desc) {
			products = append(products, p)
		}
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, owner domain.Owner, id string) (*domain.Product, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, owner.UserID, id)
}

func (s *ProductService) Create(ctx context.Context, owner domain.Owner, in ProductInput) (*domain.Product, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}

	name, description, err := domain.NormalizeProduct(in.Name, in.Description)
	if err != nil {
		return nil, err
	}

	p := domain.Product{
		ID:          s.newID(),
		OwnerID:     owner.UserID,
		Name:        name,
		Description: description,
		CreatedAt:   s.now().UTC().Truncate(time.Microsecond),
	}

	if err := s.repo.Insert(ctx, p); err != nil {
		s.logger.Error("failed to create product", zap.String("ownerId", owner.UserID), zap.Error(err))
		return nil, err
	}

	s.invalidator.Invalidate(ctx, owner, cache.ViewProducts, cache.ViewBalances)
	s.logger.Info("product created", zap.String("ownerId", owner.UserID), zap.String("productId", p.ID))

	return &p, nil
}

// Update replaces name and description; the creation timestamp is kept.
func (s *ProductService) Update(ctx context.Context, owner domain.Owner, id string, in ProductInput) (*domain.Product, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}

	name, description, err := domain.NormalizeProduct(in.Name, in.Description)
	if err != nil {
		return nil, err
	}

	err = s.repo.Update(ctx, domain.Product{
		ID:          id,
		OwnerID:     owner.UserID,
		Name:        name,
		Description: description,
	})
	if err != nil {
		return nil, err
	}

	// movements carry the product name
	s.invalidator.Invalidate(ctx, owner, cache.ViewProducts, cache.ViewMovements, cache.ViewBalances)
	s.logger.Info("product updated", zap.String("ownerId", owner.UserID), zap.String("productId", id))

	return s.repo.FindByID(ctx, owner.UserID, id)
}

// Delete refuses to remove a product that any movement still references.
func (s *ProductService) Delete(ctx context.Context, owner domain.Owner, id string) error {
	if err := requireOwner(owner); err != nil {
		return err
	}

	count, err := s.movements.CountByProduct(ctx, owner.UserID, id)
	if err != nil {
		return err
	}

	if count > 0 {
		s.logger.Info("product delete blocked", zap.String("ownerId", owner.UserID), zap.String("productId", id), zap.Int("movements", count))
		return apperrors.NewDependencyError("product has dependent movements; delete its movements first", count)
	}

	if err := s.repo.Delete(ctx, owner.UserID, id); err != nil {
		return err
	}

	s.invalidator.Invalidate(ctx, owner, cache.ViewProducts, cache.ViewMovements, cache.ViewBalances)
	s.logger.Info("product deleted", zap.String("ownerId", owner.UserID), zap.String("productId", id))

	return nil
}

func requireOwner(owner domain.Owner) error {
	if owner.IsZero() {
		return apperrors.NewUnauthorizedError("an authenticated owner is required")
	}
	return nil
}
