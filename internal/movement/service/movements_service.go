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
	List(ctx context.Context, ownerID string) ([]domain.Movement, error)
	ListByProduct(ctx context.Context, ownerID, productID string) ([]domain.Movement, error)
	Insert(ctx context.Context, m domain.Movement) error
	Delete(ctx context.Context, ownerID, id string) error
}

type ProductFinder interface {
	FindByID(ctx context.Context, ownerID, id string) (*domain.Product, error)
}

type Invalidator interface {
	Invalidate(ctx context.Context, owner domain.Owner, views ...cache.View)
}

type MovementService struct {
	repo        Repository
	products    ProductFinder
	views       *cache.Views
	invalidator Invalidator
	logger      *zap.Logger
	now         func() time.Time
	newID       func() string
}

func NewService(
	repo Repository,
	products ProductFinder,
	views *cache.Views,
	invalidator Invalidator,
	logger *zap.Logger,
) *MovementService {
	return &MovementService{
		repo:        repo,
		products:    products,
		views:       views,
		invalidator: invalidator,
		logger:      logger,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// List returns the owner's movements newest first, optionally narrowed to
// those whose product name matches query.
func (s *MovementService) List(ctx context.Context, owner domain.Owner, query string) ([]domain.Movement, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}

	all, err := cache.Load(ctx, s.views, owner.UserID, cache.ViewMovements, "", func(ctx context.Context) ([]domain.Movement, error) {
		return s.repo.List(ctx, owner.UserID)
	})
	if err != nil {
		return nil, err
	}

	movements := make([]domain.Movement, 0, len(all))
	for _, m := range all {
		if textsearch.Match(query, m.ProductName) {
			movements = append(movements, m)
		}
	}
	return movements, nil
}

// CurrentBalance folds the stored movements of one product.
func (s *MovementService) CurrentBalance(ctx context.Context, owner domain.Owner, productID string) (int, error) {
	if err := requireOwner(owner); err != nil {
		return 0, err
	}

	movements, err := s.repo.ListByProduct(ctx, owner.UserID, productID)
	if err != nil {
		return 0, err
	}
	return domain.Balance(movements), nil
}

// Check runs every admissibility rule against the stored state without
// writing and returns the product's current balance.
func (s *MovementService) Check(ctx context.Context, owner domain.Owner, in domain.MovementInput) (int, error) {
	_, balance, err := s.check(ctx, owner, in)
	return balance, err
}

func (s *MovementService) check(ctx context.Context, owner domain.Owner, in domain.MovementInput) (*domain.Product, int, error) {
	if err := requireOwner(owner); err != nil {
		return nil, 0, err
	}

	if err := domain.ValidateMovement(in); err != nil {
		return nil, 0, err
	}

	product, err := s.products.FindByID(ctx, owner.UserID, in.ProductID)
	if err != nil {
		return nil, 0, err
	}

	balance, err := s.CurrentBalance(ctx, owner, in.ProductID)
	if err != nil {
		return nil, 0, err
	}

	if err := domain.CheckOutbound(in, balance); err != nil {
		return product, balance, err
	}

	return product, balance, nil
}

// Create re-runs Check immediately before the insert. Nothing guards the gap
// between the balance read and the write.
func (s *MovementService) Create(ctx context.Context, owner domain.Owner, in domain.MovementInput) (*domain.Movement, error) {
	product, _, err := s.check(ctx, owner, in)
	if err != nil {
		if ib, ok := apperrors.IsInsufficientBalanceError(err); ok {
			s.logger.Info("outbound movement rejected",
				zap.String("ownerId", owner.UserID),
				zap.String("productId", in.ProductID),
				zap.Int("requested", ib.Requested),
				zap.Int("balance", ib.Balance),
			)
		}
		return nil, err
	}

	m := domain.Movement{
		ID:          s.newID(),
		OwnerID:     owner.UserID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Direction:   in.Direction,
		Quantity:    in.Quantity,
		Date:        calendarDate(in.Date),
		CreatedAt:   s.now().UTC().Truncate(time.Microsecond),
	}

	if err := s.repo.Insert(ctx, m); err != nil {
		s.logger.Error("failed to create movement", zap.String("ownerId", owner.UserID), zap.Error(err))
		return nil, err
	}

	s.invalidator.Invalidate(ctx, owner, cache.ViewMovements, cache.ViewBalances)
	s.logger.Info("movement created",
		zap.String("ownerId", owner.UserID),
		zap.String("movementId", m.ID),
		zap.String("direction", string(m.Direction)),
		zap.Int("quantity", m.Quantity),
	)

	return &m, nil
}

// Delete removes a movement without re-validating the resulting balance,
// which may therefore become negative.
func (s *MovementService) Delete(ctx context.Context, owner domain.Owner, id string) error {
	if err := requireOwner(owner); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, owner.UserID, id); err != nil {
		return err
	}

	s.invalidator.Invalidate(ctx, owner, cache.ViewMovements, cache.ViewBalances)
	s.logger.Info("movement deleted", zap.String("ownerId", owner.UserID), zap.String("movementId", id))

	return nil
}

func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func requireOwner(owner domain.Owner) error {
	if owner.IsZero() {
		return apperrors.NewUnauthorizedError("an authenticated owner is required")
	}
	return nil
}
