package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"stockledger/internal/domain"
	apperrors "stockledger/internal/errors"
)

const movementColumns = `id, owner_id, product_id, direction, quantity, date, created_at`

type SQLRepository struct {
	db *sqlx.DB
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

// List returns the owner's movements with their product name, most recent
// effective date first and, within a date, most recently recorded first.
func (r *SQLRepository) List(ctx context.Context, ownerID string) ([]domain.Movement, error) {
	query := `
		SELECT m.id, m.owner_id, m.product_id, p.name AS product_name,
		       m.direction, m.quantity, m.date, m.created_at
		FROM movements m
		INNER JOIN products p ON p.id = m.product_id
		WHERE m.owner_id = ?
		ORDER BY m.date DESC, m.created_at DESC, m.id DESC
	`

	movements := []domain.Movement{}
	if err := r.db.SelectContext(ctx, &movements, query, ownerID); err != nil {
		return nil, fmt.Errorf("querying movements: %w", err)
	}

	return movements, nil
}

// ListByOwner returns every movement of the owner without the product join.
func (r *SQLRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements
		WHERE owner_id = ?
	`

	movements := []domain.Movement{}
	if err := r.db.SelectContext(ctx, &movements, query, ownerID); err != nil {
		return nil, fmt.Errorf("querying owner movements: %w", err)
	}

	return movements, nil
}

func (r *SQLRepository) ListByProduct(ctx context.Context, ownerID, productID string) ([]domain.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements
		WHERE owner_id = ? AND product_id = ?
	`

	movements := []domain.Movement{}
	if err := r.db.SelectContext(ctx, &movements, query, ownerID, productID); err != nil {
		return nil, fmt.Errorf("querying product movements: %w", err)
	}

	return movements, nil
}

func (r *SQLRepository) CountByProduct(ctx context.Context, ownerID, productID string) (int, error) {
	query := `SELECT COUNT(*) FROM movements WHERE owner_id = ? AND product_id = ?`

	var count int
	if err := r.db.GetContext(ctx, &count, query, ownerID, productID); err != nil {
		return 0, fmt.Errorf("counting product movements: %w", err)
	}

	return count, nil
}

func (r *SQLRepository) Insert(ctx context.Context, m domain.Movement) error {
	query := `
		INSERT INTO movements (id, owner_id, product_id, direction, quantity, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, m.ID, m.OwnerID, m.ProductID, string(m.Direction), m.Quantity, m.Date, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting movement: %w", err)
	}

	return nil
}

func (r *SQLRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM movements WHERE id = ? AND owner_id = ?`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting movement: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("movement with id %s not found", id))
	}

	return nil
}
