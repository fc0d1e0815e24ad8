package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"stockledger/internal/domain"
	apperrors "stockledger/internal/errors"
)

const productColumns = `id, owner_id, name, description, created_at`

type SQLRepository struct {
	db *sqlx.DB
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

// ListByOwner returns the owner's products, newest first.
func (r *SQLRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE owner_id = ?
		ORDER BY created_at DESC, id DESC
	`

	products := []domain.Product{}
	if err := r.db.SelectContext(ctx, &products, query, ownerID); err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}

	return products, nil
}

// ListByOwnerOrderedByName returns the owner's products sorted by name.
func (r *SQLRepository) ListByOwnerOrderedByName(ctx context.Context, ownerID string) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE owner_id = ?
		ORDER BY name ASC, id ASC
	`

	products := []domain.Product{}
	if err := r.db.SelectContext(ctx, &products, query, ownerID); err != nil {
		return nil, fmt.Errorf("querying products by name: %w", err)
	}

	return products, nil
}

func (r *SQLRepository) FindByID(ctx context.Context, ownerID, id string) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = ? AND owner_id = ?
	`

	var p domain.Product
	err := r.db.GetContext(ctx, &p, query, id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("product with id %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by id: %w", err)
	}

	return &p, nil
}

func (r *SQLRepository) Insert(ctx context.Context, p domain.Product) error {
	query := `INSERT INTO products (id, owner_id, name, description, created_at) VALUES (?, ?, ?, ?, ?)`

	if _, err := r.db.ExecContext(ctx, query, p.ID, p.OwnerID, p.Name, p.Description, p.CreatedAt); err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}

	return nil
}

// Update rewrites name and description only.
func (r *SQLRepository) Update(ctx context.Context, p domain.Product) error {
	query := `UPDATE products SET name = ?, description = ? WHERE id = ? AND owner_id = ?`

	result, err := r.db.ExecContext(ctx, query, p.Name, p.Description, p.ID, p.OwnerID)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	return expectRow(result, p.ID)
}

func (r *SQLRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM products WHERE id = ? AND owner_id = ?`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	return expectRow(result, id)
}

func expectRow(result sql.Result, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("product with id %s not found", id))
	}

	return nil
}
