package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"stockledger/internal/domain"
	apperrors "stockledger/internal/errors"
	"stockledger/internal/infrastructure/database"
)

type SQLRepository struct {
	db *sqlx.DB
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = ?
	`

	var u domain.User
	err := r.db.GetContext(ctx, &u, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with email %s not found", email))
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by email: %w", err)
	}

	return &u, nil
}

// Insert reports an already registered email as a ConflictError.
func (r *SQLRepository) Insert(ctx context.Context, u domain.User) error {
	query := `INSERT INTO users (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, u.ID, u.Email, u.PasswordHash, u.CreatedAt)
	if database.IsDuplicateKey(err) {
		return apperrors.NewConflictError("email is already registered")
	}
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}

	return nil
}
