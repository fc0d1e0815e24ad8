package domain

import (
	"strings"
	"time"

	apperrors "stockledger/internal/errors"
)

type Product struct {
	ID          string    `db:"id"`
	OwnerID     string    `db:"owner_id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

// NormalizeProduct trims name and description. An empty name is rejected; an
// empty description becomes nil.
func NormalizeProduct(name string, description *string) (string, *string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil, apperrors.NewValidationError("product name is required", apperrors.ValidationDetail{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if description == nil {
		return name, nil, nil
	}
	desc := strings.TrimSpace(*description)
	if desc == "" {
		return name, nil, nil
	}
	return name, &desc, nil
}
