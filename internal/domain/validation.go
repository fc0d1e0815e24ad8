package domain

import (
	"fmt"
	"math"
	"strings"

	apperrors "stockledger/internal/errors"
)

// MaxQuantity is the largest quantity a single movement may carry, bounded by
// the 32-bit column that stores it.
const MaxQuantity = math.MaxInt32

// ValidateMovement checks the rules that need no stored state: a product
// reference, a known direction, a strictly positive quantity and a date.
func ValidateMovement(in MovementInput) error {
	var details []apperrors.ValidationDetail

	if strings.TrimSpace(in.ProductID) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "productId",
			Message: "productId is required",
		})
	}

	if !in.Direction.Valid() {
		details = append(details, apperrors.ValidationDetail{
			Field:   "direction",
			Message: "direction must be inbound or outbound",
		})
	}

	if in.Quantity <= 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be greater than zero",
		})
	} else if in.Quantity > MaxQuantity {
		details = append(details, apperrors.ValidationDetail{
			Field:   "quantity",
			Message: fmt.Sprintf("quantity must not exceed %d", MaxQuantity),
		})
	}

	if in.Date.IsZero() {
		details = append(details, apperrors.ValidationDetail{
			Field:   "date",
			Message: "date is required",
		})
	}

	if len(details) == 0 {
		return nil
	}

	message := "validation failed"
	if len(details) == 1 {
		message = details[0].Message
	}
	return apperrors.NewValidationError(message, details...)
}

// CheckOutbound rejects an outbound movement whose quantity exceeds balance.
// Inbound movements always pass.
func CheckOutbound(in MovementInput, balance int) error {
	if in.Direction != DirectionOutbound {
		return nil
	}
	if in.Quantity > balance {
		return apperrors.NewInsufficientBalanceError(in.ProductID, in.Quantity, balance)
	}
	return nil
}
