package controller

import (
	"strings"
	"time"

	"stockledger/internal/domain"
	apperrors "stockledger/internal/errors"
)

type MovementRequest struct {
	ProductID string `json:"productId"`
	Direction string `json:"direction"`
	Quantity  int    `json:"quantity"`
	Date      string `json:"date"`
}

// toInput converts the request into a domain input. An empty date is passed
// through as zero so the validator reports it; a malformed one is rejected here.
func (req MovementRequest) toInput() (domain.MovementInput, error) {
	in := domain.MovementInput{
		ProductID: strings.TrimSpace(req.ProductID),
		Direction: domain.Direction(strings.ToLower(strings.TrimSpace(req.Direction))),
		Quantity:  req.Quantity,
	}

	date := strings.TrimSpace(req.Date)
	if date == "" {
		return in, nil
	}

	parsed, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return in, apperrors.NewValidationError("date must use the YYYY-MM-DD format", apperrors.ValidationDetail{
			Field:   "date",
			Message: "date must use the YYYY-MM-DD format",
		})
	}
	in.Date = parsed
	return in, nil
}

type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	Direction   string    `json:"direction"`
	Quantity    int       `json:"quantity"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ListMovementsResponse struct {
	TraceID   string             `json:"traceId"`
	Movements []MovementResponse `json:"movements"`
}

type CheckResponse struct {
	TraceID string `json:"traceId"`
	Allowed bool   `json:"allowed"`
	Balance int    `json:"balance"`
}

func toResponse(m domain.Movement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Direction:   string(m.Direction),
		Quantity:    m.Quantity,
		Date:        m.Date.Format(domain.DateLayout),
		CreatedAt:   m.CreatedAt,
	}
}
