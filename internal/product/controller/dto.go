package controller

import (
	"time"

	"stockledger/internal/domain"
)

type ProductRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ListProductsResponse struct {
	TraceID  string            `json:"traceId"`
	Products []ProductResponse `json:"products"`
}

func toResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}
