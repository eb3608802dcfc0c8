package handler

import (
	"time"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
)

// messageResponse is the envelope used for confirmations and errors.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

type createSweetRequest struct {
	Name     string  `json:"name"     validate:"required"`
	Category string  `json:"category" validate:"required"`
	Price    float64 `json:"price"    validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"gte=0"`
}

// updateSweetRequest carries a partial overwrite: only non-nil fields are
// applied.
type updateSweetRequest struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Price    *float64 `json:"price"    validate:"omitempty,gte=0"`
	Quantity *int     `json:"quantity" validate:"omitempty,gte=0"`
}

type quantityRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// --- Response types ---

type movementResponse struct {
	SweetID   string    `json:"sweet_id"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Actor     string    `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
}

func toMovementResponses(movements []*domain.StockMovement) []movementResponse {
	out := make([]movementResponse, len(movements))
	for i, m := range movements {
		out[i] = movementResponse{
			SweetID:   m.SweetID,
			Type:      string(m.Type),
			Quantity:  m.Quantity,
			Actor:     m.Actor,
			Timestamp: m.Timestamp,
		}
	}
	return out
}
