package ports

import (
	"context"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
)

// MovementRepository persists the stock-movement audit trail.
type MovementRepository interface {
	Insert(ctx context.Context, m *domain.StockMovement) error
	// ListBySweet returns up to limit movements for one sweet, newest first.
	ListBySweet(ctx context.Context, sweetID string, limit int) ([]*domain.StockMovement, error)
}
