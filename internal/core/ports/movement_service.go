package ports

import (
	"context"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
)

// MovementRecorder processes stock movements coming off the dispatcher queue.
type MovementRecorder interface {
	Record(ctx context.Context, m domain.StockMovement) error
}
