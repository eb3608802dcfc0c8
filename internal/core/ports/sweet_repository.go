package ports

import (
	"context"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
)

// SweetUpdate carries a partial overwrite of a sweet. Nil fields are left
// untouched.
type SweetUpdate struct {
	Name     *string
	Category *string
	Price    *float64
	Quantity *int
}

// SweetRepository defines persistence operations for the catalog.
type SweetRepository interface {
	Create(ctx context.Context, s *domain.Sweet) (*domain.Sweet, error)
	FindByID(ctx context.Context, id string) (*domain.Sweet, error)
	FindAll(ctx context.Context) ([]*domain.Sweet, error)
	// Search returns sweets whose name and/or category contain the given
	// substrings, case-insensitively. Empty filters match everything.
	Search(ctx context.Context, name, category string) ([]*domain.Sweet, error)
	Update(ctx context.Context, id string, fields SweetUpdate) (*domain.Sweet, error)
	Delete(ctx context.Context, id string) error

	// DecrementQuantity atomically subtracts qty from the sweet's stock as a
	// single conditional update. It never drives the quantity negative:
	// when the current stock is below qty it returns domain.ErrInsufficientStock
	// and leaves the document unchanged.
	DecrementQuantity(ctx context.Context, id string, qty int) (*domain.Sweet, error)
	// IncrementQuantity atomically adds qty to the sweet's stock.
	IncrementQuantity(ctx context.Context, id string, qty int) (*domain.Sweet, error)
}
