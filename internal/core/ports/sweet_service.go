package ports

import (
	"context"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
)

// CreateSweetInput carries the data needed to add a catalog item.
type CreateSweetInput struct {
	Name     string
	Category string
	Price    float64
	Quantity int
}

// SweetService defines use-case operations for the catalog. Role checks are
// enforced by the transport layer (RBAC middleware), not here.
type SweetService interface {
	Create(ctx context.Context, input CreateSweetInput) (*domain.Sweet, error)
	List(ctx context.Context) ([]*domain.Sweet, error)
	Search(ctx context.Context, name, category string) ([]*domain.Sweet, error)
	Update(ctx context.Context, id string, fields SweetUpdate) (*domain.Sweet, error)
	Delete(ctx context.Context, id string) error

	// Purchase decrements stock by qty; actor is recorded in the movement
	// ledger. Fails with domain.ErrInsufficientStock when qty exceeds the
	// current stock, and with domain.ErrInvalidQuantity when qty < 1.
	Purchase(ctx context.Context, id string, qty int, actor string) (*domain.Sweet, error)
	// Restock increments stock by qty. No upper bound is enforced.
	Restock(ctx context.Context, id string, qty int, actor string) (*domain.Sweet, error)
}
