package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sweetshop/sweet-shop-api/internal/api/metrics"
	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
	"github.com/sweetshop/sweet-shop-api/internal/core/ports"
)

// CatalogCache abstracts the catalog listing cache (Redis). A nil-lookup
// (miss) returns a nil slice and no error.
type CatalogCache interface {
	GetList(ctx context.Context) ([]*domain.Sweet, error)
	SetList(ctx context.Context, sweets []*domain.Sweet) error
	Invalidate(ctx context.Context) error
}

// MovementSink receives stock movements for asynchronous recording.
type MovementSink interface {
	Enqueue(m domain.StockMovement)
}

// SweetService implements catalog CRUD, search, and the stock-adjustment
// operations.
type SweetService struct {
	repo      ports.SweetRepository
	cache     CatalogCache
	movements MovementSink
	log       zerolog.Logger
}

func NewSweetService(repo ports.SweetRepository, cache CatalogCache, movements MovementSink, log zerolog.Logger) *SweetService {
	return &SweetService{repo: repo, cache: cache, movements: movements, log: log}
}

// Create stores a new sweet and returns it with its assigned id.
func (s *SweetService) Create(ctx context.Context, input ports.CreateSweetInput) (*domain.Sweet, error) {
	now := time.Now().UTC()
	sweet := &domain.Sweet{
		Name:      input.Name,
		Category:  input.Category,
		Price:     input.Price,
		Quantity:  input.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, sweet)
	if err != nil {
		return nil, fmt.Errorf("create sweet: %w", err)
	}

	s.invalidateCache(ctx)
	metrics.SweetsCreatedTotal.Inc()
	s.log.Info().Str("sweet_id", created.ID).Str("name", created.Name).Msg("sweet created")
	return created, nil
}

// List returns the full catalog, serving from the cache when possible.
func (s *SweetService) List(ctx context.Context) ([]*domain.Sweet, error) {
	cached, err := s.cache.GetList(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("catalog cache lookup failed, falling back to store")
	} else if cached != nil {
		metrics.CatalogCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()

	sweets, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sweets: %w", err)
	}

	if err := s.cache.SetList(ctx, sweets); err != nil {
		s.log.Warn().Err(err).Msg("failed to populate catalog cache")
	}
	return sweets, nil
}

// Search filters the catalog by case-insensitive substring match on name
// and/or category (AND when both are given). With no filters it behaves
// like List.
func (s *SweetService) Search(ctx context.Context, name, category string) ([]*domain.Sweet, error) {
	if name == "" && category == "" {
		return s.List(ctx)
	}
	sweets, err := s.repo.Search(ctx, name, category)
	if err != nil {
		return nil, fmt.Errorf("search sweets: %w", err)
	}
	return sweets, nil
}

// Update overwrites only the supplied fields on the matching sweet.
func (s *SweetService) Update(ctx context.Context, id string, fields ports.SweetUpdate) (*domain.Sweet, error) {
	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	s.log.Info().Str("sweet_id", id).Msg("sweet updated")
	return updated, nil
}

// Delete removes the sweet from the catalog.
func (s *SweetService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	s.log.Info().Str("sweet_id", id).Msg("sweet deleted")
	return nil
}

// Purchase decrements stock by qty via a single conditional store update, so
// concurrent purchases of the same sweet can never oversell it.
func (s *SweetService) Purchase(ctx context.Context, id string, qty int, actor string) (*domain.Sweet, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	sweet, err := s.repo.DecrementQuantity(ctx, id, qty)
	if err != nil {
		if err == domain.ErrInsufficientStock {
			metrics.PurchasesTotal.WithLabelValues("insufficient_stock").Inc()
		}
		return nil, err
	}

	s.invalidateCache(ctx)
	s.movements.Enqueue(domain.StockMovement{
		SweetID:   id,
		Type:      domain.MovementPurchase,
		Quantity:  qty,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
	})
	metrics.PurchasesTotal.WithLabelValues("ok").Inc()

	s.log.Info().
		Str("sweet_id", id).
		Int("quantity", qty).
		Str("actor", actor).
		Int("remaining", sweet.Quantity).
		Msg("purchase completed")

	return sweet, nil
}

// Restock increments stock by qty.
func (s *SweetService) Restock(ctx context.Context, id string, qty int, actor string) (*domain.Sweet, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	sweet, err := s.repo.IncrementQuantity(ctx, id, qty)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	s.movements.Enqueue(domain.StockMovement{
		SweetID:   id,
		Type:      domain.MovementRestock,
		Quantity:  qty,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
	})
	metrics.RestocksTotal.Inc()

	s.log.Info().
		Str("sweet_id", id).
		Int("quantity", qty).
		Str("actor", actor).
		Int("stock", sweet.Quantity).
		Msg("restock completed")

	return sweet, nil
}

// invalidateCache drops the cached listing after any catalog mutation.
// Cache failures are non-fatal: the store remains the source of truth.
func (s *SweetService) invalidateCache(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to invalidate catalog cache")
	}
}
