package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sweetshop/sweet-shop-api/internal/api/metrics"
	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
	"github.com/sweetshop/sweet-shop-api/internal/core/ports"
)

// LedgerService persists stock movements delivered by the dispatcher.
type LedgerService struct {
	repo ports.MovementRepository
	log  zerolog.Logger
}

func NewLedgerService(repo ports.MovementRepository, log zerolog.Logger) *LedgerService {
	return &LedgerService{repo: repo, log: log}
}

// Record writes one movement to the audit trail.
func (s *LedgerService) Record(ctx context.Context, m domain.StockMovement) error {
	if err := s.repo.Insert(ctx, &m); err != nil {
		return fmt.Errorf("record movement: %w", err)
	}

	metrics.MovementsRecordedTotal.WithLabelValues(string(m.Type)).Inc()
	s.log.Debug().
		Str("sweet_id", m.SweetID).
		Str("type", string(m.Type)).
		Int("quantity", m.Quantity).
		Msg("movement recorded")
	return nil
}

// History returns up to limit movements for a sweet, newest first.
func (s *LedgerService) History(ctx context.Context, sweetID string, limit int) ([]*domain.StockMovement, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	movements, err := s.repo.ListBySweet(ctx, sweetID, limit)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return movements, nil
}
