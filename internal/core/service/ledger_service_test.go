package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
)

type stubMovementRepo struct {
	inserted  []*domain.StockMovement
	insertErr error
	lastLimit int
}

func (r *stubMovementRepo) Insert(_ context.Context, m *domain.StockMovement) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, m)
	return nil
}

func (r *stubMovementRepo) ListBySweet(_ context.Context, sweetID string, limit int) ([]*domain.StockMovement, error) {
	r.lastLimit = limit
	var out []*domain.StockMovement
	for i := len(r.inserted) - 1; i >= 0; i-- {
		if r.inserted[i].SweetID == sweetID {
			out = append(out, r.inserted[i])
		}
	}
	return out, nil
}

func TestLedgerService_Record(t *testing.T) {
	repo := &stubMovementRepo{}
	svc := NewLedgerService(repo, discardLogger)

	err := svc.Record(context.Background(), domain.StockMovement{
		SweetID:   "sweet_1",
		Type:      domain.MovementPurchase,
		Quantity:  3,
		Actor:     "user1",
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected 1 inserted movement, got %d", len(repo.inserted))
	}
}

func TestLedgerService_Record_RepoError(t *testing.T) {
	repo := &stubMovementRepo{insertErr: errors.New("mongo unavailable")}
	svc := NewLedgerService(repo, discardLogger)

	err := svc.Record(context.Background(), domain.StockMovement{SweetID: "sweet_1"})
	if err == nil {
		t.Fatal("expected error when repo fails, got nil")
	}
}

func TestLedgerService_History_NewestFirst(t *testing.T) {
	repo := &stubMovementRepo{}
	svc := NewLedgerService(repo, discardLogger)

	_ = svc.Record(context.Background(), domain.StockMovement{SweetID: "sweet_1", Type: domain.MovementPurchase, Quantity: 1})
	_ = svc.Record(context.Background(), domain.StockMovement{SweetID: "sweet_1", Type: domain.MovementRestock, Quantity: 5})
	_ = svc.Record(context.Background(), domain.StockMovement{SweetID: "sweet_2", Type: domain.MovementPurchase, Quantity: 2})

	history, err := svc.History(context.Background(), "sweet_1", 10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 movements for sweet_1, got %d", len(history))
	}
	if history[0].Type != domain.MovementRestock {
		t.Errorf("expected newest first, got %+v", history[0])
	}
}

func TestLedgerService_History_DefaultsLimit(t *testing.T) {
	repo := &stubMovementRepo{}
	svc := NewLedgerService(repo, discardLogger)

	if _, err := svc.History(context.Background(), "sweet_1", 0); err != nil {
		t.Fatalf("history: %v", err)
	}
	if repo.lastLimit != 50 {
		t.Errorf("expected default limit 50, got %d", repo.lastLimit)
	}
	if _, err := svc.History(context.Background(), "sweet_1", 999); err != nil {
		t.Fatalf("history: %v", err)
	}
	if repo.lastLimit != 50 {
		t.Errorf("expected oversized limit clamped to 50, got %d", repo.lastLimit)
	}
}
