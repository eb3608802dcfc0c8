package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
)

type collectingRecorder struct {
	mu       sync.Mutex
	recorded []domain.StockMovement
	done     chan struct{}
	want     int
}

func (r *collectingRecorder) Record(_ context.Context, m domain.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recorded = append(r.recorded, m)
	if len(r.recorded) == r.want {
		close(r.done)
	}
	return nil
}

func TestDispatcher_DeliversMovements(t *testing.T) {
	rec := &collectingRecorder{done: make(chan struct{}), want: 3}
	d := NewDispatcher(2, rec, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(domain.StockMovement{SweetID: "a", Type: domain.MovementPurchase, Quantity: 1})
	d.Enqueue(domain.StockMovement{SweetID: "b", Type: domain.MovementRestock, Quantity: 2})
	d.Enqueue(domain.StockMovement{SweetID: "a", Type: domain.MovementPurchase, Quantity: 3})

	select {
	case <-rec.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for movements to be recorded")
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.recorded) != 3 {
		t.Fatalf("expected 3 recorded movements, got %d", len(rec.recorded))
	}
}

// Movements for the same sweet land on the same worker, preserving order.
func TestDispatcher_PerSweetOrdering(t *testing.T) {
	rec := &collectingRecorder{done: make(chan struct{}), want: 5}
	d := NewDispatcher(4, rec, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 1; i <= 5; i++ {
		d.Enqueue(domain.StockMovement{SweetID: "same", Quantity: i})
	}

	select {
	case <-rec.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for movements")
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	for i, m := range rec.recorded {
		if m.Quantity != i+1 {
			t.Fatalf("ordering broken at index %d: %+v", i, rec.recorded)
		}
	}
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(8, &collectingRecorder{done: make(chan struct{})}, zerolog.Nop())

	first := d.shardIndex("sweet_42")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("sweet_42"); got != first {
			t.Fatalf("shard index not deterministic: %d vs %d", got, first)
		}
	}
}
