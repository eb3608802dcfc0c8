package domain

import "time"

// MovementType classifies a stock adjustment.
type MovementType string

const (
	MovementPurchase MovementType = "purchase"
	MovementRestock  MovementType = "restock"
)

// StockMovement is one entry in the stock audit trail: who adjusted which
// sweet, in which direction, and by how much.
type StockMovement struct {
	SweetID   string       `json:"sweet_id"`
	Type      MovementType `json:"type"`
	Quantity  int          `json:"quantity"`
	Actor     string       `json:"actor"`
	Timestamp time.Time    `json:"timestamp"`
}
