package models

import (
	"time"

	"github.com/gocql/gocql"
)

const (
	MovementSale       = "sale"
	MovementRestock    = "restock"
	MovementAdjustment = "adjustment"
)

// StockMovement is one append-only ledger row describing a stock change.
type StockMovement struct {
	ID        gocql.UUID `json:"id"`
	ProductID uint       `json:"product_id"`
	OrderID   *uint      `json:"order_id,omitempty"`
	Type      string     `json:"type"` // "sale", "restock", "adjustment"
	Quantity  int        `json:"quantity"`
	NewStock  int        `json:"new_stock"`
	Reason    string     `json:"reason,omitempty"`
	UserID    string     `json:"user_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
