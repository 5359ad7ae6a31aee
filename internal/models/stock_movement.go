package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Movement types recorded in the stock audit trail.
const (
	MovementPurchase    = "purchase"
	MovementStockOut    = "stock_out"
	MovementReturn      = "return"
	MovementTransferOut = "transfer_out"
	MovementTransferIn  = "transfer_in"
	MovementAdjustment  = "adjustment"
)

// StockMovement is an append-only audit row; it is never updated or deleted.
type StockMovement struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	MovementType string          `json:"movement_type" db:"movement_type"`
	GodownID     uuid.UUID       `json:"godown_id" db:"godown_id"`
	ItemType     string          `json:"item_type" db:"item_type"`
	ItemID       uuid.UUID       `json:"item_id" db:"item_id"`
	Quantity     decimal.Decimal `json:"quantity" db:"quantity"`
	Reference    *string         `json:"reference" db:"reference"`
	CreatedBy    *uuid.UUID      `json:"created_by" db:"created_by"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}
