package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stock items are either raw materials or finished products; the ledger keys
// on (godown_id, item_type, item_id).
const (
	ItemTypeRawMaterial     = "raw_material"
	ItemTypeFinishedProduct = "finished_product"
)

type GodownStock struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	GodownID    uuid.UUID       `json:"godown_id" db:"godown_id"`
	ItemType    string          `json:"item_type" db:"item_type"`
	ItemID      uuid.UUID       `json:"item_id" db:"item_id"`
	Quantity    decimal.Decimal `json:"quantity" db:"quantity"`
	LastUpdated time.Time       `json:"last_updated" db:"last_updated"`
}

// StockSearchFilter holds filter criteria for stock listings
type StockSearchFilter struct {
	GodownID    *uuid.UUID       `json:"godown_id,omitempty" query:"godown_id"`
	ItemType    string           `json:"item_type,omitempty" query:"item_type"`
	ItemID      *uuid.UUID       `json:"item_id,omitempty" query:"item_id"`
	MaxQuantity *decimal.Decimal `json:"max_quantity,omitempty"`
	Limit       int              `json:"limit,omitempty" query:"limit"`
	Offset      int              `json:"offset,omitempty" query:"offset"`
}
