package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HSNCode classifies goods/services and carries the applicable GST rate.
type HSNCode struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Code        string          `json:"code" db:"code"`
	Description *string         `json:"description" db:"description"`
	GSTRate     decimal.Decimal `json:"gst_rate" db:"gst_rate"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// GST rate slabs accepted on HSN/SAC codes.
var ValidGSTRates = []int64{0, 5, 12, 18, 28}

// IsValidGSTRate reports whether rate is one of the accepted slabs.
func IsValidGSTRate(rate decimal.Decimal) bool {
	for _, slab := range ValidGSTRates {
		if rate.Equal(decimal.NewFromInt(slab)) {
			return true
		}
	}
	return false
}
