package models

import (
	"time"

	"github.com/google/uuid"
)

type RawMaterial struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	UnitID    uuid.UUID `json:"unit_id" db:"unit_id"`
	HSNCodeID uuid.UUID `json:"hsn_code_id" db:"hsn_code_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
