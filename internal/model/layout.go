package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ApartmentLayout is one floor-plan variant offered within a complex.
// Layouts are independently added/removed; no history is kept for them.
type ApartmentLayout struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ComplexID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Rooms           int             `gorm:"not null"`
	Area            decimal.Decimal `gorm:"type:decimal(6,2);not null"`
	TotalApartments int             `gorm:"not null;default:0"`
	Features        json.RawMessage `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt       time.Time
}

func (ApartmentLayout) TableName() string { return "apartment_layouts" }
