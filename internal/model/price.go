package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ComplexPrice holds the current price per square meter of one complex.
// 1:1 with residential_complexes — the unique index enforces it.
type ComplexPrice struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ComplexID      uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	PricePerSquare decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	UpdatedAt      time.Time
}

func (ComplexPrice) TableName() string { return "complex_prices" }
