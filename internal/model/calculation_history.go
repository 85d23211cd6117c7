package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CalculationHistory is an append-only record of calculator requests made by
// authenticated users. Written best-effort by the worker pool — a lost row
// never fails the calculation itself.
type CalculationHistory struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID         *uuid.UUID      `gorm:"type:uuid;index"`
	ComplexID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Rooms          int             `gorm:"not null"`
	Area           decimal.Decimal `gorm:"type:decimal(6,2);not null"`
	PricePerSquare decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalPrice     decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CreatedAt      time.Time

	Complex Complex `gorm:"foreignKey:ComplexID;constraint:OnDelete:CASCADE"`
	User    *User   `gorm:"foreignKey:UserID"`
}

func (CalculationHistory) TableName() string { return "calculation_history" }
