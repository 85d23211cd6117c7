package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceHistory records every change of a complex's price per square meter.
// Rows are append-only — never updated or deleted (cascade on complex removal
// is the only way one disappears). A row exists iff an update changed the
// price AND a prior price existed, so OldPrice is always a real former value.
type PriceHistory struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ComplexID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	OldPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	NewPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ChangedBy  *uuid.UUID      `gorm:"type:uuid"`
	ChangeDate time.Time       `gorm:"autoCreateTime"`

	Complex Complex `gorm:"foreignKey:ComplexID;constraint:OnDelete:CASCADE"`
	Actor   *User   `gorm:"foreignKey:ChangedBy"`
}

func (PriceHistory) TableName() string { return "price_history" }
