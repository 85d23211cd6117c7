package dto

import "github.com/shopspring/decimal"

// PriceHistoryItem is one row of a complex's immutable price-change log,
// joined with the email of the user who made the change.
type PriceHistoryItem struct {
	ID             string          `json:"id"`
	ComplexID      string          `json:"complexId"`
	OldPrice       decimal.Decimal `json:"oldPrice"`
	NewPrice       decimal.Decimal `json:"newPrice"`
	ChangedByEmail *string         `json:"changedByEmail"`
	ChangeDate     string          `json:"changeDate"`
}
