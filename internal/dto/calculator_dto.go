package dto

import "github.com/shopspring/decimal"

type CalculateRequest struct {
	ComplexID string          `json:"complexId" validate:"required,uuid"`
	Rooms     int             `json:"rooms"     validate:"required,min=1"`
	Area      decimal.Decimal `json:"area"      validate:"required,gt=0"`
}

// CalculateResponse mirrors the calculator contract:
// totalPrice = pricePerSquare * area, exact, no rounding applied.
type CalculateResponse struct {
	ComplexName    string          `json:"complexName"`
	PricePerSquare decimal.Decimal `json:"pricePerSquare"`
	Area           decimal.Decimal `json:"area"`
	TotalPrice     decimal.Decimal `json:"totalPrice"`
	Rooms          int             `json:"rooms"`
}
