package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type AddLayoutRequest struct {
	Rooms           int             `json:"rooms"           validate:"required,min=1"`
	Area            decimal.Decimal `json:"area"            validate:"required,min=10"`
	TotalApartments int             `json:"totalApartments" validate:"min=0"`
	Features        json.RawMessage `json:"features"`
}

type LayoutResponse struct {
	ID              string          `json:"id"`
	ComplexID       string          `json:"complexId"`
	Rooms           int             `json:"rooms"`
	Area            decimal.Decimal `json:"area"`
	TotalApartments int             `json:"totalApartments"`
	Features        json.RawMessage `json:"features"`
}
