package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ComplexRequest is the full aggregate payload used by both POST and PUT —
// updates carry the whole document, amenity links are replaced, not merged.
type ComplexRequest struct {
	Name              string          `json:"name"              validate:"required,min=2,max=150"`
	Description       string          `json:"description"       validate:"required"`
	Location          string          `json:"location"          validate:"required"`
	Address           string          `json:"address"`
	Developer         string          `json:"developer"`
	ConstructionStage string          `json:"constructionStage" validate:"required,oneof=planning construction completed"`
	DeliveryDate      *string         `json:"deliveryDate"      validate:"omitempty,datetime=2006-01-02"`
	PricePerSquare    decimal.Decimal `json:"pricePerSquare"    validate:"required,min=10000"`
	Amenities         []string        `json:"amenities"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ComplexFilter struct {
	Stage    string `form:"stage"    validate:"omitempty,oneof=planning construction completed"`
	MinPrice string `form:"minPrice" validate:"omitempty,numeric"`
	MaxPrice string `form:"maxPrice" validate:"omitempty,numeric"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=10" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ComplexSummary struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	Location          string           `json:"location"`
	Address           string           `json:"address"`
	Developer         string           `json:"developer"`
	ConstructionStage string           `json:"constructionStage"`
	DeliveryDate      *string          `json:"deliveryDate"`
	PricePerSquare    *decimal.Decimal `json:"pricePerSquare"`
	Amenities         []string         `json:"amenities"`
	LayoutsCount      int              `json:"layoutsCount"`
	CreatedAt         string           `json:"createdAt"`
	UpdatedAt         string           `json:"updatedAt"`
}

// ComplexDetail extends the summary with the full layout list.
type ComplexDetail struct {
	ComplexSummary
	Layouts []LayoutResponse `json:"layouts"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// ComplexListResponse is the catalog envelope: {complexes, pagination}.
type ComplexListResponse struct {
	Complexes  []ComplexSummary `json:"complexes"`
	Pagination Pagination       `json:"pagination"`
}

// DeleteResponse confirms a hard delete: {message, id}.
type DeleteResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}
