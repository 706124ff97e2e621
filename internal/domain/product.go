package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers (147, 148.5), not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID          uuid.UUID       `json:"id"`
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	Volume      string          `json:"volume"`
	Dimensions  string          `json:"dimensions"`
	MaxLoad     string          `json:"maxLoad"`
	PricePerDay decimal.Decimal `json:"pricePerDay"`
	ImageURL    *string         `json:"imageUrl,omitempty"`
	IsActive    bool            `json:"isActive"`
}
