package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus is the lifecycle state of a catalog entry.
type ProductStatus string

const (
	StatusActive   ProductStatus = "ACTIVE"
	StatusArchived ProductStatus = "ARCHIVED"
	StatusDraft    ProductStatus = "DRAFT"
)

// ParseStatus maps a raw source value onto the three-value enum,
// case-insensitively. Anything unrecognised becomes ACTIVE.
func ParseStatus(raw string) ProductStatus {
	switch {
	case strings.EqualFold(raw, string(StatusArchived)):
		return StatusArchived
	case strings.EqualFold(raw, string(StatusDraft)):
		return StatusDraft
	default:
		return StatusActive
	}
}

// Money is a monetary amount with its currency code.
type Money struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

// PriceRange spans the cheapest and most expensive purchasable variant.
type PriceRange struct {
	MinVariantPrice Money `json:"minVariantPrice"`
	MaxVariantPrice Money `json:"maxVariantPrice"`
}

// Product represents one normalized catalog entry. Records are created only
// by the ingest pipeline and are immutable for the lifetime of a collection.
type Product struct {
	ID                    string        `json:"id"`
	Title                 string        `json:"title"`
	Handle                string        `json:"handle"`
	Description           string        `json:"description,omitempty"`
	Vendor                string        `json:"vendor,omitempty"`
	ProductType           string        `json:"productType,omitempty"`
	Status                ProductStatus `json:"status"`
	PriceRange            *PriceRange   `json:"priceRange,omitempty"`
	TotalInventory        int           `json:"totalInventory"`
	HasOutOfStockVariants bool          `json:"hasOutOfStockVariants"`
	CreatedAt             string        `json:"createdAt,omitempty"`
	UpdatedAt             string        `json:"updatedAt,omitempty"`
	SeoTags               []string      `json:"seoTags,omitempty"`
}

// CreatedTime parses CreatedAt, treating absent or unparsable values as the
// Unix epoch so date sorting has a total order.
func (p *Product) CreatedTime() time.Time {
	if p.CreatedAt == "" {
		return time.Unix(0, 0).UTC()
	}
	t, err := time.Parse(time.RFC3339, p.CreatedAt)
	if err != nil {
		return time.Unix(0, 0).UTC()
	}
	return t
}

// InStock reports whether the product is fully purchasable: positive
// aggregate inventory and no variant flagged out of stock.
func (p *Product) InStock() bool {
	return p.TotalInventory > 0 && !p.HasOutOfStockVariants
}
