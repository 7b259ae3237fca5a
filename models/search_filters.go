package models

import "github.com/shopspring/decimal"

// SearchFilters is the ephemeral filter set for one query.
// Empty strings act as wildcards; the price window bounds are inclusive.
type SearchFilters struct {
	Vendor      string
	ProductType string
	PriceMin    decimal.Decimal
	PriceMax    decimal.Decimal
	InStock     bool
}

// DefaultPriceMax is the permissive upper bound used when a query does not
// constrain price.
var DefaultPriceMax = decimal.NewFromInt(1000)

// DefaultFilters returns a no-op filter set: no vendor or type constraint,
// the full default price window, and no stock gate.
func DefaultFilters() SearchFilters {
	return SearchFilters{
		PriceMin: decimal.Zero,
		PriceMax: DefaultPriceMax,
	}
}

// SortKey selects the comparator applied after filtering.
type SortKey string

const (
	SortRelevance SortKey = "relevance" // placeholder: preserves filtered order
	SortName      SortKey = "name"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortDateDesc  SortKey = "date"
	SortDateAsc   SortKey = "date-asc"
)

// ParseSortKey maps a raw query value onto a SortKey, falling back to
// relevance for anything unknown.
func ParseSortKey(raw string) SortKey {
	switch SortKey(raw) {
	case SortName, SortPriceAsc, SortPriceDesc, SortDateDesc, SortDateAsc:
		return SortKey(raw)
	default:
		return SortRelevance
	}
}
