// Package search implements the catalog query engine: free-text matching,
// faceted filtering, and multi-key sorting over an in-memory product
// collection. Search is a pure function; callers decide when to invoke it.
package search

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/vitasearch/catalog-explorer/models"
)

// Search filters and sorts products for one query. The stage order is
// fixed: text terms, vendor, product type, stock gate, price window, sort.
// The input slice is never mutated; the result is a fresh slice that is a
// permutation of a subset of the input.
func Search(products []models.Product, query string, filters models.SearchFilters, sortKey models.SortKey) []models.Product {
	filtered := filterText(products, query)
	filtered = filterExact(filtered, filters.Vendor, func(p *models.Product) string { return p.Vendor })
	filtered = filterExact(filtered, filters.ProductType, func(p *models.Product) string { return p.ProductType })
	if filters.InStock {
		filtered = filterFunc(filtered, func(p *models.Product) bool { return p.InStock() })
	}
	filtered = filterPrice(filtered, filters)
	sortProducts(filtered, sortKey)
	return filtered
}

// filterText keeps products whose searchable text contains every
// whitespace-separated query term as a case-insensitive substring. Terms
// AND together; within one term any of the searchable fields may match.
func filterText(products []models.Product, query string) []models.Product {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		out := make([]models.Product, len(products))
		copy(out, products)
		return out
	}

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		haystack := searchableText(&p)
		matched := true
		for _, term := range terms {
			if !strings.Contains(haystack, term) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, p)
		}
	}
	return out
}

// searchableText concatenates the fields text queries run against.
func searchableText(p *models.Product) string {
	parts := []string{p.Title, p.Description, p.Vendor, p.ProductType}
	parts = append(parts, p.SeoTags...)
	return strings.ToLower(strings.Join(parts, " "))
}

// filterExact keeps products whose extracted field equals want; an empty
// want is a wildcard.
func filterExact(products []models.Product, want string, field func(*models.Product) string) []models.Product {
	if want == "" {
		return products
	}
	return filterFunc(products, func(p *models.Product) bool { return field(p) == want })
}

// filterPrice keeps products whose entire price range lies inside the
// inclusive window. Products without a price range are unconstrained.
func filterPrice(products []models.Product, filters models.SearchFilters) []models.Product {
	return filterFunc(products, func(p *models.Product) bool {
		if p.PriceRange == nil {
			return true
		}
		min := p.PriceRange.MinVariantPrice.Amount
		max := p.PriceRange.MaxVariantPrice.Amount
		return min.GreaterThanOrEqual(filters.PriceMin) && max.LessThanOrEqual(filters.PriceMax)
	})
}

// filterFunc compacts in place; every caller hands it the engine's private
// copy produced by filterText, never the caller's slice.
func filterFunc(products []models.Product, keep func(*models.Product) bool) []models.Product {
	out := products[:0]
	for _, p := range products {
		if keep(&p) {
			out = append(out, p)
		}
	}
	return out
}

// sortProducts orders the slice in place by the given key. Sorting is
// stable, so equal elements keep their filtered order; the relevance key
// (and any unknown key) leaves the order untouched.
func sortProducts(products []models.Product, key models.SortKey) {
	var less func(a, b *models.Product) bool

	switch key {
	case models.SortName:
		// A Collator keeps internal buffers, so each sort gets its own to
		// keep Search re-entrant.
		titles := collate.New(language.English, collate.Loose)
		less = func(a, b *models.Product) bool {
			return titles.CompareString(a.Title, b.Title) < 0
		}
	case models.SortPriceAsc:
		less = func(a, b *models.Product) bool {
			return minAmount(a).LessThan(minAmount(b))
		}
	case models.SortPriceDesc:
		// High to low on the max variant price; the asymmetry with
		// price-asc (which keys on the min) is intentional.
		less = func(a, b *models.Product) bool {
			return maxAmount(a).GreaterThan(maxAmount(b))
		}
	case models.SortDateDesc:
		less = func(a, b *models.Product) bool {
			return a.CreatedTime().After(b.CreatedTime())
		}
	case models.SortDateAsc:
		less = func(a, b *models.Product) bool {
			return a.CreatedTime().Before(b.CreatedTime())
		}
	default:
		return
	}

	sort.SliceStable(products, func(i, j int) bool {
		return less(&products[i], &products[j])
	})
}

// minAmount and maxAmount treat a missing price range as zero, matching the
// behavior of sorting absent prices to the cheap end.
func minAmount(p *models.Product) decimal.Decimal {
	if p.PriceRange == nil {
		return decimal.Zero
	}
	return p.PriceRange.MinVariantPrice.Amount
}

func maxAmount(p *models.Product) decimal.Decimal {
	if p.PriceRange == nil {
		return decimal.Zero
	}
	return p.PriceRange.MaxVariantPrice.Amount
}
