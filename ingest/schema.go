package ingest

import "strings"

// FieldKey identifies one semantic column of the product export.
type FieldKey string

const (
	FieldID             FieldKey = "id"
	FieldTitle          FieldKey = "title"
	FieldHandle         FieldKey = "handle"
	FieldDescription    FieldKey = "description"
	FieldVendor         FieldKey = "vendor"
	FieldProductType    FieldKey = "product_type"
	FieldStatus         FieldKey = "status"
	FieldPriceRange     FieldKey = "price_range"
	FieldTotalInventory FieldKey = "total_inventory"
	FieldOutOfStock     FieldKey = "has_out_of_stock_variants"
	FieldCreatedAt      FieldKey = "created_at"
	FieldUpdatedAt      FieldKey = "updated_at"
	FieldTags           FieldKey = "tags"
)

// columnAbsent is the sentinel index for a field with no matching header.
const columnAbsent = -1

// productSchema lists, per semantic field, the header names accepted for it
// in priority order. Matching is exact on the trimmed, case-folded header
// cell; substring containment is deliberately not used because it matches
// unrelated columns (e.g. "id" inside "paid").
var productSchema = map[FieldKey][]string{
	FieldID:             {"id", "product_id"},
	FieldTitle:          {"title", "name", "product name"},
	FieldHandle:         {"handle", "slug"},
	FieldDescription:    {"description", "description_html", "body", "body_html"},
	FieldVendor:         {"vendor", "brand"},
	FieldProductType:    {"product_type", "type", "category"},
	FieldStatus:         {"status"},
	FieldPriceRange:     {"price_range_v2", "price_range", "price", "prices"},
	FieldTotalInventory: {"total_inventory", "inventory", "qty", "quantity"},
	FieldOutOfStock:     {"has_out_of_stock_variants", "out_of_stock"},
	FieldCreatedAt:      {"created_at", "created"},
	FieldUpdatedAt:      {"updated_at", "updated"},
	FieldTags:           {"tags", "seo_tags", "seo"},
}

// requiredFields must all resolve in the header row for ingestion to proceed.
var requiredFields = []FieldKey{FieldTitle, FieldPriceRange}

// Columns maps each semantic field to its index in the header row, or
// columnAbsent when no alias matched.
type Columns map[FieldKey]int

// resolveColumns locates each schema field in the header row. For every
// field the first alias with a case-insensitive exact match wins; fields
// with no match resolve to columnAbsent.
func resolveColumns(header []string) Columns {
	folded := make([]string, len(header))
	for i, h := range header {
		folded[i] = strings.ToLower(strings.TrimSpace(h))
	}

	cols := make(Columns, len(productSchema))
	for key, aliases := range productSchema {
		cols[key] = columnAbsent
	aliasScan:
		for _, alias := range aliases {
			for i, h := range folded {
				if h == alias {
					cols[key] = i
					break aliasScan
				}
			}
		}
	}
	return cols
}

// missingRequired returns the required fields that did not resolve.
func (c Columns) missingRequired() []FieldKey {
	var missing []FieldKey
	for _, key := range requiredFields {
		if c[key] == columnAbsent {
			missing = append(missing, key)
		}
	}
	return missing
}

// value extracts the trimmed cell for a field from one tokenized row,
// returning "" when the field is absent or the row is short.
func (c Columns) value(key FieldKey, row []string) string {
	idx, ok := c[key]
	if !ok || idx == columnAbsent || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
