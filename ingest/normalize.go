package ingest

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vitasearch/catalog-explorer/models"
)

// skipReason classifies why a row was dropped instead of normalized.
type skipReason int

const (
	skipNone skipReason = iota
	skipMissingTitle
)

func (r skipReason) String() string {
	switch r {
	case skipMissingTitle:
		return "missing title"
	default:
		return "none"
	}
}

// priceOutcome tags how the price cell was decoded.
type priceOutcome int

const (
	priceDecoded  priceOutcome = iota // JSON sub-document parsed cleanly
	priceFallback                     // numeric substrings extracted from raw text
	priceZeroed                       // empty cell or nothing extractable
)

const (
	defaultCurrency    = "USD"
	defaultVendor      = "Unknown"
	defaultProductType = "Uncategorized"

	maxTagLength = 49
	maxTagCount  = 10
)

var (
	slugRun    = regexp.MustCompile(`[^a-z0-9]+`)
	numericRun = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)
	htmlTag    = regexp.MustCompile(`<[^>]*>`)
)

// rawPriceRange mirrors the embedded JSON sub-document of the price column.
// Amounts arrive as either JSON numbers or quoted strings; decimal handles both.
type rawPriceRange struct {
	MinVariantPrice rawMoney `json:"min_variant_price"`
	MaxVariantPrice rawMoney `json:"max_variant_price"`
}

type rawMoney struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currency_code"`
}

// normalizeRow converts one tokenized row into a Product. On skip the
// product is nil and the reason is set; otherwise empties lists the optional
// fields that were absent and substituted with defaults.
func normalizeRow(row []string, cols Columns, rowNum int, now time.Time) (product *models.Product, skip skipReason, empties []string) {
	title := cols.value(FieldTitle, row)
	if title == "" {
		return nil, skipMissingTitle, nil
	}

	// Only resolved columns count toward per-row emptiness; a column absent
	// from the header entirely is reported once at the file level instead.
	trackEmpty := func(key FieldKey, raw string) string {
		if raw == "" && cols[key] != columnAbsent {
			empties = append(empties, string(key))
		}
		return raw
	}

	priceRaw := trackEmpty(FieldPriceRange, cols.value(FieldPriceRange, row))
	priceRange, _ := decodePriceRange(priceRaw)

	handle := trackEmpty(FieldHandle, cols.value(FieldHandle, row))
	if handle == "" {
		handle = slugify(title)
	}

	// Description has no default; exports often ship it as HTML.
	description := trackEmpty(FieldDescription, cols.value(FieldDescription, row))
	description = strings.TrimSpace(htmlTag.ReplaceAllString(description, ""))

	vendor := trackEmpty(FieldVendor, cols.value(FieldVendor, row))
	if vendor == "" {
		vendor = defaultVendor
	}

	productType := trackEmpty(FieldProductType, cols.value(FieldProductType, row))
	if productType == "" {
		productType = defaultProductType
	}

	nowStamp := now.UTC().Format(time.RFC3339)
	createdAt := trackEmpty(FieldCreatedAt, cols.value(FieldCreatedAt, row))
	if createdAt == "" {
		createdAt = nowStamp
	}
	updatedAt := trackEmpty(FieldUpdatedAt, cols.value(FieldUpdatedAt, row))
	if updatedAt == "" {
		updatedAt = nowStamp
	}

	id := trackEmpty(FieldID, cols.value(FieldID, row))
	if id == "" {
		id = syntheticID(rowNum)
	}

	product = &models.Product{
		ID:                    id,
		Title:                 title,
		Handle:                handle,
		Description:           description,
		Vendor:                vendor,
		ProductType:           productType,
		Status:                models.ParseStatus(trackEmpty(FieldStatus, cols.value(FieldStatus, row))),
		PriceRange:            priceRange,
		TotalInventory:        parseInventory(trackEmpty(FieldTotalInventory, cols.value(FieldTotalInventory, row))),
		HasOutOfStockVariants: strings.EqualFold(trackEmpty(FieldOutOfStock, cols.value(FieldOutOfStock, row)), "true"),
		CreatedAt:             createdAt,
		UpdatedAt:             updatedAt,
		SeoTags:               parseTags(trackEmpty(FieldTags, cols.value(FieldTags, row))),
	}
	return product, skipNone, empties
}

// decodePriceRange decodes the price cell. The happy path is the embedded
// JSON sub-document; malformed JSON falls back to extracting up to two
// numeric substrings from the raw text, and an empty or hopeless cell yields
// a zeroed range. The row is never failed for a bad price.
func decodePriceRange(raw string) (*models.PriceRange, priceOutcome) {
	if raw == "" {
		return zeroPriceRange(), priceZeroed
	}

	var decoded rawPriceRange
	if err := json.Unmarshal([]byte(raw), &decoded); err == nil {
		return &models.PriceRange{
			MinVariantPrice: models.Money{
				Amount:       decoded.MinVariantPrice.Amount,
				CurrencyCode: currencyOrDefault(decoded.MinVariantPrice.CurrencyCode),
			},
			MaxVariantPrice: models.Money{
				Amount:       decoded.MaxVariantPrice.Amount,
				CurrencyCode: currencyOrDefault(decoded.MaxVariantPrice.CurrencyCode),
			},
		}, priceDecoded
	}

	nums := numericRun.FindAllString(raw, 2)
	if len(nums) == 0 {
		return zeroPriceRange(), priceZeroed
	}
	min, err := decimal.NewFromString(nums[0])
	if err != nil {
		return zeroPriceRange(), priceZeroed
	}
	max := min
	if len(nums) > 1 {
		if parsed, err := decimal.NewFromString(nums[1]); err == nil {
			max = parsed
		}
	}
	return &models.PriceRange{
		MinVariantPrice: models.Money{Amount: min, CurrencyCode: defaultCurrency},
		MaxVariantPrice: models.Money{Amount: max, CurrencyCode: defaultCurrency},
	}, priceFallback
}

func zeroPriceRange() *models.PriceRange {
	return &models.PriceRange{
		MinVariantPrice: models.Money{Amount: decimal.Zero, CurrencyCode: defaultCurrency},
		MaxVariantPrice: models.Money{Amount: decimal.Zero, CurrencyCode: defaultCurrency},
	}
}

func currencyOrDefault(code string) string {
	if code == "" {
		return defaultCurrency
	}
	return code
}

// slugify derives a URL-safe handle from a title: lower-cased, with every
// run of non-alphanumerics collapsed to a single dash.
func slugify(title string) string {
	slug := slugRun.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// parseTags splits a delimited tag cell on commas and pipes, dropping empty
// and over-length entries and capping the result at maxTagCount.
func parseTags(raw string) []string {
	if raw == "" {
		return nil
	}
	split := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '|'
	})
	var tags []string
	for _, t := range split {
		t = strings.TrimSpace(t)
		if t == "" || len(t) > maxTagLength {
			continue
		}
		tags = append(tags, t)
		if len(tags) == maxTagCount {
			break
		}
	}
	return tags
}

// parseInventory clamps absent, unparsable, or negative counts to zero.
func parseInventory(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// syntheticID builds a collision-free id for rows whose source omits one.
func syntheticID(rowNum int) string {
	return fmt.Sprintf("row-%d-%s", rowNum, uuid.NewString()[:8])
}
