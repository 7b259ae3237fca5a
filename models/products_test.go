package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	assert.Equal(t, StatusArchived, ParseStatus("ARCHIVED"))
	assert.Equal(t, StatusArchived, ParseStatus("archived"))
	assert.Equal(t, StatusDraft, ParseStatus("Draft"))
	assert.Equal(t, StatusActive, ParseStatus("ACTIVE"))
	assert.Equal(t, StatusActive, ParseStatus(""), "missing defaults to ACTIVE")
	assert.Equal(t, StatusActive, ParseStatus("deleted"), "unknown defaults to ACTIVE")
}

func TestCreatedTime(t *testing.T) {
	p := Product{CreatedAt: "2023-09-25T15:52:45Z"}
	assert.Equal(t, time.Date(2023, 9, 25, 15, 52, 45, 0, time.UTC), p.CreatedTime())

	epoch := time.Unix(0, 0).UTC()
	assert.Equal(t, epoch, (&Product{}).CreatedTime())
	assert.Equal(t, epoch, (&Product{CreatedAt: "yesterday"}).CreatedTime())
}

func TestInStock(t *testing.T) {
	assert.True(t, (&Product{TotalInventory: 5}).InStock())
	assert.False(t, (&Product{TotalInventory: 0}).InStock())
	assert.False(t, (&Product{TotalInventory: 5, HasOutOfStockVariants: true}).InStock())
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortName, ParseSortKey("name"))
	assert.Equal(t, SortPriceDesc, ParseSortKey("price-desc"))
	assert.Equal(t, SortDateAsc, ParseSortKey("date-asc"))
	assert.Equal(t, SortRelevance, ParseSortKey(""))
	assert.Equal(t, SortRelevance, ParseSortKey("shuffle"))
}
