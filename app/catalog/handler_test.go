package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitasearch/catalog-explorer/models"
)

// --- Mock Repo ---

type MockCatalogRepo struct {
	Products []models.Product
	FacetSet models.Facets
	InfoData models.CollectionInfo
}

func (m *MockCatalogRepo) All() []models.Product {
	out := make([]models.Product, len(m.Products))
	copy(out, m.Products)
	return out
}

func (m *MockCatalogRepo) GetByID(id string) (*models.Product, error) {
	for _, p := range m.Products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, models.ErrProductNotFound
}

func (m *MockCatalogRepo) Facets() models.Facets       { return m.FacetSet }
func (m *MockCatalogRepo) Info() models.CollectionInfo { return m.InfoData }

// --- Helpers ---

func newTestProduct(id, title, vendor, productType string, price float64, inventory int) models.Product {
	return models.Product{
		ID:          id,
		Title:       title,
		Vendor:      vendor,
		ProductType: productType,
		Status:      models.StatusActive,
		PriceRange: &models.PriceRange{
			MinVariantPrice: models.Money{Amount: decimal.NewFromFloat(price), CurrencyCode: "USD"},
			MaxVariantPrice: models.Money{Amount: decimal.NewFromFloat(price), CurrencyCode: "USD"},
		},
		TotalInventory: inventory,
	}
}

func searchIDs(t *testing.T, rec *httptest.ResponseRecorder) (int, []string) {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	ids := make([]string, len(resp.Products))
	for i, p := range resp.Products {
		ids[i] = p.ID
	}
	return resp.Total, ids
}

// --- Tests ---

func TestHandleSearch(t *testing.T) {
	allMockProducts := []models.Product{
		newTestProduct("1", "Craving and Stress Support", "Thorne", "Stress Tablets", 18.55, 30),
		newTestProduct("2", "PharmaGABA-100", "Thorne", "Vitamins & Supplements", 24.49, 25),
		newTestProduct("3", "Omega-3 Fish Oil", "Nordic Naturals", "Vitamins & Supplements", 32.99, 50),
		newTestProduct("4", "Vitamin D3 + K2", "Life Extension", "Vitamins & Supplements", 19.95, 0),
	}

	testCases := []struct {
		name          string
		url           string
		expectedTotal int
		expectedIDs   []string
	}{
		{
			name:          "No parameters returns everything in load order",
			url:           "/catalog",
			expectedTotal: 4,
			expectedIDs:   []string{"1", "2", "3", "4"},
		},
		{
			name:          "Free-text query",
			url:           "/catalog?q=omega",
			expectedTotal: 1,
			expectedIDs:   []string{"3"},
		},
		{
			name:          "Vendor filter",
			url:           "/catalog?vendor=Thorne",
			expectedTotal: 2,
			expectedIDs:   []string{"1", "2"},
		},
		{
			name:          "Product type filter",
			url:           "/catalog?productType=Stress+Tablets",
			expectedTotal: 1,
			expectedIDs:   []string{"1"},
		},
		{
			name:          "Stock filter excludes zero inventory",
			url:           "/catalog?inStock=true",
			expectedTotal: 3,
			expectedIDs:   []string{"1", "2", "3"},
		},
		{
			name:          "Price window",
			url:           "/catalog?minPrice=19&maxPrice=30",
			expectedTotal: 2,
			expectedIDs:   []string{"2", "4"},
		},
		{
			name:          "Sort by price descending",
			url:           "/catalog?sortBy=price-desc",
			expectedTotal: 4,
			expectedIDs:   []string{"3", "2", "4", "1"},
		},
		{
			name:          "Pagination slices after filtering",
			url:           "/catalog?sortBy=price-asc&offset=1&limit=2",
			expectedTotal: 4,
			expectedIDs:   []string{"4", "2"},
		},
		{
			name:          "Offset beyond result set yields empty page",
			url:           "/catalog?offset=100",
			expectedTotal: 4,
			expectedIDs:   []string{},
		},
		{
			name:          "Invalid numeric parameters fall back to defaults",
			url:           "/catalog?minPrice=abc&offset=-3&limit=zero",
			expectedTotal: 4,
			expectedIDs:   []string{"1", "2", "3", "4"},
		},
		{
			name:          "Unknown sort key preserves order",
			url:           "/catalog?sortBy=shuffle",
			expectedTotal: 4,
			expectedIDs:   []string{"1", "2", "3", "4"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewCatalogHandler(&MockCatalogRepo{Products: allMockProducts})

			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			rec := httptest.NewRecorder()
			handler.HandleSearch(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			total, ids := searchIDs(t, rec)
			assert.Equal(t, tc.expectedTotal, total)
			assert.Equal(t, tc.expectedIDs, ids)
		})
	}
}

func TestHandleSearchEmptyCatalog(t *testing.T) {
	handler := NewCatalogHandler(&MockCatalogRepo{})

	req := httptest.NewRequest(http.MethodGet, "/catalog?q=anything", nil)
	rec := httptest.NewRecorder()
	handler.HandleSearch(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	total, ids := searchIDs(t, rec)
	assert.Equal(t, 0, total)
	assert.Empty(t, ids)
}

func TestHandleGetProduct(t *testing.T) {
	repo := &MockCatalogRepo{Products: []models.Product{
		newTestProduct("42", "Essential Oil Blend", "NOW Foods", "Essential Oils", 12.99, 5),
	}}
	handler := NewCatalogHandler(repo)

	t.Run("Found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/catalog/products/42", nil)
		req.SetPathValue("id", "42")
		rec := httptest.NewRecorder()
		handler.HandleGetProduct(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var product models.Product
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&product))
		assert.Equal(t, "Essential Oil Blend", product.Title)
	})

	t.Run("Not found renders problem details", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/catalog/products/999", nil)
		req.SetPathValue("id", "999")
		rec := httptest.NewRecorder()
		handler.HandleGetProduct(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	})
}

func TestHandleFacets(t *testing.T) {
	repo := &MockCatalogRepo{FacetSet: models.Facets{
		Vendors:      []models.FacetCount{{Value: "Thorne", Count: 2}},
		ProductTypes: []models.FacetCount{{Value: "Minerals", Count: 1}},
	}}
	handler := NewCatalogHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/catalog/facets", nil)
	rec := httptest.NewRecorder()
	handler.HandleFacets(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var facets models.Facets
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&facets))
	assert.Equal(t, repo.FacetSet, facets)
}

func TestHandleInfo(t *testing.T) {
	repo := &MockCatalogRepo{InfoData: models.CollectionInfo{
		ProductCount: 7,
		Filename:     "export.csv",
	}}
	handler := NewCatalogHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/catalog/info", nil)
	rec := httptest.NewRecorder()
	handler.HandleInfo(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var info models.CollectionInfo
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&info))
	assert.Equal(t, 7, info.ProductCount)
	assert.Equal(t, "export.csv", info.Filename)
}
