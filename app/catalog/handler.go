package catalog

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/vitasearch/catalog-explorer/api"
	"github.com/vitasearch/catalog-explorer/logger"
	"github.com/vitasearch/catalog-explorer/models"
	"github.com/vitasearch/catalog-explorer/search"
)

// Response is the paginated envelope of a catalog query.
type Response struct {
	Total    int              `json:"total"`
	Products []models.Product `json:"products"`
}

// CatalogProvider is what the handlers need from the repository.
type CatalogProvider interface {
	All() []models.Product
	GetByID(id string) (*models.Product, error)
	Facets() models.Facets
	Info() models.CollectionInfo
}

type CatalogHandler struct {
	repo CatalogProvider
}

func NewCatalogHandler(r CatalogProvider) *CatalogHandler {
	return &CatalogHandler{
		repo: r,
	}
}

// HandleSearch runs the query engine over the loaded collection and
// paginates the result. The engine itself knows nothing about pages: the
// full filtered set is computed first, then sliced.
func (h *CatalogHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	// Parse pagination query params
	offset := 0
	limit := 24

	if oStr := r.URL.Query().Get("offset"); oStr != "" {
		if o, err := strconv.Atoi(oStr); err == nil && o >= 0 {
			offset = o
		}
	}

	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil {
			if l < 1 {
				limit = 1
			} else if l > 100 {
				limit = 100
			} else {
				limit = l
			}
		}
	}

	query := r.URL.Query().Get("q")
	filters := parseFilters(r)
	sortKey := models.ParseSortKey(r.URL.Query().Get("sortBy"))

	results := search.Search(h.repo.All(), query, filters, sortKey)
	logger.Dedup("search q=%q sort=%s -> %d result(s)", query, sortKey, len(results))

	total := len(results)
	start := offset
	if start > total {
		start = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	api.WriteJSON(w, http.StatusOK, Response{
		Total:    total,
		Products: results[start:end],
	})
}

// HandleGetProduct serves a single product by id.
func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	product, err := h.repo.GetByID(id)
	if err != nil {
		api.WriteNotFound(w, "Product not found", r.URL.Path)
		return
	}

	api.WriteJSON(w, http.StatusOK, product)
}

// HandleFacets serves the distinct vendor and product-type values of the
// collection, for populating filter controls.
func (h *CatalogHandler) HandleFacets(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, h.repo.Facets())
}

// HandleInfo serves collection metadata.
func (h *CatalogHandler) HandleInfo(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, h.repo.Info())
}

// parseFilters builds the filter set from query parameters.
// Unparsable numeric bounds keep their permissive defaults.
func parseFilters(r *http.Request) models.SearchFilters {
	filters := models.DefaultFilters()
	q := r.URL.Query()

	filters.Vendor = q.Get("vendor")
	filters.ProductType = q.Get("productType")
	filters.InStock = q.Get("inStock") == "true"

	if raw := q.Get("minPrice"); raw != "" {
		if min, err := decimal.NewFromString(raw); err == nil {
			filters.PriceMin = min
		}
	}
	if raw := q.Get("maxPrice"); raw != "" {
		if max, err := decimal.NewFromString(raw); err == nil {
			filters.PriceMax = max
		}
	}
	return filters
}
