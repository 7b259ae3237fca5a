package models

import (
	"errors"
	"sort"
	"sync"
	"time"
)

// ErrProductNotFound is returned when a product id is not in the collection.
var ErrProductNotFound = errors.New("product not found")

// CollectionStore is the durable snapshot gateway the repository persists
// through. Implementations must never fail loudly: a broken or missing
// snapshot loads as a miss.
type CollectionStore interface {
	Save(products []Product, filename string)
	LoadCollection() (products []Product, filename string, savedAt time.Time, ok bool)
	Clear()
}

// FacetCount is one distinct facet value with its product count.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Facets lists the distinct vendors and product types of the collection,
// each ordered by count descending then value ascending.
type Facets struct {
	Vendors      []FacetCount `json:"vendors"`
	ProductTypes []FacetCount `json:"productTypes"`
}

// CollectionInfo describes the currently loaded collection.
type CollectionInfo struct {
	ProductCount int    `json:"productCount"`
	Filename     string `json:"filename,omitempty"`
	LoadedAt     string `json:"loadedAt,omitempty"`
}

// CatalogRepository holds the loaded product collection. The collection is
// replaced wholesale on upload and never mutated record by record; reads
// hand out copies so callers can filter and sort freely.
type CatalogRepository struct {
	mu       sync.RWMutex
	products []Product
	filename string
	loadedAt time.Time

	store CollectionStore
}

// NewCatalogRepository builds a repository over the given snapshot store and
// restores the last persisted collection, if any. A nil store disables
// persistence (used in tests).
func NewCatalogRepository(store CollectionStore) *CatalogRepository {
	r := &CatalogRepository{store: store}
	if store != nil {
		if products, filename, savedAt, ok := store.LoadCollection(); ok {
			r.products = products
			r.filename = filename
			// The collection dates from the snapshot, not the restart.
			r.loadedAt = savedAt
		}
	}
	return r
}

// Replace swaps in a freshly ingested collection and persists it.
func (r *CatalogRepository) Replace(products []Product, filename string) {
	r.mu.Lock()
	r.products = products
	r.filename = filename
	r.loadedAt = time.Now()
	r.mu.Unlock()

	if r.store != nil {
		r.store.Save(products, filename)
	}
}

// Clear drops the in-memory collection and the persisted snapshot.
func (r *CatalogRepository) Clear() {
	r.mu.Lock()
	r.products = nil
	r.filename = ""
	r.loadedAt = time.Time{}
	r.mu.Unlock()

	if r.store != nil {
		r.store.Clear()
	}
}

// All returns a copy of the loaded collection.
func (r *CatalogRepository) All() []Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, len(r.products))
	copy(out, r.products)
	return out
}

// GetByID looks a single product up by id.
func (r *CatalogRepository) GetByID(id string) (*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.products {
		if r.products[i].ID == id {
			product := r.products[i]
			return &product, nil
		}
	}
	return nil, ErrProductNotFound
}

// Facets computes the distinct vendor and product-type values of the
// collection with their counts.
func (r *CatalogRepository) Facets() Facets {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vendors := make(map[string]int)
	types := make(map[string]int)
	for i := range r.products {
		if v := r.products[i].Vendor; v != "" {
			vendors[v]++
		}
		if t := r.products[i].ProductType; t != "" {
			types[t]++
		}
	}
	return Facets{
		Vendors:      sortedFacets(vendors),
		ProductTypes: sortedFacets(types),
	}
}

// Info reports collection metadata for the status surface.
func (r *CatalogRepository) Info() CollectionInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info := CollectionInfo{
		ProductCount: len(r.products),
		Filename:     r.filename,
	}
	if !r.loadedAt.IsZero() {
		info.LoadedAt = r.loadedAt.UTC().Format(time.RFC3339)
	}
	return info
}

func sortedFacets(counts map[string]int) []FacetCount {
	out := make([]FacetCount, 0, len(counts))
	for value, count := range counts {
		out = append(out, FacetCount{Value: value, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}
