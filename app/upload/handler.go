package upload

import (
	"io"
	"log"
	"net/http"

	"github.com/vitasearch/catalog-explorer/api"
	"github.com/vitasearch/catalog-explorer/ingest"
	"github.com/vitasearch/catalog-explorer/models"
)

// maxUploadBytes bounds the CSV body. Imports are interactive exports, not
// bulk feeds; 32 MiB is far beyond any realistic catalog file.
const maxUploadBytes = 32 << 20

// CollectionWriter is what the upload handlers need from the repository.
type CollectionWriter interface {
	Replace(products []models.Product, filename string)
	Clear()
}

// UploadResponse pairs the ingest summary with the resulting collection size.
type UploadResponse struct {
	Summary      ingest.Summary `json:"summary"`
	ProductCount int            `json:"productCount"`
}

type UploadHandler struct {
	repo CollectionWriter
}

func NewUploadHandler(r CollectionWriter) *UploadHandler {
	return &UploadHandler{repo: r}
}

// HandleUpload ingests a CSV body and replaces the collection wholesale.
// The request body is the raw CSV text; the optional X-Filename header
// records provenance for the stored snapshot.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
	if err != nil {
		api.WriteBadRequest(w, "Failed to read request body: "+err.Error(), r.URL.Path)
		return
	}
	defer r.Body.Close()

	if len(body) == 0 {
		api.WriteBadRequest(w, "Empty request body, expected CSV content", r.URL.Path)
		return
	}

	products, summary := ingest.Ingest(string(body))
	if summary.Fatal {
		// Fatal ingests leave the current collection untouched.
		api.WriteJSON(w, http.StatusBadRequest, UploadResponse{Summary: summary})
		return
	}

	filename := r.Header.Get("X-Filename")
	h.repo.Replace(products, filename)
	log.Printf("upload: replaced collection with %d products (%s)", len(products), summary.Message)

	api.WriteJSON(w, http.StatusOK, UploadResponse{
		Summary:      summary,
		ProductCount: len(products),
	})
}

// HandleClear drops the loaded collection and its persisted snapshot.
func (h *UploadHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	h.repo.Clear()
	log.Print("upload: collection cleared")
	api.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Catalog cleared successfully",
	})
}
