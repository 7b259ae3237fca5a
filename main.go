package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	scalargo "github.com/bdpiprava/scalar-go"

	"github.com/vitasearch/catalog-explorer/api"
	"github.com/vitasearch/catalog-explorer/app/catalog"
	"github.com/vitasearch/catalog-explorer/app/upload"
	"github.com/vitasearch/catalog-explorer/config"
	"github.com/vitasearch/catalog-explorer/models"
	"github.com/vitasearch/catalog-explorer/store"
)

func main() {
	settings := config.Load()

	snapshots, err := store.Open(settings.SnapshotDBPath, settings.SnapshotMaxAge)
	if err != nil {
		log.Fatalf("Failed to open snapshot store: %v", err)
	}
	defer snapshots.Close()
	log.Printf("Snapshot store ready at %s (max age %s)", settings.SnapshotDBPath, settings.SnapshotMaxAge)

	repo := models.NewCatalogRepository(snapshots)
	if info := repo.Info(); info.ProductCount > 0 {
		log.Printf("Restored %d products from snapshot (%s)", info.ProductCount, info.Filename)
	}

	catalogHandler := catalog.NewCatalogHandler(repo)
	uploadHandler := upload.NewUploadHandler(repo)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /catalog", catalogHandler.HandleSearch)
	mux.HandleFunc("GET /catalog/products/{id}", catalogHandler.HandleGetProduct)
	mux.HandleFunc("GET /catalog/facets", catalogHandler.HandleFacets)
	mux.HandleFunc("GET /catalog/info", catalogHandler.HandleInfo)
	mux.HandleFunc("POST /catalog/upload", uploadHandler.HandleUpload)
	mux.HandleFunc("DELETE /catalog", uploadHandler.HandleClear)
	mux.HandleFunc("GET /health", handleHealth)
	mux.HandleFunc("GET /{$}", handleDocs)

	fmt.Printf("Access URL: http://localhost%s\n", settings.Addr)
	fmt.Printf("API Docs: http://localhost%s/\n", settings.Addr)

	server := &http.Server{
		Addr:              settings.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Fatal(server.ListenAndServe())
}

// handleDocs renders the OpenAPI document as interactive docs.
func handleDocs(w http.ResponseWriter, r *http.Request) {
	html, err := scalargo.NewV2(
		scalargo.WithSpecDir("./"),
		scalargo.WithMetaDataOpts(
			scalargo.WithTitle("Catalog Explorer API"),
		),
	)
	if err != nil {
		api.WriteInternalServerError(w, err, r.URL.Path)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, html)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"status":"ok"}`)
}
