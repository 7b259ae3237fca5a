// Package store persists the loaded product collection as a single
// versioned snapshot record in a local sqlite file. It is the durable
// counterpart of the in-memory catalog: written wholesale on upload, read
// back on startup, and invalidated when the stored format version changes
// or the snapshot outlives its maximum age.
//
// Failures never propagate: a read or decode problem is logged and reported
// as a miss, so callers always degrade to "no prior data".
package store

import (
	"database/sql"
	"encoding/json"
	"log"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vitasearch/catalog-explorer/models"
)

// SnapshotVersion is bumped whenever the persisted product shape changes;
// records written under an older version are cleared on load.
const SnapshotVersion = "1.0"

// storageKey is the fixed key of the single snapshot record.
const storageKey = "product_search_data"

// Snapshot is one persisted product collection with its provenance.
type Snapshot struct {
	Version   string           `json:"version"`
	Products  []models.Product `json:"products"`
	Timestamp int64            `json:"timestamp"` // epoch millis at save time
	Filename  string           `json:"filename,omitempty"`
}

// Info describes the stored snapshot without decoding its product payload.
type Info struct {
	HasData      bool
	ProductCount int
	Timestamp    int64
	Filename     string
}

// Store is the sqlite-backed snapshot gateway.
type Store struct {
	db     *sql.DB
	maxAge time.Duration
}

// Compile-time interface check.
var _ models.CollectionStore = (*Store)(nil)

// Open creates (if needed) and opens the snapshot database at path. maxAge
// bounds how old a snapshot may be before a load discards it.
func Open(path string, maxAge time.Duration) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			key TEXT PRIMARY KEY,
			version TEXT NOT NULL,
			data TEXT NOT NULL,
			product_count INTEGER NOT NULL,
			filename TEXT NOT NULL DEFAULT '',
			saved_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, maxAge: maxAge}, nil
}

// Save replaces the stored snapshot with the given collection. Errors are
// logged, not returned; the in-memory collection stays authoritative either
// way.
func (s *Store) Save(products []models.Product, filename string) {
	now := time.Now().UnixMilli()
	snap := Snapshot{
		Version:   SnapshotVersion,
		Products:  products,
		Timestamp: now,
		Filename:  filename,
	}
	data, err := json.Marshal(snap)
	if err != nil {
		log.Printf("store: failed to encode snapshot: %v", err)
		return
	}

	_, err = s.db.Exec(
		`INSERT INTO snapshots (key, version, data, product_count, filename, saved_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(key)
		 DO UPDATE SET version = excluded.version, data = excluded.data,
		               product_count = excluded.product_count,
		               filename = excluded.filename, saved_at = excluded.saved_at`,
		storageKey, SnapshotVersion, string(data), len(products), filename, now,
	)
	if err != nil {
		log.Printf("store: failed to save snapshot (%d products): %v", len(products), err)
		return
	}
	log.Printf("store: saved snapshot with %d products", len(products))
}

// Load returns the stored snapshot, or (nil, false) on a miss. A version
// mismatch or an over-age snapshot clears the record as a side effect.
func (s *Store) Load() (*Snapshot, bool) {
	var version, data string
	var savedAt int64

	err := s.db.QueryRow(
		`SELECT version, data, saved_at FROM snapshots WHERE key = ?`,
		storageKey,
	).Scan(&version, &data, &savedAt)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		log.Printf("store: failed to read snapshot: %v", err)
		return nil, false
	}

	if version != SnapshotVersion {
		log.Printf("store: snapshot version %q does not match %q, clearing", version, SnapshotVersion)
		s.Clear()
		return nil, false
	}
	if time.Since(time.UnixMilli(savedAt)) > s.maxAge {
		log.Printf("store: snapshot is older than %s, clearing", s.maxAge)
		s.Clear()
		return nil, false
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		log.Printf("store: failed to decode snapshot, clearing: %v", err)
		s.Clear()
		return nil, false
	}
	return &snap, true
}

// LoadCollection adapts Load to the repository's CollectionStore contract.
func (s *Store) LoadCollection() ([]models.Product, string, time.Time, bool) {
	snap, ok := s.Load()
	if !ok {
		return nil, "", time.Time{}, false
	}
	return snap.Products, snap.Filename, time.UnixMilli(snap.Timestamp), true
}

// Clear removes the stored snapshot record.
func (s *Store) Clear() {
	if _, err := s.db.Exec(`DELETE FROM snapshots WHERE key = ?`, storageKey); err != nil {
		log.Printf("store: failed to clear snapshot: %v", err)
	}
}

// GetInfo reports snapshot presence and metadata from the indexed columns,
// without decoding the JSON payload.
func (s *Store) GetInfo() Info {
	var info Info
	err := s.db.QueryRow(
		`SELECT product_count, filename, saved_at FROM snapshots WHERE key = ?`,
		storageKey,
	).Scan(&info.ProductCount, &info.Filename, &info.Timestamp)
	if err != nil {
		return Info{}
	}
	info.HasData = true
	return info
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
