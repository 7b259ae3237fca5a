// Package config loads the server settings from the environment, with an
// optional .env file for local runs.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Settings holds everything the server needs at startup.
type Settings struct {
	Addr           string
	SnapshotDBPath string
	SnapshotMaxAge time.Duration
}

// Load reads settings from the environment. A .env file in the working
// directory is applied first when present; missing keys fall back to
// defaults suitable for local use.
func Load() Settings {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded .env")
	}

	s := Settings{
		Addr:           ":8080",
		SnapshotDBPath: "./catalog.db",
		SnapshotMaxAge: 7 * 24 * time.Hour,
	}

	if addr := os.Getenv("ADDR"); addr != "" {
		s.Addr = addr
	}
	if path := os.Getenv("SNAPSHOT_DB_PATH"); path != "" {
		s.SnapshotDBPath = path
	}
	if val := os.Getenv("SNAPSHOT_MAX_AGE_DAYS"); val != "" {
		if days, err := strconv.Atoi(val); err == nil && days > 0 {
			s.SnapshotMaxAge = time.Duration(days) * 24 * time.Hour
		}
	}
	return s
}
