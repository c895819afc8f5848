package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the environment. A .env file in
// the working directory is loaded first (without overriding variables already
// set in the process environment); it is optional and its absence is not an
// error.
//
// Recognized variables:
//
//	DRAFTKEEP_DB_PATH         string   local database path
//	DRAFTKEEP_SNAPSHOT_DIR    string   snapshot export/import directory
//	DRAFTKEEP_PROBE_ENDPOINT  string   reachability probe URL
//	DRAFTKEEP_PROBE_INTERVAL  string   probe interval, e.g. "3s"
//	DRAFTKEEP_PROBE_TIMEOUT   string   per-probe timeout, e.g. "2s"
//
// Malformed durations are ignored and the previous value retained.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v, ok := os.LookupEnv("DRAFTKEEP_DB_PATH"); ok {
		cfg.DatabasePath = v
	}
	if v, ok := os.LookupEnv("DRAFTKEEP_SNAPSHOT_DIR"); ok {
		cfg.SnapshotDir = v
	}
	if v, ok := os.LookupEnv("DRAFTKEEP_PROBE_ENDPOINT"); ok {
		cfg.ProbeEndpoint = v
	}
	if v, ok := os.LookupEnv("DRAFTKEEP_PROBE_INTERVAL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ProbeInterval = d
		}
	}
	if v, ok := os.LookupEnv("DRAFTKEEP_PROBE_TIMEOUT"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ProbeTimeout = d
		}
	}
}
