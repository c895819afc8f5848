package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/draftkeep/draftkeep/internal/flagx"
	"github.com/draftkeep/draftkeep/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	DatabasePath  string         `json:"database_path"`
	SnapshotDir   string         `json:"snapshot_dir"`
	ProbeEndpoint string         `json:"probe_endpoint"`
	ProbeInterval timex.Duration `json:"probe_interval"`
	ProbeTimeout  timex.Duration `json:"probe_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Behavior:
//   - Reads and unmarshals the JSON into JsonConfig.
//   - Copies known fields into the provided Config.
//   - Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseEnv -> parseJson -> parseFlags, where
// later stages override earlier ones.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.DatabasePath = jc.DatabasePath
	cfg.SnapshotDir = jc.SnapshotDir
	cfg.ProbeEndpoint = jc.ProbeEndpoint
	cfg.ProbeInterval = time.Duration(jc.ProbeInterval.Duration)
	cfg.ProbeTimeout = time.Duration(jc.ProbeTimeout.Duration)
}
