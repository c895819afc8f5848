package config

import "time"

// Config holds runtime settings for the draftkeep CLI.
//
// Fields:
//   - DatabasePath: filesystem path of the local SQLite database.
//   - SnapshotDir: directory snapshot bundles are exported to and imported from.
//   - ProbeEndpoint: URL probed to decide server reachability.
//   - ProbeInterval: how often the client probes server reachability.
//   - ProbeTimeout: per-probe request timeout.
//
// Units: ProbeInterval and ProbeTimeout are time.Durations (e.g., 3*time.Second).
type Config struct {
	DatabasePath  string
	SnapshotDir   string
	ProbeEndpoint string
	ProbeInterval time.Duration
	ProbeTimeout  time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "draftkeep.db"
	c.SnapshotDir = "snapshots"
	c.ProbeEndpoint = "http://127.0.0.1:8080/health"
	c.ProbeInterval = 3 * time.Second
	c.ProbeTimeout = 2 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (including a .env file if present), JSON (if present) and
// command-line flags (if present). Later sources take precedence over
// earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
