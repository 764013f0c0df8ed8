package config

import "time"

// Config holds runtime settings for the Arena CLI.
//
// Fields:
//   - BaseURL: scheme://host[:port] of the Arena HTTP API, no trailing slash.
//   - SessionDBPath: path of the SQLite file holding persisted session state.
//   - HTTPTimeout: overall per-request timeout for the HTTP client. Zero
//     means no timeout, which leaves a never-resolving call pending forever.
//   - PageLimit: articles per list page.
//   - Debug: enable debug-level logging.
type Config struct {
	BaseURL       string
	SessionDBPath string
	HTTPTimeout   time.Duration
	PageLimit     int
	Debug         bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "https://virtual-arena-backend.onrender.com"
	c.SessionDBPath = "arena.db"
	c.HTTPTimeout = 0
	c.PageLimit = 9
	c.Debug = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (including a .env file if present), a JSON file, and
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
