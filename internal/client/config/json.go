package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/virtual-arena/arena-cli/internal/flagx"
	"github.com/virtual-arena/arena-cli/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "30s" or as integer nanoseconds. After parsing, values are copied into
// the runtime Config.
type JsonConfig struct {
	BaseURL       string         `json:"base_url"`
	SessionDBPath string         `json:"session_db_path"`
	HTTPTimeout   timex.Duration `json:"http_timeout"`
	PageLimit     int            `json:"page_limit"`
	Debug         bool           `json:"debug"`
}

// parseJson overlays Config with values loaded from a JSON file, resolved
// via the -c/-config flags. When no file is given the function is a no-op.
// Read or unmarshal errors panic; this runs once at startup before anything
// observable has happened.
func parseJson(cfg *Config) {
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

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.SessionDBPath != "" {
		cfg.SessionDBPath = jc.SessionDBPath
	}
	if jc.HTTPTimeout.Duration != 0 {
		cfg.HTTPTimeout = time.Duration(jc.HTTPTimeout.Duration)
	}
	if jc.PageLimit != 0 {
		cfg.PageLimit = jc.PageLimit
	}
	if jc.Debug {
		cfg.Debug = true
	}
}
