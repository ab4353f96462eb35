package config

import (
	"encoding/json"
	"os"

	"github.com/akozyrev/userdir/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Zero-value
// fields are treated as absent and do not override earlier layers.
type JsonConfig struct {
	DatabaseDSN    string `json:"database_dsn"`
	DatabaseEngine string `json:"database_engine"`
	PasswordScheme string `json:"password_scheme"`
	LogLevel       string `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags; when absent, nothing is loaded.
// Read or unmarshal errors panic (caller may recover if desired).
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

	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.DatabaseEngine != "" {
		cfg.DatabaseEngine = jc.DatabaseEngine
	}
	if jc.PasswordScheme != "" {
		cfg.PasswordScheme = jc.PasswordScheme
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
