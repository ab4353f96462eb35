// Package config holds runtime settings for the userdir CLI, layered from
// defaults, an optional JSON file, and command-line flags.
package config

// Config holds runtime settings.
//
// Fields:
//   - DatabaseDSN: connection string for the key-value store.
//   - DatabaseEngine: "sqlite" or "postgres".
//   - PasswordScheme: "plain" (legacy exact-match) or "argon2".
//   - LogLevel: debug|info|warn|error.
type Config struct {
	DatabaseDSN    string
	DatabaseEngine string
	PasswordScheme string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "userdir.db"
	c.DatabaseEngine = "sqlite"
	c.PasswordScheme = "plain"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
