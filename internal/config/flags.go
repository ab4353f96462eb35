package config

import (
	"flag"
	"os"

	"github.com/akozyrev/userdir/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   database DSN (file path for sqlite, URL for postgres)
//	-e string   database engine: sqlite | postgres
//	-s string   password scheme: plain | argon2
//	-l string   log level: debug | info | warn | error
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-e", "-s", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.DatabaseEngine, "e", cfg.DatabaseEngine, "database engine (sqlite|postgres)")
	fs.StringVar(&cfg.PasswordScheme, "s", cfg.PasswordScheme, "password scheme (plain|argon2)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug|info|warn|error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
