// Package migrations embeds the schema migrations for the kv table and
// applies them with goose. The SQL is intentionally dialect-neutral so the
// same files serve both the sqlite and postgres engines.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var Migrations embed.FS

// Run applies all pending migrations. engine must be "sqlite" or "postgres".
func Run(ctx context.Context, db *sql.DB, engine string) error {
	goose.SetBaseFS(Migrations)

	dialect := "sqlite3"
	if engine == "postgres" {
		dialect = "postgres"
	}
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}
