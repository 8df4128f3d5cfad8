package sqlstore

import (
	"database/sql"
	"fmt"
	"strings"

	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	_ "github.com/lib/pq"
)

// NewPostgresClient opens a postgres pool for the given DSN and wraps
// it in a persistence client. Callers register migrations on the client
// before building repositories.
func NewPostgresClient(cfg persistence.Config, dsn string) (*persistence.Client, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("sqlstore: postgres dsn is required")
	}
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open postgres pool: %w", err)
	}
	client, err := persistence.New(cfg, sqlDB, pgdialect.New())
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("sqlstore: build persistence client: %w", err)
	}
	return client, nil
}
