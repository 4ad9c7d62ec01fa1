package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/VArterJr/neotypa-booktabs/internal/domain/repositories"
)

// RepositoryConfig holds shared dependencies for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds environment-prefixed table names
type TableNames struct {
	Users        string
	Workspaces   string
	Folders      string
	Groups       string
	Bookmarks    string
	Tags         string
	BookmarkTags string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Users:        prefix + "users",
		Workspaces:   prefix + "workspaces",
		Folders:      prefix + "folders",
		Groups:       prefix + "groups",
		Bookmarks:    prefix + "bookmarks",
		Tags:         prefix + "tags",
		BookmarkTags: prefix + "bookmark_tags",
	}
}

// CreateConnectionPool creates a pgx connection pool and verifies the
// connection. Table names are interpolated with fmt.Sprintf before the SQL
// reaches the database, so each environment prefix gets its own statements.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the transaction stored in the context when present,
// otherwise the pool. Repositories call this on every query so they
// automatically participate in an enclosing transaction.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
