// Package store owns the database schema. The schema is applied at startup
// with CREATE IF NOT EXISTS statements, so a fresh environment boots without
// a separate migration step and an existing one is untouched.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/VArterJr/neotypa-booktabs/internal/repository/postgres"
)

// Subtree deletion rides on ON DELETE CASCADE: removing a workspace takes
// its folders, their groups, those groups' bookmarks, and the bookmarks'
// tag joins in one statement.
const schemaTemplate = `
CREATE TABLE IF NOT EXISTS %[1]s (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	theme TEXT NOT NULL,
	view_mode TEXT NOT NULL,
	bookmark_view_mode TEXT NOT NULL,
	bookmarks_per_container INTEGER NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS %[2]s (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES %[1]s(id) ON DELETE CASCADE,
	title TEXT NOT NULL,
	position INTEGER NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS %[3]s (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES %[1]s(id) ON DELETE CASCADE,
	workspace_id TEXT NOT NULL REFERENCES %[2]s(id) ON DELETE CASCADE,
	title TEXT NOT NULL,
	position INTEGER NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS %[4]s (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES %[1]s(id) ON DELETE CASCADE,
	folder_id TEXT NOT NULL REFERENCES %[3]s(id) ON DELETE CASCADE,
	title TEXT NOT NULL,
	position INTEGER NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS %[5]s (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES %[1]s(id) ON DELETE CASCADE,
	group_id TEXT NOT NULL REFERENCES %[4]s(id) ON DELETE CASCADE,
	url TEXT NOT NULL,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	position INTEGER NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS %[6]s (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES %[1]s(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	UNIQUE(user_id, name)
);

CREATE TABLE IF NOT EXISTS %[7]s (
	bookmark_id TEXT NOT NULL REFERENCES %[5]s(id) ON DELETE CASCADE,
	tag_id TEXT NOT NULL REFERENCES %[6]s(id) ON DELETE CASCADE,
	PRIMARY KEY(bookmark_id, tag_id)
);

CREATE INDEX IF NOT EXISTS idx_%[2]s_user_pos ON %[2]s(user_id, position);
CREATE INDEX IF NOT EXISTS idx_%[3]s_workspace_pos ON %[3]s(workspace_id, position);
CREATE INDEX IF NOT EXISTS idx_%[4]s_folder_pos ON %[4]s(folder_id, position);
CREATE INDEX IF NOT EXISTS idx_%[5]s_group_pos ON %[5]s(group_id, position);
`

// Schema renders the DDL for one environment's table prefix.
func Schema(tables *postgres.TableNames) string {
	return fmt.Sprintf(schemaTemplate,
		tables.Users,
		tables.Workspaces,
		tables.Folders,
		tables.Groups,
		tables.Bookmarks,
		tables.Tags,
		tables.BookmarkTags,
	)
}

// Migrate applies the schema.
func Migrate(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	if _, err := pool.Exec(ctx, Schema(tables)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
