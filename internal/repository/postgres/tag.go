package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/VArterJr/neotypa-booktabs/internal/domain/repositories"
)

// TagRepository implements repositories.TagRepository. Tags are unique per
// (user_id, name) and attached to bookmarks through a join table, so a tag
// name is stored once per user no matter how many bookmarks carry it.
type TagRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewTagRepository creates a new tag repository
func NewTagRepository(config *RepositoryConfig) repositories.TagRepository {
	return &TagRepository{pool: config.Pool, tables: config.Tables}
}

func (r *TagRepository) Ensure(ctx context.Context, userID, name string) (string, error) {
	q := GetExecutor(ctx, r.pool)

	selectQuery := fmt.Sprintf(`
		SELECT id FROM %s WHERE user_id = $1 AND name = $2
	`, r.tables.Tags)

	var id string
	err := q.QueryRow(ctx, selectQuery, userID, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !isPgNoRowsError(err) {
		return "", fmt.Errorf("lookup tag: %w", err)
	}

	id = uuid.NewString()
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, name, created_at)
		VALUES ($1, $2, $3, $4)
	`, r.tables.Tags)

	if _, err := q.Exec(ctx, insertQuery, id, userID, name, time.Now()); err != nil {
		if isPgDuplicateError(err) {
			// Lost a race with a concurrent insert; read the winner
			if err := q.QueryRow(ctx, selectQuery, userID, name).Scan(&id); err != nil {
				return "", fmt.Errorf("lookup tag after conflict: %w", err)
			}
			return id, nil
		}
		return "", fmt.Errorf("create tag: %w", err)
	}
	return id, nil
}

func (r *TagRepository) ReplaceBookmarkTags(ctx context.Context, userID, bookmarkID string, names []string) error {
	q := GetExecutor(ctx, r.pool)

	deleteQuery := fmt.Sprintf(`
		DELETE FROM %s WHERE bookmark_id = $1
	`, r.tables.BookmarkTags)
	if _, err := q.Exec(ctx, deleteQuery, bookmarkID); err != nil {
		return fmt.Errorf("clear bookmark tags: %w", err)
	}

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (bookmark_id, tag_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, r.tables.BookmarkTags)

	for _, name := range names {
		tagID, err := r.Ensure(ctx, userID, name)
		if err != nil {
			return err
		}
		if _, err := q.Exec(ctx, insertQuery, bookmarkID, tagID); err != nil {
			return fmt.Errorf("attach tag %q: %w", name, err)
		}
	}
	return nil
}

func (r *TagRepository) ListForBookmark(ctx context.Context, bookmarkID string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT t.name
		FROM %s bt
		JOIN %s t ON t.id = bt.tag_id
		WHERE bt.bookmark_id = $1
		ORDER BY t.name ASC
	`, r.tables.BookmarkTags, r.tables.Tags)

	return scanIDs(ctx, GetExecutor(ctx, r.pool), query, bookmarkID)
}

func (r *TagRepository) MapByBookmark(ctx context.Context, userID string) (map[string][]string, error) {
	query := fmt.Sprintf(`
		SELECT bt.bookmark_id, t.name
		FROM %s bt
		JOIN %s t ON t.id = bt.tag_id
		JOIN %s b ON b.id = bt.bookmark_id
		WHERE b.user_id = $1
		ORDER BY t.name ASC
	`, r.tables.BookmarkTags, r.tables.Tags, r.tables.Bookmarks)

	q := GetExecutor(ctx, r.pool)
	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("map tags by bookmark: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var bookmarkID, name string
		if err := rows.Scan(&bookmarkID, &name); err != nil {
			return nil, fmt.Errorf("scan tag row: %w", err)
		}
		out[bookmarkID] = append(out[bookmarkID], name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tag rows: %w", err)
	}
	return out, nil
}
