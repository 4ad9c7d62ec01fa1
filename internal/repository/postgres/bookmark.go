package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/VArterJr/neotypa-booktabs/internal/domain"
	"github.com/VArterJr/neotypa-booktabs/internal/domain/models"
	"github.com/VArterJr/neotypa-booktabs/internal/domain/repositories"
)

// BookmarkRepository implements repositories.BookmarkRepository. Tag sets
// live in the tag repository; bookmark rows carry only scalar fields.
type BookmarkRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewBookmarkRepository creates a new bookmark repository
func NewBookmarkRepository(config *RepositoryConfig) repositories.BookmarkRepository {
	return &BookmarkRepository{pool: config.Pool, tables: config.Tables}
}

func (r *BookmarkRepository) Create(ctx context.Context, b *models.Bookmark) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, group_id, url, title, description, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.tables.Bookmarks)

	q := GetExecutor(ctx, r.pool)
	_, err := q.Exec(ctx, query, b.ID, b.UserID, b.GroupID, b.URL, b.Title, b.Description, b.Position, b.CreatedAt)
	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("group %s: %w", b.GroupID, domain.ErrNotFound)
		}
		return fmt.Errorf("create bookmark: %w", err)
	}
	return nil
}

func (r *BookmarkRepository) GetByID(ctx context.Context, id, userID string) (*models.Bookmark, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, group_id, url, title, description, position, created_at
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Bookmarks)

	var b models.Bookmark
	q := GetExecutor(ctx, r.pool)
	err := q.QueryRow(ctx, query, id, userID).Scan(
		&b.ID, &b.UserID, &b.GroupID, &b.URL, &b.Title, &b.Description, &b.Position, &b.CreatedAt)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("bookmark %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get bookmark: %w", err)
	}
	return &b, nil
}

func (r *BookmarkRepository) ListByUser(ctx context.Context, userID string) ([]models.Bookmark, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, group_id, url, title, description, position, created_at
		FROM %s
		WHERE user_id = $1
		ORDER BY position ASC
	`, r.tables.Bookmarks)

	q := GetExecutor(ctx, r.pool)
	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	defer rows.Close()

	var bookmarks []models.Bookmark
	for rows.Next() {
		var b models.Bookmark
		if err := rows.Scan(&b.ID, &b.UserID, &b.GroupID, &b.URL, &b.Title, &b.Description, &b.Position, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookmarks: %w", err)
	}
	return bookmarks, nil
}

func (r *BookmarkRepository) Update(ctx context.Context, b *models.Bookmark) error {
	query := fmt.Sprintf(`
		UPDATE %s SET url = $1, title = $2, description = $3
		WHERE id = $4 AND user_id = $5
	`, r.tables.Bookmarks)

	q := GetExecutor(ctx, r.pool)
	result, err := q.Exec(ctx, query, b.URL, b.Title, b.Description, b.ID, b.UserID)
	if err != nil {
		return fmt.Errorf("update bookmark: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("bookmark %s: %w", b.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *BookmarkRepository) Delete(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE id = $1 AND user_id = $2
	`, r.tables.Bookmarks)

	q := GetExecutor(ctx, r.pool)
	result, err := q.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("bookmark %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *BookmarkRepository) IDs(ctx context.Context, userID, groupID string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT id FROM %s
		WHERE user_id = $1 AND group_id = $2
		ORDER BY position ASC
	`, r.tables.Bookmarks)
	return scanIDs(ctx, GetExecutor(ctx, r.pool), query, userID, groupID)
}

func (r *BookmarkRepository) MaxPosition(ctx context.Context, groupID string) (int, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(MAX(position), -1) FROM %s WHERE group_id = $1
	`, r.tables.Bookmarks)

	var max int
	q := GetExecutor(ctx, r.pool)
	if err := q.QueryRow(ctx, query, groupID).Scan(&max); err != nil {
		return 0, fmt.Errorf("max bookmark position: %w", err)
	}
	return max, nil
}

func (r *BookmarkRepository) SetPositions(ctx context.Context, userID string, orderedIDs []string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET position = $1 WHERE id = $2 AND user_id = $3
	`, r.tables.Bookmarks)

	q := GetExecutor(ctx, r.pool)
	for idx, id := range orderedIDs {
		if _, err := q.Exec(ctx, query, idx, id, userID); err != nil {
			return fmt.Errorf("set bookmark position: %w", err)
		}
	}
	return nil
}

func (r *BookmarkRepository) SetGroup(ctx context.Context, id, userID, groupID string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET group_id = $1 WHERE id = $2 AND user_id = $3
	`, r.tables.Bookmarks)

	q := GetExecutor(ctx, r.pool)
	result, err := q.Exec(ctx, query, groupID, id, userID)
	if err != nil {
		return fmt.Errorf("move bookmark: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("bookmark %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
