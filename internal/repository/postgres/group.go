package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/VArterJr/neotypa-booktabs/internal/domain"
	"github.com/VArterJr/neotypa-booktabs/internal/domain/models"
	"github.com/VArterJr/neotypa-booktabs/internal/domain/repositories"
)

// GroupRepository implements repositories.GroupRepository
type GroupRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(config *RepositoryConfig) repositories.GroupRepository {
	return &GroupRepository{pool: config.Pool, tables: config.Tables}
}

func (r *GroupRepository) Create(ctx context.Context, g *models.Group) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, folder_id, title, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.Groups)

	q := GetExecutor(ctx, r.pool)
	if _, err := q.Exec(ctx, query, g.ID, g.UserID, g.FolderID, g.Title, g.Position, g.CreatedAt); err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("folder %s: %w", g.FolderID, domain.ErrNotFound)
		}
		return fmt.Errorf("create group: %w", err)
	}
	return nil
}

func (r *GroupRepository) GetByID(ctx context.Context, id, userID string) (*models.Group, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, folder_id, title, position, created_at
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Groups)

	var g models.Group
	q := GetExecutor(ctx, r.pool)
	err := q.QueryRow(ctx, query, id, userID).Scan(&g.ID, &g.UserID, &g.FolderID, &g.Title, &g.Position, &g.CreatedAt)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("group %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	return &g, nil
}

func (r *GroupRepository) ListByUser(ctx context.Context, userID string) ([]models.Group, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, folder_id, title, position, created_at
		FROM %s
		WHERE user_id = $1
		ORDER BY position ASC
	`, r.tables.Groups)

	q := GetExecutor(ctx, r.pool)
	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.UserID, &g.FolderID, &g.Title, &g.Position, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate groups: %w", err)
	}
	return groups, nil
}

func (r *GroupRepository) GetByTitle(ctx context.Context, userID, folderID, title string) (*models.Group, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, folder_id, title, position, created_at
		FROM %s
		WHERE user_id = $1 AND folder_id = $2 AND title = $3
		ORDER BY position ASC
		LIMIT 1
	`, r.tables.Groups)

	var g models.Group
	q := GetExecutor(ctx, r.pool)
	err := q.QueryRow(ctx, query, userID, folderID, title).Scan(&g.ID, &g.UserID, &g.FolderID, &g.Title, &g.Position, &g.CreatedAt)
	if err != nil {
		if isPgNoRowsError(err) {
			// Absence is a lookup result here, not an error
			return nil, nil
		}
		return nil, fmt.Errorf("get group by title: %w", err)
	}
	return &g, nil
}

func (r *GroupRepository) UpdateTitle(ctx context.Context, id, userID, title string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET title = $1
		WHERE id = $2 AND user_id = $3
	`, r.tables.Groups)

	q := GetExecutor(ctx, r.pool)
	result, err := q.Exec(ctx, query, title, id, userID)
	if err != nil {
		return fmt.Errorf("update group: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("group %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *GroupRepository) Delete(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE id = $1 AND user_id = $2
	`, r.tables.Groups)

	q := GetExecutor(ctx, r.pool)
	result, err := q.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("group %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *GroupRepository) IDs(ctx context.Context, userID, folderID string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT id FROM %s
		WHERE user_id = $1 AND folder_id = $2
		ORDER BY position ASC
	`, r.tables.Groups)
	return scanIDs(ctx, GetExecutor(ctx, r.pool), query, userID, folderID)
}

func (r *GroupRepository) MaxPosition(ctx context.Context, folderID string) (int, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(MAX(position), -1) FROM %s WHERE folder_id = $1
	`, r.tables.Groups)

	var max int
	q := GetExecutor(ctx, r.pool)
	if err := q.QueryRow(ctx, query, folderID).Scan(&max); err != nil {
		return 0, fmt.Errorf("max group position: %w", err)
	}
	return max, nil
}

func (r *GroupRepository) SetPositions(ctx context.Context, userID string, orderedIDs []string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET position = $1 WHERE id = $2 AND user_id = $3
	`, r.tables.Groups)

	q := GetExecutor(ctx, r.pool)
	for idx, id := range orderedIDs {
		if _, err := q.Exec(ctx, query, idx, id, userID); err != nil {
			return fmt.Errorf("set group position: %w", err)
		}
	}
	return nil
}

func (r *GroupRepository) SetFolder(ctx context.Context, id, userID, folderID string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET folder_id = $1 WHERE id = $2 AND user_id = $3
	`, r.tables.Groups)

	q := GetExecutor(ctx, r.pool)
	result, err := q.Exec(ctx, query, folderID, id, userID)
	if err != nil {
		return fmt.Errorf("move group: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("group %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
