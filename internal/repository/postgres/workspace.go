package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/VArterJr/neotypa-booktabs/internal/domain"
	"github.com/VArterJr/neotypa-booktabs/internal/domain/models"
	"github.com/VArterJr/neotypa-booktabs/internal/domain/repositories"
)

// WorkspaceRepository implements repositories.WorkspaceRepository
type WorkspaceRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewWorkspaceRepository creates a new workspace repository
func NewWorkspaceRepository(config *RepositoryConfig) repositories.WorkspaceRepository {
	return &WorkspaceRepository{pool: config.Pool, tables: config.Tables}
}

func (r *WorkspaceRepository) Create(ctx context.Context, ws *models.Workspace) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, title, position, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, r.tables.Workspaces)

	q := GetExecutor(ctx, r.pool)
	if _, err := q.Exec(ctx, query, ws.ID, ws.UserID, ws.Title, ws.Position, ws.CreatedAt); err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}
	return nil
}

func (r *WorkspaceRepository) GetByID(ctx context.Context, id, userID string) (*models.Workspace, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, title, position, created_at
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Workspaces)

	var ws models.Workspace
	q := GetExecutor(ctx, r.pool)
	err := q.QueryRow(ctx, query, id, userID).Scan(&ws.ID, &ws.UserID, &ws.Title, &ws.Position, &ws.CreatedAt)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("workspace %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get workspace: %w", err)
	}
	return &ws, nil
}

func (r *WorkspaceRepository) ListByUser(ctx context.Context, userID string) ([]models.Workspace, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, title, position, created_at
		FROM %s
		WHERE user_id = $1
		ORDER BY position ASC
	`, r.tables.Workspaces)

	q := GetExecutor(ctx, r.pool)
	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	defer rows.Close()

	var workspaces []models.Workspace
	for rows.Next() {
		var ws models.Workspace
		if err := rows.Scan(&ws.ID, &ws.UserID, &ws.Title, &ws.Position, &ws.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan workspace: %w", err)
		}
		workspaces = append(workspaces, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workspaces: %w", err)
	}
	return workspaces, nil
}

func (r *WorkspaceRepository) UpdateTitle(ctx context.Context, id, userID, title string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET title = $1
		WHERE id = $2 AND user_id = $3
	`, r.tables.Workspaces)

	q := GetExecutor(ctx, r.pool)
	result, err := q.Exec(ctx, query, title, id, userID)
	if err != nil {
		return fmt.Errorf("update workspace: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("workspace %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *WorkspaceRepository) Delete(ctx context.Context, id, userID string) error {
	// Descendant folders, groups, bookmarks, and tag joins go with it via
	// ON DELETE CASCADE.
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE id = $1 AND user_id = $2
	`, r.tables.Workspaces)

	q := GetExecutor(ctx, r.pool)
	result, err := q.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete workspace: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("workspace %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *WorkspaceRepository) IDs(ctx context.Context, userID string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT id FROM %s WHERE user_id = $1 ORDER BY position ASC
	`, r.tables.Workspaces)
	return scanIDs(ctx, GetExecutor(ctx, r.pool), query, userID)
}

func (r *WorkspaceRepository) MaxPosition(ctx context.Context, userID string) (int, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(MAX(position), -1) FROM %s WHERE user_id = $1
	`, r.tables.Workspaces)

	var max int
	q := GetExecutor(ctx, r.pool)
	if err := q.QueryRow(ctx, query, userID).Scan(&max); err != nil {
		return 0, fmt.Errorf("max workspace position: %w", err)
	}
	return max, nil
}

func (r *WorkspaceRepository) SetPositions(ctx context.Context, userID string, orderedIDs []string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET position = $1 WHERE id = $2 AND user_id = $3
	`, r.tables.Workspaces)

	q := GetExecutor(ctx, r.pool)
	for idx, id := range orderedIDs {
		if _, err := q.Exec(ctx, query, idx, id, userID); err != nil {
			return fmt.Errorf("set workspace position: %w", err)
		}
	}
	return nil
}
