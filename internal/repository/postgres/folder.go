package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/VArterJr/neotypa-booktabs/internal/domain"
	"github.com/VArterJr/neotypa-booktabs/internal/domain/models"
	"github.com/VArterJr/neotypa-booktabs/internal/domain/repositories"
)

// FolderRepository implements repositories.FolderRepository
type FolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &FolderRepository{pool: config.Pool, tables: config.Tables}
}

func (r *FolderRepository) Create(ctx context.Context, f *models.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, workspace_id, title, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.Folders)

	q := GetExecutor(ctx, r.pool)
	if _, err := q.Exec(ctx, query, f.ID, f.UserID, f.WorkspaceID, f.Title, f.Position, f.CreatedAt); err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("workspace %s: %w", f.WorkspaceID, domain.ErrNotFound)
		}
		return fmt.Errorf("create folder: %w", err)
	}
	return nil
}

func (r *FolderRepository) GetByID(ctx context.Context, id, userID string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, workspace_id, title, position, created_at
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Folders)

	var f models.Folder
	q := GetExecutor(ctx, r.pool)
	err := q.QueryRow(ctx, query, id, userID).Scan(&f.ID, &f.UserID, &f.WorkspaceID, &f.Title, &f.Position, &f.CreatedAt)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}
	return &f, nil
}

func (r *FolderRepository) ListByUser(ctx context.Context, userID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, workspace_id, title, position, created_at
		FROM %s
		WHERE user_id = $1
		ORDER BY position ASC
	`, r.tables.Folders)

	q := GetExecutor(ctx, r.pool)
	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var f models.Folder
		if err := rows.Scan(&f.ID, &f.UserID, &f.WorkspaceID, &f.Title, &f.Position, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}
	return folders, nil
}

func (r *FolderRepository) UpdateTitle(ctx context.Context, id, userID, title string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET title = $1
		WHERE id = $2 AND user_id = $3
	`, r.tables.Folders)

	q := GetExecutor(ctx, r.pool)
	result, err := q.Exec(ctx, query, title, id, userID)
	if err != nil {
		return fmt.Errorf("update folder: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *FolderRepository) Delete(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE id = $1 AND user_id = $2
	`, r.tables.Folders)

	q := GetExecutor(ctx, r.pool)
	result, err := q.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *FolderRepository) IDs(ctx context.Context, userID, workspaceID string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT id FROM %s
		WHERE user_id = $1 AND workspace_id = $2
		ORDER BY position ASC
	`, r.tables.Folders)
	return scanIDs(ctx, GetExecutor(ctx, r.pool), query, userID, workspaceID)
}

func (r *FolderRepository) MaxPosition(ctx context.Context, workspaceID string) (int, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(MAX(position), -1) FROM %s WHERE workspace_id = $1
	`, r.tables.Folders)

	var max int
	q := GetExecutor(ctx, r.pool)
	if err := q.QueryRow(ctx, query, workspaceID).Scan(&max); err != nil {
		return 0, fmt.Errorf("max folder position: %w", err)
	}
	return max, nil
}

func (r *FolderRepository) SetPositions(ctx context.Context, userID string, orderedIDs []string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET position = $1 WHERE id = $2 AND user_id = $3
	`, r.tables.Folders)

	q := GetExecutor(ctx, r.pool)
	for idx, id := range orderedIDs {
		if _, err := q.Exec(ctx, query, idx, id, userID); err != nil {
			return fmt.Errorf("set folder position: %w", err)
		}
	}
	return nil
}

func (r *FolderRepository) SetWorkspace(ctx context.Context, id, userID, workspaceID string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET workspace_id = $1 WHERE id = $2 AND user_id = $3
	`, r.tables.Folders)

	q := GetExecutor(ctx, r.pool)
	result, err := q.Exec(ctx, query, workspaceID, id, userID)
	if err != nil {
		return fmt.Errorf("move folder: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
