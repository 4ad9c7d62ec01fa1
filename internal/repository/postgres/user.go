package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/VArterJr/neotypa-booktabs/internal/domain"
	"github.com/VArterJr/neotypa-booktabs/internal/domain/models"
	"github.com/VArterJr/neotypa-booktabs/internal/domain/repositories"
)

// UserRepository implements repositories.UserRepository
type UserRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewUserRepository creates a new user repository
func NewUserRepository(config *RepositoryConfig) repositories.UserRepository {
	return &UserRepository{pool: config.Pool, tables: config.Tables}
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, username, password, theme, view_mode, bookmark_view_mode, bookmarks_per_container, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.tables.Users)

	q := GetExecutor(ctx, r.pool)
	_, err := q.Exec(ctx, query,
		u.ID,
		u.Username,
		u.PasswordHash,
		u.Preferences.Theme,
		u.Preferences.ViewMode,
		u.Preferences.BookmarkViewMode,
		u.Preferences.BookmarksPerContainer,
		u.CreatedAt,
	)
	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("username %q: %w", u.Username, domain.ErrConflict)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, username, theme, view_mode, bookmark_view_mode, bookmarks_per_container, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Users)

	var u models.User
	q := GetExecutor(ctx, r.pool)
	err := q.QueryRow(ctx, query, id).Scan(
		&u.ID,
		&u.Username,
		&u.Preferences.Theme,
		&u.Preferences.ViewMode,
		&u.Preferences.BookmarkViewMode,
		&u.Preferences.BookmarksPerContainer,
		&u.CreatedAt,
	)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, username, password, theme, view_mode, bookmark_view_mode, bookmarks_per_container, created_at
		FROM %s
		WHERE username = $1
	`, r.tables.Users)

	var u models.User
	q := GetExecutor(ctx, r.pool)
	err := q.QueryRow(ctx, query, username).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.Preferences.Theme,
		&u.Preferences.ViewMode,
		&u.Preferences.BookmarkViewMode,
		&u.Preferences.BookmarksPerContainer,
		&u.CreatedAt,
	)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) UpdatePreferences(ctx context.Context, id string, prefs models.UserPreferences) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET theme = $1, view_mode = $2, bookmark_view_mode = $3, bookmarks_per_container = $4
		WHERE id = $5
	`, r.tables.Users)

	q := GetExecutor(ctx, r.pool)
	result, err := q.Exec(ctx, query,
		prefs.Theme,
		prefs.ViewMode,
		prefs.BookmarkViewMode,
		prefs.BookmarksPerContainer,
		id,
	)
	if err != nil {
		return fmt.Errorf("update preferences: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
