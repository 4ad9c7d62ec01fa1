package repositories

import (
	"context"

	"github.com/VArterJr/neotypa-booktabs/internal/domain/models"
)

// Each hierarchy repository exposes the same operation shapes: ownership-checked
// CRUD, the current member ids of a sibling scope, the scope's max position, a
// positional rewrite, and (below the top level) a reparent. Position math lives
// in the ordering package and the services; repositories only read and write.
//
// All read/write methods take the acting user's id and enforce it in the query,
// so a row belonging to another user behaves exactly like a missing row.

// WorkspaceRepository manages the top-level containers. Their sibling scope is
// the owning user itself.
type WorkspaceRepository interface {
	Create(ctx context.Context, ws *models.Workspace) error
	GetByID(ctx context.Context, id, userID string) (*models.Workspace, error)
	ListByUser(ctx context.Context, userID string) ([]models.Workspace, error)
	UpdateTitle(ctx context.Context, id, userID, title string) error
	Delete(ctx context.Context, id, userID string) error

	// IDs returns the current member ids of the scope in position order.
	IDs(ctx context.Context, userID string) ([]string, error)
	// MaxPosition returns the highest position in the scope, or -1 when empty.
	MaxPosition(ctx context.Context, userID string) (int, error)
	// SetPositions assigns position = index for each id in orderedIDs.
	SetPositions(ctx context.Context, userID string, orderedIDs []string) error
}

type FolderRepository interface {
	Create(ctx context.Context, f *models.Folder) error
	GetByID(ctx context.Context, id, userID string) (*models.Folder, error)
	ListByUser(ctx context.Context, userID string) ([]models.Folder, error)
	UpdateTitle(ctx context.Context, id, userID, title string) error
	Delete(ctx context.Context, id, userID string) error

	IDs(ctx context.Context, userID, workspaceID string) ([]string, error)
	MaxPosition(ctx context.Context, workspaceID string) (int, error)
	SetPositions(ctx context.Context, userID string, orderedIDs []string) error
	// SetWorkspace rewrites the folder's parent reference.
	SetWorkspace(ctx context.Context, id, userID, workspaceID string) error
}

type GroupRepository interface {
	Create(ctx context.Context, g *models.Group) error
	GetByID(ctx context.Context, id, userID string) (*models.Group, error)
	ListByUser(ctx context.Context, userID string) ([]models.Group, error)
	// GetByTitle finds a group by exact title within a folder, or nil.
	GetByTitle(ctx context.Context, userID, folderID, title string) (*models.Group, error)
	UpdateTitle(ctx context.Context, id, userID, title string) error
	Delete(ctx context.Context, id, userID string) error

	IDs(ctx context.Context, userID, folderID string) ([]string, error)
	MaxPosition(ctx context.Context, folderID string) (int, error)
	SetPositions(ctx context.Context, userID string, orderedIDs []string) error
	SetFolder(ctx context.Context, id, userID, folderID string) error
}

type BookmarkRepository interface {
	Create(ctx context.Context, b *models.Bookmark) error
	GetByID(ctx context.Context, id, userID string) (*models.Bookmark, error)
	ListByUser(ctx context.Context, userID string) ([]models.Bookmark, error)
	Update(ctx context.Context, b *models.Bookmark) error
	Delete(ctx context.Context, id, userID string) error

	IDs(ctx context.Context, userID, groupID string) ([]string, error)
	MaxPosition(ctx context.Context, groupID string) (int, error)
	SetPositions(ctx context.Context, userID string, orderedIDs []string) error
	SetGroup(ctx context.Context, id, userID, groupID string) error
}

// TagRepository backs the set-valued Tags attribute on Bookmark with a
// normalized tags table plus a bookmark_tags join relation.
type TagRepository interface {
	// Ensure returns the id of the (userID, name) tag, creating it if needed.
	Ensure(ctx context.Context, userID, name string) (string, error)
	// ReplaceBookmarkTags rewrites the join rows for a bookmark.
	ReplaceBookmarkTags(ctx context.Context, userID, bookmarkID string, names []string) error
	// ListForBookmark returns the bookmark's tag names sorted ascending.
	ListForBookmark(ctx context.Context, bookmarkID string) ([]string, error)
	// MapByBookmark returns tag names keyed by bookmark id for one user.
	MapByBookmark(ctx context.Context, userID string) (map[string][]string, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByUsername includes the password hash for credential checks.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdatePreferences(ctx context.Context, id string, prefs models.UserPreferences) error
}
