package services

import (
	"context"

	"github.com/VArterJr/neotypa-booktabs/internal/domain/models"
)

// The four hierarchy services share the same operation shapes. Reorder and
// Move require the caller to pass the complete member list of the (target)
// scope; the engine validates it as a strict permutation and never merges.
// Move renumbers only the destination scope - positions in the source scope
// are left as they were, which may leave a gap until that scope's next
// reorder (see DESIGN.md).

// WorkspaceService manages top-level workspaces; their sibling scope is the
// owning user.
type WorkspaceService interface {
	Create(ctx context.Context, userID, title string) (*models.Workspace, error)
	Rename(ctx context.Context, userID, id, title string) (*models.Workspace, error)
	Delete(ctx context.Context, userID, id string) error
	Reorder(ctx context.Context, userID string, orderedIDs []string) error
}

type FolderService interface {
	Create(ctx context.Context, userID, workspaceID, title string) (*models.Folder, error)
	Rename(ctx context.Context, userID, id, title string) (*models.Folder, error)
	Delete(ctx context.Context, userID, id string) error
	Reorder(ctx context.Context, userID, workspaceID string, orderedIDs []string) error
	Move(ctx context.Context, userID, id, workspaceID string, orderedIDs []string) error
}

type GroupService interface {
	Create(ctx context.Context, userID, folderID, title string) (*models.Group, error)
	Rename(ctx context.Context, userID, id, title string) (*models.Group, error)
	Delete(ctx context.Context, userID, id string) error
	Reorder(ctx context.Context, userID, folderID string, orderedIDs []string) error
	Move(ctx context.Context, userID, id, folderID string, orderedIDs []string) error
}

// CreateBookmarkRequest carries the bookmark payload. Tags are normalized
// on the way in: trimmed, case-sensitively deduplicated, capped.
type CreateBookmarkRequest struct {
	GroupID     string   `json:"groupId"`
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// UpdateBookmarkRequest patches a bookmark; nil fields are left unchanged.
type UpdateBookmarkRequest struct {
	URL         *string   `json:"url,omitempty"`
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

type BookmarkService interface {
	Create(ctx context.Context, userID string, req *CreateBookmarkRequest) (*models.Bookmark, error)
	Update(ctx context.Context, userID, id string, req *UpdateBookmarkRequest) (*models.Bookmark, error)
	Delete(ctx context.Context, userID, id string) error
	Reorder(ctx context.Context, userID, groupID string, orderedIDs []string) error
	Move(ctx context.Context, userID, id, groupID string, orderedIDs []string) error
}

// StateService reads a user's full hierarchy, position-sorted, with tag
// sets attached to bookmarks.
type StateService interface {
	GetState(ctx context.Context, userID string) (*models.AppState, error)
}
