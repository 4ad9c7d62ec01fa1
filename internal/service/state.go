package service

import (
	"context"
	"log/slog"

	"github.com/VArterJr/neotypa-booktabs/internal/domain/models"
	"github.com/VArterJr/neotypa-booktabs/internal/domain/repositories"
	"github.com/VArterJr/neotypa-booktabs/internal/domain/services"
)

type stateService struct {
	workspaces repositories.WorkspaceRepository
	folders    repositories.FolderRepository
	groups     repositories.GroupRepository
	bookmarks  repositories.BookmarkRepository
	tags       repositories.TagRepository
	logger     *slog.Logger
}

// NewStateService creates a new state service
func NewStateService(
	workspaces repositories.WorkspaceRepository,
	folders repositories.FolderRepository,
	groups repositories.GroupRepository,
	bookmarks repositories.BookmarkRepository,
	tags repositories.TagRepository,
	logger *slog.Logger,
) services.StateService {
	return &stateService{
		workspaces: workspaces,
		folders:    folders,
		groups:     groups,
		bookmarks:  bookmarks,
		tags:       tags,
		logger:     logger,
	}
}

// GetState loads the user's entire hierarchy in one pass. Lists come back
// position-sorted from the repositories; tag names are attached sorted.
// Slices are never nil so the JSON encoding is always an array.
func (s *stateService) GetState(ctx context.Context, userID string) (*models.AppState, error) {
	workspaces, err := s.workspaces.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	folders, err := s.folders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	groups, err := s.groups.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	bookmarks, err := s.bookmarks.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	tagsByBookmark, err := s.tags.MapByBookmark(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range bookmarks {
		tags := tagsByBookmark[bookmarks[i].ID]
		if tags == nil {
			tags = []string{}
		}
		bookmarks[i].Tags = tags
	}

	state := &models.AppState{
		Workspaces: workspaces,
		Folders:    folders,
		Groups:     groups,
		Bookmarks:  bookmarks,
	}
	if state.Workspaces == nil {
		state.Workspaces = []models.Workspace{}
	}
	if state.Folders == nil {
		state.Folders = []models.Folder{}
	}
	if state.Groups == nil {
		state.Groups = []models.Group{}
	}
	if state.Bookmarks == nil {
		state.Bookmarks = []models.Bookmark{}
	}
	return state, nil
}
