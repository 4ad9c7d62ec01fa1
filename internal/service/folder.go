package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/VArterJr/neotypa-booktabs/internal/domain/models"
	"github.com/VArterJr/neotypa-booktabs/internal/domain/repositories"
	"github.com/VArterJr/neotypa-booktabs/internal/domain/services"
	"github.com/VArterJr/neotypa-booktabs/internal/ordering"
)

type folderService struct {
	folders    repositories.FolderRepository
	workspaces repositories.WorkspaceRepository
	tx         repositories.TransactionManager
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folders repositories.FolderRepository,
	workspaces repositories.WorkspaceRepository,
	tx repositories.TransactionManager,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{folders: folders, workspaces: workspaces, tx: tx, logger: logger}
}

func (s *folderService) Create(ctx context.Context, userID, workspaceID, title string) (*models.Folder, error) {
	title, err := cleanTitle(title)
	if err != nil {
		return nil, err
	}

	var folder *models.Folder
	err = s.tx.ExecTx(ctx, func(ctx context.Context) error {
		// Parent must exist and belong to the user
		if _, err := s.workspaces.GetByID(ctx, workspaceID, userID); err != nil {
			return err
		}
		max, err := s.folders.MaxPosition(ctx, workspaceID)
		if err != nil {
			return err
		}
		folder = &models.Folder{
			ID:          uuid.NewString(),
			UserID:      userID,
			WorkspaceID: workspaceID,
			Title:       title,
			Position:    ordering.Next(max),
			CreatedAt:   time.Now(),
		}
		return s.folders.Create(ctx, folder)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"workspace_id", workspaceID,
		"user_id", userID,
		"position", folder.Position,
	)
	return folder, nil
}

func (s *folderService) Rename(ctx context.Context, userID, id, title string) (*models.Folder, error) {
	title, err := cleanTitle(title)
	if err != nil {
		return nil, err
	}

	var folder *models.Folder
	err = s.tx.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.folders.UpdateTitle(ctx, id, userID, title); err != nil {
			return err
		}
		folder, err = s.folders.GetByID(ctx, id, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return folder, nil
}

func (s *folderService) Delete(ctx context.Context, userID, id string) error {
	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		return s.folders.Delete(ctx, id, userID)
	})
	if err != nil {
		return err
	}
	s.logger.Info("folder deleted", "id", id, "user_id", userID)
	return nil
}

func (s *folderService) Reorder(ctx context.Context, userID, workspaceID string, orderedIDs []string) error {
	return s.tx.ExecTx(ctx, func(ctx context.Context) error {
		if _, err := s.workspaces.GetByID(ctx, workspaceID, userID); err != nil {
			return err
		}
		current, err := s.folders.IDs(ctx, userID, workspaceID)
		if err != nil {
			return err
		}
		if err := ordering.CheckPermutation(current, orderedIDs); err != nil {
			return err
		}
		return s.folders.SetPositions(ctx, userID, orderedIDs)
	})
}

func (s *folderService) Move(ctx context.Context, userID, id, workspaceID string, orderedIDs []string) error {
	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		if _, err := s.folders.GetByID(ctx, id, userID); err != nil {
			return err
		}
		if _, err := s.workspaces.GetByID(ctx, workspaceID, userID); err != nil {
			return err
		}
		if err := s.folders.SetWorkspace(ctx, id, userID, workspaceID); err != nil {
			return err
		}
		// orderedIDs must be the destination's complete membership, moved
		// folder included. The source workspace keeps its old positions.
		current, err := s.folders.IDs(ctx, userID, workspaceID)
		if err != nil {
			return err
		}
		if err := ordering.CheckPermutation(current, orderedIDs); err != nil {
			return err
		}
		return s.folders.SetPositions(ctx, userID, orderedIDs)
	})
	if err != nil {
		return err
	}
	s.logger.Info("folder moved", "id", id, "workspace_id", workspaceID, "user_id", userID)
	return nil
}
