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

type groupService struct {
	groups  repositories.GroupRepository
	folders repositories.FolderRepository
	tx      repositories.TransactionManager
	logger  *slog.Logger
}

// NewGroupService creates a new group service
func NewGroupService(
	groups repositories.GroupRepository,
	folders repositories.FolderRepository,
	tx repositories.TransactionManager,
	logger *slog.Logger,
) services.GroupService {
	return &groupService{groups: groups, folders: folders, tx: tx, logger: logger}
}

func (s *groupService) Create(ctx context.Context, userID, folderID, title string) (*models.Group, error) {
	title, err := cleanTitle(title)
	if err != nil {
		return nil, err
	}

	var group *models.Group
	err = s.tx.ExecTx(ctx, func(ctx context.Context) error {
		if _, err := s.folders.GetByID(ctx, folderID, userID); err != nil {
			return err
		}
		max, err := s.groups.MaxPosition(ctx, folderID)
		if err != nil {
			return err
		}
		group = &models.Group{
			ID:        uuid.NewString(),
			UserID:    userID,
			FolderID:  folderID,
			Title:     title,
			Position:  ordering.Next(max),
			CreatedAt: time.Now(),
		}
		return s.groups.Create(ctx, group)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("group created",
		"id", group.ID,
		"folder_id", folderID,
		"user_id", userID,
		"position", group.Position,
	)
	return group, nil
}

func (s *groupService) Rename(ctx context.Context, userID, id, title string) (*models.Group, error) {
	title, err := cleanTitle(title)
	if err != nil {
		return nil, err
	}

	var group *models.Group
	err = s.tx.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.groups.UpdateTitle(ctx, id, userID, title); err != nil {
			return err
		}
		group, err = s.groups.GetByID(ctx, id, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

func (s *groupService) Delete(ctx context.Context, userID, id string) error {
	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		return s.groups.Delete(ctx, id, userID)
	})
	if err != nil {
		return err
	}
	s.logger.Info("group deleted", "id", id, "user_id", userID)
	return nil
}

func (s *groupService) Reorder(ctx context.Context, userID, folderID string, orderedIDs []string) error {
	return s.tx.ExecTx(ctx, func(ctx context.Context) error {
		if _, err := s.folders.GetByID(ctx, folderID, userID); err != nil {
			return err
		}
		current, err := s.groups.IDs(ctx, userID, folderID)
		if err != nil {
			return err
		}
		if err := ordering.CheckPermutation(current, orderedIDs); err != nil {
			return err
		}
		return s.groups.SetPositions(ctx, userID, orderedIDs)
	})
}

func (s *groupService) Move(ctx context.Context, userID, id, folderID string, orderedIDs []string) error {
	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		if _, err := s.groups.GetByID(ctx, id, userID); err != nil {
			return err
		}
		if _, err := s.folders.GetByID(ctx, folderID, userID); err != nil {
			return err
		}
		if err := s.groups.SetFolder(ctx, id, userID, folderID); err != nil {
			return err
		}
		current, err := s.groups.IDs(ctx, userID, folderID)
		if err != nil {
			return err
		}
		if err := ordering.CheckPermutation(current, orderedIDs); err != nil {
			return err
		}
		return s.groups.SetPositions(ctx, userID, orderedIDs)
	})
	if err != nil {
		return err
	}
	s.logger.Info("group moved", "id", id, "folder_id", folderID, "user_id", userID)
	return nil
}
