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

type workspaceService struct {
	workspaces repositories.WorkspaceRepository
	tx         repositories.TransactionManager
	logger     *slog.Logger
}

// NewWorkspaceService creates a new workspace service
func NewWorkspaceService(
	workspaces repositories.WorkspaceRepository,
	tx repositories.TransactionManager,
	logger *slog.Logger,
) services.WorkspaceService {
	return &workspaceService{workspaces: workspaces, tx: tx, logger: logger}
}

func (s *workspaceService) Create(ctx context.Context, userID, title string) (*models.Workspace, error) {
	title, err := cleanTitle(title)
	if err != nil {
		return nil, err
	}

	var ws *models.Workspace
	err = s.tx.ExecTx(ctx, func(ctx context.Context) error {
		max, err := s.workspaces.MaxPosition(ctx, userID)
		if err != nil {
			return err
		}
		ws = &models.Workspace{
			ID:        uuid.NewString(),
			UserID:    userID,
			Title:     title,
			Position:  ordering.Next(max),
			CreatedAt: time.Now(),
		}
		return s.workspaces.Create(ctx, ws)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("workspace created", "id", ws.ID, "user_id", userID, "position", ws.Position)
	return ws, nil
}

func (s *workspaceService) Rename(ctx context.Context, userID, id, title string) (*models.Workspace, error) {
	title, err := cleanTitle(title)
	if err != nil {
		return nil, err
	}

	var ws *models.Workspace
	err = s.tx.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.workspaces.UpdateTitle(ctx, id, userID, title); err != nil {
			return err
		}
		ws, err = s.workspaces.GetByID(ctx, id, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ws, nil
}

func (s *workspaceService) Delete(ctx context.Context, userID, id string) error {
	// Cascades through folders, groups, bookmarks, and tag joins.
	// Surviving sibling positions are not renumbered.
	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		return s.workspaces.Delete(ctx, id, userID)
	})
	if err != nil {
		return err
	}
	s.logger.Info("workspace deleted", "id", id, "user_id", userID)
	return nil
}

func (s *workspaceService) Reorder(ctx context.Context, userID string, orderedIDs []string) error {
	return s.tx.ExecTx(ctx, func(ctx context.Context) error {
		current, err := s.workspaces.IDs(ctx, userID)
		if err != nil {
			return err
		}
		if err := ordering.CheckPermutation(current, orderedIDs); err != nil {
			return err
		}
		return s.workspaces.SetPositions(ctx, userID, orderedIDs)
	})
}
