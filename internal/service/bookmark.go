package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/VArterJr/neotypa-booktabs/internal/domain/models"
	"github.com/VArterJr/neotypa-booktabs/internal/domain/repositories"
	"github.com/VArterJr/neotypa-booktabs/internal/domain/services"
	"github.com/VArterJr/neotypa-booktabs/internal/ordering"
)

type bookmarkService struct {
	bookmarks repositories.BookmarkRepository
	groups    repositories.GroupRepository
	tags      repositories.TagRepository
	tx        repositories.TransactionManager
	logger    *slog.Logger
}

// NewBookmarkService creates a new bookmark service
func NewBookmarkService(
	bookmarks repositories.BookmarkRepository,
	groups repositories.GroupRepository,
	tags repositories.TagRepository,
	tx repositories.TransactionManager,
	logger *slog.Logger,
) services.BookmarkService {
	return &bookmarkService{bookmarks: bookmarks, groups: groups, tags: tags, tx: tx, logger: logger}
}

func (s *bookmarkService) Create(ctx context.Context, userID string, req *services.CreateBookmarkRequest) (*models.Bookmark, error) {
	title, err := cleanTitle(req.Title)
	if err != nil {
		return nil, err
	}
	if err := validateURL(req.URL); err != nil {
		return nil, err
	}
	if err := validateDescription(req.Description); err != nil {
		return nil, err
	}
	tags, err := cleanTags(req.Tags)
	if err != nil {
		return nil, err
	}

	var bookmark *models.Bookmark
	err = s.tx.ExecTx(ctx, func(ctx context.Context) error {
		if _, err := s.groups.GetByID(ctx, req.GroupID, userID); err != nil {
			return err
		}
		max, err := s.bookmarks.MaxPosition(ctx, req.GroupID)
		if err != nil {
			return err
		}
		bookmark = &models.Bookmark{
			ID:          uuid.NewString(),
			UserID:      userID,
			GroupID:     req.GroupID,
			URL:         strings.TrimSpace(req.URL),
			Title:       title,
			Description: strings.TrimSpace(req.Description),
			Position:    ordering.Next(max),
			CreatedAt:   time.Now(),
		}
		if err := s.bookmarks.Create(ctx, bookmark); err != nil {
			return err
		}
		if err := s.tags.ReplaceBookmarkTags(ctx, userID, bookmark.ID, tags); err != nil {
			return err
		}
		bookmark.Tags, err = s.tags.ListForBookmark(ctx, bookmark.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("bookmark created",
		"id", bookmark.ID,
		"group_id", req.GroupID,
		"user_id", userID,
		"position", bookmark.Position,
	)
	return bookmark, nil
}

func (s *bookmarkService) Update(ctx context.Context, userID, id string, req *services.UpdateBookmarkRequest) (*models.Bookmark, error) {
	var bookmark *models.Bookmark
	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		current, err := s.bookmarks.GetByID(ctx, id, userID)
		if err != nil {
			return err
		}
		if req.Title != nil {
			title, err := cleanTitle(*req.Title)
			if err != nil {
				return err
			}
			current.Title = title
		}
		if req.URL != nil {
			if err := validateURL(*req.URL); err != nil {
				return err
			}
			current.URL = strings.TrimSpace(*req.URL)
		}
		if req.Description != nil {
			if err := validateDescription(*req.Description); err != nil {
				return err
			}
			current.Description = strings.TrimSpace(*req.Description)
		}
		if err := s.bookmarks.Update(ctx, current); err != nil {
			return err
		}
		if req.Tags != nil {
			tags, err := cleanTags(*req.Tags)
			if err != nil {
				return err
			}
			if err := s.tags.ReplaceBookmarkTags(ctx, userID, id, tags); err != nil {
				return err
			}
		}
		current.Tags, err = s.tags.ListForBookmark(ctx, id)
		if err != nil {
			return err
		}
		bookmark = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bookmark, nil
}

func (s *bookmarkService) Delete(ctx context.Context, userID, id string) error {
	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		return s.bookmarks.Delete(ctx, id, userID)
	})
	if err != nil {
		return err
	}
	s.logger.Info("bookmark deleted", "id", id, "user_id", userID)
	return nil
}

func (s *bookmarkService) Reorder(ctx context.Context, userID, groupID string, orderedIDs []string) error {
	return s.tx.ExecTx(ctx, func(ctx context.Context) error {
		if _, err := s.groups.GetByID(ctx, groupID, userID); err != nil {
			return err
		}
		current, err := s.bookmarks.IDs(ctx, userID, groupID)
		if err != nil {
			return err
		}
		if err := ordering.CheckPermutation(current, orderedIDs); err != nil {
			return err
		}
		return s.bookmarks.SetPositions(ctx, userID, orderedIDs)
	})
}

func (s *bookmarkService) Move(ctx context.Context, userID, id, groupID string, orderedIDs []string) error {
	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		if _, err := s.bookmarks.GetByID(ctx, id, userID); err != nil {
			return err
		}
		if _, err := s.groups.GetByID(ctx, groupID, userID); err != nil {
			return err
		}
		if err := s.bookmarks.SetGroup(ctx, id, userID, groupID); err != nil {
			return err
		}
		current, err := s.bookmarks.IDs(ctx, userID, groupID)
		if err != nil {
			return err
		}
		if err := ordering.CheckPermutation(current, orderedIDs); err != nil {
			return err
		}
		return s.bookmarks.SetPositions(ctx, userID, orderedIDs)
	})
	if err != nil {
		return err
	}
	s.logger.Info("bookmark moved", "id", id, "group_id", groupID, "user_id", userID)
	return nil
}
