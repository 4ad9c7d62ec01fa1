package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/VArterJr/neotypa-booktabs/internal/config"
	"github.com/VArterJr/neotypa-booktabs/internal/domain"
	"github.com/VArterJr/neotypa-booktabs/internal/domain/models"
	"github.com/VArterJr/neotypa-booktabs/internal/domain/repositories"
	"github.com/VArterJr/neotypa-booktabs/internal/domain/services"
)

// DefaultPreferences is what a fresh account starts with.
var DefaultPreferences = models.UserPreferences{
	Theme:                 "light",
	ViewMode:              models.ViewModeTabbed,
	BookmarkViewMode:      models.BookmarkViewCard,
	BookmarksPerContainer: 20,
}

type userService struct {
	users      repositories.UserRepository
	workspaces repositories.WorkspaceRepository
	folders    repositories.FolderRepository
	groups     repositories.GroupRepository
	tx         repositories.TransactionManager
	logger     *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(
	users repositories.UserRepository,
	workspaces repositories.WorkspaceRepository,
	folders repositories.FolderRepository,
	groups repositories.GroupRepository,
	tx repositories.TransactionManager,
	logger *slog.Logger,
) services.UserService {
	return &userService{
		users:      users,
		workspaces: workspaces,
		folders:    folders,
		groups:     groups,
		tx:         tx,
		logger:     logger,
	}
}

func (s *userService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if err := validation.Validate(username,
		validation.Required,
		validation.Length(1, config.MaxUsernameLen),
	); err != nil {
		return nil, fmt.Errorf("%w: username: %v", domain.ErrValidation, err)
	}
	if err := validation.Validate(password,
		validation.Required,
		validation.Length(1, config.MaxPasswordLen),
	); err != nil {
		return nil, fmt.Errorf("%w: password: %v", domain.ErrValidation, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Preferences:  DefaultPreferences,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	// Seed a starter hierarchy so the first screen isn't empty.
	err = s.tx.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.users.Create(ctx, user); err != nil {
			return err
		}
		ws := &models.Workspace{
			ID:        uuid.NewString(),
			UserID:    user.ID,
			Title:     "Personal",
			Position:  0,
			CreatedAt: time.Now(),
		}
		if err := s.workspaces.Create(ctx, ws); err != nil {
			return err
		}
		folder := &models.Folder{
			ID:          uuid.NewString(),
			UserID:      user.ID,
			WorkspaceID: ws.ID,
			Title:       "Main",
			Position:    0,
			CreatedAt:   time.Now(),
		}
		if err := s.folders.Create(ctx, folder); err != nil {
			return err
		}
		group := &models.Group{
			ID:        uuid.NewString(),
			UserID:    user.ID,
			FolderID:  folder.ID,
			Title:     "Links",
			Position:  0,
			CreatedAt: time.Now(),
		}
		return s.groups.Create(ctx, group)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "id", user.ID, "username", username)
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewUnauthorizedError("invalid username or password")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.NewUnauthorizedError("invalid username or password")
	}

	s.logger.Info("user logged in", "id", user.ID)
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) Get(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) UpdatePreferences(ctx context.Context, userID string, req *models.UpdatePreferencesRequest) (*models.UserPreferences, error) {
	var prefs models.UserPreferences
	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		prefs = user.Preferences
		if req.Theme != nil {
			prefs.Theme = *req.Theme
		}
		if req.ViewMode != nil {
			if *req.ViewMode != models.ViewModeTabbed && *req.ViewMode != models.ViewModeHierarchical {
				return fmt.Errorf("%w: viewMode must be tabbed or hierarchical", domain.ErrValidation)
			}
			prefs.ViewMode = *req.ViewMode
		}
		if req.BookmarkViewMode != nil {
			if *req.BookmarkViewMode != models.BookmarkViewCard && *req.BookmarkViewMode != models.BookmarkViewList {
				return fmt.Errorf("%w: bookmarkViewMode must be card or list", domain.ErrValidation)
			}
			prefs.BookmarkViewMode = *req.BookmarkViewMode
		}
		if req.BookmarksPerContainer != nil {
			if *req.BookmarksPerContainer < 1 {
				return fmt.Errorf("%w: bookmarksPerContainer must be positive", domain.ErrValidation)
			}
			prefs.BookmarksPerContainer = *req.BookmarksPerContainer
		}
		return s.users.UpdatePreferences(ctx, userID, prefs)
	})
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}
