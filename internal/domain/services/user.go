package services

import (
	"context"

	"github.com/VArterJr/neotypa-booktabs/internal/domain/models"
)

// UserService handles registration, credential checks, and preferences.
type UserService interface {
	// Register creates the user plus a starter workspace/folder/group so
	// the UI isn't empty, all in one transaction.
	Register(ctx context.Context, username, password string) (*models.User, error)
	// Login verifies credentials and returns the user without the hash.
	Login(ctx context.Context, username, password string) (*models.User, error)
	Get(ctx context.Context, userID string) (*models.User, error)
	UpdatePreferences(ctx context.Context, userID string, req *models.UpdatePreferencesRequest) (*models.UserPreferences, error)
}
