package users

import (
	"context"

	"github.com/ipeonte/usernotes/internal/server/models"
)

// Repository is the narrow persistence capability the users service
// depends on.
type Repository interface {
	// Create persists a new user. A duplicate name yields
	// common.ErrorConflict.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// FindByName resolves a user name to its stored record, or
	// common.ErrorNotFound.
	FindByName(ctx context.Context, name string) (*models.User, error)
}
