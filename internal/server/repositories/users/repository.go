// Package users declares the user persistence contract and its PostgreSQL
// implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/notely/internal/server/models"
)

type Repository interface {
	// Create inserts user, filling in ID when empty and the timestamps.
	// A duplicate email yields common.ErrConflict.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Update rewrites name, email and profile picture of an existing user.
	Update(ctx context.Context, user *models.User) (*models.User, error)
	SetProfilePicture(ctx context.Context, id string, url string) error
}
