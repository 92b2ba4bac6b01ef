// Package accesstokens declares the server-side repository contract for
// personal access tokens, the opaque bearer credentials issued at login.
package accesstokens

import (
	"context"

	"github.com/dmitrijs2005/notely/internal/server/models"
)

// Repository defines operations for issuing, resolving and revoking tokens.
type Repository interface {
	// Create stores a new token row, filling in ID when empty and CreatedAt.
	Create(ctx context.Context, token *models.AccessToken) error

	// GetByID returns the token row or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.AccessToken, error)

	// Delete revokes a token. Deleting an absent token yields common.ErrNotFound.
	Delete(ctx context.Context, id string) error

	// TouchLastUsed records that the token has just been used.
	TouchLastUsed(ctx context.Context, id string) error
}
