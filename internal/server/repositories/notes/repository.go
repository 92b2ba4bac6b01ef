// Package notes declares the note persistence contract and its PostgreSQL
// implementation. Listing and search are always scoped to one owner.
package notes

import (
	"context"

	"github.com/dmitrijs2005/notely/internal/server/models"
)

type Repository interface {
	// Create inserts note, filling in ID when empty and the timestamps.
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	GetByID(ctx context.Context, id string) (*models.Note, error)
	// GetForUpdate is GetByID with a row lock; only meaningful inside a transaction.
	GetForUpdate(ctx context.Context, id string) (*models.Note, error)
	// Update rewrites title and content; the owner column is never touched.
	Update(ctx context.Context, note *models.Note) (*models.Note, error)
	Delete(ctx context.Context, id string) error

	// ListByUser returns the owner's notes newest first.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Note, error)
	CountByUser(ctx context.Context, userID string) (int, error)

	// SearchByTitle returns the owner's notes whose title contains query as a
	// literal substring, newest first.
	SearchByTitle(ctx context.Context, userID, query string, limit, offset int) ([]models.Note, error)
	CountByTitle(ctx context.Context, userID, query string) (int, error)
}
