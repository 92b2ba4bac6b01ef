// Package httpapi exposes the auth and note services over a chi router with
// JSON envelopes.
package httpapi

import (
	"context"

	"github.com/dmitrijs2005/notely/internal/server/models"
	"github.com/dmitrijs2005/notely/internal/server/services"
)

// AuthAPI is the part of services.AuthService used by the handlers.
type AuthAPI interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, string, error)
	Login(ctx context.Context, in services.LoginInput) (*models.User, string, error)
	Verify(ctx context.Context, bearer string) (*models.User, error)
	Logout(ctx context.Context, bearer string) error
	UpdateProfile(ctx context.Context, user *models.User, in services.ProfileInput) (*models.User, error)
	SetProfilePicture(ctx context.Context, user *models.User, data []byte, contentType string) (string, error)
}

// NotesAPI is the part of services.NoteStore used by the handlers.
type NotesAPI interface {
	List(ctx context.Context, user *models.User, page int) (models.NotePage, error)
	Create(ctx context.Context, user *models.User, in services.NoteInput) (*models.Note, error)
	Get(ctx context.Context, user *models.User, id string) (*models.Note, error)
	Update(ctx context.Context, user *models.User, id string, patch services.NotePatch) (*models.Note, error)
	Delete(ctx context.Context, user *models.User, id string) error
	Search(ctx context.Context, user *models.User, query string, page int) (models.NotePage, error)
}

var (
	_ AuthAPI  = (*services.AuthService)(nil)
	_ NotesAPI = (*services.NoteStore)(nil)
)
