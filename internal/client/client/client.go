package client

import (
	"context"

	"github.com/dmitrijs2005/notely/internal/client/models"
)

type Client interface {
	SetToken(token string)
	Token() string

	Register(ctx context.Context, name, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, name, email string) (*models.User, error)
	UploadPicture(ctx context.Context, filename string, data []byte) (string, error)

	ListNotes(ctx context.Context, page int) (*models.NotePage, error)
	SearchNotes(ctx context.Context, query string, page int) (*models.NotePage, error)
	GetNote(ctx context.Context, id string) (*models.Note, error)
	CreateNote(ctx context.Context, title, content string) (*models.Note, error)
	UpdateNote(ctx context.Context, id string, title, content *string) (*models.Note, error)
	DeleteNote(ctx context.Context, id string) error
}
