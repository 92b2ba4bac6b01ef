package services

import (
	"context"

	"github.com/dmitrijs2005/notely/internal/client/client"
	"github.com/dmitrijs2005/notely/internal/client/models"
)

// NoteService exposes note operations of the logged-in user.
type NoteService interface {
	List(ctx context.Context, page int) (*models.NotePage, error)
	Search(ctx context.Context, query string, page int) (*models.NotePage, error)
	Get(ctx context.Context, id string) (*models.Note, error)
	Create(ctx context.Context, title, content string) (*models.Note, error)
	Update(ctx context.Context, id string, title, content *string) (*models.Note, error)
	Delete(ctx context.Context, id string) error
}

type noteService struct {
	client client.Client
}

func NewNoteService(c client.Client) NoteService {
	return &noteService{client: c}
}

func (s *noteService) ready() error {
	if s.client.Token() == "" {
		return client.ErrNotLoggedIn
	}
	return nil
}

func (s *noteService) List(ctx context.Context, page int) (*models.NotePage, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.client.ListNotes(ctx, page)
}

func (s *noteService) Search(ctx context.Context, query string, page int) (*models.NotePage, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.client.SearchNotes(ctx, query, page)
}

func (s *noteService) Get(ctx context.Context, id string) (*models.Note, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.client.GetNote(ctx, id)
}

func (s *noteService) Create(ctx context.Context, title, content string) (*models.Note, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.client.CreateNote(ctx, title, content)
}

// Update sends only the fields that are non-nil.
func (s *noteService) Update(ctx context.Context, id string, title, content *string) (*models.Note, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.client.UpdateNote(ctx, id, title, content)
}

func (s *noteService) Delete(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.client.DeleteNote(ctx, id)
}
