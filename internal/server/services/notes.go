package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/notely/internal/common"
	"github.com/dmitrijs2005/notely/internal/dbx"
	"github.com/dmitrijs2005/notely/internal/server/models"
	"github.com/dmitrijs2005/notely/internal/server/repositories/repomanager"
)

// NoteInput is the payload of a note creation. There is no owner field:
// ownership always comes from the authenticated caller.
type NoteInput struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
}

// NotePatch lists the mutable note fields. A nil field is left unchanged;
// a supplied one must be non-empty.
type NotePatch struct {
	Title   *string `json:"title" validate:"omitnil,min=1,max=255"`
	Content *string `json:"content" validate:"omitnil,min=1"`
}

// NoteStore implements owner-scoped note CRUD, listing and title search.
type NoteStore struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	validate    *validator.Validate
	perPage     int
}

func NewNoteStore(db *sql.DB, m repomanager.RepositoryManager) *NoteStore {
	return &NoteStore{
		db:          db,
		repomanager: m,
		validate:    newValidator(),
		perPage:     common.NotesPerPage,
	}
}

// List returns page of the user's notes, newest first.
func (s *NoteStore) List(ctx context.Context, user *models.User, page int) (models.NotePage, error) {
	page = normalizePage(page)
	repo := s.repomanager.Notes(s.db)

	total, err := repo.CountByUser(ctx, user.ID)
	if err != nil {
		return models.NotePage{}, fmt.Errorf("error counting notes: %w", err)
	}

	var data []models.Note
	if offset := models.Offset(page, s.perPage); offset < total {
		data, err = repo.ListByUser(ctx, user.ID, s.perPage, offset)
		if err != nil {
			return models.NotePage{}, fmt.Errorf("error listing notes: %w", err)
		}
	}

	return models.NewNotePage(data, page, s.perPage, total), nil
}

// Create stores a new note owned by user.
func (s *NoteStore) Create(ctx context.Context, user *models.User, in NoteInput) (*models.Note, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}

	note := &models.Note{
		UserID:  user.ID,
		Title:   in.Title,
		Content: in.Content,
	}

	n, err := s.repomanager.Notes(s.db).Create(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("error creating note: %w", err)
	}
	return n, nil
}

// Get returns a note owned by user.
func (s *NoteStore) Get(ctx context.Context, user *models.User, id string) (*models.Note, error) {
	if !isNoteID(id) {
		return nil, common.ErrNotFound
	}

	note, err := s.repomanager.Notes(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note.UserID != user.ID {
		return nil, common.ErrForbidden
	}
	return note, nil
}

// Update applies patch to a note owned by user under a row lock.
func (s *NoteStore) Update(ctx context.Context, user *models.User, id string, patch NotePatch) (*models.Note, error) {
	if !isNoteID(id) {
		return nil, common.ErrNotFound
	}

	patch.Title = trimPtr(patch.Title)
	patch.Content = trimPtr(patch.Content)
	if err := validateStruct(s.validate, patch); err != nil {
		return nil, err
	}

	var result *models.Note
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Notes(tx)

		note, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if note.UserID != user.ID {
			return common.ErrForbidden
		}

		if patch.Title == nil && patch.Content == nil {
			result = note
			return nil
		}
		if patch.Title != nil {
			note.Title = *patch.Title
		}
		if patch.Content != nil {
			note.Content = *patch.Content
		}

		result, err = repo.Update(ctx, note)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Delete removes a note owned by user.
func (s *NoteStore) Delete(ctx context.Context, user *models.User, id string) error {
	if !isNoteID(id) {
		return common.ErrNotFound
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Notes(tx)

		note, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if note.UserID != user.ID {
			return common.ErrForbidden
		}
		return repo.Delete(ctx, id)
	})
}

// Search returns page of the user's notes whose title contains query.
// A blank query yields an empty page.
func (s *NoteStore) Search(ctx context.Context, user *models.User, query string, page int) (models.NotePage, error) {
	page = normalizePage(page)
	query = strings.TrimSpace(query)
	if query == "" {
		return models.NewNotePage(nil, page, s.perPage, 0), nil
	}

	repo := s.repomanager.Notes(s.db)

	total, err := repo.CountByTitle(ctx, user.ID, query)
	if err != nil {
		return models.NotePage{}, fmt.Errorf("error counting notes: %w", err)
	}

	var data []models.Note
	if offset := models.Offset(page, s.perPage); offset < total {
		data, err = repo.SearchByTitle(ctx, user.ID, query, s.perPage, offset)
		if err != nil {
			return models.NotePage{}, fmt.Errorf("error searching notes: %w", err)
		}
	}

	return models.NewNotePage(data, page, s.perPage, total), nil
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// isNoteID accepts only the canonical 36-character UUID form.
func isNoteID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
