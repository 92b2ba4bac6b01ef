package httpapi

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/notely/internal/common"
	"github.com/dmitrijs2005/notely/internal/server/models"
	"github.com/dmitrijs2005/notely/internal/server/services"
)

type fakeAuth struct {
	mu     sync.Mutex
	seq    int
	users  map[string]*models.User // by email
	pass   map[string]string       // email -> password
	tokens map[string]string       // token -> email
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{
		users:  map[string]*models.User{},
		pass:   map[string]string{},
		tokens: map[string]string{},
	}
}

func (f *fakeAuth) issue(email string) string {
	f.seq++
	tok := fmt.Sprintf("tok-%d", f.seq)
	f.tokens[tok] = email
	return tok
}

func (f *fakeAuth) Register(ctx context.Context, in services.RegisterInput) (*models.User, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if in.Name == "" {
		return nil, "", common.NewValidationError("name", "is required")
	}
	if _, ok := f.users[in.Email]; ok {
		return nil, "", common.ErrConflict
	}
	f.seq++
	u := &models.User{ID: fmt.Sprintf("user-%d", f.seq), Name: in.Name, Email: in.Email}
	f.users[in.Email] = u
	f.pass[in.Email] = in.Password
	return u, f.issue(in.Email), nil
}

func (f *fakeAuth) Login(ctx context.Context, in services.LoginInput) (*models.User, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[in.Email]
	if !ok || f.pass[in.Email] != in.Password {
		return nil, "", common.ErrUnauthorized
	}
	return u, f.issue(in.Email), nil
}

func (f *fakeAuth) Verify(ctx context.Context, bearer string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	email, ok := f.tokens[bearer]
	if !ok {
		return nil, common.ErrUnauthorized
	}
	return f.users[email], nil
}

func (f *fakeAuth) Logout(ctx context.Context, bearer string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tokens[bearer]; !ok {
		return common.ErrUnauthorized
	}
	delete(f.tokens, bearer)
	return nil
}

func (f *fakeAuth) UpdateProfile(ctx context.Context, user *models.User, in services.ProfileInput) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if other, ok := f.users[in.Email]; ok && other.ID != user.ID {
		return nil, common.ErrConflict
	}
	u := *user
	u.Name, u.Email = in.Name, in.Email
	return &u, nil
}

func (f *fakeAuth) SetProfilePicture(ctx context.Context, user *models.User, data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", common.NewValidationError("profile_picture", "is required")
	}
	return "https://cdn.test/profile_pictures/" + user.ID + ".png", nil
}

type fakeNotes struct {
	mu    sync.Mutex
	seq   int
	clock time.Time
	notes map[string]models.Note

	err      error
	panicMsg string
}

func newFakeNotes() *fakeNotes {
	return &fakeNotes{clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), notes: map[string]models.Note{}}
}

func (f *fakeNotes) owned(userID, query string) []models.Note {
	out := []models.Note{}
	for _, n := range f.notes {
		if n.UserID == userID && strings.Contains(n.Title, query) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func page(all []models.Note, p int) models.NotePage {
	offset := models.Offset(p, common.NotesPerPage)
	var data []models.Note
	if offset < len(all) {
		end := offset + common.NotesPerPage
		if end > len(all) {
			end = len(all)
		}
		data = all[offset:end]
	}
	return models.NewNotePage(data, p, common.NotesPerPage, len(all))
}

func (f *fakeNotes) check() error {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	return f.err
}

func (f *fakeNotes) List(ctx context.Context, user *models.User, p int) (models.NotePage, error) {
	if err := f.check(); err != nil {
		return models.NotePage{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return page(f.owned(user.ID, ""), p), nil
}

func (f *fakeNotes) Search(ctx context.Context, user *models.User, query string, p int) (models.NotePage, error) {
	if err := f.check(); err != nil {
		return models.NotePage{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if query == "" {
		return models.NewNotePage(nil, p, common.NotesPerPage, 0), nil
	}
	return page(f.owned(user.ID, query), p), nil
}

func (f *fakeNotes) Create(ctx context.Context, user *models.User, in services.NoteInput) (*models.Note, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if in.Title == "" || in.Content == "" {
		verr := &common.ValidationError{Fields: map[string]string{}}
		if in.Title == "" {
			verr.Fields["title"] = "is required"
		}
		if in.Content == "" {
			verr.Fields["content"] = "is required"
		}
		return nil, verr
	}
	f.seq++
	f.clock = f.clock.Add(time.Second)
	n := models.Note{ID: fmt.Sprintf("note-%d", f.seq), UserID: user.ID, Title: in.Title, Content: in.Content, CreatedAt: f.clock, UpdatedAt: f.clock}
	f.notes[n.ID] = n
	return &n, nil
}

func (f *fakeNotes) lookup(user *models.User, id string) (models.Note, error) {
	n, ok := f.notes[id]
	if !ok {
		return models.Note{}, common.ErrNotFound
	}
	if n.UserID != user.ID {
		return models.Note{}, common.ErrForbidden
	}
	return n, nil
}

func (f *fakeNotes) Get(ctx context.Context, user *models.User, id string) (*models.Note, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	n, err := f.lookup(user, id)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (f *fakeNotes) Update(ctx context.Context, user *models.User, id string, patch services.NotePatch) (*models.Note, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	n, err := f.lookup(user, id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		n.Title = *patch.Title
	}
	if patch.Content != nil {
		n.Content = *patch.Content
	}
	f.notes[id] = n
	return &n, nil
}

func (f *fakeNotes) Delete(ctx context.Context, user *models.User, id string) error {
	if err := f.check(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.lookup(user, id); err != nil {
		return err
	}
	delete(f.notes, id)
	return nil
}
