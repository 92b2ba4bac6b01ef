package services

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/notely/internal/common"
	"github.com/dmitrijs2005/notely/internal/dbx"
	"github.com/dmitrijs2005/notely/internal/server/models"
	"github.com/dmitrijs2005/notely/internal/server/repositories/accesstokens"
	"github.com/dmitrijs2005/notely/internal/server/repositories/notes"
	"github.com/dmitrijs2005/notely/internal/server/repositories/users"
)

// memStore backs the fake repositories with plain maps.
type memStore struct {
	mu     sync.Mutex
	clock  time.Time
	users  map[string]models.User
	tokens map[string]models.AccessToken
	notes  map[string]models.Note

	// error injection
	usersCreateErr  error
	tokenCreateErr  error
	noteUpdateErr   error
	searchCalls     int
	countTitleCalls int
}

func newMemStore() *memStore {
	return &memStore{
		clock:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:  map[string]models.User{},
		tokens: map[string]models.AccessToken{},
		notes:  map[string]models.Note{},
	}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

type memUsers struct{ st *memStore }

func (r memUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if r.st.usersCreateErr != nil {
		return nil, r.st.usersCreateErr
	}
	for _, other := range r.st.users {
		if other.Email == u.Email {
			return nil, common.ErrConflict
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = r.st.tick()
	u.UpdatedAt = u.CreatedAt
	r.st.users[u.ID] = *u
	return u, nil
}

func (r memUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	u, ok := r.st.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &u, nil
}

func (r memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, u := range r.st.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r memUsers) Update(ctx context.Context, u *models.User) (*models.User, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	cur, ok := r.st.users[u.ID]
	if !ok {
		return nil, common.ErrNotFound
	}
	cur.Name, cur.Email, cur.ProfilePicture = u.Name, u.Email, u.ProfilePicture
	cur.UpdatedAt = r.st.tick()
	r.st.users[u.ID] = cur
	return &cur, nil
}

func (r memUsers) SetProfilePicture(ctx context.Context, id string, url string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	cur, ok := r.st.users[id]
	if !ok {
		return common.ErrNotFound
	}
	cur.ProfilePicture = &url
	r.st.users[id] = cur
	return nil
}

type memTokens struct{ st *memStore }

func (r memTokens) Create(ctx context.Context, t *models.AccessToken) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if r.st.tokenCreateErr != nil {
		return r.st.tokenCreateErr
	}
	t.CreatedAt = r.st.tick()
	r.st.tokens[t.ID] = *t
	return nil
}

func (r memTokens) GetByID(ctx context.Context, id string) (*models.AccessToken, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	t, ok := r.st.tokens[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &t, nil
}

func (r memTokens) Delete(ctx context.Context, id string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if _, ok := r.st.tokens[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.st.tokens, id)
	return nil
}

func (r memTokens) TouchLastUsed(ctx context.Context, id string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	t, ok := r.st.tokens[id]
	if !ok {
		return nil
	}
	now := r.st.tick()
	t.LastUsedAt = &now
	r.st.tokens[id] = t
	return nil
}

type memNotes struct{ st *memStore }

func (r memNotes) Create(ctx context.Context, n *models.Note) (*models.Note, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.CreatedAt = r.st.tick()
	n.UpdatedAt = n.CreatedAt
	r.st.notes[n.ID] = *n
	return n, nil
}

func (r memNotes) GetByID(ctx context.Context, id string) (*models.Note, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	n, ok := r.st.notes[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &n, nil
}

func (r memNotes) GetForUpdate(ctx context.Context, id string) (*models.Note, error) {
	return r.GetByID(ctx, id)
}

func (r memNotes) Update(ctx context.Context, n *models.Note) (*models.Note, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if r.st.noteUpdateErr != nil {
		return nil, r.st.noteUpdateErr
	}
	cur, ok := r.st.notes[n.ID]
	if !ok {
		return nil, common.ErrNotFound
	}
	cur.Title, cur.Content = n.Title, n.Content
	cur.UpdatedAt = r.st.tick()
	r.st.notes[n.ID] = cur
	return &cur, nil
}

func (r memNotes) Delete(ctx context.Context, id string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if _, ok := r.st.notes[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.st.notes, id)
	return nil
}

func (r memNotes) filter(userID string, keep func(models.Note) bool) []models.Note {
	out := []models.Note{}
	for _, n := range r.st.notes {
		if n.UserID == userID && keep(n) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func window(all []models.Note, limit, offset int) []models.Note {
	if offset >= len(all) {
		return []models.Note{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

func (r memNotes) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Note, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	return window(r.filter(userID, func(models.Note) bool { return true }), limit, offset), nil
}

func (r memNotes) CountByUser(ctx context.Context, userID string) (int, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	return len(r.filter(userID, func(models.Note) bool { return true })), nil
}

func (r memNotes) SearchByTitle(ctx context.Context, userID, query string, limit, offset int) ([]models.Note, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	r.st.searchCalls++
	return window(r.filter(userID, func(n models.Note) bool { return strings.Contains(n.Title, query) }), limit, offset), nil
}

func (r memNotes) CountByTitle(ctx context.Context, userID, query string) (int, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	r.st.countTitleCalls++
	return len(r.filter(userID, func(n models.Note) bool { return strings.Contains(n.Title, query) })), nil
}

type memRepoManager struct{ st *memStore }

func (m *memRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memRepoManager) Users(dbx.DBTX) users.Repository             { return memUsers{m.st} }
func (m *memRepoManager) Notes(dbx.DBTX) notes.Repository             { return memNotes{m.st} }
func (m *memRepoManager) AccessTokens(dbx.DBTX) accesstokens.Repository {
	return memTokens{m.st}
}

type fakeBlobs struct {
	keys        []string
	contentType string
	err         error
}

func (f *fakeBlobs) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	f.contentType = contentType
	return "https://cdn.test/" + key, nil
}

// newTxDB returns an empty in-memory SQLite database; it only has to
// support BEGIN/COMMIT/ROLLBACK for dbx.WithTx.
func newTxDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

type fixture struct {
	st    *memStore
	blobs *fakeBlobs
	auth  *AuthService
	notes *NoteStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTxDB(t)
	st := newMemStore()
	rm := &memRepoManager{st: st}
	blobs := &fakeBlobs{}

	auth := NewAuthService(db, rm, blobs)
	auth.bcryptCost = bcrypt.MinCost

	return &fixture{st: st, blobs: blobs, auth: auth, notes: NewNoteStore(db, rm)}
}

func (f *fixture) register(t *testing.T, name, email string) (*models.User, string) {
	t.Helper()
	u, tok, err := f.auth.Register(context.Background(), RegisterInput{Name: name, Email: email, Password: "password123"})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return u, tok
}
