package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/notely/internal/client/client"
	"github.com/dmitrijs2005/notely/internal/client/config"
	"github.com/dmitrijs2005/notely/internal/client/models"
)

type fakeAuth struct {
	loggedIn bool
	user     *models.User
	err      error

	restoreErr error
	password   string
	profile    [2]string
	uploaded   string
	logouts    int
}

func (f *fakeAuth) Restore(ctx context.Context) (*models.User, error) {
	if f.restoreErr != nil {
		return nil, f.restoreErr
	}
	f.loggedIn = true
	return f.user, nil
}

func (f *fakeAuth) Register(ctx context.Context, name, email string, password []byte) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.password = string(password)
	f.loggedIn = true
	return &models.User{Name: name, Email: email}, nil
}

func (f *fakeAuth) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.password = string(password)
	f.loggedIn = true
	return &models.User{Email: email}, nil
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.logouts++
	f.loggedIn = false
	return f.err
}

func (f *fakeAuth) LoggedIn() bool { return f.loggedIn }

func (f *fakeAuth) Me(ctx context.Context) (*models.User, error) {
	return f.user, f.err
}

func (f *fakeAuth) UpdateProfile(ctx context.Context, name, email string) (*models.User, error) {
	f.profile = [2]string{name, email}
	return &models.User{Name: name, Email: email}, f.err
}

func (f *fakeAuth) UploadPicture(ctx context.Context, path string) (string, error) {
	f.uploaded = path
	return "http://cdn/pic.png", f.err
}

type fakeNotes struct {
	page    *models.NotePage
	note    *models.Note
	err     error
	calls   []string
	created [2]string
	patch   [2]*string
}

func (f *fakeNotes) List(ctx context.Context, page int) (*models.NotePage, error) {
	f.calls = append(f.calls, "list")
	return f.page, f.err
}

func (f *fakeNotes) Search(ctx context.Context, query string, page int) (*models.NotePage, error) {
	f.calls = append(f.calls, "search:"+query)
	return f.page, f.err
}

func (f *fakeNotes) Get(ctx context.Context, id string) (*models.Note, error) {
	f.calls = append(f.calls, "get:"+id)
	return f.note, f.err
}

func (f *fakeNotes) Create(ctx context.Context, title, content string) (*models.Note, error) {
	f.created = [2]string{title, content}
	return &models.Note{ID: "n1", Title: title, Content: content}, f.err
}

func (f *fakeNotes) Update(ctx context.Context, id string, title, content *string) (*models.Note, error) {
	f.calls = append(f.calls, "update:"+id)
	f.patch = [2]*string{title, content}
	return &models.Note{ID: id}, f.err
}

func (f *fakeNotes) Delete(ctx context.Context, id string) error {
	f.calls = append(f.calls, "delete:"+id)
	return f.err
}

func newTestApp(auth *fakeAuth, notes *fakeNotes) *App {
	return &App{
		authService: auth,
		noteService: notes,
		reader:      bufio.NewReader(strings.NewReader("")),
		out:         io.Discard,
	}
}

// scriptInput replaces the prompt seams with canned answers, in order.
func scriptInput(t *testing.T, answers ...string) {
	t.Helper()
	origText, origPass, origMulti := getSimpleText, getPassword, getMultiline

	next := func() (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}

	getSimpleText = func(*bufio.Reader, string, io.Writer) (string, error) { return next() }
	getMultiline = func(*bufio.Reader, string, io.Writer) (string, error) { return next() }
	getPassword = func(io.Writer) ([]byte, error) {
		s, err := next()
		return []byte(s), err
	}

	t.Cleanup(func() { getSimpleText, getPassword, getMultiline = origText, origPass, origMulti })
}

func TestNewApp(t *testing.T) {
	_, err := NewApp(&config.Config{})
	assert.Error(t, err)

	app, err := NewApp(&config.Config{ServerBaseURL: "http://127.0.0.1:1/api", TokenFile: t.TempDir() + "/token"})
	require.NoError(t, err)
	assert.False(t, app.isLoggedIn())
}

func TestRegisterAndLogin(t *testing.T) {
	out := captureOutput(t)
	auth := &fakeAuth{}
	app := newTestApp(auth, &fakeNotes{})

	scriptInput(t, "Alice", "alice@example.com", "password123")
	require.NoError(t, app.Register(context.Background()))
	assert.Equal(t, "password123", auth.password)
	assert.Equal(t, "(alice@example.com) ", app.getStatus())

	scriptInput(t, "alice@example.com", "password123")
	require.NoError(t, app.Login(context.Background()))
	assert.Contains(t, *out, "Logged in as alice@example.com")

	require.NoError(t, app.Logout(context.Background()))
	assert.Equal(t, "", app.getStatus())
}

func TestLogin_ErrorLeavesUserUnset(t *testing.T) {
	captureOutput(t)
	auth := &fakeAuth{err: &client.APIError{Status: http.StatusUnauthorized}}
	app := newTestApp(auth, &fakeNotes{})

	scriptInput(t, "alice@example.com", "nope")
	err := app.Login(context.Background())
	require.Error(t, err)
	assert.Nil(t, app.user)
	assert.Contains(t, describeError(err), "log in again")
}

func TestResume(t *testing.T) {
	t.Run("saved session", func(t *testing.T) {
		out := captureOutput(t)
		app := newTestApp(&fakeAuth{user: &models.User{Email: "a@x.io"}}, &fakeNotes{})
		app.resume(context.Background())
		assert.Contains(t, *out, "Logged in as a@x.io")
		assert.NotNil(t, app.user)
	})

	t.Run("no session", func(t *testing.T) {
		out := captureOutput(t)
		app := newTestApp(&fakeAuth{restoreErr: client.ErrNotLoggedIn}, &fakeNotes{})
		app.resume(context.Background())
		assert.Empty(t, *out)
	})

	t.Run("server down", func(t *testing.T) {
		out := captureOutput(t)
		app := newTestApp(&fakeAuth{restoreErr: client.ErrUnavailable}, &fakeNotes{})
		app.resume(context.Background())
		assert.Equal(t, []string{"Error: server unavailable, try again later"}, *out)
	})
}

func TestListAndSearch(t *testing.T) {
	out := captureOutput(t)
	notes := &fakeNotes{page: &models.NotePage{
		CurrentPage: 1, LastPage: 1, Total: 1,
		Data: []models.Note{{ID: "n1", Title: "Shopping"}},
	}}
	app := newTestApp(&fakeAuth{loggedIn: true}, notes)

	require.NoError(t, app.List(context.Background(), nil))
	require.NoError(t, app.Search(context.Background(), []string{"shop", "list"}))
	assert.Equal(t, []string{"list", "search:shop list"}, notes.calls)
	assert.Contains(t, strings.Join(*out, "\n"), "Shopping")
	assert.Contains(t, *out, "Page 1 of 1 (1 notes)")

	err := app.List(context.Background(), []string{"zero"})
	assert.ErrorIs(t, err, errUsage)
	assert.ErrorIs(t, app.Search(context.Background(), nil), errUsage)
}

func TestShow(t *testing.T) {
	out := captureOutput(t)
	notes := &fakeNotes{note: &models.Note{ID: "n1", Title: "T", Content: "body"}}
	app := newTestApp(&fakeAuth{loggedIn: true}, notes)

	require.NoError(t, app.Show(context.Background(), []string{"n1"}))
	assert.Contains(t, strings.Join(*out, "\n"), "body")
	assert.ErrorIs(t, app.Show(context.Background(), nil), errUsage)
}

func TestAdd(t *testing.T) {
	out := captureOutput(t)
	notes := &fakeNotes{}
	app := newTestApp(&fakeAuth{loggedIn: true}, notes)

	scriptInput(t, "Title", "line1\nline2")
	require.NoError(t, app.Add(context.Background()))
	assert.Equal(t, [2]string{"Title", "line1\nline2"}, notes.created)
	assert.Contains(t, *out, "Note created: n1")
}

func TestEdit(t *testing.T) {
	captureOutput(t)
	notes := &fakeNotes{}
	app := newTestApp(&fakeAuth{loggedIn: true}, notes)

	scriptInput(t, "", "new body")
	require.NoError(t, app.Edit(context.Background(), []string{"n1"}))
	assert.Nil(t, notes.patch[0])
	require.NotNil(t, notes.patch[1])
	assert.Equal(t, "new body", *notes.patch[1])

	notes.calls = nil
	scriptInput(t, "", "")
	require.NoError(t, app.Edit(context.Background(), []string{"n1"}))
	assert.Empty(t, notes.calls)
}

func TestDelete_Confirmation(t *testing.T) {
	captureOutput(t)
	notes := &fakeNotes{}
	app := newTestApp(&fakeAuth{loggedIn: true}, notes)

	scriptInput(t, "n")
	require.NoError(t, app.Delete(context.Background(), []string{"n1"}))
	assert.Empty(t, notes.calls)

	scriptInput(t, "y")
	require.NoError(t, app.Delete(context.Background(), []string{"n1"}))
	assert.Equal(t, []string{"delete:n1"}, notes.calls)

	notes.err = &client.APIError{Status: http.StatusForbidden}
	scriptInput(t, "yes")
	err := app.Delete(context.Background(), []string{"n2"})
	assert.Equal(t, "that note belongs to someone else", describeError(err))
}

func TestEditProfile_KeepsEmptyFields(t *testing.T) {
	captureOutput(t)
	auth := &fakeAuth{loggedIn: true, user: &models.User{Name: "Alice", Email: "a@x.io"}}
	app := newTestApp(auth, &fakeNotes{})

	scriptInput(t, "", "alice@new.io")
	require.NoError(t, app.EditProfile(context.Background()))
	assert.Equal(t, [2]string{"Alice", "alice@new.io"}, auth.profile)
	assert.Equal(t, "alice@new.io", app.user.Email)
}

func TestUpload(t *testing.T) {
	out := captureOutput(t)
	auth := &fakeAuth{loggedIn: true}
	app := newTestApp(auth, &fakeNotes{})

	assert.ErrorIs(t, app.Upload(context.Background(), nil), errUsage)

	require.NoError(t, app.Upload(context.Background(), []string{"my", "pic.png"}))
	assert.Equal(t, "my pic.png", auth.uploaded)
	assert.Contains(t, *out, "Profile picture uploaded: http://cdn/pic.png")
}

func TestDescribeError(t *testing.T) {
	assert.Equal(t, "not found", describeError(&client.APIError{Status: http.StatusNotFound}))
	assert.Contains(t, describeError(client.ErrNotLoggedIn), "not logged in")
	assert.Equal(t, "422: The given data was invalid. (title is required)",
		describeError(&client.APIError{Status: 422, Message: "The given data was invalid.", Fields: map[string]string{"title": "is required"}}))
	assert.Equal(t, "boom", describeError(errors.New("boom")))
}
