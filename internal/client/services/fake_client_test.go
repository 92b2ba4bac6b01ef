package services

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/notely/internal/client/client"
	"github.com/dmitrijs2005/notely/internal/client/models"
)

type fakeClient struct {
	token string

	user  *models.User
	note  *models.Note
	page  *models.NotePage
	err   error
	calls []string

	uploaded   []byte
	uploadName string
	patch      [2]*string
}

func (f *fakeClient) SetToken(token string) { f.token = token }
func (f *fakeClient) Token() string         { return f.token }

func (f *fakeClient) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	f.calls = append(f.calls, "register")
	if f.err != nil {
		return nil, "", f.err
	}
	return &models.User{ID: "u1", Name: name, Email: email}, "id|secret", nil
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	f.calls = append(f.calls, "login")
	if f.err != nil {
		return nil, "", f.err
	}
	return &models.User{ID: "u1", Email: email}, "id|login", nil
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	return f.err
}

func (f *fakeClient) Me(ctx context.Context) (*models.User, error) {
	f.calls = append(f.calls, "me:"+f.token)
	return f.user, f.err
}

func (f *fakeClient) UpdateProfile(ctx context.Context, name, email string) (*models.User, error) {
	f.calls = append(f.calls, "update_profile")
	return &models.User{Name: name, Email: email}, f.err
}

func (f *fakeClient) UploadPicture(ctx context.Context, filename string, data []byte) (string, error) {
	f.calls = append(f.calls, "upload")
	f.uploadName, f.uploaded = filename, data
	return "http://cdn/" + filename, f.err
}

func (f *fakeClient) ListNotes(ctx context.Context, page int) (*models.NotePage, error) {
	f.calls = append(f.calls, "list")
	return f.page, f.err
}

func (f *fakeClient) SearchNotes(ctx context.Context, query string, page int) (*models.NotePage, error) {
	f.calls = append(f.calls, "search:"+query)
	return f.page, f.err
}

func (f *fakeClient) GetNote(ctx context.Context, id string) (*models.Note, error) {
	f.calls = append(f.calls, "get:"+id)
	return f.note, f.err
}

func (f *fakeClient) CreateNote(ctx context.Context, title, content string) (*models.Note, error) {
	f.calls = append(f.calls, "create")
	return &models.Note{ID: "n1", Title: title, Content: content}, f.err
}

func (f *fakeClient) UpdateNote(ctx context.Context, id string, title, content *string) (*models.Note, error) {
	f.calls = append(f.calls, "update:"+id)
	f.patch = [2]*string{title, content}
	return f.note, f.err
}

func (f *fakeClient) DeleteNote(ctx context.Context, id string) error {
	f.calls = append(f.calls, "delete:"+id)
	return f.err
}

var _ client.Client = (*fakeClient)(nil)

func unauthorized() error {
	return &client.APIError{Status: http.StatusUnauthorized, Message: "Unauthenticated."}
}
