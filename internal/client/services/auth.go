// Package services contains application services for the notely client.
// This file defines the session service: register, login, logout and
// profile management, with the bearer token persisted between runs.
package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/notely/internal/client/client"
	"github.com/dmitrijs2005/notely/internal/client/models"
	"github.com/dmitrijs2005/notely/internal/common"
	"github.com/dmitrijs2005/notely/internal/filex"
)

// AuthService defines session operations for the CLI.
type AuthService interface {
	Restore(ctx context.Context) (*models.User, error)
	Register(ctx context.Context, name, email string, password []byte) (*models.User, error)
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Logout(ctx context.Context) error
	LoggedIn() bool
	Me(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, name, email string) (*models.User, error)
	UploadPicture(ctx context.Context, path string) (string, error)
}

type authService struct {
	client    client.Client
	tokenFile string
}

// NewAuthService constructs an AuthService that keeps its token in tokenFile.
func NewAuthService(c client.Client, tokenFile string) AuthService {
	return &authService{client: c, tokenFile: tokenFile}
}

// Restore loads a saved token and checks it against the server. A missing
// file yields client.ErrNotLoggedIn; a rejected token is forgotten.
func (a *authService) Restore(ctx context.Context) (*models.User, error) {
	data, err := filex.ReadFileIfExists(a.tokenFile)
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return nil, client.ErrNotLoggedIn
	}

	a.client.SetToken(token)
	u, err := a.client.Me(ctx)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			a.forget()
		}
		return nil, err
	}
	return u, nil
}

func (a *authService) Register(ctx context.Context, name, email string, password []byte) (*models.User, error) {
	u, token, err := a.client.Register(ctx, name, email, string(password))
	if err != nil {
		return nil, err
	}
	return u, a.remember(token)
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	u, token, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return nil, err
	}
	return u, a.remember(token)
}

// Logout revokes the token on the server and forgets it locally. The local
// copy is dropped even when the server already considers it invalid.
func (a *authService) Logout(ctx context.Context) error {
	if !a.LoggedIn() {
		return client.ErrNotLoggedIn
	}
	err := a.client.Logout(ctx)
	if err != nil && !errors.Is(err, common.ErrUnauthorized) {
		return err
	}
	a.forget()
	return nil
}

func (a *authService) LoggedIn() bool {
	return a.client.Token() != ""
}

func (a *authService) Me(ctx context.Context) (*models.User, error) {
	if !a.LoggedIn() {
		return nil, client.ErrNotLoggedIn
	}
	return a.client.Me(ctx)
}

func (a *authService) UpdateProfile(ctx context.Context, name, email string) (*models.User, error) {
	if !a.LoggedIn() {
		return nil, client.ErrNotLoggedIn
	}
	return a.client.UpdateProfile(ctx, name, email)
}

// UploadPicture reads the image at path and uploads it as the profile picture.
func (a *authService) UploadPicture(ctx context.Context, path string) (string, error) {
	if !a.LoggedIn() {
		return "", client.ErrNotLoggedIn
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read picture: %w", err)
	}
	if len(data) > common.MaxProfilePictureSize {
		return "", fmt.Errorf("picture is larger than %d bytes", common.MaxProfilePictureSize)
	}
	return a.client.UploadPicture(ctx, filepath.Base(path), data)
}

func (a *authService) remember(token string) error {
	a.client.SetToken(token)
	if err := filex.WritePrivateFile(a.tokenFile, []byte(token)); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (a *authService) forget() {
	a.client.SetToken("")
	_ = filex.RemoveIfExists(a.tokenFile)
}
