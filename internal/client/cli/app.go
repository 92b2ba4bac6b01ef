package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/notely/internal/client/client"
	"github.com/dmitrijs2005/notely/internal/client/config"
	"github.com/dmitrijs2005/notely/internal/client/models"
	"github.com/dmitrijs2005/notely/internal/client/services"
	"github.com/dmitrijs2005/notely/internal/common"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	noteService services.NoteService
	user        *models.User
	reader      *bufio.Reader
	out         io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	if c.ServerBaseURL == "" {
		return nil, errors.New("server base URL is empty")
	}

	apiClient := client.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout)

	return &App{
		config:      c,
		authService: services.NewAuthService(apiClient, c.TokenFile),
		noteService: services.NewNoteService(apiClient),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

// Run resumes a saved session if there is one and starts the REPL.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to notely (type 'help' for commands)")
	a.resume(ctx)
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) resume(ctx context.Context) {
	u, err := a.authService.Restore(ctx)
	switch {
	case err == nil:
		a.user = u
		printlnFn("Logged in as", u.Email)
	case errors.Is(err, client.ErrNotLoggedIn):
	case errors.Is(err, common.ErrUnauthorized):
		printlnFn("Saved session has expired, please log in.")
	default:
		printlnFn("Error:", describeError(err))
	}
}

func (a *App) isLoggedIn() bool {
	return a.authService.LoggedIn()
}

func (a *App) getStatus() string {
	if a.user == nil || !a.isLoggedIn() {
		return ""
	}
	return fmt.Sprintf("(%s) ", a.user.Email)
}
