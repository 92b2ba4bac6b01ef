package cli

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/notely/internal/client/client"
	"github.com/dmitrijs2005/notely/internal/common"
)

var errUsage = errors.New("usage")

func usage(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errUsage}, args...)...)
}

// describeError turns an error into a line for the terminal.
func describeError(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, errUsage):
		return err.Error()
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable, try again later"
	case errors.Is(err, client.ErrNotLoggedIn):
		return "you are not logged in (use 'login' or 'register')"
	case errors.Is(err, common.ErrUnauthorized):
		return "session expired or credentials rejected, please log in again"
	case errors.Is(err, common.ErrForbidden):
		return "that note belongs to someone else"
	case errors.Is(err, common.ErrNotFound):
		return "not found"
	case errors.As(err, &apiErr):
		return apiErr.Error()
	default:
		return err.Error()
	}
}
