package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/dmitrijs2005/notely/internal/common"
	"github.com/dmitrijs2005/notely/internal/logging"
	"github.com/dmitrijs2005/notely/internal/server/models"
)

// Response is the envelope of every mutating call and every error.
type Response struct {
	S       bool              `json:"s"`
	Message string            `json:"message,omitempty"`
	Note    *models.Note      `json:"note,omitempty"`
	User    *models.User      `json:"user,omitempty"`
	Token   string            `json:"token,omitempty"`
	URL     string            `json:"url,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func OK(msg string) Response {
	return Response{S: true, Message: msg}
}

func Error(msg string) Response {
	return Response{S: false, Message: msg}
}

const (
	msgMalformedJSON      = "malformed JSON body"
	msgValidation         = "The given data was invalid."
	msgUnauthenticated    = "Unauthenticated."
	msgInvalidCredentials = "Invalid credentials"
	msgForbidden          = "Unauthorized"
	msgNotFound           = "Not found"
	msgConflict           = "The email has already been taken."
	msgInternal           = "Internal server error"
)

func respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// respondError maps a service error onto its status and envelope. Anything
// outside the known kinds is logged and reported as a bare 500.
func respondError(w http.ResponseWriter, r *http.Request, log logging.Logger, err error) {
	ctx := r.Context()

	var verr *common.ValidationError
	switch {
	case errors.As(err, &verr):
		resp := Error(msgValidation)
		resp.Errors = verr.Fields
		respond(w, r, http.StatusUnprocessableEntity, resp)
	case errors.Is(err, common.ErrValidation):
		respond(w, r, http.StatusUnprocessableEntity, Error(msgValidation))
	case errors.Is(err, common.ErrUnauthorized):
		respond(w, r, http.StatusUnauthorized, Error(msgUnauthenticated))
	case errors.Is(err, common.ErrForbidden):
		log.Warn(ctx, "forbidden access attempt")
		respond(w, r, http.StatusForbidden, Error(msgForbidden))
	case errors.Is(err, common.ErrNotFound):
		respond(w, r, http.StatusNotFound, Error(msgNotFound))
	case errors.Is(err, common.ErrConflict):
		respond(w, r, http.StatusConflict, Error(msgConflict))
	default:
		log.Error(ctx, "request failed", "error", err)
		respond(w, r, http.StatusInternalServerError, Error(msgInternal))
	}
}
