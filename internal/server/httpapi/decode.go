package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/render"
)

const maxJSONBody = 1 << 20

// decodeJSON reads the request body into v. An empty body leaves v untouched
// so that validation reports the missing fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := render.DecodeJSON(body, v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
