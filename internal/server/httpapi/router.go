package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/notely/internal/logging"
)

// NewRouter wires every endpoint both at the root and under /api.
func NewRouter(log logging.Logger, auth AuthAPI, notes NotesAPI) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(RequestLogger(log))
	router.Use(Recoverer(log))

	routes := func(r chi.Router) {
		r.Post("/auth/register", register(log, auth))
		r.Post("/auth/login", login(log, auth))

		r.Group(func(r chi.Router) {
			r.Use(RequireBearer(auth, log))

			r.Post("/auth/logout", logout(log, auth))

			r.Get("/user", me(log))
			r.Put("/user/update", updateProfile(log, auth))
			r.Post("/user/upload", uploadPicture(log, auth))

			r.Get("/notes", listNotes(log, notes))
			r.Post("/notes", createNote(log, notes))
			r.Get("/notes/search", searchNotes(log, notes))
			r.Get("/notes/{id}", getNote(log, notes))
			r.Put("/notes/{id}", updateNote(log, notes))
			r.Delete("/notes/{id}", deleteNote(log, notes))
		})
	}

	router.Route("/api", routes)
	routes(router)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond(w, r, http.StatusNotFound, Error(msgNotFound))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond(w, r, http.StatusMethodNotAllowed, Error("Method not allowed"))
	})

	return router
}
