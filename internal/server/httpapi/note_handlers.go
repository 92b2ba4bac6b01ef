package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/notely/internal/logging"
	"github.com/dmitrijs2005/notely/internal/server/models"
	"github.com/dmitrijs2005/notely/internal/server/services"
)

type noteEnvelope struct {
	Note *models.Note `json:"note"`
}

type searchEnvelope struct {
	Notes PageResponse `json:"notes"`
}

func listNotes(log logging.Logger, notes NotesAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "httpapi.listNotes"
		log := log.With("op", op, "request_id", middleware.GetReqID(r.Context()))

		user, _ := UserFromContext(r.Context())

		page, err := notes.List(r.Context(), user, pageParam(r))
		if err != nil {
			respondError(w, r, log, err)
			return
		}

		respond(w, r, http.StatusOK, newPageResponse(r, page))
	}
}

func searchNotes(log logging.Logger, notes NotesAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "httpapi.searchNotes"
		log := log.With("op", op, "request_id", middleware.GetReqID(r.Context()))

		user, _ := UserFromContext(r.Context())

		page, err := notes.Search(r.Context(), user, r.URL.Query().Get("query"), pageParam(r))
		if err != nil {
			respondError(w, r, log, err)
			return
		}

		respond(w, r, http.StatusOK, searchEnvelope{Notes: newPageResponse(r, page)})
	}
}

func createNote(log logging.Logger, notes NotesAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "httpapi.createNote"
		log := log.With("op", op, "request_id", middleware.GetReqID(r.Context()))

		user, _ := UserFromContext(r.Context())

		var req services.NoteInput
		if err := decodeJSON(w, r, &req); err != nil {
			log.Debug(r.Context(), "failed to decode request body", "error", err)
			respond(w, r, http.StatusBadRequest, Error(msgMalformedJSON))
			return
		}

		note, err := notes.Create(r.Context(), user, req)
		if err != nil {
			respondError(w, r, log, err)
			return
		}

		log.Info(r.Context(), "note created", "note_id", note.ID, "user_id", user.ID)
		resp := OK("Note created successfully")
		resp.Note = note
		respond(w, r, http.StatusCreated, resp)
	}
}

func getNote(log logging.Logger, notes NotesAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "httpapi.getNote"
		log := log.With("op", op, "request_id", middleware.GetReqID(r.Context()))

		user, _ := UserFromContext(r.Context())

		note, err := notes.Get(r.Context(), user, chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, r, log, err)
			return
		}

		respond(w, r, http.StatusOK, noteEnvelope{Note: note})
	}
}

func updateNote(log logging.Logger, notes NotesAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "httpapi.updateNote"
		log := log.With("op", op, "request_id", middleware.GetReqID(r.Context()))

		user, _ := UserFromContext(r.Context())

		var patch services.NotePatch
		if err := decodeJSON(w, r, &patch); err != nil {
			log.Debug(r.Context(), "failed to decode request body", "error", err)
			respond(w, r, http.StatusBadRequest, Error(msgMalformedJSON))
			return
		}

		note, err := notes.Update(r.Context(), user, chi.URLParam(r, "id"), patch)
		if err != nil {
			respondError(w, r, log, err)
			return
		}

		log.Info(r.Context(), "note updated", "note_id", note.ID)
		resp := OK("Note updated successfully")
		resp.Note = note
		respond(w, r, http.StatusOK, resp)
	}
}

func deleteNote(log logging.Logger, notes NotesAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "httpapi.deleteNote"
		log := log.With("op", op, "request_id", middleware.GetReqID(r.Context()))

		user, _ := UserFromContext(r.Context())
		id := chi.URLParam(r, "id")

		if err := notes.Delete(r.Context(), user, id); err != nil {
			respondError(w, r, log, err)
			return
		}

		log.Info(r.Context(), "note deleted", "note_id", id)
		respond(w, r, http.StatusOK, OK("Note deleted successfully"))
	}
}
