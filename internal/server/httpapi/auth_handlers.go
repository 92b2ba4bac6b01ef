package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/notely/internal/common"
	"github.com/dmitrijs2005/notely/internal/logging"
	"github.com/dmitrijs2005/notely/internal/server/services"
)

const pictureField = "profile_picture"

func register(log logging.Logger, auth AuthAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "httpapi.register"
		log := log.With("op", op, "request_id", middleware.GetReqID(r.Context()))

		var req services.RegisterInput
		if err := decodeJSON(w, r, &req); err != nil {
			log.Debug(r.Context(), "failed to decode request body", "error", err)
			respond(w, r, http.StatusBadRequest, Error(msgMalformedJSON))
			return
		}

		user, token, err := auth.Register(r.Context(), req)
		if err != nil {
			respondError(w, r, log, err)
			return
		}

		log.Info(r.Context(), "user registered", "user_id", user.ID)
		resp := OK("User created successfully")
		resp.User = user
		resp.Token = token
		respond(w, r, http.StatusCreated, resp)
	}
}

func login(log logging.Logger, auth AuthAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "httpapi.login"
		log := log.With("op", op, "request_id", middleware.GetReqID(r.Context()))

		var req services.LoginInput
		if err := decodeJSON(w, r, &req); err != nil {
			log.Debug(r.Context(), "failed to decode request body", "error", err)
			respond(w, r, http.StatusBadRequest, Error(msgMalformedJSON))
			return
		}

		user, token, err := auth.Login(r.Context(), req)
		if errors.Is(err, common.ErrUnauthorized) {
			log.Info(r.Context(), "login rejected")
			respond(w, r, http.StatusUnauthorized, Error(msgInvalidCredentials))
			return
		}
		if err != nil {
			respondError(w, r, log, err)
			return
		}

		log.Info(r.Context(), "user logged in", "user_id", user.ID)
		resp := OK("Login successful")
		resp.User = user
		resp.Token = token
		respond(w, r, http.StatusOK, resp)
	}
}

func logout(log logging.Logger, auth AuthAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "httpapi.logout"
		log := log.With("op", op, "request_id", middleware.GetReqID(r.Context()))

		if err := auth.Logout(r.Context(), bearerFromContext(r.Context())); err != nil {
			respondError(w, r, log, err)
			return
		}

		respond(w, r, http.StatusOK, OK("Logout successful"))
	}
}

func me(log logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			respond(w, r, http.StatusUnauthorized, Error(msgUnauthenticated))
			return
		}
		respond(w, r, http.StatusOK, user)
	}
}

func updateProfile(log logging.Logger, auth AuthAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "httpapi.updateProfile"
		log := log.With("op", op, "request_id", middleware.GetReqID(r.Context()))

		user, _ := UserFromContext(r.Context())

		var req services.ProfileInput
		if err := decodeJSON(w, r, &req); err != nil {
			log.Debug(r.Context(), "failed to decode request body", "error", err)
			respond(w, r, http.StatusBadRequest, Error(msgMalformedJSON))
			return
		}

		updated, err := auth.UpdateProfile(r.Context(), user, req)
		if err != nil {
			respondError(w, r, log, err)
			return
		}

		resp := OK("Profile updated successfully")
		resp.User = updated
		respond(w, r, http.StatusOK, resp)
	}
}

func uploadPicture(log logging.Logger, auth AuthAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "httpapi.uploadPicture"
		log := log.With("op", op, "request_id", middleware.GetReqID(r.Context()))

		user, _ := UserFromContext(r.Context())

		const formOverhead = 64 << 10
		r.Body = http.MaxBytesReader(w, r.Body, common.MaxProfilePictureSize+formOverhead)

		if err := r.ParseMultipartForm(common.MaxProfilePictureSize + formOverhead); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				respondError(w, r, log, common.NewValidationError(pictureField, "must not be greater than 2048 kilobytes"))
				return
			}
			respondError(w, r, log, common.NewValidationError(pictureField, "must be a file"))
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile(pictureField)
		if err != nil {
			respondError(w, r, log, common.NewValidationError(pictureField, "is required"))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, common.MaxProfilePictureSize+1))
		if err != nil {
			respondError(w, r, log, err)
			return
		}

		url, err := auth.SetProfilePicture(r.Context(), user, data, header.Header.Get("Content-Type"))
		if err != nil {
			respondError(w, r, log, err)
			return
		}

		log.Info(r.Context(), "profile picture stored", "user_id", user.ID)
		resp := OK("Profile picture uploaded successfully")
		resp.URL = url
		respond(w, r, http.StatusOK, resp)
	}
}
