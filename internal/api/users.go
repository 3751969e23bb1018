package api

import (
	"net/http"

	"github.com/oseayemenre/library/internal/models"
)

func (a *Api) HandleGetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.services.Users.List(r.Context())

	if err != nil {
		a.respondWithServiceError(w, err, "HandleGetUsers")
		return
	}

	respondWithSuccess(w, http.StatusOK, users)
}

func (a *Api) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "userId")

	if err != nil {
		a.respondWithValidationError(w, err, "HandleGetUser")
		return
	}

	user, err := a.services.Users.Get(r.Context(), id)

	if err != nil {
		a.respondWithServiceError(w, err, "HandleGetUser")
		return
	}

	respondWithSuccess(w, http.StatusOK, user)
}

func (a *Api) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	var params models.UserInput

	if err := decodeJson(w, r, &params); err != nil {
		a.respondWithValidationError(w, err, "HandleCreateUser")
		return
	}

	user, err := a.services.Users.Create(r.Context(), &params)

	if err != nil {
		a.respondWithServiceError(w, err, "HandleCreateUser")
		return
	}

	respondWithSuccess(w, http.StatusCreated, user)
}

func (a *Api) HandleReplaceUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "userId")

	if err != nil {
		a.respondWithValidationError(w, err, "HandleReplaceUser")
		return
	}

	var params models.UserInput

	if err := decodeJson(w, r, &params); err != nil {
		a.respondWithValidationError(w, err, "HandleReplaceUser")
		return
	}

	user, err := a.services.Users.Replace(r.Context(), id, &params)

	if err != nil {
		a.respondWithServiceError(w, err, "HandleReplaceUser")
		return
	}

	respondWithSuccess(w, http.StatusOK, user)
}

func (a *Api) HandleEditUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "userId")

	if err != nil {
		a.respondWithValidationError(w, err, "HandleEditUser")
		return
	}

	var params models.UserPatch

	if err := decodeJson(w, r, &params); err != nil {
		a.respondWithValidationError(w, err, "HandleEditUser")
		return
	}

	user, err := a.services.Users.Patch(r.Context(), id, &params)

	if err != nil {
		a.respondWithServiceError(w, err, "HandleEditUser")
		return
	}

	respondWithSuccess(w, http.StatusOK, user)
}

func (a *Api) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "userId")

	if err != nil {
		a.respondWithValidationError(w, err, "HandleDeleteUser")
		return
	}

	if err := a.services.Users.Delete(r.Context(), id); err != nil {
		a.respondWithServiceError(w, err, "HandleDeleteUser")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
