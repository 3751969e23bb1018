package api

import (
	"fmt"
	"net/http"

	"github.com/oseayemenre/library/internal/models"
)

func (a *Api) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var params models.LibrarianInput

	if err := decodeJson(w, r, &params); err != nil {
		a.respondWithValidationError(w, err, "HandleRegister")
		return
	}

	librarian, err := a.services.Librarians.Register(r.Context(), &params)

	if err != nil {
		a.respondWithServiceError(w, err, "HandleRegister")
		return
	}

	respondWithSuccess(w, http.StatusCreated, models.LibrarianResponse{
		Id:    librarian.Id,
		Email: librarian.Email,
	})
}

// HandleLogin takes an OAuth2 password-grant style form where username holds
// the librarian's email.
func (a *Api) HandleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := r.ParseForm(); err != nil {
		a.respondWithValidationError(w, fmt.Errorf("error parsing form: %v", err), "HandleLogin")
		return
	}

	params := models.LoginInput{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	token, err := a.services.Librarians.Authenticate(r.Context(), &params)

	if err != nil {
		a.respondWithServiceError(w, err, "HandleLogin")
		return
	}

	respondWithSuccess(w, http.StatusOK, token)
}
