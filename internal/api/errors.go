package api

import (
	"errors"
	"net/http"

	"github.com/oseayemenre/library/internal/service"
)

const detailInternal = "Internal server error"

var errUnauthenticated = errors.New("Could not validate credentials")

var statusByKind = []struct {
	kind   error
	status int
}{
	{service.ErrValidation, http.StatusUnprocessableEntity},
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrConflict, http.StatusConflict},
	{service.ErrInsufficientAvailability, http.StatusBadRequest},
	{service.ErrBorrowLimitExceeded, http.StatusBadRequest},
	{service.ErrUnauthorized, http.StatusUnauthorized},
	{service.ErrUnavailable, http.StatusServiceUnavailable},
}

func statusFor(err error) int {
	for _, s := range statusByKind {
		if errors.Is(err, s.kind) {
			return s.status
		}
	}
	return http.StatusInternalServerError
}

// respondWithServiceError maps a service error onto its status code. Details of
// unexpected errors are logged but never sent to the client.
func (a *Api) respondWithServiceError(w http.ResponseWriter, err error, handler string) {
	status := statusFor(err)

	var serviceErr *service.Error

	if status == http.StatusInternalServerError || !errors.As(err, &serviceErr) {
		a.logger.Error(err.Error(), "service", handler)
		respondWithError(w, http.StatusInternalServerError, errors.New(detailInternal))
		return
	}

	if status == http.StatusServiceUnavailable {
		a.logger.Error(err.Error(), "service", handler)
	} else {
		a.logger.Warn(err.Error(), "service", handler)
	}

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	respondWithError(w, status, errors.New(serviceErr.Detail()))
}

// respondWithValidationError is used for requests that fail before reaching a
// service, such as undecodable bodies or bad path parameters.
func (a *Api) respondWithValidationError(w http.ResponseWriter, err error, handler string) {
	a.logger.Warn(err.Error(), "service", handler)
	respondWithError(w, http.StatusUnprocessableEntity, err)
}
