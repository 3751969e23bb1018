package api

import (
	"net/http"

	"github.com/oseayemenre/library/internal/models"
)

func (a *Api) HandleGetBooks(w http.ResponseWriter, r *http.Request) {
	books, err := a.services.Books.List(r.Context())

	if err != nil {
		a.respondWithServiceError(w, err, "HandleGetBooks")
		return
	}

	respondWithSuccess(w, http.StatusOK, books)
}

func (a *Api) HandleGetBook(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "bookId")

	if err != nil {
		a.respondWithValidationError(w, err, "HandleGetBook")
		return
	}

	book, err := a.services.Books.Get(r.Context(), id)

	if err != nil {
		a.respondWithServiceError(w, err, "HandleGetBook")
		return
	}

	respondWithSuccess(w, http.StatusOK, book)
}

func (a *Api) HandleCreateBook(w http.ResponseWriter, r *http.Request) {
	var params models.BookInput

	if err := decodeJson(w, r, &params); err != nil {
		a.respondWithValidationError(w, err, "HandleCreateBook")
		return
	}

	book, err := a.services.Books.Create(r.Context(), &params)

	if err != nil {
		a.respondWithServiceError(w, err, "HandleCreateBook")
		return
	}

	respondWithSuccess(w, http.StatusCreated, book)
}

func (a *Api) HandleReplaceBook(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "bookId")

	if err != nil {
		a.respondWithValidationError(w, err, "HandleReplaceBook")
		return
	}

	var params models.BookInput

	if err := decodeJson(w, r, &params); err != nil {
		a.respondWithValidationError(w, err, "HandleReplaceBook")
		return
	}

	book, err := a.services.Books.Replace(r.Context(), id, &params)

	if err != nil {
		a.respondWithServiceError(w, err, "HandleReplaceBook")
		return
	}

	respondWithSuccess(w, http.StatusOK, book)
}

func (a *Api) HandleEditBook(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "bookId")

	if err != nil {
		a.respondWithValidationError(w, err, "HandleEditBook")
		return
	}

	var params models.BookPatch

	if err := decodeJson(w, r, &params); err != nil {
		a.respondWithValidationError(w, err, "HandleEditBook")
		return
	}

	book, err := a.services.Books.Patch(r.Context(), id, &params)

	if err != nil {
		a.respondWithServiceError(w, err, "HandleEditBook")
		return
	}

	respondWithSuccess(w, http.StatusOK, book)
}

func (a *Api) HandleDeleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "bookId")

	if err != nil {
		a.respondWithValidationError(w, err, "HandleDeleteBook")
		return
	}

	if err := a.services.Books.Delete(r.Context(), id); err != nil {
		a.respondWithServiceError(w, err, "HandleDeleteBook")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
