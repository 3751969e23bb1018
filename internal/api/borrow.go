package api

import (
	"net/http"

	"github.com/oseayemenre/library/internal/models"
)

const detailReturned = "Book returned successfully"

func (a *Api) HandleBorrowBook(w http.ResponseWriter, r *http.Request) {
	var params models.BorrowInput

	if err := decodeJson(w, r, &params); err != nil {
		a.respondWithValidationError(w, err, "HandleBorrowBook")
		return
	}

	record, err := a.services.Borrows.Borrow(r.Context(), &params)

	if err != nil {
		a.respondWithServiceError(w, err, "HandleBorrowBook")
		return
	}

	if librarian := librarianFromContext(r.Context()); librarian != nil {
		a.logger.Info("loan issued", "record_id", record.Id, "librarian_id", librarian.Id)
	}

	respondWithSuccess(w, http.StatusCreated, record)
}

func (a *Api) HandleReturnBook(w http.ResponseWriter, r *http.Request) {
	var params models.BorrowInput

	if err := decodeJson(w, r, &params); err != nil {
		a.respondWithValidationError(w, err, "HandleReturnBook")
		return
	}

	if err := a.services.Borrows.Return(r.Context(), &params); err != nil {
		a.respondWithServiceError(w, err, "HandleReturnBook")
		return
	}

	if librarian := librarianFromContext(r.Context()); librarian != nil {
		a.logger.Info("loan closed", "book_id", params.Book_id, "reader_id", params.Reader_id, "librarian_id", librarian.Id)
	}

	respondWithSuccess(w, http.StatusOK, models.DetailResponse{Detail: detailReturned})
}

func (a *Api) HandleGetBorrowedBooks(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "userId")

	if err != nil {
		a.respondWithValidationError(w, err, "HandleGetBorrowedBooks")
		return
	}

	books, err := a.services.Borrows.ListActive(r.Context(), id)

	if err != nil {
		a.respondWithServiceError(w, err, "HandleGetBorrowedBooks")
		return
	}

	respondWithSuccess(w, http.StatusOK, books)
}
