package service

import (
	"context"
	"errors"

	"github.com/oseayemenre/library/internal/logger"
	"github.com/oseayemenre/library/internal/models"
	"github.com/oseayemenre/library/internal/shared"
	"github.com/oseayemenre/library/internal/store"
)

const defaultCopiesCount = 1

type BookService struct {
	store  store.Store
	logger logger.Logger
}

func NewBookService(store store.Store, logger logger.Logger) *BookService {
	return &BookService{
		store:  store,
		logger: logger,
	}
}

func (s *BookService) List(ctx context.Context) ([]models.Book, error) {
	books, err := s.store.ListBooks(ctx)

	if err != nil {
		return nil, storeError(err, "", "")
	}

	return books, nil
}

func (s *BookService) Get(ctx context.Context, id int64) (*models.Book, error) {
	book, err := s.store.GetBook(ctx, id)

	if err != nil {
		return nil, storeError(err, detailBookNotFound, "")
	}

	return book, nil
}

func (s *BookService) Create(ctx context.Context, input *models.BookInput) (*models.Book, error) {
	if err := shared.Validate.Struct(input); err != nil {
		return nil, validationError(err)
	}

	book := bookFromInput(input)

	if book.Isbn != nil {
		if err := isbnAvailable(ctx, s.store, *book.Isbn, 0); err != nil {
			return nil, err
		}
	}

	created, err := s.store.CreateBook(ctx, book)

	if err != nil {
		return nil, storeError(err, "", detailIsbnTaken)
	}

	s.logger.Info("book created", "book_id", created.Id)

	return created, nil
}

// Replace overwrites every mutable field of the book. Optional fields missing
// from input are cleared.
func (s *BookService) Replace(ctx context.Context, id int64, input *models.BookInput) (*models.Book, error) {
	if err := shared.Validate.Struct(input); err != nil {
		return nil, validationError(err)
	}

	var updated *models.Book

	err := s.store.WithinTx(ctx, func(q store.Queries) error {
		if _, err := q.GetBookForUpdate(ctx, id); err != nil {
			return err
		}

		book := bookFromInput(input)
		book.Id = id

		if book.Isbn != nil {
			if err := isbnAvailable(ctx, q, *book.Isbn, id); err != nil {
				return err
			}
		}

		var err error
		updated, err = q.UpdateBook(ctx, book)
		return err
	})

	if err != nil {
		return nil, storeError(err, detailBookNotFound, detailIsbnTaken)
	}

	return updated, nil
}

func (s *BookService) Patch(ctx context.Context, id int64, patch *models.BookPatch) (*models.Book, error) {
	if err := validateBookPatch(patch); err != nil {
		return nil, err
	}

	var updated *models.Book

	err := s.store.WithinTx(ctx, func(q store.Queries) error {
		book, err := q.GetBookForUpdate(ctx, id)

		if err != nil {
			return err
		}

		if patch.Isbn.Set && !patch.Isbn.Null && (book.Isbn == nil || *book.Isbn != patch.Isbn.Value) {
			if err := isbnAvailable(ctx, q, patch.Isbn.Value, id); err != nil {
				return err
			}
		}

		applyBookPatch(book, patch)

		updated, err = q.UpdateBook(ctx, book)
		return err
	})

	if err != nil {
		return nil, storeError(err, detailBookNotFound, detailIsbnTaken)
	}

	return updated, nil
}

// Delete refuses to remove a book that is still on loan.
func (s *BookService) Delete(ctx context.Context, id int64) error {
	err := s.store.WithinTx(ctx, func(q store.Queries) error {
		if _, err := q.GetBookForUpdate(ctx, id); err != nil {
			return err
		}

		active, err := q.CountActiveLoansByBook(ctx, id)

		if err != nil {
			return err
		}

		if active > 0 {
			return newError(ErrConflict, detailBookOnLoan)
		}

		return q.DeleteBook(ctx, id)
	})

	if err != nil {
		return storeError(err, detailBookNotFound, "")
	}

	s.logger.Info("book deleted", "book_id", id)

	return nil
}

func bookFromInput(input *models.BookInput) *models.Book {
	copies := defaultCopiesCount

	if input.Copies_count != nil {
		copies = *input.Copies_count
	}

	return &models.Book{
		Title:            input.Title,
		Author:           input.Author,
		Publication_year: input.Publication_year,
		Isbn:             input.Isbn,
		Copies_count:     copies,
		Description:      input.Description,
	}
}

// isbnAvailable fails with a conflict when another book than self already
// carries isbn. Pass self = 0 on create.
func isbnAvailable(ctx context.Context, q store.Queries, isbn string, self int64) error {
	id, err := q.FindBookIdByIsbn(ctx, isbn)

	if errors.Is(err, store.ErrNotFound) {
		return nil
	}

	if err != nil {
		return err
	}

	if id != self {
		return newError(ErrConflict, detailIsbnTaken)
	}

	return nil
}

func validateBookPatch(patch *models.BookPatch) error {
	switch {
	case patch.Title.Set && (patch.Title.Null || patch.Title.Value == ""):
		return newError(ErrValidation, "title: failed on required")
	case patch.Author.Set && (patch.Author.Null || patch.Author.Value == ""):
		return newError(ErrValidation, "author: failed on required")
	case patch.Copies_count.Set && patch.Copies_count.Null:
		return newError(ErrValidation, "copies_count: failed on required")
	case patch.Copies_count.Set && patch.Copies_count.Value < 0:
		return newError(ErrValidation, "copies_count: failed on gte=0")
	}

	return nil
}

func applyBookPatch(book *models.Book, patch *models.BookPatch) {
	if patch.Title.Set {
		book.Title = patch.Title.Value
	}

	if patch.Author.Set {
		book.Author = patch.Author.Value
	}

	if patch.Publication_year.Set {
		book.Publication_year = patch.Publication_year.Ptr()
	}

	if patch.Isbn.Set {
		book.Isbn = patch.Isbn.Ptr()
	}

	if patch.Copies_count.Set {
		book.Copies_count = patch.Copies_count.Value
	}

	if patch.Description.Set {
		book.Description = patch.Description.Ptr()
	}
}
