package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oseayemenre/library/internal/config"
	"github.com/oseayemenre/library/internal/logger"
	"github.com/oseayemenre/library/internal/models"
	"github.com/oseayemenre/library/internal/shared"
	"github.com/oseayemenre/library/internal/store"
)

type BorrowService struct {
	store          store.Store
	logger         logger.Logger
	maxActiveLoans int
	lockTimeout    time.Duration
	now            func() time.Time
}

func NewBorrowService(store store.Store, logger logger.Logger, config *config.Config) *BorrowService {
	return &BorrowService{
		store:          store,
		logger:         logger,
		maxActiveLoans: config.Max_active_loans,
		lockTimeout:    config.Db_lock_timeout,
		now:            time.Now,
	}
}

// Borrow lends one copy of a book to a reader. The book row lock serializes
// concurrent borrows and returns of the same title, so the availability check
// and the decrement cannot interleave.
func (s *BorrowService) Borrow(ctx context.Context, input *models.BorrowInput) (*models.BorrowRecord, error) {
	if err := shared.Validate.Struct(input); err != nil {
		return nil, validationError(err)
	}

	var record *models.BorrowRecord

	err := s.store.WithinTx(ctx, func(q store.Queries) error {
		if err := q.SetLockTimeout(ctx, s.lockTimeout); err != nil {
			return err
		}

		book, err := q.GetBookForUpdate(ctx, input.Book_id)

		if err != nil {
			return storeError(err, detailBookNotFound, "")
		}

		if _, err := q.GetUserForShare(ctx, input.Reader_id); err != nil {
			return storeError(err, detailUserNotFound, "")
		}

		if book.Copies_count < 1 {
			return newError(ErrInsufficientAvailability, detailNoCopies)
		}

		active, err := q.CountActiveLoansByReader(ctx, input.Reader_id)

		if err != nil {
			return err
		}

		if active >= s.maxActiveLoans {
			return newError(ErrBorrowLimitExceeded, fmt.Sprintf("Reader has already borrowed %d books", s.maxActiveLoans))
		}

		record, err = q.CreateBorrowRecord(ctx, book.Id, input.Reader_id, s.now())

		if err != nil {
			return err
		}

		if err := q.AdjustBookCopies(ctx, book.Id, -1); err != nil {
			if errors.Is(err, store.ErrCheckViolation) {
				return newError(ErrInsufficientAvailability, detailNoCopies)
			}
			return err
		}

		return nil
	})

	if err != nil {
		return nil, storeError(err, "", "")
	}

	s.logger.Info("book borrowed", "book_id", record.Book_id, "reader_id", record.Reader_id, "record_id", record.Id)

	return record, nil
}

// Return closes the oldest active borrow record of the pair and puts the copy
// back on the shelf.
func (s *BorrowService) Return(ctx context.Context, input *models.BorrowInput) error {
	if err := shared.Validate.Struct(input); err != nil {
		return validationError(err)
	}

	var recordId int64

	err := s.store.WithinTx(ctx, func(q store.Queries) error {
		if err := q.SetLockTimeout(ctx, s.lockTimeout); err != nil {
			return err
		}

		if _, err := q.GetBookForUpdate(ctx, input.Book_id); err != nil {
			return storeError(err, detailBookNotFound, "")
		}

		if _, err := q.GetUser(ctx, input.Reader_id); err != nil {
			return storeError(err, detailUserNotFound, "")
		}

		record, err := q.GetActiveBorrowRecordForUpdate(ctx, input.Book_id, input.Reader_id)

		if err != nil {
			return storeError(err, detailNotBorrowed, "")
		}

		if err := q.CloseBorrowRecord(ctx, record.Id, s.now()); err != nil {
			return storeError(err, detailNotBorrowed, "")
		}

		recordId = record.Id

		return q.AdjustBookCopies(ctx, input.Book_id, 1)
	})

	if err != nil {
		return storeError(err, "", "")
	}

	s.logger.Info("book returned", "book_id", input.Book_id, "reader_id", input.Reader_id, "record_id", recordId)

	return nil
}

// ListActive returns the books a reader currently holds, oldest loan first.
// A reader that does not exist simply holds nothing.
func (s *BorrowService) ListActive(ctx context.Context, readerId int64) ([]models.Book, error) {
	books, err := s.store.ListActiveBorrowedBooks(ctx, readerId)

	if err != nil {
		return nil, storeError(err, "", "")
	}

	return books, nil
}
