package service

import (
	"errors"
	"fmt"

	"github.com/oseayemenre/library/internal/shared"
	"github.com/oseayemenre/library/internal/store"
)

// Error kinds. Every error returned by a service either unwraps to one of these
// or is an unexpected failure.
var (
	ErrNotFound                 = errors.New("not found")
	ErrConflict                 = errors.New("conflict")
	ErrInsufficientAvailability = errors.New("insufficient availability")
	ErrBorrowLimitExceeded      = errors.New("borrow limit exceeded")
	ErrUnauthorized             = errors.New("unauthorized")
	ErrValidation               = errors.New("validation failed")
	ErrUnavailable              = errors.New("service unavailable")
)

const (
	detailBookNotFound       = "Book not found"
	detailUserNotFound       = "User not found"
	detailLibrarianNotFound  = "Librarian not found"
	detailNoCopies           = "No available copies"
	detailNotBorrowed        = "Book was not borrowed by this reader or already returned"
	detailIsbnTaken          = "Book with this ISBN already exists"
	detailEmailTaken         = "User with this email already exists"
	detailEmailRegistered    = "Email already registered"
	detailInvalidCredentials = "Invalid credentials"
	detailBadToken           = "Could not validate credentials"
	detailBookOnLoan         = "Book has active loans"
	detailUserOnLoan         = "User has active loans"
	detailUnavailable        = "Service temporarily unavailable, please retry"
	detailPasswordTooLong    = "password: must be at most 72 bytes"
)

type Error struct {
	kind   error
	detail string
}

func newError(kind error, detail string) *Error {
	return &Error{kind: kind, detail: detail}
}

func (e *Error) Error() string { return e.detail }

func (e *Error) Unwrap() error { return e.kind }

// Detail is the message safe to show to clients.
func (e *Error) Detail() string { return e.detail }

func validationError(err error) error {
	return newError(ErrValidation, shared.ValidationDetail(err))
}

// storeError translates a store failure into a domain error. notFound is the
// detail used when the row is missing; conflict the one used on a unique
// violation. Anything unclassified is returned wrapped for the caller to log.
func storeError(err error, notFound string, conflict string) error {
	var domainErr *Error

	switch {
	case errors.As(err, &domainErr):
		return err
	case errors.Is(err, store.ErrNotFound) && notFound != "":
		return newError(ErrNotFound, notFound)
	case errors.Is(err, store.ErrUniqueViolation) && conflict != "":
		return newError(ErrConflict, conflict)
	case errors.Is(err, store.ErrRetryable):
		return fmt.Errorf("%w: %w", newError(ErrUnavailable, detailUnavailable), err)
	}

	return err
}
