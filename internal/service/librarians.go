package service

import (
	"context"
	"errors"

	"github.com/oseayemenre/library/internal/bcrypt"
	"github.com/oseayemenre/library/internal/config"
	"github.com/oseayemenre/library/internal/jwt"
	"github.com/oseayemenre/library/internal/logger"
	"github.com/oseayemenre/library/internal/models"
	"github.com/oseayemenre/library/internal/shared"
	"github.com/oseayemenre/library/internal/store"
)

const tokenType = "bearer"

type LibrarianService struct {
	store  store.Store
	logger logger.Logger
	config *config.Config
}

func NewLibrarianService(store store.Store, logger logger.Logger, config *config.Config) *LibrarianService {
	return &LibrarianService{
		store:  store,
		logger: logger,
		config: config,
	}
}

func (s *LibrarianService) Register(ctx context.Context, input *models.LibrarianInput) (*models.Librarian, error) {
	if err := shared.Validate.Struct(input); err != nil {
		return nil, validationError(err)
	}

	_, err := s.store.GetLibrarianByEmail(ctx, input.Email)

	if err == nil {
		return nil, newError(ErrConflict, detailEmailRegistered)
	}

	if !errors.Is(err, store.ErrNotFound) {
		return nil, storeError(err, "", "")
	}

	hash, err := bcrypt.HashPasswordWithCost(input.Password, s.config.Bcrypt_cost)

	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, newError(ErrValidation, detailPasswordTooLong)
	}

	if err != nil {
		return nil, err
	}

	librarian, err := s.store.CreateLibrarian(ctx, input.Email, hash)

	if err != nil {
		return nil, storeError(err, "", detailEmailRegistered)
	}

	s.logger.Info("librarian registered", "librarian_id", librarian.Id)

	return librarian, nil
}

// Authenticate exchanges credentials for an access token. Unknown emails and
// wrong passwords fail with the same error.
func (s *LibrarianService) Authenticate(ctx context.Context, input *models.LoginInput) (*models.TokenResponse, error) {
	if err := shared.Validate.Struct(input); err != nil {
		return nil, validationError(err)
	}

	librarian, err := s.store.GetLibrarianByEmail(ctx, input.Username)

	if errors.Is(err, store.ErrNotFound) {
		return nil, newError(ErrUnauthorized, detailInvalidCredentials)
	}

	if err != nil {
		return nil, storeError(err, "", "")
	}

	if err := bcrypt.ComparePassword(input.Password, librarian.Password); err != nil {
		if !errors.Is(err, bcrypt.ErrPasswordMismatch) {
			s.logger.Error("unusable password hash", "librarian_id", librarian.Id, "error", err)
		}
		return nil, newError(ErrUnauthorized, detailInvalidCredentials)
	}

	token, err := jwt.CreateJWTToken(librarian.Id, s.config.Jwt_secret, s.config.Jwt_algorithm, s.config.AccessTokenTTL())

	if err != nil {
		return nil, err
	}

	return &models.TokenResponse{
		Access_token: token,
		Token_type:   tokenType,
	}, nil
}

func (s *LibrarianService) Get(ctx context.Context, id int64) (*models.Librarian, error) {
	librarian, err := s.store.GetLibrarian(ctx, id)

	if err != nil {
		return nil, storeError(err, detailLibrarianNotFound, "")
	}

	return librarian, nil
}

// Authorize resolves a bearer token to the librarian it was issued to. Bad or
// expired tokens and deleted librarians fail with ErrUnauthorized.
func (s *LibrarianService) Authorize(ctx context.Context, token string) (*models.Librarian, error) {
	id, err := jwt.DecodeJWTToken(token, s.config.Jwt_secret, s.config.Jwt_algorithm)

	if err != nil {
		return nil, newError(ErrUnauthorized, detailBadToken)
	}

	librarian, err := s.Get(ctx, id)

	if errors.Is(err, ErrNotFound) {
		return nil, newError(ErrUnauthorized, detailBadToken)
	}

	if err != nil {
		return nil, err
	}

	return librarian, nil
}
