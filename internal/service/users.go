package service

import (
	"context"
	"errors"

	"github.com/oseayemenre/library/internal/logger"
	"github.com/oseayemenre/library/internal/models"
	"github.com/oseayemenre/library/internal/shared"
	"github.com/oseayemenre/library/internal/store"
)

type UserService struct {
	store  store.Store
	logger logger.Logger
}

func NewUserService(store store.Store, logger logger.Logger) *UserService {
	return &UserService{
		store:  store,
		logger: logger,
	}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.store.ListUsers(ctx)

	if err != nil {
		return nil, storeError(err, "", "")
	}

	return users, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.store.GetUser(ctx, id)

	if err != nil {
		return nil, storeError(err, detailUserNotFound, "")
	}

	return user, nil
}

func (s *UserService) Create(ctx context.Context, input *models.UserInput) (*models.User, error) {
	if err := shared.Validate.Struct(input); err != nil {
		return nil, validationError(err)
	}

	if err := emailAvailable(ctx, s.store, input.Email, 0); err != nil {
		return nil, err
	}

	created, err := s.store.CreateUser(ctx, &models.User{Name: input.Name, Email: input.Email})

	if err != nil {
		return nil, storeError(err, "", detailEmailTaken)
	}

	s.logger.Info("user created", "user_id", created.Id)

	return created, nil
}

func (s *UserService) Replace(ctx context.Context, id int64, input *models.UserInput) (*models.User, error) {
	if err := shared.Validate.Struct(input); err != nil {
		return nil, validationError(err)
	}

	var updated *models.User

	err := s.store.WithinTx(ctx, func(q store.Queries) error {
		if _, err := q.GetUserForUpdate(ctx, id); err != nil {
			return err
		}

		if err := emailAvailable(ctx, q, input.Email, id); err != nil {
			return err
		}

		var err error
		updated, err = q.UpdateUser(ctx, &models.User{Id: id, Name: input.Name, Email: input.Email})
		return err
	})

	if err != nil {
		return nil, storeError(err, detailUserNotFound, detailEmailTaken)
	}

	return updated, nil
}

func (s *UserService) Patch(ctx context.Context, id int64, patch *models.UserPatch) (*models.User, error) {
	if err := validateUserPatch(patch); err != nil {
		return nil, err
	}

	var updated *models.User

	err := s.store.WithinTx(ctx, func(q store.Queries) error {
		user, err := q.GetUserForUpdate(ctx, id)

		if err != nil {
			return err
		}

		if patch.Email.Set && patch.Email.Value != user.Email {
			if err := emailAvailable(ctx, q, patch.Email.Value, id); err != nil {
				return err
			}
			user.Email = patch.Email.Value
		}

		if patch.Name.Set {
			user.Name = patch.Name.Value
		}

		updated, err = q.UpdateUser(ctx, user)
		return err
	})

	if err != nil {
		return nil, storeError(err, detailUserNotFound, detailEmailTaken)
	}

	return updated, nil
}

// Delete refuses to remove a reader with books still on loan.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	err := s.store.WithinTx(ctx, func(q store.Queries) error {
		if _, err := q.GetUserForUpdate(ctx, id); err != nil {
			return err
		}

		active, err := q.CountActiveLoansByReader(ctx, id)

		if err != nil {
			return err
		}

		if active > 0 {
			return newError(ErrConflict, detailUserOnLoan)
		}

		return q.DeleteUser(ctx, id)
	})

	if err != nil {
		return storeError(err, detailUserNotFound, "")
	}

	s.logger.Info("user deleted", "user_id", id)

	return nil
}

func emailAvailable(ctx context.Context, q store.Queries, email string, self int64) error {
	id, err := q.FindUserIdByEmail(ctx, email)

	if errors.Is(err, store.ErrNotFound) {
		return nil
	}

	if err != nil {
		return err
	}

	if id != self {
		return newError(ErrConflict, detailEmailTaken)
	}

	return nil
}

func validateUserPatch(patch *models.UserPatch) error {
	if patch.Name.Set && (patch.Name.Null || patch.Name.Value == "") {
		return newError(ErrValidation, "name: failed on required")
	}

	if patch.Email.Set {
		if patch.Email.Null {
			return newError(ErrValidation, "email: failed on required")
		}

		if err := shared.Validate.Var(patch.Email.Value, "required,email"); err != nil {
			return newError(ErrValidation, "email: failed on email")
		}
	}

	return nil
}
