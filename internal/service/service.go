package service

import (
	"github.com/oseayemenre/library/internal/config"
	"github.com/oseayemenre/library/internal/logger"
	"github.com/oseayemenre/library/internal/store"
)

type Services struct {
	Books      *BookService
	Users      *UserService
	Librarians *LibrarianService
	Borrows    *BorrowService
}

func New(store store.Store, logger logger.Logger, config *config.Config) *Services {
	return &Services{
		Books:      NewBookService(store, logger),
		Users:      NewUserService(store, logger),
		Librarians: NewLibrarianService(store, logger, config),
		Borrows:    NewBorrowService(store, logger, config),
	}
}
