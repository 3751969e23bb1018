package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/oseayemenre/library/internal/config"
	"github.com/oseayemenre/library/internal/logger"
	"github.com/oseayemenre/library/internal/service"
	"github.com/oseayemenre/library/internal/store"
)

type Api struct {
	router   *chi.Mux
	logger   logger.Logger
	store    store.Store
	config   *config.Config
	services *service.Services
}

func New(
	router *chi.Mux,
	logger logger.Logger,
	store store.Store,
	config *config.Config,
) *Api {
	return &Api{
		router:   router,
		logger:   logger,
		store:    store,
		config:   config,
		services: service.New(store, logger, config),
	}
}

func (a *Api) RegisterRoutes() {
	a.router.Get("/healthz", a.HandleHealthz)

	a.router.Route("/api/v1", func(r chi.Router) {
		r.Use(a.LoggingMiddleware)

		r.Route("/librarians", func(r chi.Router) {
			r.Post("/register", a.HandleRegister)
			r.Post("/login", a.HandleLogin)
		})

		r.Group(func(r chi.Router) {
			r.Use(a.RequireLibrarian)

			r.Route("/books", func(r chi.Router) {
				r.Get("/", a.HandleGetBooks)
				r.Post("/", a.HandleCreateBook)

				r.Route("/{bookId}", func(r chi.Router) {
					r.Get("/", a.HandleGetBook)
					r.Put("/", a.HandleReplaceBook)
					r.Patch("/", a.HandleEditBook)
					r.Delete("/", a.HandleDeleteBook)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", a.HandleGetUsers)
				r.Post("/", a.HandleCreateUser)

				r.Route("/{userId}", func(r chi.Router) {
					r.Get("/", a.HandleGetUser)
					r.Put("/", a.HandleReplaceUser)
					r.Patch("/", a.HandleEditUser)
					r.Delete("/", a.HandleDeleteUser)
				})
			})

			r.Route("/borrow", func(r chi.Router) {
				r.Post("/", a.HandleBorrowBook)
				r.Post("/return", a.HandleReturnBook)
				r.Get("/{userId}", a.HandleGetBorrowedBooks)
			})
		})
	})
}
