package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/oseayemenre/library/internal/models"
)

type contextKey string

const librarianKey contextKey = "librarian"

type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriterWrapper(w http.ResponseWriter) *responseWriterWrapper {
	return &responseWriterWrapper{ResponseWriter: w, statusCode: http.StatusOK}
}

func (w *responseWriterWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func (a *Api) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := newResponseWriterWrapper(w)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)

		a.logger.Info(
			"request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.String()),
			slog.Int("status", ww.statusCode),
			slog.String("duration", duration.String()),
			slog.String("remote_addr", r.RemoteAddr),
			slog.String("user_agent", r.UserAgent()),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// RequireLibrarian admits requests carrying a valid bearer token for an
// existing librarian and stores that librarian in the request context.
func (a *Api) RequireLibrarian(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")

		if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
			a.logger.Warn("bearer token not found", "status", "permission denied")
			w.Header().Set("WWW-Authenticate", "Bearer")
			respondWithError(w, http.StatusUnauthorized, errUnauthenticated)
			return
		}

		librarian, err := a.services.Librarians.Authorize(r.Context(), token)

		if err != nil {
			a.respondWithServiceError(w, err, "middleware")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), librarianKey, librarian)))
	})
}

func librarianFromContext(ctx context.Context) *models.Librarian {
	librarian, _ := ctx.Value(librarianKey).(*models.Librarian)
	return librarian
}
