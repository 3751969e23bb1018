package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oseayemenre/library/internal/config"
	"github.com/oseayemenre/library/internal/models"
	"github.com/oseayemenre/library/internal/store"
)

type testLogger struct{}

func (l *testLogger) Info(msg string, args ...any)  {}
func (l *testLogger) Error(msg string, args ...any) {}
func (l *testLogger) Warn(msg string, args ...any)  {}

type testStore struct {
	listBooksFunc                      func(ctx context.Context) ([]models.Book, error)
	getBookFunc                        func(ctx context.Context, id int64) (*models.Book, error)
	findBookIdByIsbnFunc               func(ctx context.Context, isbn string) (int64, error)
	createBookFunc                     func(ctx context.Context, book *models.Book) (*models.Book, error)
	updateBookFunc                     func(ctx context.Context, book *models.Book) (*models.Book, error)
	deleteBookFunc                     func(ctx context.Context, id int64) error
	adjustBookCopiesFunc               func(ctx context.Context, id int64, delta int) error
	listUsersFunc                      func(ctx context.Context) ([]models.User, error)
	getUserFunc                        func(ctx context.Context, id int64) (*models.User, error)
	findUserIdByEmailFunc              func(ctx context.Context, email string) (int64, error)
	createUserFunc                     func(ctx context.Context, user *models.User) (*models.User, error)
	updateUserFunc                     func(ctx context.Context, user *models.User) (*models.User, error)
	deleteUserFunc                     func(ctx context.Context, id int64) error
	getLibrarianFunc                   func(ctx context.Context, id int64) (*models.Librarian, error)
	getLibrarianByEmailFunc            func(ctx context.Context, email string) (*models.Librarian, error)
	createLibrarianFunc                func(ctx context.Context, email string, password string) (*models.Librarian, error)
	countActiveLoansByReaderFunc       func(ctx context.Context, readerId int64) (int, error)
	countActiveLoansByBookFunc         func(ctx context.Context, bookId int64) (int, error)
	createBorrowRecordFunc             func(ctx context.Context, bookId int64, readerId int64, at time.Time) (*models.BorrowRecord, error)
	getActiveBorrowRecordForUpdateFunc func(ctx context.Context, bookId int64, readerId int64) (*models.BorrowRecord, error)
	closeBorrowRecordFunc              func(ctx context.Context, id int64, at time.Time) error
	listActiveBorrowedBooksFunc        func(ctx context.Context, readerId int64) ([]models.Book, error)
	pingFunc                           func(ctx context.Context) error
}

func (s *testStore) ListBooks(ctx context.Context) ([]models.Book, error) {
	if s.listBooksFunc != nil {
		return s.listBooksFunc(ctx)
	}
	return []models.Book{}, nil
}

func (s *testStore) GetBook(ctx context.Context, id int64) (*models.Book, error) {
	if s.getBookFunc != nil {
		return s.getBookFunc(ctx, id)
	}
	return &models.Book{Id: id, Title: "title", Author: "author", Copies_count: 1}, nil
}

func (s *testStore) GetBookForUpdate(ctx context.Context, id int64) (*models.Book, error) {
	return s.GetBook(ctx, id)
}

func (s *testStore) FindBookIdByIsbn(ctx context.Context, isbn string) (int64, error) {
	if s.findBookIdByIsbnFunc != nil {
		return s.findBookIdByIsbnFunc(ctx, isbn)
	}
	return 0, store.ErrNotFound
}

func (s *testStore) CreateBook(ctx context.Context, book *models.Book) (*models.Book, error) {
	if s.createBookFunc != nil {
		return s.createBookFunc(ctx, book)
	}
	created := *book
	created.Id = 1
	return &created, nil
}

func (s *testStore) UpdateBook(ctx context.Context, book *models.Book) (*models.Book, error) {
	if s.updateBookFunc != nil {
		return s.updateBookFunc(ctx, book)
	}
	updated := *book
	return &updated, nil
}

func (s *testStore) DeleteBook(ctx context.Context, id int64) error {
	if s.deleteBookFunc != nil {
		return s.deleteBookFunc(ctx, id)
	}
	return nil
}

func (s *testStore) AdjustBookCopies(ctx context.Context, id int64, delta int) error {
	if s.adjustBookCopiesFunc != nil {
		return s.adjustBookCopiesFunc(ctx, id, delta)
	}
	return nil
}

func (s *testStore) ListUsers(ctx context.Context) ([]models.User, error) {
	if s.listUsersFunc != nil {
		return s.listUsersFunc(ctx)
	}
	return []models.User{}, nil
}

func (s *testStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	if s.getUserFunc != nil {
		return s.getUserFunc(ctx, id)
	}
	return &models.User{Id: id, Name: "reader", Email: "reader@test.com"}, nil
}

func (s *testStore) GetUserForUpdate(ctx context.Context, id int64) (*models.User, error) {
	return s.GetUser(ctx, id)
}

func (s *testStore) GetUserForShare(ctx context.Context, id int64) (*models.User, error) {
	return s.GetUser(ctx, id)
}

func (s *testStore) FindUserIdByEmail(ctx context.Context, email string) (int64, error) {
	if s.findUserIdByEmailFunc != nil {
		return s.findUserIdByEmailFunc(ctx, email)
	}
	return 0, store.ErrNotFound
}

func (s *testStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if s.createUserFunc != nil {
		return s.createUserFunc(ctx, user)
	}
	created := *user
	created.Id = 1
	return &created, nil
}

func (s *testStore) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if s.updateUserFunc != nil {
		return s.updateUserFunc(ctx, user)
	}
	updated := *user
	return &updated, nil
}

func (s *testStore) DeleteUser(ctx context.Context, id int64) error {
	if s.deleteUserFunc != nil {
		return s.deleteUserFunc(ctx, id)
	}
	return nil
}

func (s *testStore) GetLibrarian(ctx context.Context, id int64) (*models.Librarian, error) {
	if s.getLibrarianFunc != nil {
		return s.getLibrarianFunc(ctx, id)
	}
	return &models.Librarian{Id: id, Email: "admin@test.com"}, nil
}

func (s *testStore) GetLibrarianByEmail(ctx context.Context, email string) (*models.Librarian, error) {
	if s.getLibrarianByEmailFunc != nil {
		return s.getLibrarianByEmailFunc(ctx, email)
	}
	return nil, store.ErrNotFound
}

func (s *testStore) CreateLibrarian(ctx context.Context, email string, password string) (*models.Librarian, error) {
	if s.createLibrarianFunc != nil {
		return s.createLibrarianFunc(ctx, email, password)
	}
	return &models.Librarian{Id: 1, Email: email, Password: password}, nil
}

func (s *testStore) CountActiveLoansByReader(ctx context.Context, readerId int64) (int, error) {
	if s.countActiveLoansByReaderFunc != nil {
		return s.countActiveLoansByReaderFunc(ctx, readerId)
	}
	return 0, nil
}

func (s *testStore) CountActiveLoansByBook(ctx context.Context, bookId int64) (int, error) {
	if s.countActiveLoansByBookFunc != nil {
		return s.countActiveLoansByBookFunc(ctx, bookId)
	}
	return 0, nil
}

func (s *testStore) CreateBorrowRecord(ctx context.Context, bookId int64, readerId int64, at time.Time) (*models.BorrowRecord, error) {
	if s.createBorrowRecordFunc != nil {
		return s.createBorrowRecordFunc(ctx, bookId, readerId, at)
	}
	return &models.BorrowRecord{Id: 1, Book_id: bookId, Reader_id: readerId, Borrow_date: at}, nil
}

func (s *testStore) GetActiveBorrowRecordForUpdate(ctx context.Context, bookId int64, readerId int64) (*models.BorrowRecord, error) {
	if s.getActiveBorrowRecordForUpdateFunc != nil {
		return s.getActiveBorrowRecordForUpdateFunc(ctx, bookId, readerId)
	}
	return &models.BorrowRecord{Id: 1, Book_id: bookId, Reader_id: readerId, Borrow_date: time.Now()}, nil
}

func (s *testStore) CloseBorrowRecord(ctx context.Context, id int64, at time.Time) error {
	if s.closeBorrowRecordFunc != nil {
		return s.closeBorrowRecordFunc(ctx, id, at)
	}
	return nil
}

func (s *testStore) ListActiveBorrowedBooks(ctx context.Context, readerId int64) ([]models.Book, error) {
	if s.listActiveBorrowedBooksFunc != nil {
		return s.listActiveBorrowedBooksFunc(ctx, readerId)
	}
	return []models.Book{}, nil
}

func (s *testStore) SetLockTimeout(ctx context.Context, timeout time.Duration) error {
	return nil
}

func (s *testStore) WithinTx(ctx context.Context, fn func(q store.Queries) error) error {
	return fn(s)
}

func (s *testStore) Ping(ctx context.Context) error {
	if s.pingFunc != nil {
		return s.pingFunc(ctx)
	}
	return nil
}

const testSecret = "secret"

func testConfig() *config.Config {
	return &config.Config{
		Jwt_secret:                  testSecret,
		Jwt_algorithm:               "HS256",
		Access_token_expire_minutes: 30,
		Max_active_loans:            3,
		Bcrypt_cost:                 4,
	}
}

func newTestApi(s *testStore) *Api {
	return New(chi.NewRouter(), &testLogger{}, s, testConfig())
}

func withURLParam(r *http.Request, key string, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
