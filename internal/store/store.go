package store

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/oseayemenre/library/internal/models"
)

//go:embed schema.sql
var schema string

var dialect = goqu.Dialect("postgres")

// Queries is everything the services can ask of the database. It is served
// both by the store itself (autocommit) and by the unit of work handed to
// WithinTx.
type Queries interface {
	ListBooks(ctx context.Context) ([]models.Book, error)
	GetBook(ctx context.Context, id int64) (*models.Book, error)
	GetBookForUpdate(ctx context.Context, id int64) (*models.Book, error)
	FindBookIdByIsbn(ctx context.Context, isbn string) (int64, error)
	CreateBook(ctx context.Context, book *models.Book) (*models.Book, error)
	UpdateBook(ctx context.Context, book *models.Book) (*models.Book, error)
	DeleteBook(ctx context.Context, id int64) error
	AdjustBookCopies(ctx context.Context, id int64, delta int) error

	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserForUpdate(ctx context.Context, id int64) (*models.User, error)
	GetUserForShare(ctx context.Context, id int64) (*models.User, error)
	FindUserIdByEmail(ctx context.Context, email string) (int64, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error

	GetLibrarian(ctx context.Context, id int64) (*models.Librarian, error)
	GetLibrarianByEmail(ctx context.Context, email string) (*models.Librarian, error)
	CreateLibrarian(ctx context.Context, email string, password string) (*models.Librarian, error)

	CountActiveLoansByReader(ctx context.Context, readerId int64) (int, error)
	CountActiveLoansByBook(ctx context.Context, bookId int64) (int, error)
	CreateBorrowRecord(ctx context.Context, bookId int64, readerId int64, at time.Time) (*models.BorrowRecord, error)
	GetActiveBorrowRecordForUpdate(ctx context.Context, bookId int64, readerId int64) (*models.BorrowRecord, error)
	CloseBorrowRecord(ctx context.Context, id int64, at time.Time) error
	ListActiveBorrowedBooks(ctx context.Context, readerId int64) ([]models.Book, error)

	SetLockTimeout(ctx context.Context, timeout time.Duration) error
}

type Store interface {
	Queries
	// WithinTx runs fn in a single transaction. The transaction commits when fn
	// returns nil and rolls back on any error or panic.
	WithinTx(ctx context.Context, fn func(q Queries) error) error
	Ping(ctx context.Context) error
}

type Options struct {
	Driver       string
	MaxOpenConns int
	MaxIdleConns int
}

type PostgresStore struct {
	*queries
	db *sqlx.DB
}

// queries runs statements against either the pool or an open transaction.
type queries struct {
	q sqlx.ExtContext
}

func NewPostgresStore(conn string, opts Options) (*PostgresStore, error) {
	driver := opts.Driver

	if driver == "" {
		driver = "postgres"
	}

	db, err := sqlx.Open(driver, conn)

	if err != nil {
		return nil, fmt.Errorf("error connecting to db: %v", err)
	}

	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}

	db.SetMaxIdleConns(opts.MaxIdleConns)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error pinging db: %v", err)
	}

	return NewPostgresStoreFromDB(db), nil
}

func NewPostgresStoreFromDB(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{
		queries: &queries{q: db},
		db:      db,
	}
}

func (s *PostgresStore) WithinTx(ctx context.Context, fn func(q Queries) error) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)

	if err != nil {
		return fmt.Errorf("error starting transaction: %w", classify(err))
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}

		if err != nil {
			tx.Rollback()
		}
	}()

	if err = fn(&queries{q: tx}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", classify(err))
	}

	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("error pinging db: %w", classify(err))
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Migrate creates the tables and indexes if they do not exist yet.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("error applying schema: %w", classify(err))
	}
	return nil
}

// SetLockTimeout bounds how long the current transaction waits for row locks.
// A zero timeout leaves the server default (wait indefinitely).
func (q *queries) SetLockTimeout(ctx context.Context, timeout time.Duration) error {
	if timeout <= 0 {
		return nil
	}

	query := fmt.Sprintf("SET LOCAL lock_timeout = %d;", timeout.Milliseconds())

	if _, err := q.q.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("error setting lock timeout: %w", classify(err))
	}

	return nil
}

type rowLock int

const (
	noLock rowLock = iota
	lockForUpdate
	lockForKeyShare
)

func nullable[T any](v *T) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
