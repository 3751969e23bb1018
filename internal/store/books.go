package store

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"
	"github.com/oseayemenre/library/internal/models"
)

var bookColumns = []interface{}{"id", "title", "author", "publication_year", "isbn", "copies_count", "description"}

func (q *queries) ListBooks(ctx context.Context) ([]models.Book, error) {
	books := []models.Book{}

	query := `
			SELECT id, title, author, publication_year, isbn, copies_count, description
			FROM books
			ORDER BY id;
	`

	if err := sqlx.SelectContext(ctx, q.q, &books, query); err != nil {
		return nil, fmt.Errorf("error querying books table: %w", classify(err))
	}

	return books, nil
}

func (q *queries) GetBook(ctx context.Context, id int64) (*models.Book, error) {
	return q.getBook(ctx, id, noLock)
}

// GetBookForUpdate takes an exclusive lock on the book row for the rest of the
// transaction. Concurrent borrows and returns of the same book queue here.
func (q *queries) GetBookForUpdate(ctx context.Context, id int64) (*models.Book, error) {
	return q.getBook(ctx, id, lockForUpdate)
}

func (q *queries) getBook(ctx context.Context, id int64, lock rowLock) (*models.Book, error) {
	stmt := dialect.From("books").
		Select(bookColumns...).
		Where(goqu.C("id").Eq(id))

	if lock == lockForUpdate {
		stmt = stmt.ForUpdate(exp.Wait)
	}

	query, args, err := stmt.Prepared(true).ToSQL()

	if err != nil {
		return nil, fmt.Errorf("error building book query: %v", err)
	}

	var book models.Book

	if err := sqlx.GetContext(ctx, q.q, &book, query, args...); err != nil {
		return nil, fmt.Errorf("error querying books table: %w", classify(err))
	}

	return &book, nil
}

func (q *queries) FindBookIdByIsbn(ctx context.Context, isbn string) (int64, error) {
	var id int64

	query := `
			SELECT id FROM books WHERE isbn = $1;
	`

	if err := sqlx.GetContext(ctx, q.q, &id, query, isbn); err != nil {
		return 0, fmt.Errorf("error retrieving book id: %w", classify(err))
	}

	return id, nil
}

func (q *queries) CreateBook(ctx context.Context, book *models.Book) (*models.Book, error) {
	var created models.Book

	query := `
			INSERT INTO books (title, author, publication_year, isbn, copies_count, description)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, title, author, publication_year, isbn, copies_count, description;
	`

	if err := sqlx.GetContext(ctx, q.q, &created, query,
		book.Title,
		book.Author,
		nullable(book.Publication_year),
		nullable(book.Isbn),
		book.Copies_count,
		nullable(book.Description),
	); err != nil {
		return nil, fmt.Errorf("error inserting into books table: %w", classify(err))
	}

	return &created, nil
}

// UpdateBook writes every mutable column of book in one statement.
func (q *queries) UpdateBook(ctx context.Context, book *models.Book) (*models.Book, error) {
	query, args, err := dialect.Update("books").
		Set(goqu.Record{
			"title":            book.Title,
			"author":           book.Author,
			"publication_year": nullable(book.Publication_year),
			"isbn":             nullable(book.Isbn),
			"copies_count":     book.Copies_count,
			"description":      nullable(book.Description),
		}).
		Where(goqu.C("id").Eq(book.Id)).
		Returning(bookColumns...).
		Prepared(true).
		ToSQL()

	if err != nil {
		return nil, fmt.Errorf("error building book update: %v", err)
	}

	var updated models.Book

	if err := sqlx.GetContext(ctx, q.q, &updated, query, args...); err != nil {
		return nil, fmt.Errorf("error updating books table: %w", classify(err))
	}

	return &updated, nil
}

func (q *queries) DeleteBook(ctx context.Context, id int64) error {
	query := `
			DELETE FROM books WHERE id = $1;
	`

	result, err := q.q.ExecContext(ctx, query, id)

	if err != nil {
		return fmt.Errorf("error deleting from books table: %w", classify(err))
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	return nil
}

func (q *queries) AdjustBookCopies(ctx context.Context, id int64, delta int) error {
	query := `
			UPDATE books SET copies_count = copies_count + $1 WHERE id = $2;
	`

	result, err := q.q.ExecContext(ctx, query, delta, id)

	if err != nil {
		return fmt.Errorf("error adjusting copies count: %w", classify(err))
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	return nil
}
