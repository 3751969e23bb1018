package store

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"
	"github.com/oseayemenre/library/internal/models"
)

var borrowColumns = []interface{}{"id", "book_id", "reader_id", "borrow_date", "return_date"}

func (q *queries) CountActiveLoansByReader(ctx context.Context, readerId int64) (int, error) {
	var count int

	query := `
			SELECT COUNT(*) FROM borrow_records WHERE reader_id = $1 AND return_date IS NULL;
	`

	if err := sqlx.GetContext(ctx, q.q, &count, query, readerId); err != nil {
		return 0, fmt.Errorf("error counting active loans: %w", classify(err))
	}

	return count, nil
}

func (q *queries) CountActiveLoansByBook(ctx context.Context, bookId int64) (int, error) {
	var count int

	query := `
			SELECT COUNT(*) FROM borrow_records WHERE book_id = $1 AND return_date IS NULL;
	`

	if err := sqlx.GetContext(ctx, q.q, &count, query, bookId); err != nil {
		return 0, fmt.Errorf("error counting active loans: %w", classify(err))
	}

	return count, nil
}

func (q *queries) CreateBorrowRecord(ctx context.Context, bookId int64, readerId int64, at time.Time) (*models.BorrowRecord, error) {
	var record models.BorrowRecord

	query := `
			INSERT INTO borrow_records (book_id, reader_id, borrow_date)
			VALUES ($1, $2, $3)
			RETURNING id, book_id, reader_id, borrow_date, return_date;
	`

	if err := sqlx.GetContext(ctx, q.q, &record, query, bookId, readerId, at); err != nil {
		return nil, fmt.Errorf("error inserting into borrow_records table: %w", classify(err))
	}

	return &record, nil
}

// GetActiveBorrowRecordForUpdate locks the oldest active record of the pair.
func (q *queries) GetActiveBorrowRecordForUpdate(ctx context.Context, bookId int64, readerId int64) (*models.BorrowRecord, error) {
	query, args, err := dialect.From("borrow_records").
		Select(borrowColumns...).
		Where(
			goqu.C("book_id").Eq(bookId),
			goqu.C("reader_id").Eq(readerId),
			goqu.C("return_date").IsNull(),
		).
		Order(goqu.C("borrow_date").Asc(), goqu.C("id").Asc()).
		Limit(1).
		ForUpdate(exp.Wait).
		Prepared(true).
		ToSQL()

	if err != nil {
		return nil, fmt.Errorf("error building borrow record query: %v", err)
	}

	var record models.BorrowRecord

	if err := sqlx.GetContext(ctx, q.q, &record, query, args...); err != nil {
		return nil, fmt.Errorf("error querying borrow_records table: %w", classify(err))
	}

	return &record, nil
}

func (q *queries) CloseBorrowRecord(ctx context.Context, id int64, at time.Time) error {
	query := `
			UPDATE borrow_records SET return_date = $1 WHERE id = $2 AND return_date IS NULL;
	`

	result, err := q.q.ExecContext(ctx, query, at, id)

	if err != nil {
		return fmt.Errorf("error closing borrow record: %w", classify(err))
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	return nil
}

func (q *queries) ListActiveBorrowedBooks(ctx context.Context, readerId int64) ([]models.Book, error) {
	books := []models.Book{}

	query := `
			SELECT b.id, b.title, b.author, b.publication_year, b.isbn, b.copies_count, b.description
			FROM books b
			JOIN borrow_records br ON (br.book_id = b.id)
			WHERE br.reader_id = $1 AND br.return_date IS NULL
			ORDER BY br.borrow_date, br.id;
	`

	if err := sqlx.SelectContext(ctx, q.q, &books, query, readerId); err != nil {
		return nil, fmt.Errorf("error querying borrowed books: %w", classify(err))
	}

	return books, nil
}
