package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/oseayemenre/library/internal/models"
)

func (q *queries) GetLibrarian(ctx context.Context, id int64) (*models.Librarian, error) {
	var librarian models.Librarian

	query := `
			SELECT id, email, password FROM librarians WHERE id = $1;
	`

	if err := sqlx.GetContext(ctx, q.q, &librarian, query, id); err != nil {
		return nil, fmt.Errorf("error querying librarians table: %w", classify(err))
	}

	return &librarian, nil
}

func (q *queries) GetLibrarianByEmail(ctx context.Context, email string) (*models.Librarian, error) {
	var librarian models.Librarian

	query := `
			SELECT id, email, password FROM librarians WHERE email = $1;
	`

	if err := sqlx.GetContext(ctx, q.q, &librarian, query, email); err != nil {
		return nil, fmt.Errorf("error querying librarians table: %w", classify(err))
	}

	return &librarian, nil
}

// CreateLibrarian stores an already hashed password.
func (q *queries) CreateLibrarian(ctx context.Context, email string, password string) (*models.Librarian, error) {
	var librarian models.Librarian

	query := `
			INSERT INTO librarians (email, password) VALUES ($1, $2) RETURNING id, email, password;
	`

	if err := sqlx.GetContext(ctx, q.q, &librarian, query, email, password); err != nil {
		return nil, fmt.Errorf("error inserting into librarians table: %w", classify(err))
	}

	return &librarian, nil
}
