package store

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"
	"github.com/oseayemenre/library/internal/models"
)

var userColumns = []interface{}{"id", "name", "email"}

func (q *queries) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}

	query := `
			SELECT id, name, email FROM users ORDER BY id;
	`

	if err := sqlx.SelectContext(ctx, q.q, &users, query); err != nil {
		return nil, fmt.Errorf("error querying users table: %w", classify(err))
	}

	return users, nil
}

func (q *queries) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return q.getUser(ctx, id, noLock)
}

func (q *queries) GetUserForUpdate(ctx context.Context, id int64) (*models.User, error) {
	return q.getUser(ctx, id, lockForUpdate)
}

// GetUserForShare keeps the user row from being deleted until the transaction
// ends without blocking other readers or borrowers.
func (q *queries) GetUserForShare(ctx context.Context, id int64) (*models.User, error) {
	return q.getUser(ctx, id, lockForKeyShare)
}

func (q *queries) getUser(ctx context.Context, id int64, lock rowLock) (*models.User, error) {
	stmt := dialect.From("users").
		Select(userColumns...).
		Where(goqu.C("id").Eq(id))

	switch lock {
	case lockForUpdate:
		stmt = stmt.ForUpdate(exp.Wait)
	case lockForKeyShare:
		stmt = stmt.ForKeyShare(exp.Wait)
	}

	query, args, err := stmt.Prepared(true).ToSQL()

	if err != nil {
		return nil, fmt.Errorf("error building user query: %v", err)
	}

	var user models.User

	if err := sqlx.GetContext(ctx, q.q, &user, query, args...); err != nil {
		return nil, fmt.Errorf("error querying users table: %w", classify(err))
	}

	return &user, nil
}

func (q *queries) FindUserIdByEmail(ctx context.Context, email string) (int64, error) {
	var id int64

	query := `
			SELECT id FROM users WHERE email = $1;
	`

	if err := sqlx.GetContext(ctx, q.q, &id, query, email); err != nil {
		return 0, fmt.Errorf("error retrieving user id: %w", classify(err))
	}

	return id, nil
}

func (q *queries) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	var created models.User

	query := `
			INSERT INTO users (name, email) VALUES ($1, $2) RETURNING id, name, email;
	`

	if err := sqlx.GetContext(ctx, q.q, &created, query, user.Name, user.Email); err != nil {
		return nil, fmt.Errorf("error inserting into users table: %w", classify(err))
	}

	return &created, nil
}

func (q *queries) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	query, args, err := dialect.Update("users").
		Set(goqu.Record{
			"name":  user.Name,
			"email": user.Email,
		}).
		Where(goqu.C("id").Eq(user.Id)).
		Returning(userColumns...).
		Prepared(true).
		ToSQL()

	if err != nil {
		return nil, fmt.Errorf("error building user update: %v", err)
	}

	var updated models.User

	if err := sqlx.GetContext(ctx, q.q, &updated, query, args...); err != nil {
		return nil, fmt.Errorf("error updating users table: %w", classify(err))
	}

	return &updated, nil
}

func (q *queries) DeleteUser(ctx context.Context, id int64) error {
	query := `
			DELETE FROM users WHERE id = $1;
	`

	result, err := q.q.ExecContext(ctx, query, id)

	if err != nil {
		return fmt.Errorf("error deleting from users table: %w", classify(err))
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	return nil
}
