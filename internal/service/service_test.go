package service

import (
	"context"
	"testing"
	"time"

	"github.com/oseayemenre/library/internal/config"
	"github.com/oseayemenre/library/internal/logger"
	"github.com/oseayemenre/library/internal/models"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Jwt_secret:                  "secret",
		Jwt_algorithm:               "HS256",
		Access_token_expire_minutes: 30,
		Max_active_loans:            3,
		Bcrypt_cost:                 4,
		Db_lock_timeout:             time.Second,
	}
}

func newTestServices(t *testing.T) (*Services, *memStore) {
	t.Helper()

	s := newMemStore()

	return New(s, logger.Nop{}, testConfig()), s
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func givenBook(t *testing.T, svc *Services, isbn string, copies int) *models.Book {
	t.Helper()

	input := &models.BookInput{Title: "A", Author: "B", Copies_count: intPtr(copies)}

	if isbn != "" {
		input.Isbn = strPtr(isbn)
	}

	book, err := svc.Books.Create(context.Background(), input)
	require.NoError(t, err)

	return book
}

func givenUser(t *testing.T, svc *Services, email string) *models.User {
	t.Helper()

	user, err := svc.Users.Create(context.Background(), &models.UserInput{Name: "Reader", Email: email})
	require.NoError(t, err)

	return user
}
