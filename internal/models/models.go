package models

import (
	"time"
)

type Book struct {
	Id               int64   `json:"id" db:"id"`
	Title            string  `json:"title" db:"title"`
	Author           string  `json:"author" db:"author"`
	Publication_year *int    `json:"publication_year" db:"publication_year"`
	Isbn             *string `json:"isbn" db:"isbn"`
	Copies_count     int     `json:"copies_count" db:"copies_count"`
	Description      *string `json:"description" db:"description"`
}

type User struct {
	Id    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
}

type Librarian struct {
	Id       int64  `json:"id" db:"id"`
	Email    string `json:"email" db:"email"`
	Password string `json:"-" db:"password"`
}

type BorrowRecord struct {
	Id          int64      `json:"id" db:"id"`
	Book_id     int64      `json:"book_id" db:"book_id"`
	Reader_id   int64      `json:"reader_id" db:"reader_id"`
	Borrow_date time.Time  `json:"borrow_date" db:"borrow_date"`
	Return_date *time.Time `json:"return_date" db:"return_date"`
}

func (r *BorrowRecord) Active() bool {
	return r.Return_date == nil
}

type BookInput struct {
	Title            string  `json:"title" validate:"required"`
	Author           string  `json:"author" validate:"required"`
	Publication_year *int    `json:"publication_year"`
	Isbn             *string `json:"isbn"`
	Copies_count     *int    `json:"copies_count" validate:"omitnil,gte=0"`
	Description      *string `json:"description"`
}

type BookPatch struct {
	Title            Optional[string] `json:"title"`
	Author           Optional[string] `json:"author"`
	Publication_year Optional[int]    `json:"publication_year"`
	Isbn             Optional[string] `json:"isbn"`
	Copies_count     Optional[int]    `json:"copies_count"`
	Description      Optional[string] `json:"description"`
}

type UserInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type UserPatch struct {
	Name  Optional[string] `json:"name"`
	Email Optional[string] `json:"email"`
}

type LibrarianInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type BorrowInput struct {
	Book_id   int64 `json:"book_id" validate:"required,gt=0"`
	Reader_id int64 `json:"reader_id" validate:"required,gt=0"`
}

type LibrarianResponse struct {
	Id    int64  `json:"id"`
	Email string `json:"email"`
}

type TokenResponse struct {
	Access_token string `json:"access_token"`
	Token_type   string `json:"token_type"`
}

type DetailResponse struct {
	Detail string `json:"detail"`
}
