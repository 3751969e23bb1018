package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/oseayemenre/library/internal/models"
	"github.com/oseayemenre/library/internal/store"
)

// memStore is an in-memory store.Store. Transactions are serialized by a mutex
// and roll back by restoring a snapshot of the tables.
type memStore struct {
	*memData
	tx sync.Mutex
}

type memData struct {
	books      map[int64]models.Book
	users      map[int64]models.User
	librarians map[int64]models.Librarian
	records    []models.BorrowRecord
	nextId     int64

	// lockErr, when set, is returned by every row lock.
	lockErr error
}

func newMemStore() *memStore {
	return &memStore{
		memData: &memData{
			books:      map[int64]models.Book{},
			users:      map[int64]models.User{},
			librarians: map[int64]models.Librarian{},
		},
	}
}

func (s *memStore) WithinTx(ctx context.Context, fn func(q store.Queries) error) (err error) {
	s.tx.Lock()
	defer s.tx.Unlock()

	snapshot := s.memData.clone()

	defer func() {
		if p := recover(); p != nil {
			*s.memData = *snapshot
			panic(p)
		}

		if err != nil {
			*s.memData = *snapshot
		}
	}()

	return fn(s.memData)
}

func (s *memStore) Ping(ctx context.Context) error { return nil }

func (d *memData) clone() *memData {
	c := &memData{
		books:      make(map[int64]models.Book, len(d.books)),
		users:      make(map[int64]models.User, len(d.users)),
		librarians: make(map[int64]models.Librarian, len(d.librarians)),
		records:    append([]models.BorrowRecord(nil), d.records...),
		nextId:     d.nextId,
		lockErr:    d.lockErr,
	}

	for k, v := range d.books {
		c.books[k] = v
	}

	for k, v := range d.users {
		c.users[k] = v
	}

	for k, v := range d.librarians {
		c.librarians[k] = v
	}

	return c
}

func (d *memData) id() int64 {
	d.nextId++
	return d.nextId
}

func (d *memData) ListBooks(ctx context.Context) ([]models.Book, error) {
	books := []models.Book{}

	for _, b := range d.books {
		books = append(books, b)
	}

	sort.Slice(books, func(i, j int) bool { return books[i].Id < books[j].Id })

	return books, nil
}

func (d *memData) GetBook(ctx context.Context, id int64) (*models.Book, error) {
	b, ok := d.books[id]

	if !ok {
		return nil, store.ErrNotFound
	}

	return &b, nil
}

func (d *memData) GetBookForUpdate(ctx context.Context, id int64) (*models.Book, error) {
	if d.lockErr != nil {
		return nil, d.lockErr
	}
	return d.GetBook(ctx, id)
}

func (d *memData) FindBookIdByIsbn(ctx context.Context, isbn string) (int64, error) {
	for _, b := range d.books {
		if b.Isbn != nil && *b.Isbn == isbn {
			return b.Id, nil
		}
	}
	return 0, store.ErrNotFound
}

func (d *memData) CreateBook(ctx context.Context, book *models.Book) (*models.Book, error) {
	if book.Isbn != nil {
		if _, err := d.FindBookIdByIsbn(ctx, *book.Isbn); err == nil {
			return nil, store.ErrUniqueViolation
		}
	}

	b := *book
	b.Id = d.id()
	d.books[b.Id] = b

	return &b, nil
}

func (d *memData) UpdateBook(ctx context.Context, book *models.Book) (*models.Book, error) {
	if _, ok := d.books[book.Id]; !ok {
		return nil, store.ErrNotFound
	}

	if book.Copies_count < 0 {
		return nil, store.ErrCheckViolation
	}

	b := *book
	d.books[b.Id] = b

	return &b, nil
}

func (d *memData) DeleteBook(ctx context.Context, id int64) error {
	if _, ok := d.books[id]; !ok {
		return store.ErrNotFound
	}

	delete(d.books, id)

	return nil
}

func (d *memData) AdjustBookCopies(ctx context.Context, id int64, delta int) error {
	b, ok := d.books[id]

	if !ok {
		return store.ErrNotFound
	}

	if b.Copies_count+delta < 0 {
		return store.ErrCheckViolation
	}

	b.Copies_count += delta
	d.books[id] = b

	return nil
}

func (d *memData) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}

	for _, u := range d.users {
		users = append(users, u)
	}

	sort.Slice(users, func(i, j int) bool { return users[i].Id < users[j].Id })

	return users, nil
}

func (d *memData) GetUser(ctx context.Context, id int64) (*models.User, error) {
	u, ok := d.users[id]

	if !ok {
		return nil, store.ErrNotFound
	}

	return &u, nil
}

func (d *memData) GetUserForUpdate(ctx context.Context, id int64) (*models.User, error) {
	if d.lockErr != nil {
		return nil, d.lockErr
	}
	return d.GetUser(ctx, id)
}

func (d *memData) GetUserForShare(ctx context.Context, id int64) (*models.User, error) {
	return d.GetUserForUpdate(ctx, id)
}

func (d *memData) FindUserIdByEmail(ctx context.Context, email string) (int64, error) {
	for _, u := range d.users {
		if u.Email == email {
			return u.Id, nil
		}
	}
	return 0, store.ErrNotFound
}

func (d *memData) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if _, err := d.FindUserIdByEmail(ctx, user.Email); err == nil {
		return nil, store.ErrUniqueViolation
	}

	u := *user
	u.Id = d.id()
	d.users[u.Id] = u

	return &u, nil
}

func (d *memData) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if _, ok := d.users[user.Id]; !ok {
		return nil, store.ErrNotFound
	}

	u := *user
	d.users[u.Id] = u

	return &u, nil
}

func (d *memData) DeleteUser(ctx context.Context, id int64) error {
	if _, ok := d.users[id]; !ok {
		return store.ErrNotFound
	}

	delete(d.users, id)

	return nil
}

func (d *memData) GetLibrarian(ctx context.Context, id int64) (*models.Librarian, error) {
	l, ok := d.librarians[id]

	if !ok {
		return nil, store.ErrNotFound
	}

	return &l, nil
}

func (d *memData) GetLibrarianByEmail(ctx context.Context, email string) (*models.Librarian, error) {
	for _, l := range d.librarians {
		if l.Email == email {
			return &l, nil
		}
	}
	return nil, store.ErrNotFound
}

func (d *memData) CreateLibrarian(ctx context.Context, email string, password string) (*models.Librarian, error) {
	if _, err := d.GetLibrarianByEmail(ctx, email); err == nil {
		return nil, store.ErrUniqueViolation
	}

	l := models.Librarian{Id: d.id(), Email: email, Password: password}
	d.librarians[l.Id] = l

	return &l, nil
}

func (d *memData) CountActiveLoansByReader(ctx context.Context, readerId int64) (int, error) {
	count := 0

	for _, r := range d.records {
		if r.Reader_id == readerId && r.Active() {
			count++
		}
	}

	return count, nil
}

func (d *memData) CountActiveLoansByBook(ctx context.Context, bookId int64) (int, error) {
	count := 0

	for _, r := range d.records {
		if r.Book_id == bookId && r.Active() {
			count++
		}
	}

	return count, nil
}

func (d *memData) CreateBorrowRecord(ctx context.Context, bookId int64, readerId int64, at time.Time) (*models.BorrowRecord, error) {
	if _, ok := d.books[bookId]; !ok {
		return nil, store.ErrForeignKeyViolation
	}

	if _, ok := d.users[readerId]; !ok {
		return nil, store.ErrForeignKeyViolation
	}

	r := models.BorrowRecord{Id: d.id(), Book_id: bookId, Reader_id: readerId, Borrow_date: at}
	d.records = append(d.records, r)

	return &r, nil
}

// GetActiveBorrowRecordForUpdate relies on records being kept in insertion
// order, which matches ordering by borrow date.
func (d *memData) GetActiveBorrowRecordForUpdate(ctx context.Context, bookId int64, readerId int64) (*models.BorrowRecord, error) {
	for _, r := range d.records {
		if r.Book_id == bookId && r.Reader_id == readerId && r.Active() {
			return &r, nil
		}
	}
	return nil, store.ErrNotFound
}

func (d *memData) CloseBorrowRecord(ctx context.Context, id int64, at time.Time) error {
	for i := range d.records {
		if d.records[i].Id == id && d.records[i].Active() {
			d.records[i].Return_date = &at
			return nil
		}
	}
	return store.ErrNotFound
}

func (d *memData) ListActiveBorrowedBooks(ctx context.Context, readerId int64) ([]models.Book, error) {
	books := []models.Book{}

	for _, r := range d.records {
		if r.Reader_id == readerId && r.Active() {
			if b, ok := d.books[r.Book_id]; ok {
				books = append(books, b)
			}
		}
	}

	return books, nil
}

func (d *memData) SetLockTimeout(ctx context.Context, timeout time.Duration) error {
	return nil
}

func (d *memData) activeRecords(bookId int64, readerId int64) []models.BorrowRecord {
	var active []models.BorrowRecord

	for _, r := range d.records {
		if r.Book_id == bookId && r.Reader_id == readerId && r.Active() {
			active = append(active, r)
		}
	}

	return active
}
