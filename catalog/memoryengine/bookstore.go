package memoryengine

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/libercore/lending-catalog-go/catalog"
)

// BookStore is an in-memory catalog.BookStore. All operations are linearized
// through a single mutex, which trivially satisfies the per-identifier
// atomicity contract.
type BookStore struct {
	mu    sync.RWMutex
	books map[uuid.UUID]catalog.Book
}

// NewBookStore creates an empty in-memory book store.
func NewBookStore() *BookStore {
	return &BookStore{
		books: make(map[uuid.UUID]catalog.Book),
	}
}

// Get returns the book with the given identifier, or nil if absent.
func (s *BookStore) Get(_ context.Context, id uuid.UUID) (*catalog.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	book, ok := s.books[id]
	if !ok {
		return nil, nil
	}

	copied := copyBook(book)

	return &copied, nil
}

// List returns all stored books in map iteration order.
func (s *BookStore) List(_ context.Context) ([]catalog.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	books := make([]catalog.Book, 0, len(s.books))
	for _, book := range s.books {
		books = append(books, copyBook(book))
	}

	return books, nil
}

// Put inserts or fully replaces the book, last write wins.
func (s *BookStore) Put(_ context.Context, book catalog.Book) (catalog.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.books[book.Identifier] = copyBook(book)

	return book, nil
}

// SwapBorrower replaces the stored borrower reference with next only if it
// still equals expected. A missing book or a mismatched borrower both surface
// as catalog.ErrConcurrencyConflict.
func (s *BookStore) SwapBorrower(
	_ context.Context,
	id uuid.UUID,
	expected *uuid.UUID,
	next *uuid.UUID,
) (*catalog.Book, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[id]
	if !ok {
		return nil, catalog.ErrConcurrencyConflict
	}

	if !borrowerEquals(book.BorrowedBy, expected) {
		return nil, catalog.ErrConcurrencyConflict
	}

	if next != nil {
		nextCopy := *next
		book.BorrowedBy = &nextCopy
	} else {
		book.BorrowedBy = nil
	}

	s.books[id] = book
	updated := copyBook(book)

	return &updated, nil
}

// Delete removes the book and reports whether it existed.
func (s *BookStore) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[id]; !ok {
		return false, nil
	}

	delete(s.books, id)

	return true, nil
}

func borrowerEquals(stored *uuid.UUID, expected *uuid.UUID) bool {
	if stored == nil || expected == nil {
		return stored == nil && expected == nil
	}

	return *stored == *expected
}

func copyBook(book catalog.Book) catalog.Book {
	copied := book

	copied.Authors = make([]string, len(book.Authors))
	copy(copied.Authors, book.Authors)

	if book.BorrowedBy != nil {
		borrower := *book.BorrowedBy
		copied.BorrowedBy = &borrower
	}

	return copied
}
