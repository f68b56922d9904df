package catalog

import (
	"fmt"

	"github.com/google/uuid"
)

const isbnLength = 13

// Book represents a single catalog entry. The Identifier is immutable once
// assigned; BorrowedBy is nil while the book is available and points to the
// borrowing user's identifier while it is lent out.
type Book struct {
	Identifier  uuid.UUID
	ISBN        string
	Title       string
	Description string
	Authors     []string
	BorrowedBy  *uuid.UUID
}

// IsBorrowed reports whether the book is currently lent to a user.
func (b Book) IsBorrowed() bool {
	return b.BorrowedBy != nil
}

// IsBorrowedBy reports whether the book is currently lent to the given user.
func (b Book) IsBorrowedBy(userID uuid.UUID) bool {
	return b.BorrowedBy != nil && *b.BorrowedBy == userID
}

// ValidationError describes a rejected input field with enough detail to fix it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on field %q: %s", e.Field, e.Reason)
}

// Validate checks the field constraints that must hold before a book may be
// persisted: a 13-digit numeric ISBN, a non-empty title and a non-empty set of
// author names. The identifier is not checked here since the create path assigns
// it after validation.
func (b Book) Validate() error {
	if err := ValidateISBN(b.ISBN); err != nil {
		return err
	}

	if b.Title == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}

	if len(b.Authors) == 0 {
		return &ValidationError{Field: "authors", Reason: "must contain at least one author"}
	}

	for _, author := range b.Authors {
		if author == "" {
			return &ValidationError{Field: "authors", Reason: "must not contain empty author names"}
		}
	}

	return nil
}

// ValidateISBN checks the 13-digit numeric ISBN format.
func ValidateISBN(isbn string) error {
	if len(isbn) != isbnLength {
		return &ValidationError{Field: "isbn", Reason: "must be exactly 13 digits"}
	}

	for _, r := range isbn {
		if r < '0' || r > '9' {
			return &ValidationError{Field: "isbn", Reason: "must contain only digits"}
		}
	}

	return nil
}
