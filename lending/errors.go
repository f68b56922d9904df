package lending

import "errors"

var (
	// ErrNotAuthenticated is returned when an operation is invoked without a principal.
	ErrNotAuthenticated = errors.New("caller is not authenticated")

	// ErrForbidden is returned when the principal lacks the role an operation requires.
	ErrForbidden = errors.New("caller lacks the required role")

	// ErrNilBookStore is returned when the service is constructed without a book store.
	ErrNilBookStore = errors.New("book store must not be nil")

	// ErrNilUserStore is returned when the service is constructed without a user store.
	ErrNilUserStore = errors.New("user store must not be nil")
)
