package catalog

import (
	"errors"
)

// ErrConcurrencyConflict is returned by a BookStore conditional write when the
// stored borrower reference no longer matches the expected value, meaning a
// concurrent operation won the race for this book.
var ErrConcurrencyConflict = errors.New("concurrency conflict, stored borrower changed since it was read")

// ErrNilDatabaseConnection is returned by store engine constructors when the
// supplied database handle is nil.
var ErrNilDatabaseConnection = errors.New("database connection must not be nil")

// ErrEmptyTableName is returned when a store engine is configured with an empty
// table name.
var ErrEmptyTableName = errors.New("empty table name supplied")
