package catalog

import (
	"context"

	"github.com/google/uuid"
)

// BookStore is durable keyed storage for book records. Implementations carry no
// business logic; the lending service drives them.
//
// Atomicity contract: Put is an atomic upsert per identifier with last-write-wins
// semantics. SwapBorrower is an atomic conditional write: it replaces the stored
// borrower reference with next only if the stored value still equals expected,
// and returns ErrConcurrencyConflict otherwise (including when the book row is
// gone). Two concurrent swaps with the same expected value on the same book must
// resolve to exactly one success.
type BookStore interface {
	Get(ctx context.Context, id uuid.UUID) (*Book, error)
	List(ctx context.Context) ([]Book, error)
	Put(ctx context.Context, book Book) (Book, error)
	SwapBorrower(ctx context.Context, id uuid.UUID, expected *uuid.UUID, next *uuid.UUID) (*Book, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// UserStore is durable keyed storage for user records. The lending core only
// reads by identifier; GetByEmail and Put exist for the identity provider and
// for seeding.
type UserStore interface {
	Get(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Put(ctx context.Context, user User) (User, error)
}

// IdentifierGenerator produces globally unique identifiers for newly created
// books, collision-free for the lifetime of the system.
type IdentifierGenerator interface {
	Next() uuid.UUID
}

// UUIDGenerator implements IdentifierGenerator with random version 4 UUIDs.
type UUIDGenerator struct{}

// Next returns a fresh random identifier.
func (UUIDGenerator) Next() uuid.UUID {
	return uuid.New()
}
