package lending

import (
	"github.com/google/uuid"

	"github.com/libercore/lending-catalog-go/catalog"
)

// Internal precondition classifications. They are logged for diagnosis but
// never surfaced to callers, who only see the opaque absent outcome.
const (
	reasonBookNotFound        = "book not found"
	reasonBookAlreadyBorrowed = "book is already borrowed"
	reasonBookNotBorrowed     = "book is not borrowed"
	reasonNotTheBorrower      = "requested user is not the recorded borrower"
	reasonIdentityMismatch    = "principal does not match the requested user"
	reasonUserNotFound        = "user not found"
)

// Decision is the outcome of evaluating the lending preconditions against the
// state read for one operation. It is a pure value: deciding has no side
// effects, the state transition happens afterwards through the store.
type Decision struct {
	Applies bool
	Reason  string
}

func applies() Decision {
	return Decision{Applies: true}
}

func doesNotApply(reason string) Decision {
	return Decision{Reason: reason}
}

// DecideBorrow evaluates the borrow preconditions:
// the book exists and is available, the principal borrows on their own behalf,
// and the requested user exists. All must hold for the transition to apply.
func DecideBorrow(
	book *catalog.Book,
	user *catalog.User,
	requestedUserID uuid.UUID,
	principal catalog.Principal,
) Decision {

	if book == nil {
		return doesNotApply(reasonBookNotFound)
	}

	if book.IsBorrowed() {
		return doesNotApply(reasonBookAlreadyBorrowed)
	}

	if principal.Identifier != requestedUserID {
		return doesNotApply(reasonIdentityMismatch)
	}

	if user == nil {
		return doesNotApply(reasonUserNotFound)
	}

	return applies()
}

// DecideReturn evaluates the return preconditions:
// the book exists and is currently borrowed, the recorded borrower is the
// requested user, the principal is that recorded borrower, and the requested
// user exists. All must hold for the transition to apply.
func DecideReturn(
	book *catalog.Book,
	user *catalog.User,
	requestedUserID uuid.UUID,
	principal catalog.Principal,
) Decision {

	if book == nil {
		return doesNotApply(reasonBookNotFound)
	}

	if !book.IsBorrowed() {
		return doesNotApply(reasonBookNotBorrowed)
	}

	if !book.IsBorrowedBy(requestedUserID) {
		return doesNotApply(reasonNotTheBorrower)
	}

	if principal.Identifier != requestedUserID {
		return doesNotApply(reasonIdentityMismatch)
	}

	if user == nil {
		return doesNotApply(reasonUserNotFound)
	}

	return applies()
}
