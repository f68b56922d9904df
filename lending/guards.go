package lending

import (
	"github.com/libercore/lending-catalog-go/catalog"
)

// guard is one authorization predicate over the resolved principal. Guards are
// evaluated in order before any state is read or written; the first denial wins.
type guard func(principal *catalog.Principal) error

// requireAuthenticated denies operations invoked without a principal.
func requireAuthenticated() guard {
	return func(principal *catalog.Principal) error {
		if principal == nil {
			return ErrNotAuthenticated
		}

		return nil
	}
}

// requireRole denies operations whose principal lacks the given role.
func requireRole(role string) guard {
	return func(principal *catalog.Principal) error {
		if principal == nil {
			return ErrNotAuthenticated
		}

		if !principal.HasRole(role) {
			return ErrForbidden
		}

		return nil
	}
}

// checkGuards evaluates the ordered guard list and returns the first denial.
func checkGuards(principal *catalog.Principal, guards ...guard) error {
	for _, g := range guards {
		if err := g(principal); err != nil {
			return err
		}
	}

	return nil
}
