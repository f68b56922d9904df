package catalog

import (
	"github.com/google/uuid"
)

// Role constants as used by the authorization predicates of the lending service.
const (
	RoleLibraryUser    = "LIBRARY_USER"
	RoleLibraryCurator = "LIBRARY_CURATOR"
	RoleLibraryAdmin   = "LIBRARY_ADMIN"
)

// User is read-only reference data from the lending core's perspective.
// PasswordHash is opaque to the core; only the identity provider interprets it.
type User struct {
	Identifier   uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Roles        []string
}

// HasRole reports whether the user carries the given role name.
func (u User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}

	return false
}

// Principal is the authenticated caller of one operation: a transient view of a
// User consisting of its identifier and role set. It is never persisted.
type Principal struct {
	Identifier uuid.UUID
	Roles      []string
}

// HasRole reports whether the principal carries the given role name.
func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}

	return false
}

// PrincipalFromUser derives the transient authorization view of a user.
func PrincipalFromUser(user User) Principal {
	roles := make([]string, len(user.Roles))
	copy(roles, user.Roles)

	return Principal{
		Identifier: user.Identifier,
		Roles:      roles,
	}
}
