// Package identity resolves caller credentials to an authenticated principal.
// It is the boundary collaborator the lending service consumes; the lending
// core itself never interprets credentials.
package identity

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/libercore/lending-catalog-go/catalog"
)

// ErrBadCredentials is returned for an unknown email or a wrong password.
// Both cases collapse into one error so the provider does not leak which
// email addresses exist.
var ErrBadCredentials = errors.New("bad credentials")

// ErrNilUserStore is returned when the provider is constructed without a user store.
var ErrNilUserStore = errors.New("user store must not be nil")

// Provider supplies a Principal per call. Implementations must treat an absent
// principal as unauthenticated; they never partially authenticate.
type Provider interface {
	Authenticate(ctx context.Context, email string, password string) (*catalog.Principal, error)
}

// StoreBackedProvider authenticates against the user store with bcrypt
// password verification.
type StoreBackedProvider struct {
	users catalog.UserStore
}

// NewStoreBackedProvider creates a provider over the given user store.
func NewStoreBackedProvider(users catalog.UserStore) (*StoreBackedProvider, error) {
	if users == nil {
		return nil, ErrNilUserStore
	}

	return &StoreBackedProvider{users: users}, nil
}

// Authenticate looks up the user by email and verifies the password against
// the stored bcrypt hash. On success it returns the transient principal view
// of the user; on any mismatch it returns ErrBadCredentials.
func (p *StoreBackedProvider) Authenticate(ctx context.Context, email string, password string) (*catalog.Principal, error) {
	user, err := p.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, ErrBadCredentials
	}

	if compareErr := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); compareErr != nil {
		return nil, ErrBadCredentials
	}

	principal := catalog.PrincipalFromUser(*user)

	return &principal, nil
}

// HashPassword produces a bcrypt hash for storing a user credential. It lives
// here so that the stored hash stays opaque outside this package.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}
