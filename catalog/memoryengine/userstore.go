package memoryengine

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/libercore/lending-catalog-go/catalog"
)

// UserStore is an in-memory catalog.UserStore.
type UserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]catalog.User
}

// NewUserStore creates an empty in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{
		users: make(map[uuid.UUID]catalog.User),
	}
}

// Get returns the user with the given identifier, or nil if absent.
func (s *UserStore) Get(_ context.Context, id uuid.UUID) (*catalog.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}

	copied := copyUser(user)

	return &copied, nil
}

// GetByEmail returns the user with the given email address, or nil if absent.
func (s *UserStore) GetByEmail(_ context.Context, email string) (*catalog.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			copied := copyUser(user)
			return &copied, nil
		}
	}

	return nil, nil
}

// Put inserts or fully replaces the user, last write wins.
func (s *UserStore) Put(_ context.Context, user catalog.User) (catalog.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user.Identifier] = copyUser(user)

	return user, nil
}

func copyUser(user catalog.User) catalog.User {
	copied := user

	copied.Roles = make([]string, len(user.Roles))
	copy(copied.Roles, user.Roles)

	return copied
}
