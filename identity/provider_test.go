package identity_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libercore/lending-catalog-go/catalog"
	"github.com/libercore/lending-catalog-go/catalog/memoryengine"
	"github.com/libercore/lending-catalog-go/identity"
)

func Test_StoreBackedProvider_Authenticate(t *testing.T) {
	// arrange
	ctx := context.Background()
	users := memoryengine.NewUserStore()

	hash, err := identity.HashPassword("wayne")
	require.NoError(t, err)

	user := catalog.User{
		Identifier:   uuid.New(),
		FirstName:    "Bruce",
		LastName:     "Wayne",
		Email:        "bruce.wayne@example.com",
		PasswordHash: hash,
		Roles:        []string{catalog.RoleLibraryUser},
	}

	_, err = users.Put(ctx, user)
	require.NoError(t, err)

	provider, err := identity.NewStoreBackedProvider(users)
	require.NoError(t, err)

	// act + assert: correct credentials yield the principal view of the user
	principal, err := provider.Authenticate(ctx, "bruce.wayne@example.com", "wayne")
	require.NoError(t, err)
	require.NotNil(t, principal)
	assert.Equal(t, user.Identifier, principal.Identifier)
	assert.True(t, principal.HasRole(catalog.RoleLibraryUser))
	assert.False(t, principal.HasRole(catalog.RoleLibraryCurator))

	// wrong password and unknown email collapse into the same error
	_, err = provider.Authenticate(ctx, "bruce.wayne@example.com", "not-wayne")
	assert.ErrorIs(t, err, identity.ErrBadCredentials)

	_, err = provider.Authenticate(ctx, "nobody@example.com", "wayne")
	assert.ErrorIs(t, err, identity.ErrBadCredentials)
}

func Test_NewStoreBackedProvider_RejectsNilStore(t *testing.T) {
	_, err := identity.NewStoreBackedProvider(nil)

	assert.ErrorIs(t, err, identity.ErrNilUserStore)
}
