// Package seed provides the fixed reference data set used by the demo and by
// integration environments: four well-known users and the initial catalog.
package seed

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/libercore/lending-catalog-go/catalog"
	"github.com/libercore/lending-catalog-go/identity"
)

// Fixed identifiers so demo runs and integration environments stay reproducible.
var (
	WayneUserIdentifier  = uuid.MustParse("c47641ee-e621-4309-a0a0-9c62eb4ba47a")
	BannerUserIdentifier = uuid.MustParse("69c10574-9064-40e4-85bd-5c68120c271a")
	ParkerUserIdentifier = uuid.MustParse("0d2c04f7-601e-4c23-9f19-bd2ba5bf0111")
	KentUserIdentifier   = uuid.MustParse("9bfc9e51-b5c1-4178-aa67-2e38d32cf3fc")

	BookCleanCodeIdentifier     = uuid.MustParse("f061579f-c5fc-4a40-be6f-4a0a0c10c262")
	BookCleanArchIdentifier     = uuid.MustParse("7f9da4ce-d4c5-4f53-b5a2-8ec24858364d")
	BookEffectiveJavaIdentifier = uuid.MustParse("41968652-9e02-4bf1-9077-b72c02cb5f78")
	BookDDDIdentifier           = uuid.MustParse("071cbb08-539b-4e75-b2f9-b2b4d11e4aeb")
)

// ErrSeedingFailed wraps any store error hit while loading the data set.
var ErrSeedingFailed = errors.New("seeding reference data failed")

// Users returns the reference users with freshly bcrypt-hashed default
// passwords (each password equals the user's last name, lowercased).
func Users() ([]catalog.User, error) {
	entries := []struct {
		identifier uuid.UUID
		firstName  string
		lastName   string
		email      string
		password   string
		roles      []string
	}{
		{WayneUserIdentifier, "Bruce", "Wayne", "bruce.wayne@example.com", "wayne", []string{catalog.RoleLibraryUser}},
		{BannerUserIdentifier, "Bruce", "Banner", "bruce.banner@example.com", "banner", []string{catalog.RoleLibraryUser}},
		{ParkerUserIdentifier, "Peter", "Parker", "peter.parker@example.com", "parker", []string{catalog.RoleLibraryUser, catalog.RoleLibraryCurator}},
		{KentUserIdentifier, "Clark", "Kent", "clark.kent@example.com", "kent", []string{catalog.RoleLibraryUser, catalog.RoleLibraryAdmin}},
	}

	users := make([]catalog.User, 0, len(entries))

	for _, entry := range entries {
		hash, err := identity.HashPassword(entry.password)
		if err != nil {
			return nil, errors.Join(ErrSeedingFailed, err)
		}

		users = append(users, catalog.User{
			Identifier:   entry.identifier,
			FirstName:    entry.firstName,
			LastName:     entry.lastName,
			Email:        entry.email,
			PasswordHash: hash,
			Roles:        entry.roles,
		})
	}

	return users, nil
}

// Books returns the initial catalog, all available.
func Books() []catalog.Book {
	return []catalog.Book{
		{
			Identifier:  BookCleanCodeIdentifier,
			ISBN:        "9780132350884",
			Title:       "Clean Code",
			Description: "A Handbook of Agile Software Craftsmanship",
			Authors:     []string{"Robert C. Martin"},
		},
		{
			Identifier:  BookCleanArchIdentifier,
			ISBN:        "9780134494166",
			Title:       "Clean Architecture",
			Description: "A Craftsman's Guide to Software Structure and Design",
			Authors:     []string{"Robert C. Martin"},
		},
		{
			Identifier:  BookEffectiveJavaIdentifier,
			ISBN:        "9780134685991",
			Title:       "Effective Java",
			Description: "Best practices for the Java platform",
			Authors:     []string{"Joshua Bloch"},
		},
		{
			Identifier:  BookDDDIdentifier,
			ISBN:        "9780321125217",
			Title:       "Domain-Driven Design",
			Description: "Tackling Complexity in the Heart of Software",
			Authors:     []string{"Eric Evans"},
		},
	}
}

// Load writes the full reference data set into the given stores.
func Load(ctx context.Context, books catalog.BookStore, users catalog.UserStore) error {
	seedUsers, err := Users()
	if err != nil {
		return err
	}

	for _, user := range seedUsers {
		if _, err := users.Put(ctx, user); err != nil {
			return errors.Join(ErrSeedingFailed, err)
		}
	}

	for _, book := range Books() {
		if _, err := books.Put(ctx, book); err != nil {
			return errors.Join(ErrSeedingFailed, err)
		}
	}

	return nil
}
