package memoryengine_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libercore/lending-catalog-go/catalog"
	"github.com/libercore/lending-catalog-go/catalog/memoryengine"
)

func Test_BookStore_PutGetDelete(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewBookStore()

	book := catalog.Book{
		Identifier: uuid.New(),
		ISBN:       "9780132350884",
		Title:      "Clean Code",
		Authors:    []string{"Robert C. Martin"},
	}

	// act + assert
	_, err := store.Put(ctx, book)
	require.NoError(t, err)

	found, err := store.Get(ctx, book.Identifier)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, book.Title, found.Title)

	deleted, err := store.Delete(ctx, book.Identifier)
	require.NoError(t, err)
	assert.True(t, deleted)

	deletedAgain, err := store.Delete(ctx, book.Identifier)
	require.NoError(t, err)
	assert.False(t, deletedAgain)

	gone, err := store.Get(ctx, book.Identifier)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func Test_BookStore_SwapBorrower_ConflictsOnMismatch(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewBookStore()
	bookID := uuid.New()
	userID := uuid.New()
	otherUserID := uuid.New()

	_, err := store.Put(ctx, catalog.Book{Identifier: bookID, ISBN: "9780132350884", Title: "Clean Code", Authors: []string{"Robert C. Martin"}})
	require.NoError(t, err)

	// act: borrow succeeds from available state
	updated, err := store.SwapBorrower(ctx, bookID, nil, &userID)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.True(t, updated.IsBorrowedBy(userID))

	// a second swap expecting the available state conflicts
	_, err = store.SwapBorrower(ctx, bookID, nil, &otherUserID)
	assert.ErrorIs(t, err, catalog.ErrConcurrencyConflict)

	// a swap on a missing book conflicts as well
	_, err = store.SwapBorrower(ctx, uuid.New(), nil, &userID)
	assert.ErrorIs(t, err, catalog.ErrConcurrencyConflict)

	// clearing with the correct expected borrower succeeds
	cleared, err := store.SwapBorrower(ctx, bookID, &userID, nil)
	require.NoError(t, err)
	assert.False(t, cleared.IsBorrowed())
}

func Test_BookStore_SwapBorrower_ExactlyOneConcurrentWinner(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewBookStore()
	bookID := uuid.New()

	_, err := store.Put(ctx, catalog.Book{Identifier: bookID, ISBN: "9780132350884", Title: "Clean Code", Authors: []string{"Robert C. Martin"}})
	require.NoError(t, err)

	const attempts = 32

	var wg sync.WaitGroup
	results := make(chan error, attempts)

	// act
	for i := 0; i < attempts; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			userID := uuid.New()
			_, swapErr := store.SwapBorrower(ctx, bookID, nil, &userID)
			results <- swapErr
		}()
	}

	wg.Wait()
	close(results)

	// assert
	successes := 0
	conflicts := 0

	for swapErr := range results {
		switch {
		case swapErr == nil:
			successes++
		default:
			assert.ErrorIs(t, swapErr, catalog.ErrConcurrencyConflict)
			conflicts++
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
}
