package postgresengine

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libercore/lending-catalog-go/catalog"
	"github.com/libercore/lending-catalog-go/catalog/postgresengine/internal/adapters"
)

// stubAdapter captures executed SQL and plays back canned rows, so the SQL
// building and row mapping can be tested without a live database.
type stubAdapter struct {
	queries      []string
	execs        []string
	rows         [][]any
	rowsAffected int64
}

func (a *stubAdapter) Query(_ context.Context, query string) (adapters.DBRows, error) {
	a.queries = append(a.queries, query)
	return &stubRows{rows: a.rows}, nil
}

func (a *stubAdapter) Exec(_ context.Context, query string) (adapters.DBResult, error) {
	a.execs = append(a.execs, query)
	return stubResult{rowsAffected: a.rowsAffected}, nil
}

type stubRows struct {
	rows [][]any
	pos  int
}

func (r *stubRows) Next() bool {
	return r.pos < len(r.rows)
}

func (r *stubRows) Scan(dest ...any) error {
	row := r.rows[r.pos]
	r.pos++

	for i, d := range dest {
		switch target := d.(type) {
		case *string:
			*target = row[i].(string)
		case *[]byte:
			*target = []byte(row[i].(string))
		case **string:
			if row[i] == nil {
				*target = nil
			} else {
				value := row[i].(string)
				*target = &value
			}
		default:
			return fmt.Errorf("unsupported scan destination %T", d)
		}
	}

	return nil
}

func (r *stubRows) Close() error {
	return nil
}

type stubResult struct {
	rowsAffected int64
}

func (r stubResult) RowsAffected() (int64, error) {
	return r.rowsAffected, nil
}

func engineWithStub(t *testing.T, stub *stubAdapter) *Engine {
	t.Helper()

	engine, err := newEngine(stub)
	require.NoError(t, err)

	return engine
}

func Test_BookStore_Get_MapsRowToBook(t *testing.T) {
	// arrange
	bookID := uuid.New()
	borrowerID := uuid.New().String()

	stub := &stubAdapter{
		rows: [][]any{
			{bookID.String(), "9780132350884", "Clean Code", "A Handbook of Agile Software Craftsmanship", `["Robert C. Martin"]`, borrowerID},
		},
	}
	store := engineWithStub(t, stub).Books()

	// act
	book, err := store.Get(context.Background(), bookID)

	// assert
	require.NoError(t, err)
	require.NotNil(t, book)
	assert.Equal(t, bookID, book.Identifier)
	assert.Equal(t, "9780132350884", book.ISBN)
	assert.Equal(t, []string{"Robert C. Martin"}, book.Authors)
	require.NotNil(t, book.BorrowedBy)
	assert.Equal(t, borrowerID, book.BorrowedBy.String())

	require.Len(t, stub.queries, 1)
	assert.Contains(t, stub.queries[0], `FROM "books"`)
	assert.Contains(t, stub.queries[0], bookID.String())
}

func Test_BookStore_Get_ReturnsNilWhenNoRowMatches(t *testing.T) {
	stub := &stubAdapter{}
	store := engineWithStub(t, stub).Books()

	book, err := store.Get(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Nil(t, book)
}

func Test_BookStore_SwapBorrower_PinsExpectedBorrowerInWhereClause(t *testing.T) {
	// arrange
	bookID := uuid.New()
	borrowerID := uuid.New()

	stub := &stubAdapter{
		rows: [][]any{
			{bookID.String(), "9780132350884", "Clean Code", "", `["Robert C. Martin"]`, borrowerID.String()},
		},
	}
	store := engineWithStub(t, stub).Books()

	// act
	updated, err := store.SwapBorrower(context.Background(), bookID, nil, &borrowerID)

	// assert
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.True(t, updated.IsBorrowedBy(borrowerID))

	require.Len(t, stub.queries, 1)
	assert.Contains(t, stub.queries[0], `UPDATE "books"`)
	assert.Contains(t, stub.queries[0], "IS NOT DISTINCT FROM NULL")
	assert.Contains(t, stub.queries[0], "RETURNING")
}

func Test_BookStore_SwapBorrower_ConflictWhenNoRowMatched(t *testing.T) {
	// arrange: no rows returned means the WHERE clause matched nothing
	stub := &stubAdapter{}
	store := engineWithStub(t, stub).Books()

	borrowerID := uuid.New()

	// act
	updated, err := store.SwapBorrower(context.Background(), uuid.New(), nil, &borrowerID)

	// assert
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, catalog.ErrConcurrencyConflict)
}

func Test_BookStore_Put_BuildsUpsert(t *testing.T) {
	// arrange
	stub := &stubAdapter{rowsAffected: 1}
	store := engineWithStub(t, stub).Books()

	book := catalog.Book{
		Identifier: uuid.New(),
		ISBN:       "9780132350884",
		Title:      "Clean Code",
		Authors:    []string{"Robert C. Martin"},
	}

	// act
	_, err := store.Put(context.Background(), book)

	// assert
	require.NoError(t, err)
	require.Len(t, stub.execs, 1)
	assert.Contains(t, stub.execs[0], `INSERT INTO "books"`)
	assert.Contains(t, stub.execs[0], `ON CONFLICT ("identifier") DO UPDATE`)
}

func Test_BookStore_Delete_ReportsExistence(t *testing.T) {
	existing := &stubAdapter{rowsAffected: 1}
	missing := &stubAdapter{rowsAffected: 0}

	deleted, err := engineWithStub(t, existing).Books().Delete(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = engineWithStub(t, missing).Books().Delete(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, deleted)
}

func Test_UserStore_GetByEmail_MapsRowToUser(t *testing.T) {
	// arrange
	userID := uuid.New()

	stub := &stubAdapter{
		rows: [][]any{
			{userID.String(), "Bruce", "Wayne", "bruce.wayne@example.com", "$2a$10$stubbedhash", `["LIBRARY_USER"]`},
		},
	}
	store := engineWithStub(t, stub).Users()

	// act
	user, err := store.GetByEmail(context.Background(), "bruce.wayne@example.com")

	// assert
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, userID, user.Identifier)
	assert.Equal(t, "Bruce", user.FirstName)
	assert.True(t, user.HasRole(catalog.RoleLibraryUser))

	require.Len(t, stub.queries, 1)
	assert.Contains(t, stub.queries[0], `FROM "users"`)
	assert.Contains(t, stub.queries[0], "bruce.wayne@example.com")
}

func Test_Engine_Options(t *testing.T) {
	stub := &stubAdapter{}

	engine, err := newEngine(stub, WithBooksTableName("catalog_books"), WithUsersTableName("catalog_users"))
	require.NoError(t, err)

	_, err = engine.Books().List(context.Background())
	require.NoError(t, err)
	require.Len(t, stub.queries, 1)
	assert.Contains(t, stub.queries[0], `FROM "catalog_books"`)

	_, err = newEngine(stub, WithBooksTableName(""))
	assert.ErrorIs(t, err, catalog.ErrEmptyTableName)
}
