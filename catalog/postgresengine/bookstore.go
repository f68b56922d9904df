package postgresengine

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/libercore/lending-catalog-go/catalog"
	"github.com/libercore/lending-catalog-go/catalog/postgresengine/internal/adapters"
)

const (
	colIdentifier  = "identifier"
	colISBN        = "isbn"
	colTitle       = "title"
	colDescription = "description"
	colAuthors     = "authors"
	colBorrowedBy  = "borrowed_by"

	logMsgBookQueryFailed      = "book query execution failed"
	logMsgBookExecFailed       = "book statement execution failed"
	logMsgBookScanFailed       = "failed to scan book row"
	logMsgBookBuildFailed      = "failed to build book statement"
	logMsgBorrowerSwapConflict = "borrower swap hit a concurrency conflict"
	logMsgCloseRowsFailed      = "failed to close database rows"
	exprIsNotDistinctFrom      = "? IS NOT DISTINCT FROM ?"
	logAttrBookID              = "book_id"
)

// BookStore implements catalog.BookStore on PostgreSQL.
type BookStore struct {
	engine *Engine
}

type bookRow struct {
	identifier  string
	isbn        string
	title       string
	description string
	authorsJSON []byte
	borrowedBy  *string
}

// Get returns the book with the given identifier, or nil if no row matches.
func (s *BookStore) Get(ctx context.Context, id uuid.UUID) (*catalog.Book, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(s.engine.booksTableName).
		Select(colIdentifier, colISBN, colTitle, colDescription, colAuthors, colBorrowedBy).
		Where(goqu.C(colIdentifier).Eq(id.String()))

	books, err := s.queryBooks(ctx, selectStmt)
	if err != nil {
		return nil, err
	}

	if len(books) == 0 {
		return nil, nil
	}

	return &books[0], nil
}

// List returns all stored books in store-native order.
func (s *BookStore) List(ctx context.Context) ([]catalog.Book, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(s.engine.booksTableName).
		Select(colIdentifier, colISBN, colTitle, colDescription, colAuthors, colBorrowedBy)

	return s.queryBooks(ctx, selectStmt)
}

// Put inserts or fully replaces the book row, last write wins.
func (s *BookStore) Put(ctx context.Context, book catalog.Book) (catalog.Book, error) {
	authorsJSON, err := jsoniter.ConfigFastest.Marshal(book.Authors)
	if err != nil {
		return catalog.Book{}, errors.Join(ErrMarshalingFailed, err)
	}

	record := goqu.Record{
		colIdentifier:  book.Identifier.String(),
		colISBN:        book.ISBN,
		colTitle:       book.Title,
		colDescription: book.Description,
		colAuthors:     string(authorsJSON),
		colBorrowedBy:  borrowerValue(book.BorrowedBy),
	}

	updateRecord := goqu.Record{
		colISBN:        book.ISBN,
		colTitle:       book.Title,
		colDescription: book.Description,
		colAuthors:     string(authorsJSON),
		colBorrowedBy:  borrowerValue(book.BorrowedBy),
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(s.engine.booksTableName).
		Rows(record).
		OnConflict(goqu.DoUpdate(colIdentifier, updateRecord))

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		s.engine.logError(logMsgBookBuildFailed, toSQLErr)
		return catalog.Book{}, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	if _, execErr := s.exec(ctx, sqlQuery); execErr != nil {
		return catalog.Book{}, execErr
	}

	return book, nil
}

// SwapBorrower atomically replaces the borrower reference of the book with next,
// but only if the stored reference still equals expected. It returns the updated
// book on success and catalog.ErrConcurrencyConflict when no row matched, which
// covers both a changed borrower and a deleted book.
func (s *BookStore) SwapBorrower(
	ctx context.Context,
	id uuid.UUID,
	expected *uuid.UUID,
	next *uuid.UUID,
) (*catalog.Book, error) {

	updateStmt := goqu.Dialect(dialectPostgres).
		Update(s.engine.booksTableName).
		Set(goqu.Record{colBorrowedBy: borrowerValue(next)}).
		Where(
			goqu.C(colIdentifier).Eq(id.String()),
			goqu.L(exprIsNotDistinctFrom, goqu.C(colBorrowedBy), borrowerValue(expected)),
		).
		Returning(colIdentifier, colISBN, colTitle, colDescription, colAuthors, colBorrowedBy)

	sqlQuery, _, toSQLErr := updateStmt.ToSQL()
	if toSQLErr != nil {
		s.engine.logError(logMsgBookBuildFailed, toSQLErr)
		return nil, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	books, err := s.queryBooksSQL(ctx, sqlQuery)
	if err != nil {
		return nil, err
	}

	if len(books) == 0 {
		s.engine.logWarn(logMsgBorrowerSwapConflict, logAttrBookID, id.String())
		return nil, catalog.ErrConcurrencyConflict
	}

	return &books[0], nil
}

// Delete removes the book row and reports whether one existed.
func (s *BookStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	deleteStmt := goqu.Dialect(dialectPostgres).
		Delete(s.engine.booksTableName).
		Where(goqu.C(colIdentifier).Eq(id.String()))

	sqlQuery, _, toSQLErr := deleteStmt.ToSQL()
	if toSQLErr != nil {
		s.engine.logError(logMsgBookBuildFailed, toSQLErr)
		return false, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	rowsAffected, execErr := s.exec(ctx, sqlQuery)
	if execErr != nil {
		return false, execErr
	}

	return rowsAffected > 0, nil
}

func (s *BookStore) queryBooks(ctx context.Context, selectStmt *goqu.SelectDataset) ([]catalog.Book, error) {
	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		s.engine.logError(logMsgBookBuildFailed, toSQLErr)
		return nil, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return s.queryBooksSQL(ctx, sqlQuery)
}

func (s *BookStore) queryBooksSQL(ctx context.Context, sqlQuery string) ([]catalog.Book, error) {
	start := time.Now()
	rows, queryErr := s.engine.db.Query(ctx, sqlQuery)
	s.engine.logQueryWithDuration(sqlQuery, time.Since(start))

	if queryErr != nil {
		s.engine.logError(logMsgBookQueryFailed, queryErr, logAttrQuery, sqlQuery)
		return nil, errors.Join(ErrQueryingFailed, queryErr)
	}
	defer s.closeRows(rows)

	books := make([]catalog.Book, 0)

	for rows.Next() {
		var row bookRow

		if scanErr := rows.Scan(&row.identifier, &row.isbn, &row.title, &row.description, &row.authorsJSON, &row.borrowedBy); scanErr != nil {
			s.engine.logError(logMsgBookScanFailed, scanErr)
			return nil, errors.Join(ErrScanningRowFailed, scanErr)
		}

		book, buildErr := bookFromRow(row)
		if buildErr != nil {
			s.engine.logError(logMsgBookScanFailed, buildErr)
			return nil, buildErr
		}

		books = append(books, book)
	}

	return books, nil
}

func (s *BookStore) exec(ctx context.Context, sqlQuery string) (int64, error) {
	start := time.Now()
	result, execErr := s.engine.db.Exec(ctx, sqlQuery)
	s.engine.logQueryWithDuration(sqlQuery, time.Since(start))

	if execErr != nil {
		s.engine.logError(logMsgBookExecFailed, execErr, logAttrQuery, sqlQuery)
		return 0, errors.Join(ErrExecFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		s.engine.logError(logMsgBookExecFailed, rowsAffectedErr)
		return 0, errors.Join(ErrRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, nil
}

func (s *BookStore) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		s.engine.logWarn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}

func bookFromRow(row bookRow) (catalog.Book, error) {
	identifier, parseErr := uuid.Parse(row.identifier)
	if parseErr != nil {
		return catalog.Book{}, errors.Join(ErrInvalidIdentifier, parseErr)
	}

	var authors []string
	if unmarshalErr := jsoniter.ConfigFastest.Unmarshal(row.authorsJSON, &authors); unmarshalErr != nil {
		return catalog.Book{}, errors.Join(ErrUnmarshalingFailed, unmarshalErr)
	}

	book := catalog.Book{
		Identifier:  identifier,
		ISBN:        row.isbn,
		Title:       row.title,
		Description: row.description,
		Authors:     authors,
	}

	if row.borrowedBy != nil {
		borrower, borrowerErr := uuid.Parse(*row.borrowedBy)
		if borrowerErr != nil {
			return catalog.Book{}, errors.Join(ErrInvalidIdentifier, borrowerErr)
		}

		book.BorrowedBy = &borrower
	}

	return book, nil
}

func borrowerValue(borrower *uuid.UUID) any {
	if borrower == nil {
		return nil
	}

	return borrower.String()
}
