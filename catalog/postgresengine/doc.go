// Package postgresengine implements the catalog store contracts on PostgreSQL.
//
// The engine can be constructed from a pgx pool, a sqlx.DB or a plain sql.DB;
// all three are wrapped behind one internal adapter interface. SQL is built
// with goqu. The borrower transition of a book is written as a conditional
// UPDATE whose WHERE clause pins the previously read borrower reference, so a
// lost update surfaces as catalog.ErrConcurrencyConflict instead of silently
// overwriting a concurrent lend or return.
//
// Expected schema:
//
//	CREATE TABLE books (
//	    identifier  UUID PRIMARY KEY,
//	    isbn        TEXT NOT NULL,
//	    title       TEXT NOT NULL,
//	    description TEXT NOT NULL DEFAULT '',
//	    authors     JSONB NOT NULL,
//	    borrowed_by UUID NULL
//	);
//
//	CREATE TABLE users (
//	    identifier    UUID PRIMARY KEY,
//	    first_name    TEXT NOT NULL,
//	    last_name     TEXT NOT NULL,
//	    email         TEXT NOT NULL UNIQUE,
//	    password_hash TEXT NOT NULL,
//	    roles         JSONB NOT NULL
//	);
package postgresengine
