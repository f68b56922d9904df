// Package adapters wraps the supported database clients (pgx pool, sqlx,
// database/sql) behind one small interface so the store engine can build and
// execute SQL without caring which client the caller wired in.
package adapters
