// Package memoryengine provides mutex-guarded in-memory implementations of the
// catalog store contracts. It honors the same borrower compare-and-swap
// semantics as the Postgres engine and is intended for tests and for running
// the demo without a database.
package memoryengine
