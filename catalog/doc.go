// Package catalog defines the domain model of the library catalog: books, users,
// principals and roles, together with the store contracts the lending service
// drives and the identifier generator used on the create path.
//
// The package carries no persistence or transport concerns. Store implementations
// live in the engine subpackages (postgresengine, memoryengine) and must honor the
// atomicity contract documented on BookStore.
package catalog
