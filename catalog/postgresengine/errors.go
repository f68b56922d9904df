package postgresengine

import "errors"

var (
	// ErrBuildingQueryFailed is returned when goqu fails to render a statement to SQL.
	ErrBuildingQueryFailed = errors.New("building query failed")

	// ErrQueryingFailed is returned when executing a select statement fails.
	ErrQueryingFailed = errors.New("querying failed")

	// ErrExecFailed is returned when executing a write statement fails.
	ErrExecFailed = errors.New("statement execution failed")

	// ErrScanningRowFailed is returned when scanning a database row fails.
	ErrScanningRowFailed = errors.New("scanning database row failed")

	// ErrRowsAffectedFailed is returned when the affected row count cannot be read.
	ErrRowsAffectedFailed = errors.New("getting rows affected count failed")

	// ErrMarshalingFailed is returned when a JSONB column payload cannot be marshaled.
	ErrMarshalingFailed = errors.New("marshaling jsonb payload failed")

	// ErrUnmarshalingFailed is returned when a JSONB column payload cannot be unmarshaled.
	ErrUnmarshalingFailed = errors.New("unmarshaling jsonb payload failed")

	// ErrInvalidIdentifier is returned when a stored identifier cannot be parsed as a UUID.
	ErrInvalidIdentifier = errors.New("invalid identifier in database row")
)
