package postgresengine

import (
	"database/sql"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/libercore/lending-catalog-go/catalog"
	"github.com/libercore/lending-catalog-go/catalog/postgresengine/internal/adapters"
)

const (
	defaultBooksTableName = "books"
	defaultUsersTableName = "users"

	dialectPostgres = "postgres"

	logAttrError      = "error"
	logAttrQuery      = "query"
	logAttrDurationMS = "duration_ms"
	logMsgSQLExecuted = "executed sql"
)

// Logger interface for SQL query logging, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Engine holds the database adapter and configuration shared by the book and
// user stores. Obtain the stores with Books() and Users().
type Engine struct {
	db             adapters.DBAdapter
	booksTableName string
	usersTableName string
	logger         Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine) error

// WithBooksTableName sets the table name for book records.
func WithBooksTableName(tableName string) Option {
	return func(e *Engine) error {
		if tableName == "" {
			return catalog.ErrEmptyTableName
		}

		e.booksTableName = tableName

		return nil
	}
}

// WithUsersTableName sets the table name for user records.
func WithUsersTableName(tableName string) Option {
	return func(e *Engine) error {
		if tableName == "" {
			return catalog.ErrEmptyTableName
		}

		e.usersTableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the engine.
// Debug level receives SQL statements with execution timing, error level
// receives critical failures that cause operation failures.
func WithLogger(logger Logger) Option {
	return func(e *Engine) error {
		e.logger = logger
		return nil
	}
}

// NewEngineFromPGXPool creates a new Engine using a pgx pool with optional configuration.
func NewEngineFromPGXPool(db *pgxpool.Pool, options ...Option) (*Engine, error) {
	if db == nil {
		return nil, catalog.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewPGXAdapter(db), options...)
}

// NewEngineFromSQLDB creates a new Engine using a sql.DB with optional configuration.
func NewEngineFromSQLDB(db *sql.DB, options ...Option) (*Engine, error) {
	if db == nil {
		return nil, catalog.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewSQLAdapter(db), options...)
}

// NewEngineFromSQLX creates a new Engine using a sqlx.DB with optional configuration.
func NewEngineFromSQLX(db *sqlx.DB, options ...Option) (*Engine, error) {
	if db == nil {
		return nil, catalog.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewSQLXAdapter(db), options...)
}

func newEngine(db adapters.DBAdapter, options ...Option) (*Engine, error) {
	engine := &Engine{
		db:             db,
		booksTableName: defaultBooksTableName,
		usersTableName: defaultUsersTableName,
	}

	for _, option := range options {
		if err := option(engine); err != nil {
			return nil, err
		}
	}

	return engine, nil
}

// Books returns the book store backed by this engine.
func (e *Engine) Books() *BookStore {
	return &BookStore{engine: e}
}

// Users returns the user store backed by this engine.
func (e *Engine) Users() *UserStore {
	return &UserStore{engine: e}
}

// logQueryWithDuration logs SQL statements with execution time at debug level.
func (e *Engine) logQueryWithDuration(sqlQuery string, duration time.Duration) {
	if e.logger != nil {
		e.logger.Debug(logMsgSQLExecuted, logAttrDurationMS, durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

func (e *Engine) logError(msg string, err error, args ...any) {
	if e.logger != nil {
		allArgs := append([]any{logAttrError, err.Error()}, args...)
		e.logger.Error(msg, allArgs...)
	}
}

func (e *Engine) logWarn(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Warn(msg, args...)
	}
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
