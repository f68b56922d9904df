package lending

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/libercore/lending-catalog-go/catalog"
)

const (
	logMsgFindBook            = "find book for identifier"
	logMsgFindAllBooks        = "find all books"
	logMsgSaveBook            = "save book"
	logMsgDeleteBook          = "delete book"
	logMsgBookBorrowed        = "borrowed book for user"
	logMsgBookReturned        = "returned book for user"
	logMsgPreconditionFailed  = "lending precondition failed"
	logMsgLostConcurrencyRace = "lost concurrency race, reporting failed precondition"

	logAttrBookID = "book_id"
	logAttrUserID = "user_id"
	logAttrReason = "reason"
)

// Logger interface for operational logging of the lending service.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Service orchestrates all catalog operations, enforcing the authorization
// predicates and lending invariants, and drives the persistence calls against
// the book and user stores. Every operation takes the resolved principal as an
// explicit parameter; nothing is inferred from ambient state.
type Service struct {
	books  catalog.BookStore
	users  catalog.UserStore
	idGen  catalog.IdentifierGenerator
	logger Logger
}

// Option defines a functional option for configuring the Service.
type Option func(*Service)

// WithIdentifierGenerator replaces the default UUID generator used on the create path.
func WithIdentifierGenerator(gen catalog.IdentifierGenerator) Option {
	return func(s *Service) {
		s.idGen = gen
	}
}

// WithLogger sets the logger for the service.
func WithLogger(logger Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a lending service over the given stores.
func NewService(books catalog.BookStore, users catalog.UserStore, options ...Option) (*Service, error) {
	if books == nil {
		return nil, ErrNilBookStore
	}

	if users == nil {
		return nil, ErrNilUserStore
	}

	service := &Service{
		books: books,
		users: users,
		idGen: catalog.UUIDGenerator{},
	}

	for _, option := range options {
		option(service)
	}

	return service, nil
}

// FindByIdentifier returns the book with the given identifier, or nil if it
// does not exist. Any authenticated caller may read.
func (s *Service) FindByIdentifier(ctx context.Context, id uuid.UUID, principal *catalog.Principal) (*catalog.Book, error) {
	if err := checkGuards(principal, requireAuthenticated()); err != nil {
		return nil, err
	}

	s.logDebug(logMsgFindBook, logAttrBookID, id.String())

	return s.books.Get(ctx, id)
}

// ListAll returns all books in store-native order. Any authenticated caller may read.
func (s *Service) ListAll(ctx context.Context, principal *catalog.Principal) ([]catalog.Book, error) {
	if err := checkGuards(principal, requireAuthenticated()); err != nil {
		return nil, err
	}

	s.logDebug(logMsgFindAllBooks)

	return s.books.List(ctx)
}

// CreateOrUpdate validates and persists the book, requiring the curator role.
// A book without an identifier gets one assigned before the first persist; once
// assigned, the identifier is immutable for the book's lifetime.
func (s *Service) CreateOrUpdate(ctx context.Context, book catalog.Book, principal *catalog.Principal) (catalog.Book, error) {
	if err := checkGuards(principal, requireAuthenticated(), requireRole(catalog.RoleLibraryCurator)); err != nil {
		return catalog.Book{}, err
	}

	if err := book.Validate(); err != nil {
		return catalog.Book{}, err
	}

	if book.Identifier == uuid.Nil {
		book.Identifier = s.idGen.Next()
	}

	s.logDebug(logMsgSaveBook, logAttrBookID, book.Identifier.String())

	return s.books.Put(ctx, book)
}

// Delete removes the book, requiring the curator role. It reports whether a
// book existed. Deleting a currently borrowed book is permitted; the borrower
// reference lives on the book row and ceases to exist with it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, principal *catalog.Principal) (bool, error) {
	if err := checkGuards(principal, requireAuthenticated(), requireRole(catalog.RoleLibraryCurator)); err != nil {
		return false, err
	}

	s.logDebug(logMsgDeleteBook, logAttrBookID, id.String())

	return s.books.Delete(ctx, id)
}

// Borrow transitions the book from available to borrowed by the requested
// user. It requires the LIBRARY_USER role; a principal may only borrow on
// their own behalf. All failed lending preconditions, including a lost
// concurrency race, yield the opaque (nil, nil) outcome.
func (s *Service) Borrow(
	ctx context.Context,
	bookID uuid.UUID,
	requestedUserID uuid.UUID,
	principal *catalog.Principal,
) (*catalog.Book, error) {

	if err := checkGuards(principal, requireAuthenticated(), requireRole(catalog.RoleLibraryUser)); err != nil {
		return nil, err
	}

	book, user, err := s.readLendingState(ctx, bookID, requestedUserID)
	if err != nil {
		return nil, err
	}

	decision := DecideBorrow(book, user, requestedUserID, *principal)
	if !decision.Applies {
		s.logDebug(logMsgPreconditionFailed, logAttrBookID, bookID.String(), logAttrReason, decision.Reason)
		return nil, nil
	}

	updated, swapErr := s.books.SwapBorrower(ctx, bookID, nil, &requestedUserID)
	if swapErr != nil {
		return s.handleSwapError(swapErr, bookID)
	}

	s.logInfo(logMsgBookBorrowed, logAttrBookID, bookID.String(), logAttrUserID, requestedUserID.String())

	return updated, nil
}

// Return transitions the book from borrowed back to available. It requires the
// LIBRARY_USER role; only the recorded borrower may return the book. All failed
// lending preconditions, including a lost concurrency race, yield the opaque
// (nil, nil) outcome.
func (s *Service) Return(
	ctx context.Context,
	bookID uuid.UUID,
	requestedUserID uuid.UUID,
	principal *catalog.Principal,
) (*catalog.Book, error) {

	if err := checkGuards(principal, requireAuthenticated(), requireRole(catalog.RoleLibraryUser)); err != nil {
		return nil, err
	}

	book, user, err := s.readLendingState(ctx, bookID, requestedUserID)
	if err != nil {
		return nil, err
	}

	decision := DecideReturn(book, user, requestedUserID, *principal)
	if !decision.Applies {
		s.logDebug(logMsgPreconditionFailed, logAttrBookID, bookID.String(), logAttrReason, decision.Reason)
		return nil, nil
	}

	updated, swapErr := s.books.SwapBorrower(ctx, bookID, &requestedUserID, nil)
	if swapErr != nil {
		return s.handleSwapError(swapErr, bookID)
	}

	s.logInfo(logMsgBookReturned, logAttrBookID, bookID.String(), logAttrUserID, requestedUserID.String())

	return updated, nil
}

// readLendingState reads the book and user records the decision functions need.
// Store errors propagate unchanged; absence is represented as nil.
func (s *Service) readLendingState(ctx context.Context, bookID uuid.UUID, userID uuid.UUID) (
	*catalog.Book,
	*catalog.User,
	error,
) {

	book, err := s.books.Get(ctx, bookID)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	return book, user, nil
}

// handleSwapError maps a lost concurrency race to the opaque absent outcome and
// propagates every other store error unchanged.
func (s *Service) handleSwapError(swapErr error, bookID uuid.UUID) (*catalog.Book, error) {
	if errors.Is(swapErr, catalog.ErrConcurrencyConflict) {
		s.logDebug(logMsgLostConcurrencyRace, logAttrBookID, bookID.String())
		return nil, nil
	}

	return nil, swapErr
}

func (s *Service) logDebug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *Service) logInfo(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}
