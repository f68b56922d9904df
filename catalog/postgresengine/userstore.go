package postgresengine

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/libercore/lending-catalog-go/catalog"
)

const (
	colFirstName    = "first_name"
	colLastName     = "last_name"
	colEmail        = "email"
	colPasswordHash = "password_hash"
	colRoles        = "roles"

	logMsgUserQueryFailed = "user query execution failed"
	logMsgUserExecFailed  = "user statement execution failed"
	logMsgUserScanFailed  = "failed to scan user row"
	logMsgUserBuildFailed = "failed to build user statement"
)

// UserStore implements catalog.UserStore on PostgreSQL.
type UserStore struct {
	engine *Engine
}

type userRow struct {
	identifier   string
	firstName    string
	lastName     string
	email        string
	passwordHash string
	rolesJSON    []byte
}

// Get returns the user with the given identifier, or nil if no row matches.
func (s *UserStore) Get(ctx context.Context, id uuid.UUID) (*catalog.User, error) {
	return s.getWhere(ctx, goqu.C(colIdentifier).Eq(id.String()))
}

// GetByEmail returns the user with the given email address, or nil if no row matches.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*catalog.User, error) {
	return s.getWhere(ctx, goqu.C(colEmail).Eq(email))
}

// Put inserts or fully replaces the user row, last write wins.
func (s *UserStore) Put(ctx context.Context, user catalog.User) (catalog.User, error) {
	rolesJSON, err := jsoniter.ConfigFastest.Marshal(user.Roles)
	if err != nil {
		return catalog.User{}, errors.Join(ErrMarshalingFailed, err)
	}

	record := goqu.Record{
		colIdentifier:   user.Identifier.String(),
		colFirstName:    user.FirstName,
		colLastName:     user.LastName,
		colEmail:        user.Email,
		colPasswordHash: user.PasswordHash,
		colRoles:        string(rolesJSON),
	}

	updateRecord := goqu.Record{
		colFirstName:    user.FirstName,
		colLastName:     user.LastName,
		colEmail:        user.Email,
		colPasswordHash: user.PasswordHash,
		colRoles:        string(rolesJSON),
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(s.engine.usersTableName).
		Rows(record).
		OnConflict(goqu.DoUpdate(colIdentifier, updateRecord))

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		s.engine.logError(logMsgUserBuildFailed, toSQLErr)
		return catalog.User{}, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	start := time.Now()
	result, execErr := s.engine.db.Exec(ctx, sqlQuery)
	s.engine.logQueryWithDuration(sqlQuery, time.Since(start))

	if execErr != nil {
		s.engine.logError(logMsgUserExecFailed, execErr, logAttrQuery, sqlQuery)
		return catalog.User{}, errors.Join(ErrExecFailed, execErr)
	}

	if _, rowsAffectedErr := result.RowsAffected(); rowsAffectedErr != nil {
		s.engine.logError(logMsgUserExecFailed, rowsAffectedErr)
		return catalog.User{}, errors.Join(ErrRowsAffectedFailed, rowsAffectedErr)
	}

	return user, nil
}

func (s *UserStore) getWhere(ctx context.Context, condition goqu.Expression) (*catalog.User, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(s.engine.usersTableName).
		Select(colIdentifier, colFirstName, colLastName, colEmail, colPasswordHash, colRoles).
		Where(condition)

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		s.engine.logError(logMsgUserBuildFailed, toSQLErr)
		return nil, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	start := time.Now()
	rows, queryErr := s.engine.db.Query(ctx, sqlQuery)
	s.engine.logQueryWithDuration(sqlQuery, time.Since(start))

	if queryErr != nil {
		s.engine.logError(logMsgUserQueryFailed, queryErr, logAttrQuery, sqlQuery)
		return nil, errors.Join(ErrQueryingFailed, queryErr)
	}

	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.engine.logWarn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}()

	if !rows.Next() {
		return nil, nil
	}

	var row userRow

	if scanErr := rows.Scan(&row.identifier, &row.firstName, &row.lastName, &row.email, &row.passwordHash, &row.rolesJSON); scanErr != nil {
		s.engine.logError(logMsgUserScanFailed, scanErr)
		return nil, errors.Join(ErrScanningRowFailed, scanErr)
	}

	user, buildErr := userFromRow(row)
	if buildErr != nil {
		s.engine.logError(logMsgUserScanFailed, buildErr)
		return nil, buildErr
	}

	return &user, nil
}

func userFromRow(row userRow) (catalog.User, error) {
	identifier, parseErr := uuid.Parse(row.identifier)
	if parseErr != nil {
		return catalog.User{}, errors.Join(ErrInvalidIdentifier, parseErr)
	}

	var roles []string
	if unmarshalErr := jsoniter.ConfigFastest.Unmarshal(row.rolesJSON, &roles); unmarshalErr != nil {
		return catalog.User{}, errors.Join(ErrUnmarshalingFailed, unmarshalErr)
	}

	return catalog.User{
		Identifier:   identifier,
		FirstName:    row.firstName,
		LastName:     row.lastName,
		Email:        row.email,
		PasswordHash: row.passwordHash,
		Roles:        roles,
	}, nil
}
