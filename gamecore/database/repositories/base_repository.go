package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

// DefaultQueryTimeout bounds every repository call.
const DefaultQueryTimeout = 10 * time.Second

// BaseRepository provides common repository functionality. Repositories are
// built over bun.IDB so the same code runs on *bun.DB and bun.Tx; mutating
// engine operations construct tx-scoped repositories inside RunInTx.
type BaseRepository struct {
	db             bun.IDB
	defaultTimeout time.Duration
}

func NewBaseRepository(db bun.IDB) *BaseRepository {
	return &BaseRepository{
		db:             db,
		defaultTimeout: DefaultQueryTimeout,
	}
}

// RepositoryError represents a repository-level error
type RepositoryError struct {
	Operation string
	Entity    string
	Err       error
}

func (re *RepositoryError) Error() string {
	return fmt.Sprintf("repository error during %s for %s: %v", re.Operation, re.Entity, re.Err)
}

func (re *RepositoryError) Unwrap() error {
	return re.Err
}

// NotFoundError represents an entity not found error
type NotFoundError struct {
	Entity string
	ID     interface{}
}

func (nfe *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %v not found", nfe.Entity, nfe.ID)
}

// ConflictError represents a data conflict error
type ConflictError struct {
	Entity string
	Field  string
	Value  interface{}
}

func (ce *ConflictError) Error() string {
	return fmt.Sprintf("%s with %s %v already exists", ce.Entity, ce.Field, ce.Value)
}

// IsNotFound reports whether err is a repository not-found error.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// IsConflict reports whether err is a repository conflict error.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// isUniqueViolation detects a unique-constraint failure from either driver
// (pgdriver SQLSTATE 23505, or sqlite's constraint message in tests).
func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint")
}

// WithTimeout creates a context with the default timeout
func (br *BaseRepository) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, br.defaultTimeout)
}

// HandleError standardizes error handling across repositories
func (br *BaseRepository) HandleError(operation, entity string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{Entity: entity, ID: "unknown"}
	}
	if isUniqueViolation(err) {
		return &ConflictError{Entity: entity, Field: "id", Value: "unknown"}
	}

	return &RepositoryError{
		Operation: operation,
		Entity:    entity,
		Err:       err,
	}
}

// HandleErrorWithID standardizes error handling with specific ID
func (br *BaseRepository) HandleErrorWithID(operation, entity string, id interface{}, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	if isUniqueViolation(err) {
		return &ConflictError{Entity: entity, Field: "id", Value: id}
	}

	return &RepositoryError{
		Operation: operation,
		Entity:    entity,
		Err:       err,
	}
}
