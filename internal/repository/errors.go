// Package repository defines the persistence contract for every entity
// and its MySQL implementation. Sentinel errors let callers tell apart
// missing rows, unique constraint violations and broken references
// without inspecting driver errors.
package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned by singular lookups when no row matches.
// List lookups return an empty slice instead.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a unique constraint
// (users.email, payments.transaction_id, favorites(user_id, terrain_id)).
var ErrDuplicate = errors.New("duplicate")

// ErrForeignKey is returned when an insert references a row that does
// not exist.
var ErrForeignKey = errors.New("foreign key violation")

// ErrInvalid is returned when a row breaks a column invariant such as
// the rating range or booking date order.
var ErrInvalid = errors.New("invalid row")

const (
	mysqlDuplicateEntry  = 1062
	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
	mysqlCheckConstraint = 3819
)

// classify maps MySQL driver errors onto the sentinel errors above.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlDuplicateEntry:
			return fmt.Errorf("%w: %s", ErrDuplicate, me.Message)
		case mysqlRowIsReferenced, mysqlNoReferencedRow:
			return fmt.Errorf("%w: %s", ErrForeignKey, me.Message)
		case mysqlCheckConstraint:
			return fmt.Errorf("%w: %s", ErrInvalid, me.Message)
		}
	}
	return err
}
