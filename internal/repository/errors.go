// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers and the booking service to distinguish between different failure
// scenarios without inspecting driver errors themselves.
package repository

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// ErrLockTimeout is returned when InnoDB gave up waiting for a row lock
// (innodb_lock_wait_timeout).  The transaction has been rolled back.
var ErrLockTimeout = errors.New("lock wait timeout")

// ErrDeadlock is returned when InnoDB chose this transaction as a deadlock
// victim.  The caller may resubmit.
var ErrDeadlock = errors.New("deadlock")

// ErrDuplicate is returned when an insert hits a unique key.
var ErrDuplicate = errors.New("duplicate key")

// ErrForeignKey is returned when a referenced company or facility row is gone.
var ErrForeignKey = errors.New("foreign key violation")

// MySQL server error numbers we classify.
const (
	mysqlErrDuplicate       = 1062
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDeadlock        = 1213
	mysqlErrNoReferencedRow = 1452
)

// classify wraps well-known MySQL errors with a repository sentinel while
// keeping the driver error in the chain.
func classify(err error) error {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return err
	}
	switch me.Number {
	case mysqlErrLockWaitTimeout:
		return fmt.Errorf("%w: %w", ErrLockTimeout, err)
	case mysqlErrDeadlock:
		return fmt.Errorf("%w: %w", ErrDeadlock, err)
	case mysqlErrDuplicate:
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	case mysqlErrNoReferencedRow:
		return fmt.Errorf("%w: %w", ErrForeignKey, err)
	}
	return err
}
