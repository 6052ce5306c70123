// Package repository holds the MySQL implementations of the booking
// ledger and the credential store.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers the repositories translate.
const (
	errDuplicateEntry = 1062
	errDeadlock       = 1213
)

func isMySQLError(err error, number uint16) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == number
}

func isDuplicate(err error) bool { return isMySQLError(err, errDuplicateEntry) }
