package repository

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrQuery             = errors.New("query failed")
	ErrWrite             = errors.New("write failed")
	ErrReferenceNotFound = errors.New("referenced record does not exist")
	ErrDuplicate         = errors.New("duplicate record")
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"

	mysqlNoReferencedRow = 1452
	mysqlDuplicateEntry  = 1062
)

func queryError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrQuery, op, err)
}

func writeError(op string, err error) error {
	if kind := constraintKind(err); kind != nil {
		return fmt.Errorf("%w: %w: %s: %w", ErrWrite, kind, op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrWrite, op, err)
}

// constraintKind maps driver constraint errors onto ErrReferenceNotFound
// or ErrDuplicate. It returns nil for anything else.
func constraintKind(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return ErrReferenceNotFound
		case pgUniqueViolation:
			return ErrDuplicate
		}
		return nil
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlNoReferencedRow:
			return ErrReferenceNotFound
		case mysqlDuplicateEntry:
			return ErrDuplicate
		}
	}
	return nil
}
