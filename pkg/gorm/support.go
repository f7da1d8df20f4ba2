package gorm

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	stdgorm "gorm.io/gorm"
)

const uniqueViolation = "23505"

func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, stdgorm.ErrRecordNotFound)
}

func IsFoundButHasErrors(err error) bool {
	if err == nil {
		return false
	}

	return !errors.Is(err, stdgorm.ErrRecordNotFound)
}

func HasDbIssues(err error) bool {
	return IsNotFound(err) || IsFoundButHasErrors(err)
}

// IsDuplicated reports whether the error stems from a unique-constraint
// violation. It understands gorm's translated error, the raw postgres
// SQLSTATE and the sqlite message used by the test suite.
func IsDuplicated(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, stdgorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
