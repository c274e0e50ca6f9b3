package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports a unique-key failure from any of the drivers the
// service runs on: pgx through GORM, lib/pq for goose, or SQLite locally.
// With a constraint name, only violations of that constraint match.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}

	var (
		pgxErr  *pgconn.PgError
		pqErr   *pq.Error
		liteErr sqlite3.Error
	)
	switch {
	case errors.As(err, &pgxErr):
		return pgxErr.Code == pgUniqueViolation && matchesConstraint(pgxErr.ConstraintName, err, constraintName)
	case errors.As(err, &pqErr):
		return string(pqErr.Code) == pgUniqueViolation && matchesConstraint(pqErr.Constraint, err, constraintName)
	case errors.As(err, &liteErr):
		unique := liteErr.ExtendedCode == sqlite3.ErrConstraintUnique || liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
		return unique && matchesConstraint("", err, constraintName)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return matchesConstraint("", err, constraintName)
	}
	return false
}

// matchesConstraint falls back to the message because SQLite reports
// columns rather than index names.
func matchesConstraint(reported string, err error, want string) bool {
	if want == "" || reported == want {
		return true
	}
	return strings.Contains(err.Error(), want)
}

// IsNotFound reports whether err is GORM's record-not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
