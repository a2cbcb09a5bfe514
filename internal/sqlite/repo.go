package sqlite

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"

	"gemsub/internal/gemsub"
)

// Ensure Repo implements every service interface.
var (
	_ gemsub.FeedService         = (*Repo)(nil)
	_ gemsub.UserService         = (*Repo)(nil)
	_ gemsub.SubscriptionService = (*Repo)(nil)
	_ gemsub.ViewService         = (*Repo)(nil)
)

type Repo struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) Repo {
	return Repo{db: db}
}

// Extended result codes from the sqlite engine.
const (
	codeConstraintUnique     = 2067
	codeConstraintPrimaryKey = 1555
	codeConstraintForeignKey = 787
)

// Reports whether err is a UNIQUE or PRIMARY KEY constraint violation.
func isUniqueViolation(err error) bool {
	if sqliteErr := (&sqlite.Error{}); errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == codeConstraintUnique || sqliteErr.Code() == codeConstraintPrimaryKey
	}

	return false
}

// Reports whether err is a FOREIGN KEY constraint violation, i.e. a write
// referencing a row that does not exist.
func isForeignKeyViolation(err error) bool {
	if sqliteErr := (&sqlite.Error{}); errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == codeConstraintForeignKey
	}

	return false
}
