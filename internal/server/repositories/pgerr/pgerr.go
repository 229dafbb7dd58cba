// Package pgerr translates PostgreSQL driver errors into the shared error
// taxonomy so that services never depend on pgx directly.
package pgerr

import (
	"errors"

	"github.com/dmitrijs2005/messenger/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes (class 23 — integrity constraint violation).
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
)

// constraintFields maps schema constraint names to the user-visible fields
// they protect. Unknown constraints produce a conflict with no field names.
var constraintFields = map[string][]string{
	"users_email_key":       {"email"},
	"users_username_key":    {"username"},
	"users_facebook_id_key": {"facebook_id"},
	"follows_pkey":          {"follower_id", "followed_id"},
}

// Translate maps a store error to the domain taxonomy:
//
//   - unique violations (23505) become *common.UniqueConflictError carrying
//     the conflicting fields,
//   - foreign-key violations (23503) become common.ErrUserNotFound,
//   - anything else is returned unchanged.
func Translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		return &common.UniqueConflictError{
			Fields: constraintFields[pgErr.ConstraintName],
			Err:    err,
		}
	case codeForeignKeyViolation:
		return common.ErrUserNotFound
	default:
		return err
	}
}
