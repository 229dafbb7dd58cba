package pgerr

import (
	"errors"
	"testing"

	"github.com/dmitrijs2005/messenger/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestTranslate_UniqueViolation(t *testing.T) {
	src := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	err := Translate(src)

	var conflict *common.UniqueConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected UniqueConflictError, got %T", err)
	}
	if len(conflict.Fields) != 1 || conflict.Fields[0] != "email" {
		t.Fatalf("unexpected fields: %v", conflict.Fields)
	}
	if !errors.Is(err, src) {
		t.Fatalf("expected translated error to wrap the original")
	}
}

func TestTranslate_UnknownConstraint(t *testing.T) {
	src := &pgconn.PgError{Code: "23505", ConstraintName: "users_something_else"}

	var conflict *common.UniqueConflictError
	if !errors.As(Translate(src), &conflict) {
		t.Fatalf("expected UniqueConflictError")
	}
	if len(conflict.Fields) != 0 {
		t.Fatalf("expected no field names for unknown constraint, got %v", conflict.Fields)
	}
}

func TestTranslate_ForeignKeyViolation(t *testing.T) {
	src := &pgconn.PgError{Code: "23503", ConstraintName: "follows_follower_id_fkey"}

	if !errors.Is(Translate(src), common.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for a foreign-key violation")
	}
}

func TestTranslate_PassesThroughOtherErrors(t *testing.T) {
	src := errors.New("connection refused")
	if got := Translate(src); got != src {
		t.Fatalf("expected unrelated error to pass through unchanged, got %v", got)
	}

	pg := &pgconn.PgError{Code: "57014"} // query_canceled
	if got := Translate(pg); got != error(pg) {
		t.Fatalf("expected non-constraint pg error to pass through unchanged, got %v", got)
	}
}
