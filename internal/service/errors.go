package service

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type ErrorKind int

const (
	KindAuth ErrorKind = iota + 1
	KindValidation
	KindNotFound
	KindDuplicateUser
	KindUniqueConstraint
	KindUnauthorized
	KindForbidden
	KindLoginRequired
	KindInternal
)

// User-facing message keys. This is the closed set the UI localizes;
// internal causes are logged and never rendered.
const (
	MsgInvalidEmail    = "frm-email.invalid"
	MsgInvalidPassword = "frm-password.invalid"
	MsgPasswordLength  = "frm-password.length"
	MsgInvalidRole     = "frm-role.invalid"
	MsgDuplicateEmail  = "frm-email.duplicate"
	MsgDuplicate       = "duplicate"
	MsgUserNotFound    = "user.not-found"
	MsgUnauthorized    = "unauthorized"
	MsgForbidden       = "forbidden"
	MsgLoginRequired   = "login.required"
	MsgInternal        = "std-err.internal"
)

// AppError separates the internal cause (Err, logged server-side) from
// the user-facing message key carried to the client.
type AppError struct {
	Kind       ErrorKind
	MessageKey string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.MessageKey + ": " + e.Err.Error()
	}
	return e.MessageKey
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAuthError(messageKey string, cause error) *AppError {
	return &AppError{Kind: KindAuth, MessageKey: messageKey, Err: cause}
}

func NewValidationError(messageKey string) *AppError {
	return &AppError{Kind: KindValidation, MessageKey: messageKey}
}

func NewNotFound(entity string) *AppError {
	return &AppError{Kind: KindNotFound, MessageKey: entity + ".not-found"}
}

func NewLoginRequired() *AppError {
	return &AppError{Kind: KindLoginRequired, MessageKey: MsgLoginRequired}
}

func NewUnauthorized() *AppError {
	return &AppError{Kind: KindUnauthorized, MessageKey: MsgUnauthorized}
}

func NewForbidden() *AppError {
	return &AppError{Kind: KindForbidden, MessageKey: MsgForbidden}
}

func NewInternal(cause error) *AppError {
	return &AppError{Kind: KindInternal, MessageKey: MsgInternal, Err: cause}
}

// wrapStoreError converts a raw storage failure into the taxonomy. A
// uniqueness violation on the email column is the single
// business-meaningful conflict; any other unique violation stays
// generic, and everything else is internal.
func wrapStoreError(err error) *AppError {
	if constraint, ok := uniqueConstraint(err); ok {
		if strings.Contains(constraint, "email") {
			return &AppError{Kind: KindDuplicateUser, MessageKey: MsgDuplicateEmail, Err: err}
		}
		return &AppError{Kind: KindUniqueConstraint, MessageKey: MsgDuplicate, Err: err}
	}
	return NewInternal(err)
}

// uniqueConstraint reports whether err is a uniqueness violation and, if
// so, a string naming the violated constraint. Handles both drivers.
func uniqueConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return pgErr.ConstraintName, true
		}
		return "", false
	}
	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		if sqErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			// the sqlite message names the column: "UNIQUE constraint failed: users.email"
			return sqErr.Error(), true
		}
	}
	return "", false
}
