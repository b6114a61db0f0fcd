package services

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrDuplicate  = errors.New("already exists")
	ErrForbidden  = errors.New("forbidden")
)

// Login failures
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountPending     = errors.New("account is pending approval")
	ErrAccountRejected    = errors.New("account registration was rejected")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// ValidationError carries a message safe to return to the client
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// notFound maps pgx.ErrNoRows onto ErrNotFound with the entity name
func notFound(err error, entity string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %w", entity, ErrNotFound)
	}
	return err
}

// missing reports a delete/update that touched no row
func missing(ok bool, err error, entity string) error {
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s %w", entity, ErrNotFound)
	}
	return nil
}
