// Package errors contains sentinel errors used across layers for stable
// error mapping, plus their HTTP translation.
package errors

import "errors"

var (
	// ErrNotFound indicates the requested entity does not exist or does
	// not belong to the caller.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken indicates a registration attempt with an email that
	// already has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so login failures never leak account existence.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrReservationLimit indicates the user already holds the maximum
	// number of active reservations.
	ErrReservationLimit = errors.New("active reservation limit reached")

	// ErrAlreadyReserved indicates an active reservation already exists
	// for the same user and book.
	ErrAlreadyReserved = errors.New("book already reserved")

	// ErrUnavailable indicates the book has no available copies (or does
	// not exist at reservation time).
	ErrUnavailable = errors.New("no copies available")
)
