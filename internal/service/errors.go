package service

import (
	"errors"
	"strings"
)

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrInvalidBookID     = errors.New("invalid book id")
	ErrInvalidCustomerID = errors.New("invalid customer id")
	// ErrNoMatches signals a search that returned zero books.
	ErrNoMatches = errors.New("no books matched")
)

// ValidationError carries one or more client-facing messages describing
// rejected input. The handler renders a single message as a plain string
// and multiple messages as a list.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

func newValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// IsValidation reports whether err is a ValidationError and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
