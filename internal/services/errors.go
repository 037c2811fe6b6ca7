package services

import (
	"errors"
	"strings"
)

// Error variables
var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

// ValidationError reports every field constraint violated by a create or
// update, one message per field.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}

// TransientError reports a store or connection failure. The caller decides
// whether to retry; the service never retries internally.
type TransientError struct {
	Detail string
}

func (e *TransientError) Error() string {
	return e.Detail
}

// transient wraps any unclassified failure into a TransientError carrying the
// underlying error text.
func transient(err error) *TransientError {
	return &TransientError{Detail: err.Error()}
}
