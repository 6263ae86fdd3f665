package mailer

import "errors"

var (
	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("email recipient is required")

	// ErrNoSubject indicates no subject was provided.
	ErrNoSubject = errors.New("email subject is required")

	// ErrNoContent indicates no HTML content was provided.
	ErrNoContent = errors.New("email body is required")

	// ErrInvalidAddress indicates a syntactically invalid email address.
	ErrInvalidAddress = errors.New("invalid email address")

	// ErrSendFailed indicates email sending failed.
	ErrSendFailed = errors.New("failed to send email")
)

// ValidationError reports a malformed send request. It is raised
// synchronously before any queue entry is created and is never retried.
type ValidationError struct {
	err   error
	Field string
	Value string
}

func newValidationError(field, value string, err error) *ValidationError {
	return &ValidationError{Field: field, Value: value, err: err}
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return e.err.Error()
	}
	return e.err.Error() + ": " + e.Value
}

func (e *ValidationError) Unwrap() error { return e.err }
