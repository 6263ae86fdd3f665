package mailer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func validEmail() *Email {
	return &Email{
		To:      []string{"user@example.com"},
		Subject: "Hello",
		HTML:    "<p>Hello</p>",
	}
}

func TestValidate_Success(t *testing.T) {
	t.Parallel()

	email := validEmail()
	email.CC = []string{"cc@example.com"}
	email.BCC = []string{"Audit <audit@example.com>"}

	require.NoError(t, Validate(email))
}

func TestValidate_NoRecipient(t *testing.T) {
	t.Parallel()

	email := validEmail()
	email.To = nil

	err := Validate(email)
	require.ErrorIs(t, err, ErrNoRecipient)
	require.EqualError(t, err, "email recipient is required")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "to", verr.Field)
}

func TestValidate_EmptySubject(t *testing.T) {
	t.Parallel()

	email := validEmail()
	email.Subject = ""

	err := Validate(email)
	require.ErrorIs(t, err, ErrNoSubject)
	require.EqualError(t, err, "email subject is required")
}

func TestValidate_EmptyBody(t *testing.T) {
	t.Parallel()

	email := validEmail()
	email.HTML = ""

	err := Validate(email)
	require.ErrorIs(t, err, ErrNoContent)
	require.EqualError(t, err, "email body is required")
}

func TestValidate_MalformedAddresses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		patch func(*Email)
		field string
	}{
		{"to missing domain", func(e *Email) { e.To = []string{"nodomain"} }, "to"},
		{"to empty string", func(e *Email) { e.To = []string{""} }, "to"},
		{"cc malformed", func(e *Email) { e.CC = []string{"a@@b"} }, "cc"},
		{"bcc malformed", func(e *Email) { e.BCC = []string{"spaces in@addr.com x"} }, "bcc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			email := validEmail()
			tt.patch(email)

			err := Validate(email)
			require.ErrorIs(t, err, ErrInvalidAddress)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			require.Equal(t, tt.field, verr.Field)
		})
	}
}
