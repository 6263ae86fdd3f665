package mailer

import "net/mail"

// Validate checks an Email for the minimal shape every provider requires:
// at least one syntactically valid recipient, a non-empty subject, and a
// non-empty HTML body. The first violation is returned as a *ValidationError
// naming the offending field.
func Validate(email *Email) error {
	if len(email.To) == 0 {
		return newValidationError("to", "", ErrNoRecipient)
	}
	if err := validateAddresses("to", email.To); err != nil {
		return err
	}
	if err := validateAddresses("cc", email.CC); err != nil {
		return err
	}
	if err := validateAddresses("bcc", email.BCC); err != nil {
		return err
	}
	if email.Subject == "" {
		return newValidationError("subject", "", ErrNoSubject)
	}
	if email.HTML == "" {
		return newValidationError("html", "", ErrNoContent)
	}
	return nil
}

func validateAddresses(field string, addrs []string) error {
	for _, addr := range addrs {
		if addr == "" {
			return newValidationError(field, "", ErrInvalidAddress)
		}
		if _, err := mail.ParseAddress(addr); err != nil {
			return newValidationError(field, addr, ErrInvalidAddress)
		}
	}
	return nil
}
