// Package validators contains validators found throughout the application
// that have been abstracted away from the main code
package validators

import (
	"errors"
	"net/mail"
)

var (
	ErrEmailEmpty   = errors.New("aucune adresse email fournie")
	ErrEmailInvalid = errors.New("adresse email invalide")
)

func EmailValidator(e string) error {
	if e == "" {
		return ErrEmailEmpty
	}

	addr, err := mail.ParseAddress(e)
	if err != nil {
		return ErrEmailInvalid
	}

	// Reject display-name forms like "Alice <a@x.com>", the stored email is
	// the bare address only
	if addr.Address != e {
		return ErrEmailInvalid
	}

	return nil
}
