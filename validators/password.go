package validators

import "errors"

// Length bounds only. The hash output is fixed-size so the upper bound is
// about not hashing megabytes, not about storage.
const (
	minPasswordLen = 8
	maxPasswordLen = 255
)

var (
	ErrPasswordEmpty    = errors.New("aucun mot de passe fourni")
	ErrPasswordTooShort = errors.New("le mot de passe doit contenir au moins 8 caractères")
	ErrPasswordTooLong  = errors.New("le mot de passe est trop long")
)

func PasswordValidator(p string) error {
	switch {
	case p == "":
		return ErrPasswordEmpty
	case len(p) < minPasswordLen:
		return ErrPasswordTooShort
	case len(p) > maxPasswordLen:
		return ErrPasswordTooLong
	}

	return nil
}
