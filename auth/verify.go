// Package auth verifies submitted credentials against stored ones
package auth

import (
	"errors"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"perso/profile-api/model"
	"perso/profile-api/security"
)

// Verifier is the authorize hook of the login flow. It owns the single
// read-only path from (email, password) to a session-ready identity.
type Verifier struct {
	DB    *gorm.DB
	Argon *security.ArgonHash
}

func NewVerifier(db *gorm.DB, argon *security.ArgonHash) *Verifier {
	return &Verifier{DB: db, Argon: argon}
}

// Verify returns the sanitized identity for a matching (email, password)
// pair, or nil to reject. Empty input rejects before the store is touched,
// an unknown email and a wrong password both reject the same way. A nil, nil
// return is a rejection, not a failure; the error is only ever a store or
// hasher malfunction. Repeated failures are not counted or rate limited.
func (v *Verifier) Verify(email, password string) (*security.SessionUser, error) {
	if email == "" || password == "" {
		return nil, nil
	}

	var user model.User

	err := v.DB.
		Preload("ProfileImages").
		Where("email = ?", email).
		First(&user).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	ok, err := v.Argon.VerifyPasswd(password, user.PasswordHash)
	if err != nil {
		zap.L().Error("Failed to verify password", zap.Error(err), zap.Uint("userID", user.ID))
		return nil, err
	}

	if !ok {
		return nil, nil
	}

	identity := &security.SessionUser{
		ID:        strconv.FormatUint(uint64(user.ID), 10),
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}

	if len(user.ProfileImages) > 0 {
		identity.Image = &user.ProfileImages[0].Path
	}

	return identity, nil
}
