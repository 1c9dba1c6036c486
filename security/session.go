package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionUser is the claim set carried inside a session token. It is the
// only thing a token transports: id, username, email, first profile image
// and account creation date. It is rebuilt from scratch on every request,
// nothing else found in a token survives the round trip.
type SessionUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Image     *string   `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
}

// Sessions mints and resolves session tokens. The secret and lifetime are
// injected here once at startup instead of being read from process-wide
// state at every call site.
type Sessions struct {
	Secret []byte
	TTL    time.Duration
}

func NewSessions(secret string, ttl time.Duration) *Sessions {
	return &Sessions{
		Secret: []byte(secret),
		TTL:    ttl,
	}
}

// Mint signs a token for a verified user
func (s *Sessions) Mint(u *SessionUser) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"id":        u.ID,
		"username":  u.Username,
		"email":     u.Email,
		"image":     nil,
		"createdAt": u.CreatedAt.Format(time.RFC3339),
		"iat":       now.Unix(),
		"exp":       now.Add(s.TTL).Unix(),
	}
	if u.Image != nil {
		claims["image"] = *u.Image
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.Secret)
}

// Parse resolves a token back into the user it was minted for. A token that
// fails verification for any reason (bad signature, wrong algorithm, expiry,
// mangled claims) yields nil, meaning anonymous. It is never an error: an
// invalid token and a missing token are the same thing.
func (s *Sessions) Parse(tokenStr string) *SessionUser {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.Secret, nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}

	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return nil
	}

	username, _ := claims["username"].(string)
	email, _ := claims["email"].(string)

	u := &SessionUser{
		ID:       id,
		Username: username,
		Email:    email,
	}

	if img, ok := claims["image"].(string); ok && img != "" {
		u.Image = &img
	}

	if raw, ok := claims["createdAt"].(string); ok {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			u.CreatedAt = ts
		}
	}

	return u
}
