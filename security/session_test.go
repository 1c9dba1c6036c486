package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintAndParse(t *testing.T) {
	s := NewSessions("super-secret", time.Hour)

	img := "https://img.example/abc.webp"
	created := time.Date(2024, 5, 10, 12, 30, 0, 0, time.UTC)

	token, err := s.Mint(&SessionUser{
		ID:        "42",
		Username:  "alice",
		Email:     "a@x.com",
		Image:     &img,
		CreatedAt: created,
	})
	require.NoError(t, err)

	got := s.Parse(token)
	require.NotNil(t, got)

	assert.Equal(t, "42", got.ID)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "a@x.com", got.Email)
	require.NotNil(t, got.Image)
	assert.Equal(t, img, *got.Image)
	assert.True(t, got.CreatedAt.Equal(created))
}

func TestParseNoImage(t *testing.T) {
	s := NewSessions("super-secret", time.Hour)

	token, err := s.Mint(&SessionUser{
		ID:       "7",
		Username: "bob",
		Email:    "b@x.com",
	})
	require.NoError(t, err)

	got := s.Parse(token)
	require.NotNil(t, got)
	assert.Nil(t, got.Image)
}

func TestParseWrongSecret(t *testing.T) {
	s := NewSessions("right-secret", time.Hour)

	token, err := s.Mint(&SessionUser{ID: "1", Username: "u", Email: "u@x.com"})
	require.NoError(t, err)

	other := NewSessions("wrong-secret", time.Hour)
	assert.Nil(t, other.Parse(token))
}

func TestParseExpired(t *testing.T) {
	s := NewSessions("super-secret", -time.Minute)

	token, err := s.Mint(&SessionUser{ID: "1", Username: "u", Email: "u@x.com"})
	require.NoError(t, err)

	assert.Nil(t, s.Parse(token))
}

func TestParseGarbage(t *testing.T) {
	s := NewSessions("super-secret", time.Hour)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		assert.Nil(t, s.Parse(tok))
	}
}

// A token signed with the right secret but the wrong algorithm must resolve
// to anonymous, not to a user
func TestParseRejectsForeignAlg(t *testing.T) {
	s := NewSessions("super-secret", time.Hour)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"id":  "42",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString(s.Secret)
	require.NoError(t, err)

	assert.Nil(t, s.Parse(signed))
}

// Ambient claims a token might carry do not survive reconstruction, the
// session user is rebuilt from the known claim set alone
func TestParseFullReplacement(t *testing.T) {
	s := NewSessions("super-secret", time.Hour)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       "42",
		"username": "alice",
		"email":    "a@x.com",
		"admin":    true,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString(s.Secret)
	require.NoError(t, err)

	got := s.Parse(signed)
	require.NotNil(t, got)
	assert.Equal(t, "42", got.ID)
	assert.Equal(t, "alice", got.Username)
	assert.Nil(t, got.Image)
	assert.True(t, got.CreatedAt.IsZero())
}

func TestParseMissingID(t *testing.T) {
	s := NewSessions("super-secret", time.Hour)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "nobody",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString(s.Secret)
	require.NoError(t, err)

	assert.Nil(t, s.Parse(signed))
}
