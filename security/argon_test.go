package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	a := NewArgon()

	encoded, err := a.GenerateFromPassword("longenough1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	ok, err := a.VerifyPasswd("longenough1", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.VerifyPasswd("wrongpassword", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyEmbeddedParamsWin(t *testing.T) {
	a := NewArgon()

	encoded, err := a.GenerateFromPassword("some password")
	require.NoError(t, err)

	// A hasher with different params must still verify old hashes
	b := &ArgonHash{
		Memory:      32 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}

	ok, err := b.VerifyPasswd("some password", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyMalformedHash(t *testing.T) {
	a := NewArgon()

	for _, e := range []string{
		"",
		"not a hash",
		"$bcrypt$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=2$!!!$aGFzaA",
	} {
		ok, err := a.VerifyPasswd("whatever", e)
		assert.False(t, ok)
		assert.Error(t, err)
	}
}

func TestGenerateUniqueSalts(t *testing.T) {
	a := NewArgon()

	first, err := a.GenerateFromPassword("longenough1")
	require.NoError(t, err)

	second, err := a.GenerateFromPassword("longenough1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
