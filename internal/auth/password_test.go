package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	hasher := NewPasswordHasherWithCost(bcrypt.MinCost)

	hash, err := hasher.Hash("Passw0rd")
	require.NoError(t, err)
	assert.NotEqual(t, "Passw0rd", hash)

	assert.True(t, hasher.Verify("Passw0rd", hash))
	assert.False(t, hasher.Verify("wrong-password", hash))
}

func TestPasswordHasher_HashesAreSalted(t *testing.T) {
	hasher := NewPasswordHasherWithCost(bcrypt.MinCost)

	first, err := hasher.Hash("Passw0rd")
	require.NoError(t, err)
	second, err := hasher.Hash("Passw0rd")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("Passw0rd", first))
	assert.True(t, hasher.Verify("Passw0rd", second))
}

func TestPasswordHasher_LongPasswords(t *testing.T) {
	// The sha256 prehash keeps inputs past bcrypt's 72-byte limit usable.
	hasher := NewPasswordHasherWithCost(bcrypt.MinCost)
	long := string(make([]byte, 200))

	hash, err := hasher.Hash(long)
	require.NoError(t, err)
	assert.True(t, hasher.Verify(long, hash))
}

func TestPasswordHasher_LegacyRawHash(t *testing.T) {
	// Records hashed before the prehash step hold bcrypt over the raw
	// plaintext and must still verify.
	raw, err := bcrypt.GenerateFromPassword([]byte("Passw0rd"), bcrypt.MinCost)
	require.NoError(t, err)

	hasher := NewPasswordHasherWithCost(bcrypt.MinCost)
	assert.True(t, hasher.Verify("Passw0rd", string(raw)))
	assert.False(t, hasher.Verify("wrong-password", string(raw)))
}

func TestPasswordHasher_MalformedStoredHash(t *testing.T) {
	hasher := NewPasswordHasherWithCost(bcrypt.MinCost)

	for _, stored := range []string{"", "not-a-bcrypt-hash", "$2a$zz$garbage"} {
		assert.False(t, hasher.Verify("Passw0rd", stored), "stored=%q", stored)
	}
}

func TestNewPasswordHasher_DefaultCost(t *testing.T) {
	hasher := NewPasswordHasher()
	assert.Equal(t, bcryptCost, hasher.cost)
}
