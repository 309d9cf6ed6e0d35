package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuth_PlainSecret(t *testing.T) {
	auth := NewAuth("s3cret", "")

	assert.True(t, auth.Verify("s3cret"))
	assert.False(t, auth.Verify("wrong"))
	assert.False(t, auth.Verify(""))
}

func TestAuth_EmptySecretNeverMatches(t *testing.T) {
	auth := NewAuth("", "")
	assert.False(t, auth.Verify(""), "unconfigured secret rejects everything")
}

func TestAuth_BcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	auth := NewAuth("", string(hash))
	assert.True(t, auth.Verify("s3cret"))
	assert.False(t, auth.Verify("wrong"))
}

func TestAuth_HashTakesPrecedence(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed"), bcrypt.MinCost)
	require.NoError(t, err)

	auth := NewAuth("plain", string(hash))
	assert.True(t, auth.Verify("hashed"))
	assert.False(t, auth.Verify("plain"), "plain password is ignored when a hash is set")
}
