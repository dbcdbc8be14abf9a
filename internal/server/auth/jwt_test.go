package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken("alice", secret, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	name, err := GetUserNameFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "alice", name)
}

func TestGetUserNameFromToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("alice", []byte("secret-a"), time.Minute)
	require.NoError(t, err)

	_, err = GetUserNameFromToken(token, []byte("secret-b"))
	assert.Error(t, err)
}

func TestGetUserNameFromToken_Expired(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken("alice", secret, -time.Minute)
	require.NoError(t, err)

	_, err = GetUserNameFromToken(token, secret)
	assert.Error(t, err)
}

func TestGetUserNameFromToken_Garbage(t *testing.T) {
	_, err := GetUserNameFromToken("not.a.token", []byte("test-secret"))
	assert.Error(t, err)
}
