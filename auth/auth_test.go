// Copyright (c) 2025 the herdwise authors.
// MIT licensed; see LICENSE.

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateID(t *testing.T) {
	id, err := GenerateID(16)
	require.NoError(t, err)
	assert.Len(t, id, 32) // hex doubles the byte length

	other, err := GenerateID(16)
	require.NoError(t, err)
	assert.NotEqual(t, id, other, "IDs must not repeat")
}

func TestGenerateID_Lengths(t *testing.T) {
	for _, n := range []int{1, 8, 12, 24} {
		id, err := GenerateID(n)
		require.NoError(t, err)
		assert.Len(t, id, n*2)
	}
}

func TestGenerateFarmerToken(t *testing.T) {
	token, err := GenerateFarmerToken()
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotContains(t, token, "=", "token must be unpadded")

	other, err := GenerateFarmerToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestHashToken_Deterministic(t *testing.T) {
	a := HashToken("some-token", "salt")
	b := HashToken("some-token", "salt")
	assert.Equal(t, a, b)

	assert.NotEqual(t, a, HashToken("some-token", "other-salt"))
	assert.NotEqual(t, a, HashToken("other-token", "salt"))
}

func TestVerifyToken(t *testing.T) {
	const salt = "test-salt"
	token, err := GenerateFarmerToken()
	require.NoError(t, err)

	stored := HashToken(token, salt)

	assert.NoError(t, VerifyToken(token, stored, salt))
	assert.ErrorIs(t, VerifyToken("wrong", stored, salt), ErrInvalidToken)
	assert.ErrorIs(t, VerifyToken("", stored, salt), ErrMissingToken)
	assert.ErrorIs(t, VerifyToken(token, stored, "wrong-salt"), ErrInvalidToken)
}
