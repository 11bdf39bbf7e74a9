package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hashed, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hashed)

	assert.NoError(t, ComparePassword(hashed, "secret123"))
	assert.Error(t, ComparePassword(hashed, "secret124"))
}

func TestHashPassword_EmptyRejected(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}

func TestComparePassword_EmptyInputs(t *testing.T) {
	assert.Error(t, ComparePassword("", "secret"))
	assert.Error(t, ComparePassword("$2a$12$something", ""))
}
