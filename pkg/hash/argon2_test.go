package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	encoded, err := HashPassword("contrasena-segura")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	ok, err := VerifyPassword("contrasena-segura", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("otra-contrasena", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_UniqueSalt(t *testing.T) {
	first, err := HashPassword("misma-contrasena")
	require.NoError(t, err)
	second, err := HashPassword("misma-contrasena")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyPassword_InvalidFormat(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"not a hash", "hola"},
		{"wrong variant", "$argon2i$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA"},
		{"missing parts", "$argon2id$v=19$m=65536,t=3,p=2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyPassword("contrasena", tt.encoded)
			assert.ErrorIs(t, err, ErrInvalidHash)
		})
	}
}
