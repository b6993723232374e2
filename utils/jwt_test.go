package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "CafeOrderBot", claims.Issuer)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"", "bukan.token.jwt", "abc"} {
		claims, err := ParseToken(bad)
		assert.Error(t, err, "token %q", bad)
		assert.Nil(t, claims)
	}
}
