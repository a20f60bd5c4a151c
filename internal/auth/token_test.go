package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseAccessToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	tok, err := GenerateAccessToken(42, true)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := ParseAndValidate(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "42", claims.Subject)
}

func TestParseRejeitaAssinaturaErrada(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")
	tok, err := GenerateAccessToken(1, false)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "outro-segredo")
	_, err = ParseAndValidate(tok)
	assert.Error(t, err)
}

func TestParseRejeitaTokenExpirado(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	claims := &Claims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("segredo-de-teste"))
	require.NoError(t, err)

	_, err = ParseAndValidate(tok)
	assert.Error(t, err)
}

func TestParseRejeitaSemSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := ParseAndValidate("qualquer")
	assert.Error(t, err)
}
