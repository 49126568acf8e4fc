package jwt

import (
	"testing"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse(t *testing.T) {
	tok, err := Generate(testSecret, "operador-1", "bodeguero", "stock-ledger-test", 60)
	require.NoError(t, err)

	subject, role, err := Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "operador-1", subject)
	assert.Equal(t, "bodeguero", role)
}

func TestParse_Expired(t *testing.T) {
	tok, err := Generate(testSecret, "operador-1", "admin", "stock-ledger-test", -1)
	require.NoError(t, err)

	_, _, err = Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := Generate(testSecret, "operador-1", "admin", "stock-ledger-test", 60)
	require.NoError(t, err)

	_, _, err = Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestParse_RejectsOtherAlgorithms(t *testing.T) {
	tok := gojwt.NewWithClaims(gojwt.SigningMethodHS512, Claims{Role: "admin"})
	signed, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, _, err = Parse(testSecret, signed)
	assert.Error(t, err)
}

func TestEmptySecret(t *testing.T) {
	_, err := Generate("", "x", "admin", "i", 1)
	assert.Error(t, err)
	_, _, err = Parse("", "x.y.z")
	assert.Error(t, err)
}
