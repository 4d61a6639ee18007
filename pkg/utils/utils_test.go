package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return tok
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := signed(t, jwt.RegisteredClaims{Subject: "u1", ExpiresAt: jwt.NewNumericDate(exp)})

	got, err := TokenExpiry(tok)
	require.NoError(t, err)
	assert.True(t, got.Equal(exp))

	claims, err := InspectToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
}

func TestTokenExpiryMissing(t *testing.T) {
	tok := signed(t, jwt.RegisteredClaims{Subject: "u1"})
	_, err := TokenExpiry(tok)
	assert.ErrorIs(t, err, ErrNoExpiry)
}

func TestIsTokenExpired(t *testing.T) {
	now := time.Now()
	expired := signed(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute))})
	soon := signed(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(20 * time.Second))})
	live := signed(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))})

	assert.True(t, IsTokenExpired(expired, now, 0))
	assert.True(t, IsTokenExpired(soon, now, 30*time.Second))
	assert.False(t, IsTokenExpired(live, now, 30*time.Second))
	assert.False(t, IsTokenExpired("not-a-jwt", now, 0))
}

func TestSealerRoundTrip(t *testing.T) {
	s, err := NewSealer("0123456789abcdef-session")
	require.NoError(t, err)

	sealed, err := s.Seal("access-token")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "access-token")

	plain, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "access-token", plain)

	other, err := NewSealer("another-secret-of-length")
	require.NoError(t, err)
	_, err = other.Open(sealed)
	assert.ErrorIs(t, err, ErrUnsealFailed)

	_, err = s.Open("%%%")
	assert.ErrorIs(t, err, ErrUnsealFailed)
}

func TestNewSealerRejectsShortSecret(t *testing.T) {
	_, err := NewSealer("short")
	assert.Error(t, err)
}

func TestReceiptFileName(t *testing.T) {
	assert.Equal(t, "Receipt-INV-20240101-0001.pdf", ReceiptFileName("INV-20240101-0001"))
	assert.Equal(t, "Receipt-INV-1.pdf", ReceiptFileName(" INV/ 1 "))
	assert.Equal(t, "Receipt-unnamed.pdf", ReceiptFileName(""))
}

func TestNewSessionID(t *testing.T) {
	a, b := NewSessionID(), NewSessionID()
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
