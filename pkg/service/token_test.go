package service

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-system/pkg/apperrors"
)

func signedToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"userId": 1,
		"exp":    time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)
	return signed
}

func TestTokenExpiresAt(t *testing.T) {
	ttl := 30 * time.Minute
	expiresAt, err := TokenExpiresAt(signedToken(t, ttl))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(ttl), expiresAt, 5*time.Second)
}

func TestTokenExpiresAtEmpty(t *testing.T) {
	_, err := TokenExpiresAt("")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}

func TestTokenExpiresAtGarbage(t *testing.T) {
	_, err := TokenExpiresAt("не-токен")
	assert.Error(t, err)
}

func TestRefreshIn(t *testing.T) {
	floor := 30 * time.Second

	// За минуту до истечения, но не раньше floor.
	in := RefreshIn(signedToken(t, 10*time.Minute), floor)
	assert.InDelta(t, (9 * time.Minute).Seconds(), in.Seconds(), 5)

	// Короткий токен упирается в floor.
	assert.Equal(t, floor, RefreshIn(signedToken(t, 20*time.Second), floor))

	// Просроченный или нечитаемый токен — тоже floor.
	assert.Equal(t, floor, RefreshIn(signedToken(t, -time.Minute), floor))
	assert.Equal(t, floor, RefreshIn("мусор", floor))
}
