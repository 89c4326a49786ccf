package service

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"inventory-system/pkg/apperrors"
)

// TokenExpiresAt достаёт exp из access-токена без проверки подписи:
// подпись проверяет бэкенд, клиенту срок нужен только чтобы заранее
// запланировать обновление.
func TokenExpiresAt(tokenString string) (time.Time, error) {
	if tokenString == "" {
		return time.Time{}, apperrors.ErrTokenNotFound
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return time.Time{}, err
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, apperrors.ErrTokenExpired
	}
	return exp.Time, nil
}

// RefreshIn возвращает, через сколько стоит обновить токен: за минуту до
// истечения, но не раньше чем через floor (защита от слишком частых
// обновлений при коротких токенах).
func RefreshIn(tokenString string, floor time.Duration) time.Duration {
	expiresAt, err := TokenExpiresAt(tokenString)
	if err != nil {
		return floor
	}
	until := time.Until(expiresAt) - time.Minute
	if until < floor {
		return floor
	}
	return until
}
