// auth реализует внешнего коллаборатора авторизации: проверку bearer-токена
// и извлечение аутентифицированного username. Политика доступа сервису не
// принадлежит — мутирующие операции лишь требуют совпадения username из
// токена с username из пути.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken — токен не прошёл проверку подписи/формата.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired — срок действия токена истёк.
	ErrTokenExpired = errors.New("token expired")
)

// Verifier — контракт проверки bearer-токена.
type Verifier interface {
	// Username возвращает аутентифицированный username владельца токена.
	Username(ctx context.Context, token string) (string, error)
}

type accessClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// JWTVerifier — проверка HS256-токенов, выпущенных user-service.
type JWTVerifier struct {
	secret []byte
	issuer string
}

// NewJWTVerifier создаёт Verifier. issuer пустой — проверка issuer отключена.
func NewJWTVerifier(secret, issuer string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret), issuer: issuer}
}

// Username валидирует токен и возвращает username (claim "username",
// при его отсутствии — Subject).
func (v *JWTVerifier) Username(_ context.Context, tokenStr string) (string, error) {
	const op = "auth/Username"

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5 * time.Second),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenStr, &accessClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
			}

			return v.secret, nil
		},
		opts...,
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}

		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	username := claims.Username
	if username == "" {
		username = claims.Subject
	}

	if username == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return username, nil
}

// Проверка выполнения контракта.
var _ Verifier = (*JWTVerifier)(nil)
