package auth

// Тесты проверки bearer-токенов (internal/auth/auth.go).
//
// Подготовка окружения:
//   go test ./internal/auth -v -race -count=1

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	return signed
}

func TestJWTVerifier_UsernameClaim(t *testing.T) {
	v := NewJWTVerifier(testSecret, "")

	token := signToken(t, testSecret, jwt.MapClaims{
		"username": "alice",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	username, err := v.Username(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, "alice", username)
}

// При отсутствии claim "username" берётся Subject.
func TestJWTVerifier_SubjectFallback(t *testing.T) {
	v := NewJWTVerifier(testSecret, "")

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "bob",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	username, err := v.Username(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, "bob", username)
}

func TestJWTVerifier_Expired(t *testing.T) {
	v := NewJWTVerifier(testSecret, "")

	token := signToken(t, testSecret, jwt.MapClaims{
		"username": "alice",
		"exp":      time.Now().Add(-time.Hour).Unix(),
	})

	_, err := v.Username(context.Background(), token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTVerifier_WrongSecret(t *testing.T) {
	v := NewJWTVerifier(testSecret, "")

	token := signToken(t, "other-secret", jwt.MapClaims{
		"username": "alice",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	_, err := v.Username(context.Background(), token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTVerifier_Garbage(t *testing.T) {
	v := NewJWTVerifier(testSecret, "")

	_, err := v.Username(context.Background(), "not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

// Токен без username и без sub бесполезен для авторизации.
func TestJWTVerifier_NoIdentity(t *testing.T) {
	v := NewJWTVerifier(testSecret, "")

	token := signToken(t, testSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := v.Username(context.Background(), token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTVerifier_IssuerMismatch(t *testing.T) {
	v := NewJWTVerifier(testSecret, "expected-issuer")

	token := signToken(t, testSecret, jwt.MapClaims{
		"username": "alice",
		"iss":      "another-issuer",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	_, err := v.Username(context.Background(), token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTVerifier_IssuerMatch(t *testing.T) {
	v := NewJWTVerifier(testSecret, "expected-issuer")

	token := signToken(t, testSecret, jwt.MapClaims{
		"username": "alice",
		"iss":      "expected-issuer",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	username, err := v.Username(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, "alice", username)
}
