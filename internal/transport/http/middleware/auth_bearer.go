package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pribylovaa/chat-profile-service/internal/auth"
	"github.com/pribylovaa/chat-profile-service/internal/transport/http/apierr"
)

type ctxKey int

const (
	ctxUsername ctxKey = iota
	ctxBearer
)

// ActorFrom возвращает аутентифицированный username из контекста (если есть).
func ActorFrom(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxUsername).(string)
	return v, ok && v != ""
}

// BearerFrom возвращает сырой bearer-токен из контекста (если есть).
func BearerFrom(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxBearer).(string)
	return v, ok && v != ""
}

// AuthBearer извлекает Bearer-токен из Authorization, проверяет его через
// verifier и кладёт аутентифицированный username и сырой токен в контекст.
//
// Запрос без заголовка проходит дальше неаутентифицированным — требование
// владения ресурсом проверяют хендлеры мутирующих операций. Предъявленный,
// но невалидный токен — немедленный 401.
func AuthBearer(verifier auth.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) || len(header) == len(prefix) {
				apierr.WriteError(w, r, apierr.ErrUnauthorized)
				return
			}

			token := strings.TrimSpace(header[len(prefix):])
			if token == "" {
				apierr.WriteError(w, r, apierr.ErrUnauthorized)
				return
			}

			username, err := verifier.Username(r.Context(), token)
			if err != nil {
				apierr.WriteError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), ctxUsername, username)
			ctx = context.WithValue(ctx, ctxBearer, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
