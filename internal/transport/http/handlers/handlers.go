// handlers содержит HTTP-хендлеры profile-service.
//
// Принципы:
//   - контекст запроса прокидывается в сервис без потерь;
//   - входные данные валидируются на уровне транспорта (строгий JSON, границы limit);
//   - требование владения ресурсом (actor == username из пути) проверяется здесь,
//     до обращения к сервису; ошибки сервиса маппятся через apierr.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pribylovaa/chat-profile-service/internal/metrics"
	"github.com/pribylovaa/chat-profile-service/internal/service"
	"github.com/pribylovaa/chat-profile-service/internal/transport/http/apierr"
	"github.com/pribylovaa/chat-profile-service/internal/transport/http/middleware"
)

// Pinger — проверка живости внешней зависимости (/health).
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers агрегирует зависимости хендлеров.
type Handlers struct {
	Service        *service.Service
	Metrics        *metrics.Metrics
	DB             Pinger
	Redis          Pinger
	MaxUploadBytes int64
}

func New(svc *service.Service, m *metrics.Metrics, db, redis Pinger, maxUploadBytes int64) *Handlers {
	return &Handlers{
		Service:        svc,
		Metrics:        m,
		DB:             db,
		Redis:          redis,
		MaxUploadBytes: maxUploadBytes,
	}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierr.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// requireOwner проверяет, что запрос аутентифицирован и actor совпадает
// с username из пути. При нарушении пишет 401/403 и возвращает ok=false.
func requireOwner(w http.ResponseWriter, r *http.Request, username string) bool {
	actor, ok := middleware.ActorFrom(r.Context())
	if !ok {
		apierr.WriteError(w, r, apierr.ErrUnauthorized)
		return false
	}

	if actor != username {
		apierr.WriteError(w, r, service.ErrForbidden)
		return false
	}

	return true
}
