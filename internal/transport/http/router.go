// Package http собирает HTTP-маршрутизацию profile-service поверх chi.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/chat-profile-service/internal/auth"
	"github.com/pribylovaa/chat-profile-service/internal/transport/http/handlers"
	"github.com/pribylovaa/chat-profile-service/internal/transport/http/middleware"
)

// NewRouter собирает роутер сервиса.
//
// Порядок middleware важен: Recover — самый внешний (ловит паники всех
// слоёв ниже), RequestID раньше Logging (id попадает в каждый лог),
// AuthBearer перед Timeout, чтобы проверка токена тоже укладывалась
// в дедлайн запроса.
func NewRouter(h *handlers.Handlers, verifier auth.Verifier, log *slog.Logger, timeout time.Duration) http.Handler {
	r := chi.NewRouter()

	// Metrics живёт внутри chi: шаблон маршрута (RoutePattern) доступен
	// только из контекста роутера.
	r.Use(middleware.Metrics(h.Metrics))

	r.Route("/profile/{username}", func(r chi.Router) {
		r.Get("/", h.GetProfile)
		r.Put("/", h.UpdateProfile)
		r.Post("/upload-temp-image", h.UploadTempImage)
		r.Post("/process-image", h.ProcessImage)
		r.Post("/change-password", h.ChangePassword)
	})

	r.Get("/temp-image/{temp_id}", h.TempImage)
	r.Get("/profiles/search", h.SearchProfiles)

	r.Get("/health", h.Health)
	r.Get("/metrics", h.MetricsJSON)
	r.Method(http.MethodGet, "/prometheus", h.Metrics.Handler())

	return middleware.Chain(
		r,
		middleware.Recover(),
		middleware.RequestID(),
		middleware.Logging(log),
		middleware.AuthBearer(verifier),
		middleware.Timeout(timeout),
	)
}
