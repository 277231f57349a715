package handlers

import (
	"context"
	"net/http"
	"time"
)

const healthPingTimeout = time.Second

type dependencyStatus struct {
	Status string `json:"status"`
}

type healthResponse struct {
	Status       string                      `json:"status"`
	Service      string                      `json:"service"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Health — GET /health.
//
// Пингует Postgres и Redis с коротким таймаутом. Деградация зависимостей
// не роняет эндпоинт: статус ответа остаётся 200, состояние — в теле,
// чтобы балансировщик не выводил инстанс из ротации из-за внешней БД.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:       "healthy",
		Service:      "profile-service",
		Dependencies: make(map[string]dependencyStatus, 2),
	}

	check := func(name string, p Pinger) {
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		defer cancel()

		if err := p.Ping(ctx); err != nil {
			resp.Status = "degraded"
			resp.Dependencies[name] = dependencyStatus{Status: "unavailable"}
			return
		}

		resp.Dependencies[name] = dependencyStatus{Status: "ok"}
	}

	check("database", h.DB)
	check("redis", h.Redis)

	writeJSON(w, http.StatusOK, resp)
}

// MetricsJSON — GET /metrics.
//
// Лёгкий JSON-снимок внутренних счётчиков; формат Prometheus — на /prometheus.
func (h *Handlers) MetricsJSON(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Metrics.Snapshot())
}
