// metrics — процессные метрики сервиса за инжектируемым значением:
// prometheus-коллекторы для /prometheus и атомарные счётчики для
// легаси JSON-эндпойнта /metrics. Никаких глобальных изменяемых словарей.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics — все счётчики сервиса; создаётся один раз в main и инжектируется.
type Metrics struct {
	reg *prometheus.Registry

	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	ProfileUpdates  prometheus.Counter
	ImagesProcessed prometheus.Counter
	ServiceErrors   prometheus.Counter

	start    time.Time
	requests atomic.Int64
	errs     atomic.Int64
	// byRoute — "METHOD /route" -> *atomic.Int64; только append-подобные записи.
	byRoute sync.Map
}

// New создаёт Metrics с собственным Registry (без глобального состояния).
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		reg: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		ProfileUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "business_profiles_updated_total",
			Help: "Total number of profile updates.",
		}),
		ImagesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "business_images_processed_total",
			Help: "Total number of images processed.",
		}),
		ServiceErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "service_errors_total",
			Help: "Total number of request errors (status >= 400).",
		}),
		start: time.Now(),
	}

	reg.MustRegister(m.HTTPRequests, m.HTTPDuration, m.ProfileUpdates, m.ImagesProcessed, m.ServiceErrors)

	return m
}

// Handler возвращает http.Handler для /prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// ObserveRequest фиксирует завершённый HTTP-запрос.
// route — шаблон маршрута (не сырой путь), чтобы не раздувать кардинальность.
func (m *Metrics) ObserveRequest(method, route string, status int, dur time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(dur.Seconds())

	m.requests.Add(1)
	if status >= 400 {
		m.errs.Add(1)
		m.ServiceErrors.Inc()
	}

	key := method + " " + route
	v, _ := m.byRoute.LoadOrStore(key, new(atomic.Int64))
	v.(*atomic.Int64).Add(1)
}

// Snapshot — неизменяемый срез атомарных счётчиков для JSON /metrics.
type Snapshot struct {
	UptimeMs        int64            `json:"uptime_ms"`
	RequestsTotal   int64            `json:"requests_total"`
	RequestsByRoute map[string]int64 `json:"requests_by_route"`
	ErrorsTotal     int64            `json:"errors_total"`
	ErrorRate       float64          `json:"error_rate"`
	Timestamp       time.Time        `json:"timestamp"`
}

// Snapshot собирает текущие значения счётчиков.
func (m *Metrics) Snapshot() Snapshot {
	byRoute := make(map[string]int64)
	m.byRoute.Range(func(k, v any) bool {
		byRoute[k.(string)] = v.(*atomic.Int64).Load()
		return true
	})

	requests := m.requests.Load()
	errs := m.errs.Load()

	var rate float64
	if requests > 0 {
		rate = float64(errs) / float64(requests)
	}

	return Snapshot{
		UptimeMs:        time.Since(m.start).Milliseconds(),
		RequestsTotal:   requests,
		RequestsByRoute: byRoute,
		ErrorsTotal:     errs,
		ErrorRate:       rate,
		Timestamp:       time.Now().UTC(),
	}
}
