// Package metrics expone los contadores Prometheus del servicio.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bodega_http_requests_total",
		Help: "Peticiones HTTP por método, ruta y código de estado.",
	}, []string{"method", "path", "status"})

	storeMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bodega_store_mutations_total",
		Help: "Mutaciones del Store por entidad, acción y resultado.",
	}, []string{"entity", "action", "result"})

	lastRefreshUnix = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bodega_snapshot_last_refresh_timestamp_seconds",
		Help: "Momento del último refresco completo del snapshot.",
	})
)

// HTTPRequest registra una petición atendida.
func HTTPRequest(method, path string, status int) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

// StoreMutation registra el resultado de una mutación ("ok" o "error").
func StoreMutation(entity, action, result string) {
	storeMutationsTotal.WithLabelValues(entity, action, result).Inc()
}

// SnapshotRefreshed marca el momento del último refresco exitoso.
func SnapshotRefreshed(at time.Time) {
	lastRefreshUnix.Set(float64(at.Unix()))
}

// Handler devuelve el handler estándar de promhttp para /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
