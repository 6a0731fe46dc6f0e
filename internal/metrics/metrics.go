package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var gatewayRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "eventhub_gateway_requests_total",
		Help: "Resource gateway requests by operation and status code",
	},
	[]string{"operation", "status"},
)

var gatewayDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "eventhub_gateway_request_duration_seconds",
		Help:    "Resource gateway request latency",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"operation"},
)

var cacheRefreshes = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "eventhub_cache_refreshes_total",
		Help: "Event/category cache refresh outcomes",
	},
	[]string{"result"},
)

// ObserveGatewayRequest records one gateway round trip.
// status 0 means the request never produced an HTTP response.
func ObserveGatewayRequest(operation string, status int, elapsed time.Duration) {
	gatewayRequests.WithLabelValues(operation, strconv.Itoa(status)).Inc()
	gatewayDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// ObserveCacheRefresh records a cache refresh outcome ("ok" or "error").
func ObserveCacheRefresh(result string) {
	cacheRefreshes.WithLabelValues(result).Inc()
}
