package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

const namespace = "bistro"

var (
	// httpRequests counts handled requests.
	// Labels: method, route (gin full path), status
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests by route and status",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"method", "route"})

	ordersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "created_total",
		Help:      "Total orders accepted",
	})

	orderRevenue = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "revenue_total",
		Help:      "Sum of totals of accepted orders",
	})

	// orderRejections counts creation requests refused by the ledger.
	// Labels: reason (validation, unknown_item, unavailable)
	orderRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "rejected_total",
		Help:      "Total order creation requests rejected",
	}, []string{"reason"})

	// statusTransitions counts applied status changes.
	// Labels: from, to
	statusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "status_transitions_total",
		Help:      "Total order status transitions applied",
	}, []string{"from", "to"})

	statusConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "status_conflicts_total",
		Help:      "Compare-and-set status updates lost to a concurrent writer",
	})
)

// ObserveRequest records one handled HTTP request.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// OrderCreated records an accepted order and its total.
func OrderCreated(total decimal.Decimal) {
	ordersCreated.Inc()
	orderRevenue.Add(total.InexactFloat64())
}

// OrderRejected records a refused creation request.
func OrderRejected(reason string) {
	orderRejections.WithLabelValues(reason).Inc()
}

// StatusChanged records an applied transition.
func StatusChanged(from, to string) {
	statusTransitions.WithLabelValues(from, to).Inc()
}

// StatusConflict records a lost compare-and-set race.
func StatusConflict() {
	statusConflicts.Inc()
}
