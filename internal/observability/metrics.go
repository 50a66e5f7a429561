package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	graphqlRequestsTotal  *prometheus.CounterVec
	graphqlLatencySeconds *prometheus.HistogramVec
	graphqlErrorsTotal    *prometheus.CounterVec
	eventsPublishedTotal  *prometheus.CounterVec
	subscribersActive     prometheus.Gauge
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		graphqlRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "graphql_requests_total",
			Help: "Total number of GraphQL requests served.",
		}, []string{"operation", "status"})

		graphqlLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "graphql_latency_seconds",
			Help:    "Latency distribution for GraphQL requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"operation"})

		graphqlErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "graphql_errors_total",
			Help: "Total number of GraphQL requests that returned errors.",
		}, []string{"operation"})

		eventsPublishedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of events published on the internal bus.",
		}, []string{"topic"})

		subscribersActive = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "subscription_clients_active",
			Help: "Number of live subscription clients.",
		})

		prometheus.MustRegister(graphqlRequestsTotal, graphqlLatencySeconds, graphqlErrorsTotal, eventsPublishedTotal, subscribersActive)
	})
}

// GraphQLRequests exposes the counter for GraphQL requests.
func GraphQLRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return graphqlRequestsTotal
}

// GraphQLLatency exposes the latency histogram for GraphQL requests.
func GraphQLLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return graphqlLatencySeconds
}

// GraphQLErrors exposes the counter for failed GraphQL requests.
func GraphQLErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return graphqlErrorsTotal
}

// EventsPublished exposes the counter for published bus events.
func EventsPublished() *prometheus.CounterVec {
	RegisterMetrics()
	return eventsPublishedTotal
}

// SubscribersActive exposes the gauge tracking live subscription clients.
func SubscribersActive() prometheus.Gauge {
	RegisterMetrics()
	return subscribersActive
}
