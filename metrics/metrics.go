package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ngsa_requests_served_total",
			Help: "Total number of API requests served",
		},
		[]string{"endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ngsa_request_duration_seconds",
			Help:    "Time taken to serve API requests",
			Buckets: prometheus.DefBuckets,
		},
	)

	MovieCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ngsa_movie_cache_hits_total",
			Help: "Total number of movie lookups served from the cache",
		},
	)

	MovieCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ngsa_movie_cache_misses_total",
			Help: "Total number of movie lookups that fell through to the database",
		},
	)
)
