package search

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "channelgrid_searches_total",
			Help: "Total number of searches by classified type and outcome",
		},
		[]string{"type", "status"},
	)

	searchCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "channelgrid_search_cache_hits_total",
			Help: "Search result cache hits",
		},
	)

	searchCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "channelgrid_search_cache_misses_total",
			Help: "Search result cache misses",
		},
	)

	searchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "channelgrid_search_duration_seconds",
			Help:    "Search execution time in seconds, cache misses only",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"type"},
	)
)
