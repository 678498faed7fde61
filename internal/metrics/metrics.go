package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analyzer Metrics
var (
	LinesProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLinesProcessed,
			Help: HelpTextLinesProcessed,
		},
	)

	EventsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsDispatched,
			Help: HelpTextEventsDispatched,
		},
		[]string{LabelType},
	)

	ReportsBuilt = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameReportsBuilt,
			Help: HelpTextReportsBuilt,
		},
	)
)

// HTTP Metrics (serve mode)
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: prometheus.DefBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)
)
