package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "mergington"
)

var (
	RosterChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "roster", "changes_total"),
		Help: "Roster change attempts by operation and outcome",
	}, []string{"op", "outcome"})
	RosterChangeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "roster", "change_duration_seconds"),
		Help:    "Duration of roster changes in seconds, including lock acquisition",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	}, []string{"op"})
	CatalogSeeded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "catalog", "seeded"),
		Help: "1 when the last store initialization seeded the catalog, 0 when the store already had activities",
	})
)
