package analytics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type storeMetrics struct {
	logged *prometheus.CounterVec
}

func newStoreMetrics(reg prometheus.Registerer) *storeMetrics {
	return &storeMetrics{
		logged: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "cms_analytics_entries_logged_total",
			Help: "The total number of analytics entries logged",
		}, []string{"kind", "action"}),
	}
}
