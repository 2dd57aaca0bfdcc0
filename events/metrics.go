package events

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type busMetrics struct {
	published *prometheus.CounterVec
	delivered *prometheus.CounterVec
	failed    *prometheus.CounterVec
}

func newBusMetrics(reg prometheus.Registerer) *busMetrics {
	factory := promauto.With(reg)
	return &busMetrics{
		published: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cms_events_published_total",
			Help: "The total number of events published on the bus",
		}, []string{"event"}),
		delivered: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cms_events_delivered_total",
			Help: "The total number of successful deliveries to subscribers",
		}, []string{"event"}),
		failed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cms_events_delivery_failures_total",
			Help: "The total number of deliveries where the subscriber failed",
		}, []string{"event"}),
	}
}
