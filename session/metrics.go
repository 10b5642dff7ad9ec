// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/danielhkuo/dealdesk/pipeline"
)

type storeMetrics struct {
	active      prometheus.Gauge
	created     prometheus.Counter
	expired     prometheus.Counter
	resets      prometheus.Counter
	votes       prometheus.Counter
	transitions *prometheus.CounterVec
	rejected    *prometheus.CounterVec
}

func initStoreMetrics(reg prometheus.Registerer) *storeMetrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &storeMetrics{
		active: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dealdesk_sessions_active",
			Help: "number of live demo sessions",
		}),
		created: factory.NewCounter(prometheus.CounterOpts{
			Name: "dealdesk_sessions_created_total",
			Help: "total demo sessions created",
		}),
		expired: factory.NewCounter(prometheus.CounterOpts{
			Name: "dealdesk_sessions_expired_total",
			Help: "total demo sessions evicted after the idle timeout",
		}),
		resets: factory.NewCounter(prometheus.CounterOpts{
			Name: "dealdesk_sessions_reset_total",
			Help: "total demo sessions reseeded",
		}),
		votes: factory.NewCounter(prometheus.CounterOpts{
			Name: "dealdesk_votes_cast_total",
			Help: "total votes recorded, including edits",
		}),
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dealdesk_transitions_total",
			Help: "successful engine operations by event kind",
		}, []string{"event"}),
		rejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dealdesk_operations_rejected_total",
			Help: "engine operations that failed, by operation",
		}, []string{"operation"}),
	}
}

func (m *storeMetrics) observe(op string, ev pipeline.Event, err error) {
	if err != nil {
		m.rejected.WithLabelValues(op).Inc()
		return
	}
	if ev.Kind == pipeline.EventVoteRecorded {
		m.votes.Inc()
	}
	m.transitions.WithLabelValues(string(ev.Kind)).Inc()
}
