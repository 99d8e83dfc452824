package observability

import (
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "rewind"

// Metrics holds the collectors fed by interpreter hooks.
type Metrics struct {
	Transitions *prometheus.CounterVec
	Rejected    *prometheus.CounterVec
	Moves       *prometheus.CounterVec
	Depth       prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg skips registration (useful in tests).
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transitions_total",
				Help:      "Committed history nodes, by machine and provenance (graph or override).",
			},
			[]string{"machine", "kind"},
		),
		Rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rejected_events_total",
				Help:      "Events sent without a matching transition.",
			},
			[]string{"machine", "state", "event"},
		),
		Moves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "history_moves_total",
				Help:      "Undo, redo, pause, resume and stop operations that took effect.",
			},
			[]string{"machine", "op"},
		),
		Depth: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "history_depth",
				Help:      "Distance from the root of each committed node.",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.Transitions, m.Rejected, m.Moves, m.Depth} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	move := func(e *domain.HistoryEvent) {
		m.Moves.WithLabelValues(e.MachineID, string(e.Type)).Inc()
	}
	return domain.LifecycleHooks{
		OnCommit: func(e *domain.HistoryEvent) {
			kind := "graph"
			if e.To.IsOverride() {
				kind = "override"
			}
			m.Transitions.WithLabelValues(e.MachineID, kind).Inc()
			m.Depth.Observe(float64(e.To.Depth()))
		},
		OnUndo:   move,
		OnRedo:   move,
		OnPause:  move,
		OnResume: move,
		OnStop:   move,
		OnRejected: func(e *domain.RejectedEvent) {
			m.Rejected.WithLabelValues(e.MachineID, e.State, e.Event.Key()).Inc()
		},
	}
}
