package sinks

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jfalvarez/bookscout/internal/progress"
)

// PrometheusSink exports run-level progress metrics. It owns the collectors
// for runs, authors processed, and works emitted; fetch-level counters live
// in the metrics package.
type PrometheusSink struct {
	runsStarted     prometheus.Counter
	runsCompleted   prometheus.Counter
	authorsTotal    *prometheus.CounterVec
	worksEmitted    prometheus.Counter
	runDurationSecs prometheus.Histogram
}

// NewPrometheusSink registers the collectors against the provided registry.
// A nil registry falls back to the default registerer.
func NewPrometheusSink(reg prometheus.Registerer) (*PrometheusSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PrometheusSink{
		runsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bookscout_runs_started_total",
			Help: "Total export runs that have started.",
		}),
		runsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bookscout_runs_completed_total",
			Help: "Total export runs that have finished.",
		}),
		authorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookscout_authors_total",
			Help: "Authors processed, partitioned by whether any works were kept.",
		}, []string{"status"}),
		worksEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bookscout_works_emitted_total",
			Help: "Total works forwarded to the output sinks.",
		}),
		runDurationSecs: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bookscout_run_duration_seconds",
			Help:    "Wall time per completed export run.",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),
	}
	collectors := []prometheus.Collector{
		s.runsStarted,
		s.runsCompleted,
		s.authorsTotal,
		s.worksEmitted,
		s.runDurationSecs,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register progress collector: %w", err)
		}
	}
	return s, nil
}

// Consume updates the collectors from one event.
func (s *PrometheusSink) Consume(_ context.Context, evt progress.Event) error {
	switch evt.Stage {
	case progress.StageRunStart:
		s.runsStarted.Inc()
	case progress.StageAuthorDone:
		status := "with_works"
		if evt.Works == 0 {
			status = "empty"
		}
		s.authorsTotal.WithLabelValues(status).Inc()
	case progress.StageWorkEmitted:
		s.worksEmitted.Inc()
	case progress.StageRunDone:
		s.runsCompleted.Inc()
		s.runDurationSecs.Observe(evt.Dur.Seconds())
	}
	return nil
}

// Close implements the Sink interface; it performs no action.
func (s *PrometheusSink) Close(context.Context) error {
	return nil
}
