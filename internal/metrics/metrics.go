package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks the hot paths: reports, vote toggles and feed builds.
type Metrics struct {
	IncidentsReported prometheus.Counter
	VotesByOutcome    *prometheus.CounterVec
	VoteConflicts     prometheus.Counter
	FeedDuration      prometheus.Histogram
	CommentsAdded     prometheus.Counter
}

func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the collectors on reg; tests pass a fresh registry.
func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		IncidentsReported: f.NewCounter(prometheus.CounterOpts{
			Name: "safirah_incidents_reported_total",
			Help: "Total number of incidents reported",
		}),
		VotesByOutcome: f.NewCounterVec(prometheus.CounterOpts{
			Name: "safirah_votes_total",
			Help: "Total vote toggles by outcome (cast, retracted, switched)",
		}, []string{"outcome"}),
		VoteConflicts: f.NewCounter(prometheus.CounterOpts{
			Name: "safirah_vote_conflicts_total",
			Help: "Vote toggles that exhausted their retry budget",
		}),
		FeedDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "safirah_feed_build_duration_seconds",
			Help:    "Duration of feed aggregation (filter, window, joins)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		CommentsAdded: f.NewCounter(prometheus.CounterOpts{
			Name: "safirah_comments_added_total",
			Help: "Total number of comments added",
		}),
	}
}

func (m *Metrics) ObserveFeed(start time.Time) {
	m.FeedDuration.Observe(time.Since(start).Seconds())
}
