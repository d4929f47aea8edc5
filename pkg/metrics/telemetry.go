package metrics

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the counters emitted while evaluating records against a filter chain. Each
// Recorder owns its registry so several can coexist in one process.
type Recorder struct {
	registry *prometheus.Registry

	recordsRead      prometheus.Counter
	recordsMatched   prometheus.Counter
	recordsDropped   prometheus.Counter
	transformSkipped *prometheus.CounterVec
}

// NewRecorder creates a Recorder with all of its counters registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		recordsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "filterkit_records_read_total",
			Help: "filterkit_records_read_total Total number of records read",
		}),
		recordsMatched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "filterkit_records_matched_total",
			Help: "filterkit_records_matched_total Total number of records passing the chain predicates",
		}),
		recordsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "filterkit_records_dropped_total",
			Help: "filterkit_records_dropped_total Total number of records rejected by the chain predicates",
		}),
		transformSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "filterkit_transforms_skipped_total",
			Help: "filterkit_transforms_skipped_total Total number of transforms skipped for an unusable input",
		}, []string{"kind"}),
	}

	r.registry.MustRegister(r.recordsRead, r.recordsMatched, r.recordsDropped, r.transformSkipped)
	return r
}

// Registry exposes the underlying registry, e.g. for promhttp or testutil.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) RecordRead() {
	r.recordsRead.Inc()
}

// RecordResult counts a record as matched or dropped.
func (r *Recorder) RecordResult(matched bool) {
	if matched {
		r.recordsMatched.Inc()
		return
	}
	r.recordsDropped.Inc()
}

func (r *Recorder) RecordSkippedTransform(kind string) {
	r.transformSkipped.WithLabelValues(kind).Inc()
}

// WriteTextfile writes every counter to path in the text exposition format, for pickup by a
// node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return errors.Wrapf(err, "writing metrics to %s", path)
	}
	return nil
}

var (
	once     sync.Once
	recorder *Recorder
)

// Default returns the process wide Recorder, creating it on first use.
func Default() *Recorder {
	once.Do(func() {
		recorder = NewRecorder()
	})
	return recorder
}
