package learning

import (
	"time"

	"go.uber.org/zap"

	"github.com/zpam/nbayes/pkg/tokenizer"
)

// Phase names reported to a Recorder
const (
	PhaseCount    = "count"
	PhaseEstimate = "estimate"
	PhaseClassify = "classify"
)

// Recorder observes training and classification work
type Recorder interface {
	ObservePhase(phase string, elapsed time.Duration)
	AddDocuments(phase, label string, n int)
}

type nopRecorder struct{}

func (nopRecorder) ObservePhase(string, time.Duration) {}
func (nopRecorder) AddDocuments(string, string, int)   {}

type multiRecorder []Recorder

func (m multiRecorder) ObservePhase(phase string, elapsed time.Duration) {
	for _, r := range m {
		r.ObservePhase(phase, elapsed)
	}
}

func (m multiRecorder) AddDocuments(phase, label string, n int) {
	for _, r := range m {
		r.AddDocuments(phase, label, n)
	}
}

// Recorders combines several recorders into one, dropping nils
func Recorders(recorders ...Recorder) Recorder {
	var m multiRecorder
	for _, r := range recorders {
		if r != nil {
			m = append(m, r)
		}
	}

	switch len(m) {
	case 0:
		return nopRecorder{}
	case 1:
		return m[0]
	}
	return m
}

type options struct {
	policy   tokenizer.Policy
	workers  int
	logger   *zap.Logger
	recorder Recorder
}

// Option configures a Trainer or Classifier
type Option func(*options)

// WithPolicy sets the tokenizer policy
func WithPolicy(p tokenizer.Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithWorkers sets how many documents are read concurrently. Values below
// two mean sequential processing.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder
func WithRecorder(r Recorder) Option {
	return func(o *options) {
		o.recorder = Recorders(r)
	}
}

func buildOptions(component string, opts []Option) options {
	o := options{
		policy:   tokenizer.DefaultPolicy(),
		workers:  1,
		logger:   zap.NewNop(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = o.logger.With(zap.String("component", component))
	return o
}
