package learning

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/zpam/nbayes/pkg/document"
)

// Trainer builds a Model from labeled documents
type Trainer struct {
	opts options
}

// NewTrainer creates a trainer
func NewTrainer(opts ...Option) *Trainer {
	return &Trainer{opts: buildOptions("trainer", opts)}
}

// Train counts document frequencies for both classes and estimates a new
// Model. Any unreadable document aborts training; no partial model is
// returned.
func (t *Trainer) Train(ctx context.Context, hams, spams []document.Document) (*Model, error) {
	if len(hams)+len(spams) == 0 {
		return nil, ErrDegeneratePrior
	}

	start := time.Now()

	hamCounts, err := CountDocuments(ctx, hams, t.opts.policy, t.opts.workers)
	if err != nil {
		return nil, fmt.Errorf("failed to count ham documents: %w", err)
	}

	spamCounts, err := CountDocuments(ctx, spams, t.opts.policy, t.opts.workers)
	if err != nil {
		return nil, fmt.Errorf("failed to count spam documents: %w", err)
	}

	counted := time.Now()
	t.opts.recorder.ObservePhase(PhaseCount, counted.Sub(start))
	t.opts.logger.Debug("documents counted",
		zap.Int("ham_tokens", len(hamCounts)),
		zap.Int("spam_tokens", len(spamCounts)),
		zap.Duration("elapsed", counted.Sub(start)))

	model, err := Estimate(hamCounts, spamCounts, len(hams), len(spams))
	if err != nil {
		return nil, fmt.Errorf("failed to estimate model: %w", err)
	}

	t.opts.recorder.ObservePhase(PhaseEstimate, time.Since(counted))
	t.opts.recorder.AddDocuments(PhaseCount, Ham.String(), len(hams))
	t.opts.recorder.AddDocuments(PhaseCount, Spam.String(), len(spams))

	t.opts.logger.Info("model trained",
		zap.String("model_id", model.id),
		zap.Int("ham_documents", len(hams)),
		zap.Int("spam_documents", len(spams)),
		zap.Int("vocabulary", model.VocabularySize()),
		zap.Float64("prior_spam", model.priorSpam),
		zap.Duration("elapsed", time.Since(start)))

	return model, nil
}
