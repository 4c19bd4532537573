package learning

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/zpam/nbayes/pkg/document"
	"github.com/zpam/nbayes/pkg/tokenizer"
)

// Scores holds the log-space posterior of each class, up to a shared constant
type Scores struct {
	LogHam  float64
	LogSpam float64
}

// Label picks the class with the higher score; ties go to ham
func (s Scores) Label() Label {
	if s.LogSpam > s.LogHam {
		return Spam
	}
	return Ham
}

// Result is the classification of one document
type Result struct {
	Name    string
	Label   Label
	LogHam  float64
	LogSpam float64
}

// Classifier labels documents against a trained Model
type Classifier struct {
	model *Model
	opts  options
}

// NewClassifier creates a classifier for the given model
func NewClassifier(model *Model, opts ...Option) *Classifier {
	return &Classifier{
		model: model,
		opts:  buildOptions("classifier", opts),
	}
}

// Model returns the model the classifier reads from
func (c *Classifier) Model() *Model {
	return c.model
}

// Score computes log posteriors for a token set.
//
// Only tokens present in the document and known to both tables add
// evidence. Unseen tokens are skipped, and trained tokens missing from the
// document add nothing either: this is a presence-only model.
func (c *Classifier) Score(tokens tokenizer.TokenSet) Scores {
	s := Scores{
		LogHam:  math.Log(c.model.priorHam),
		LogSpam: math.Log(c.model.priorSpam),
	}

	for token := range tokens {
		pHam, inHam := c.model.hamProbs[token]
		pSpam, inSpam := c.model.spamProbs[token]
		if !inHam || !inSpam {
			continue
		}
		s.LogHam += math.Log(pHam)
		s.LogSpam += math.Log(pSpam)
	}

	return s
}

// ClassifyTokens labels a single token set
func (c *Classifier) ClassifyTokens(tokens tokenizer.TokenSet) Label {
	return c.Score(tokens).Label()
}

// ClassifyDocument reads and labels one document
func (c *Classifier) ClassifyDocument(doc document.Document) (Result, error) {
	tokens, err := readTokens(doc, c.opts.policy)
	if err != nil {
		return Result{}, err
	}

	scores := c.Score(tokens)
	return Result{
		Name:    doc.Name(),
		Label:   scores.Label(),
		LogHam:  scores.LogHam,
		LogSpam: scores.LogSpam,
	}, nil
}

// Classify labels every document, returning results in input order.
// The first unreadable document aborts the whole batch.
func (c *Classifier) Classify(ctx context.Context, docs []document.Document) ([]Result, error) {
	start := time.Now()
	results := make([]Result, len(docs))

	if c.opts.workers <= 1 {
		for i, doc := range docs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			res, err := c.ClassifyDocument(doc)
			if err != nil {
				return nil, err
			}
			results[i] = res
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.opts.workers)

		for i, doc := range docs {
			i, doc := i, doc
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				res, err := c.ClassifyDocument(doc)
				if err != nil {
					return err
				}
				results[i] = res
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	elapsed := time.Since(start)
	c.opts.recorder.ObservePhase(PhaseClassify, elapsed)

	var spam int
	for _, res := range results {
		if res.Label == Spam {
			spam++
		}
		c.opts.logger.Debug("document classified",
			zap.String("document", res.Name),
			zap.String("label", res.Label.String()),
			zap.Float64("log_ham", res.LogHam),
			zap.Float64("log_spam", res.LogSpam))
	}
	c.opts.recorder.AddDocuments(PhaseClassify, Spam.String(), spam)
	c.opts.recorder.AddDocuments(PhaseClassify, Ham.String(), len(results)-spam)

	c.opts.logger.Info("batch classified",
		zap.String("model_id", c.model.id),
		zap.Int("documents", len(results)),
		zap.Int("spam", spam),
		zap.Int("ham", len(results)-spam),
		zap.Duration("elapsed", elapsed))

	return results, nil
}
