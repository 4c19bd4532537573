package learning

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/zpam/nbayes/pkg/document"
	"github.com/zpam/nbayes/pkg/tokenizer"
)

// Counts maps a token to the number of documents it appears in.
// Values are whole numbers kept as float64 for the estimator.
type Counts map[string]float64

func (c Counts) addSet(tokens tokenizer.TokenSet) {
	for token := range tokens {
		c[token]++
	}
}

func (c Counts) merge(other Counts) {
	for token, n := range other {
		c[token] += n
	}
}

// CountDocuments tokenizes every document and counts, per token, how many
// documents contain it. A token repeated inside one document counts once.
//
// With workers > 1 the documents are split across goroutines, each filling
// its own partial map; partials are summed once all workers finish.
func CountDocuments(ctx context.Context, docs []document.Document, policy tokenizer.Policy, workers int) (Counts, error) {
	if workers > len(docs) {
		workers = len(docs)
	}

	if workers <= 1 {
		counts := make(Counts)
		for _, doc := range docs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			tokens, err := readTokens(doc, policy)
			if err != nil {
				return nil, err
			}
			counts.addSet(tokens)
		}
		return counts, nil
	}

	partials := make([]Counts, workers)
	g, gctx := errgroup.WithContext(ctx)

	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			partial := make(Counts)
			for i := w; i < len(docs); i += workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				tokens, err := readTokens(docs[i], policy)
				if err != nil {
					return err
				}
				partial.addSet(tokens)
			}
			partials[w] = partial
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	counts := make(Counts)
	for _, partial := range partials {
		counts.merge(partial)
	}
	return counts, nil
}

// readTokens opens and tokenizes one document
func readTokens(doc document.Document, policy tokenizer.Policy) (tokenizer.TokenSet, error) {
	rc, err := doc.Open()
	if err != nil {
		return nil, &DocumentReadError{Document: doc.Name(), Err: err}
	}
	defer rc.Close()

	tokens, err := policy.Tokenize(rc)
	if err != nil {
		return nil, &DocumentReadError{Document: doc.Name(), Err: err}
	}
	return tokens, nil
}
