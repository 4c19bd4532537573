package learning

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Estimate turns per-class document frequencies into a Model.
//
// Every token seen in either class gets an entry in both tables; a token
// absent from a class counts 0 there. Probabilities use add-one smoothing
// over the two outcomes present/absent:
//
//	P(t|c) = (count(t, c) + 1) / (N_c + 2)
//
// Priors are the document share of each class. The input maps are not
// modified.
func Estimate(hamCounts, spamCounts Counts, numHam, numSpam int) (*Model, error) {
	if numHam < 0 || numSpam < 0 {
		return nil, fmt.Errorf("%w: negative document count %d/%d", ErrDegeneratePrior, numHam, numSpam)
	}
	total := numHam + numSpam
	if total == 0 {
		return nil, ErrDegeneratePrior
	}

	if err := checkCounts(hamCounts, numHam, Ham); err != nil {
		return nil, err
	}
	if err := checkCounts(spamCounts, numSpam, Spam); err != nil {
		return nil, err
	}

	vocabulary := make(map[string]struct{}, len(hamCounts)+len(spamCounts))
	for token := range hamCounts {
		vocabulary[token] = struct{}{}
	}
	for token := range spamCounts {
		vocabulary[token] = struct{}{}
	}

	hamProbs := make(map[string]float64, len(vocabulary))
	spamProbs := make(map[string]float64, len(vocabulary))
	for token := range vocabulary {
		hamProbs[token] = smooth(hamCounts[token], numHam)
		spamProbs[token] = smooth(spamCounts[token], numSpam)
	}

	return &Model{
		id:        uuid.NewString(),
		hamProbs:  hamProbs,
		spamProbs: spamProbs,
		priorHam:  float64(numHam) / float64(total),
		priorSpam: float64(numSpam) / float64(total),
		hamDocs:   numHam,
		spamDocs:  numSpam,
		trainedAt: time.Now(),
	}, nil
}

func smooth(count float64, docs int) float64 {
	return (count + 1) / (float64(docs) + 2)
}

// checkCounts rejects frequencies that cannot come from docs documents
func checkCounts(counts Counts, docs int, label Label) error {
	for token, n := range counts {
		if n < 0 || n > float64(docs) {
			return fmt.Errorf("%w: token %q appears in %v of %d %s documents",
				ErrInvalidModel, token, n, docs, label)
		}
	}
	return nil
}
