package report

import (
	"fmt"
	"io"

	"github.com/zpam/nbayes/pkg/learning"
)

// Evaluation is a confusion matrix with spam as the positive class
type Evaluation struct {
	TruePositives  int // spam classified as spam
	FalsePositives int // ham classified as spam
	TrueNegatives  int // ham classified as ham
	FalseNegatives int // spam classified as ham
}

// Add records one prediction against its true label
func (e *Evaluation) Add(actual, predicted learning.Label) {
	switch {
	case actual == learning.Spam && predicted == learning.Spam:
		e.TruePositives++
	case actual == learning.Spam:
		e.FalseNegatives++
	case predicted == learning.Spam:
		e.FalsePositives++
	default:
		e.TrueNegatives++
	}
}

// AddResults records a batch whose true label is actual
func (e *Evaluation) AddResults(actual learning.Label, results []learning.Result) {
	for _, r := range results {
		e.Add(actual, r.Label)
	}
}

// Total is the number of predictions recorded
func (e Evaluation) Total() int {
	return e.TruePositives + e.FalsePositives + e.TrueNegatives + e.FalseNegatives
}

// Accuracy is the share of correct predictions
func (e Evaluation) Accuracy() float64 {
	return ratio(e.TruePositives+e.TrueNegatives, e.Total())
}

// Precision is the share of spam predictions that were spam
func (e Evaluation) Precision() float64 {
	return ratio(e.TruePositives, e.TruePositives+e.FalsePositives)
}

// Recall is the share of spam that was caught
func (e Evaluation) Recall() float64 {
	return ratio(e.TruePositives, e.TruePositives+e.FalseNegatives)
}

// F1 is the harmonic mean of precision and recall
func (e Evaluation) F1() float64 {
	p, r := e.Precision(), e.Recall()
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

// ratio returns 0 for an empty denominator
func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

// Print writes the evaluation in the CLI report style
func (e Evaluation) Print(w io.Writer) {
	fmt.Fprintf(w, "🎯 Evaluation Results\n")
	fmt.Fprintf(w, "═══════════════════════════════════════\n")
	fmt.Fprintf(w, "  Documents evaluated: %d\n", e.Total())
	fmt.Fprintf(w, "  Accuracy:  %.2f%%\n", e.Accuracy()*100)
	fmt.Fprintf(w, "  Precision: %.2f%%\n", e.Precision()*100)
	fmt.Fprintf(w, "  Recall:    %.2f%%\n", e.Recall()*100)
	fmt.Fprintf(w, "  F1 score:  %.4f\n", e.F1())
	fmt.Fprintf(w, "\n📊 Confusion Matrix:\n")
	fmt.Fprintf(w, "  %-12s %10s %10s\n", "", "pred ham", "pred spam")
	fmt.Fprintf(w, "  %-12s %10d %10d\n", "actual ham", e.TrueNegatives, e.FalsePositives)
	fmt.Fprintf(w, "  %-12s %10d %10d\n", "actual spam", e.FalseNegatives, e.TruePositives)
}
