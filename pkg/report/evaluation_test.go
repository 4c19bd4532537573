package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zpam/nbayes/pkg/learning"
)

func TestEvaluation(t *testing.T) {
	var e Evaluation
	e.AddResults(learning.Spam, []learning.Result{
		{Label: learning.Spam}, {Label: learning.Spam}, {Label: learning.Spam}, {Label: learning.Ham},
	})
	e.AddResults(learning.Ham, []learning.Result{
		{Label: learning.Ham}, {Label: learning.Ham}, {Label: learning.Ham}, {Label: learning.Ham},
		{Label: learning.Ham}, {Label: learning.Spam},
	})

	assert.Equal(t, Evaluation{TruePositives: 3, FalsePositives: 1, TrueNegatives: 5, FalseNegatives: 1}, e)
	assert.Equal(t, 10, e.Total())
	assert.InDelta(t, 0.8, e.Accuracy(), 1e-12)
	assert.InDelta(t, 0.75, e.Precision(), 1e-12)
	assert.InDelta(t, 0.75, e.Recall(), 1e-12)
	assert.InDelta(t, 0.75, e.F1(), 1e-12)

	var buf bytes.Buffer
	e.Print(&buf)
	assert.Contains(t, buf.String(), "Accuracy:  80.00%")
	assert.Contains(t, buf.String(), "Confusion Matrix")
}

func TestEvaluationEmpty(t *testing.T) {
	var e Evaluation
	assert.Zero(t, e.Accuracy())
	assert.Zero(t, e.Precision())
	assert.Zero(t, e.Recall())
	assert.Zero(t, e.F1())
}
