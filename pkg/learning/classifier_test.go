package learning

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zpam/nbayes/pkg/document"
	"github.com/zpam/nbayes/pkg/tokenizer"
)

func TestClassifyScenario(t *testing.T) {
	c := NewClassifier(scenarioModel())

	tests := []struct {
		name   string
		tokens []string
		want   Label
	}{
		{"Spam word", []string{"money"}, Spam},
		{"Ham words", []string{"hi", "there"}, Ham},
		{"Shared word ties", []string{"free"}, Ham},
		{"Unseen word ties on priors", []string{"lottery"}, Ham},
		{"Empty document", nil, Ham},
		{"Unseen words ignored", []string{"money", "lottery", "jackpot"}, Spam},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.ClassifyTokens(tokenizer.NewTokenSet(tt.tokens...)))
		})
	}
}

func TestScoreValues(t *testing.T) {
	c := NewClassifier(scenarioModel())

	s := c.Score(tokenizer.NewTokenSet("money"))
	assert.InDelta(t, math.Log(0.5)+math.Log(2.0/3.0), s.LogSpam, 1e-12)
	assert.InDelta(t, math.Log(0.5)+math.Log(1.0/3.0), s.LogHam, 1e-12)

	tie := c.Score(tokenizer.NewTokenSet("free"))
	assert.Equal(t, tie.LogHam, tie.LogSpam)
	assert.Equal(t, Ham, tie.Label())
}

func TestScoreIgnoresAbsentTrainedTokens(t *testing.T) {
	// One ham document, two spam documents: spam has the larger prior
	model, err := Estimate(Counts{"x": 1}, Counts{"y": 2, "z": 1}, 1, 2)
	require.NoError(t, err)
	c := NewClassifier(model)

	s := c.Score(tokenizer.NewTokenSet())
	assert.Equal(t, math.Log(1.0/3.0), s.LogHam)
	assert.Equal(t, math.Log(2.0/3.0), s.LogSpam)
	assert.Equal(t, Spam, s.Label())
}

func TestScoreSingleClassPrior(t *testing.T) {
	model, err := Estimate(Counts{"hello": 1}, nil, 1, 0)
	require.NoError(t, err)

	s := NewClassifier(model).Score(tokenizer.NewTokenSet("hello"))
	assert.True(t, math.IsInf(s.LogSpam, -1))
	assert.Equal(t, Ham, s.Label())
}

func TestClassifyDeterministic(t *testing.T) {
	c := NewClassifier(scenarioModel())
	tokens := tokenizer.NewTokenSet("money", "hi", "now", "there")

	first := c.Score(tokens)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, c.Score(tokens))
	}
}

func TestClassifyBatchOrder(t *testing.T) {
	batch := docs("email", []string{"money"}, []string{"hi"}, []string{"now", "money"}, []string{"lottery"})
	want := []Label{Spam, Ham, Spam, Ham}

	for _, workers := range []int{1, 3, 8} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			rec := &fakeRecorder{}
			c := NewClassifier(scenarioModel(), WithPolicy(rawPolicy), WithWorkers(workers), WithRecorder(rec))

			results, err := c.Classify(context.Background(), batch)
			require.NoError(t, err)
			require.Len(t, results, len(batch))

			for i, res := range results {
				assert.Equal(t, fmt.Sprintf("email%d", i+1), res.Name)
				assert.Equal(t, want[i], res.Label)
			}

			assert.Equal(t, []string{PhaseClassify}, rec.phases)
			assert.Contains(t, rec.docs, recorded{phase: PhaseClassify, label: "spam", n: 2})
			assert.Contains(t, rec.docs, recorded{phase: PhaseClassify, label: "ham", n: 2})
		})
	}
}

func TestClassifyBatchAbortsOnReadError(t *testing.T) {
	batch := []document.Document{
		document.Tokens("a", "money"),
		brokenDocument{name: "b.eml"},
		document.Tokens("c", "hi"),
	}

	for _, workers := range []int{1, 2} {
		c := NewClassifier(scenarioModel(), WithPolicy(rawPolicy), WithWorkers(workers))
		results, err := c.Classify(context.Background(), batch)
		assert.Nil(t, results)

		var readErr *DocumentReadError
		require.True(t, errors.As(err, &readErr))
		assert.Equal(t, "b.eml", readErr.Document)
	}
}

func TestClassifyDocumentWithHeader(t *testing.T) {
	c := NewClassifier(scenarioModel())

	// Default policy drops "money" as the header token
	res, err := c.ClassifyDocument(document.Text("x", "money hi"))
	require.NoError(t, err)
	assert.Equal(t, Ham, res.Label)

	res, err = c.ClassifyDocument(document.Text("y", "Subject: money"))
	require.NoError(t, err)
	assert.Equal(t, Spam, res.Label)
	assert.Equal(t, "y", res.Name)
	assert.Equal(t, scenarioModel().Prior(Spam), c.Model().Prior(Spam))
}

func BenchmarkClassify(b *testing.B) {
	c := NewClassifier(scenarioModel())
	tokens := tokenizer.NewTokenSet("free", "money", "now", "hi", "there", "unknown", "words")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.ClassifyTokens(tokens)
	}
}
