package learning

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zpam/nbayes/pkg/document"
)

func TestTrainEndToEnd(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	rec := &fakeRecorder{}

	trainer := NewTrainer(WithPolicy(rawPolicy), WithLogger(zap.New(core)), WithRecorder(rec))
	model, err := trainer.Train(context.Background(),
		docs("ham", []string{"hi", "there", "free"}),
		docs("spam", []string{"free", "money", "now"}))
	require.NoError(t, err)

	assert.Equal(t, 0.5, model.Prior(Ham))
	assert.Equal(t, 0.5, model.Prior(Spam))

	p, _ := model.Prob("money", Spam)
	assert.Equal(t, 2.0/3.0, p)
	p, _ = model.Prob("money", Ham)
	assert.Equal(t, 1.0/3.0, p)

	c := NewClassifier(model)
	assert.Equal(t, Spam, c.ClassifyTokens(map[string]struct{}{"money": {}}))
	assert.Equal(t, Ham, c.ClassifyTokens(map[string]struct{}{"unseen": {}}))

	assert.Equal(t, []string{PhaseCount, PhaseEstimate}, rec.phases)
	assert.Contains(t, rec.docs, recorded{phase: PhaseCount, label: "ham", n: 1})
	assert.Contains(t, rec.docs, recorded{phase: PhaseCount, label: "spam", n: 1})

	entries := logs.FilterMessage("model trained").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "trainer", fields["component"])
	assert.Equal(t, model.ID(), fields["model_id"])
	assert.Equal(t, int64(5), fields["vocabulary"])
}

func TestTrainRepeatedTokenCountsOnce(t *testing.T) {
	trainer := NewTrainer(WithPolicy(rawPolicy))

	once, err := trainer.Train(context.Background(),
		docs("ham", []string{"hello"}),
		docs("spam", []string{"money"}, []string{"win"}))
	require.NoError(t, err)

	five, err := trainer.Train(context.Background(),
		docs("ham", []string{"hello"}),
		docs("spam", []string{"money", "money", "money", "money", "money"}, []string{"win"}))
	require.NoError(t, err)

	p1, _ := once.Prob("money", Spam)
	p5, _ := five.Prob("money", Spam)
	assert.Equal(t, p1, p5)
	assert.Equal(t, 2.0/4.0, p5)
	assert.NotEqual(t, once.ID(), five.ID())
}

func TestTrainEmptyCorpus(t *testing.T) {
	model, err := NewTrainer().Train(context.Background(), nil, []document.Document{})
	assert.Nil(t, model)
	assert.ErrorIs(t, err, ErrDegeneratePrior)
}

func TestTrainAbortsOnUnreadableDocument(t *testing.T) {
	hams := docs("ham", []string{"hi"})
	spams := []document.Document{document.Tokens("s1", "win"), brokenDocument{name: "spam/bad.txt"}}

	model, err := NewTrainer(WithPolicy(rawPolicy), WithWorkers(4)).Train(context.Background(), hams, spams)
	assert.Nil(t, model)

	var readErr *DocumentReadError
	require.True(t, errors.As(err, &readErr))
	assert.Equal(t, "spam/bad.txt", readErr.Document)
	assert.Contains(t, err.Error(), "failed to count spam documents")
}

func TestTrainWithHeaderPolicy(t *testing.T) {
	hams := []document.Document{document.Text("h1", "Subject: lunch at noon")}
	spams := []document.Document{document.Text("s1", "Subject: cheap pills now")}

	model, err := NewTrainer().Train(context.Background(), hams, spams)
	require.NoError(t, err)

	_, ok := model.Prob("Subject:", Ham)
	assert.False(t, ok)
	assert.Equal(t, 6, model.VocabularySize())
}

func TestRecordersSkipsNil(t *testing.T) {
	assert.IsType(t, nopRecorder{}, Recorders())
	assert.IsType(t, nopRecorder{}, Recorders(nil, nil))

	a, b := &fakeRecorder{}, &fakeRecorder{}
	r := Recorders(a, nil, b)
	r.ObservePhase(PhaseCount, 0)
	r.AddDocuments(PhaseCount, "ham", 3)

	assert.Equal(t, []string{PhaseCount}, a.phases)
	assert.Equal(t, []string{PhaseCount}, b.phases)
	assert.Equal(t, []recorded{{PhaseCount, "ham", 3}}, b.docs)
}
