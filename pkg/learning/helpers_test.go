package learning

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/zpam/nbayes/pkg/document"
	"github.com/zpam/nbayes/pkg/tokenizer"
)

// rawPolicy reads token documents without dropping a header
var rawPolicy = tokenizer.Policy{SkipHeader: false}

// docs builds header-less documents from token lists
func docs(prefix string, sets ...[]string) []document.Document {
	out := make([]document.Document, 0, len(sets))
	for i, set := range sets {
		out = append(out, document.Tokens(fmt.Sprintf("%s%d", prefix, i+1), set...))
	}
	return out
}

// brokenDocument fails to open
type brokenDocument struct {
	name string
}

func (b brokenDocument) Name() string { return b.name }

func (b brokenDocument) Open() (io.ReadCloser, error) {
	return nil, errors.New("permission denied")
}

type recorded struct {
	phase string
	label string
	n     int
}

type fakeRecorder struct {
	mu     sync.Mutex
	phases []string
	docs   []recorded
}

func (f *fakeRecorder) ObservePhase(phase string, elapsed time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.phases = append(f.phases, phase)
}

func (f *fakeRecorder) AddDocuments(phase, label string, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs = append(f.docs, recorded{phase: phase, label: label, n: n})
}

// scenarioModel is trained on hams [{hi there free}] and spams [{free money now}]
func scenarioModel() *Model {
	hams := Counts{"hi": 1, "there": 1, "free": 1}
	spams := Counts{"free": 1, "money": 1, "now": 1}
	model, err := Estimate(hams, spams, 1, 1)
	if err != nil {
		panic(err)
	}
	return model
}
