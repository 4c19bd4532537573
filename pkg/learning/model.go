package learning

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Model is the trained state of the classifier.
//
// Both probability tables share one key set and every value lies in (0, 1).
// A Model is never modified after it is built, so it can be shared freely
// between goroutines.
type Model struct {
	id        string
	hamProbs  map[string]float64
	spamProbs map[string]float64
	priorHam  float64
	priorSpam float64
	hamDocs   int
	spamDocs  int
	trainedAt time.Time
}

// Snapshot is the serializable form of a Model
type Snapshot struct {
	ID        string             `json:"id"`
	HamProbs  map[string]float64 `json:"ham_probs"`
	SpamProbs map[string]float64 `json:"spam_probs"`
	PriorHam  float64            `json:"prior_ham"`
	PriorSpam float64            `json:"prior_spam"`
	HamDocs   int                `json:"ham_documents"`
	SpamDocs  int                `json:"spam_documents"`
	TrainedAt time.Time          `json:"trained_at"`
}

// ID returns the unique identifier assigned at training time
func (m *Model) ID() string {
	return m.id
}

// TrainedAt returns when the model was estimated
func (m *Model) TrainedAt() time.Time {
	return m.trainedAt
}

// Prob returns P(token present | label). ok is false for tokens never
// seen in training.
func (m *Model) Prob(token string, label Label) (p float64, ok bool) {
	switch label {
	case Ham:
		p, ok = m.hamProbs[token]
	case Spam:
		p, ok = m.spamProbs[token]
	}
	return p, ok
}

// Prior returns the prior probability of a label
func (m *Model) Prior(label Label) float64 {
	if label == Spam {
		return m.priorSpam
	}
	return m.priorHam
}

// Documents returns the number of training documents for a label
func (m *Model) Documents(label Label) int {
	if label == Spam {
		return m.spamDocs
	}
	return m.hamDocs
}

// VocabularySize returns the number of distinct training tokens
func (m *Model) VocabularySize() int {
	return len(m.hamProbs)
}

// Vocabulary returns every training token in lexical order
func (m *Model) Vocabulary() []string {
	tokens := make([]string, 0, len(m.hamProbs))
	for token := range m.hamProbs {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}

// Snapshot copies the model into its serializable form
func (m *Model) Snapshot() *Snapshot {
	return &Snapshot{
		ID:        m.id,
		HamProbs:  copyProbs(m.hamProbs),
		SpamProbs: copyProbs(m.spamProbs),
		PriorHam:  m.priorHam,
		PriorSpam: m.priorSpam,
		HamDocs:   m.hamDocs,
		SpamDocs:  m.spamDocs,
		TrainedAt: m.trainedAt,
	}
}

// FromSnapshot rebuilds a Model, checking the trained invariants
func FromSnapshot(s *Snapshot) (*Model, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil snapshot", ErrInvalidModel)
	}
	if s.HamDocs < 0 || s.SpamDocs < 0 || s.HamDocs+s.SpamDocs == 0 {
		return nil, fmt.Errorf("%w: document counts %d/%d", ErrInvalidModel, s.HamDocs, s.SpamDocs)
	}
	if !validPrior(s.PriorHam) || !validPrior(s.PriorSpam) || math.Abs(s.PriorHam+s.PriorSpam-1) > 1e-9 {
		return nil, fmt.Errorf("%w: priors %v/%v do not sum to 1", ErrInvalidModel, s.PriorHam, s.PriorSpam)
	}
	if len(s.HamProbs) != len(s.SpamProbs) {
		return nil, fmt.Errorf("%w: vocabulary sizes differ (%d ham, %d spam)",
			ErrInvalidModel, len(s.HamProbs), len(s.SpamProbs))
	}

	for token, p := range s.HamProbs {
		q, ok := s.SpamProbs[token]
		if !ok {
			return nil, fmt.Errorf("%w: token %q missing from spam table", ErrInvalidModel, token)
		}
		if !validProb(p) || !validProb(q) {
			return nil, fmt.Errorf("%w: token %q has probability outside (0, 1)", ErrInvalidModel, token)
		}
	}

	id := s.ID
	if id == "" {
		id = uuid.NewString()
	}

	return &Model{
		id:        id,
		hamProbs:  copyProbs(s.HamProbs),
		spamProbs: copyProbs(s.SpamProbs),
		priorHam:  s.PriorHam,
		priorSpam: s.PriorSpam,
		hamDocs:   s.HamDocs,
		spamDocs:  s.SpamDocs,
		trainedAt: s.TrainedAt,
	}, nil
}

func validProb(p float64) bool {
	return p > 0 && p < 1
}

func validPrior(p float64) bool {
	return p >= 0 && p <= 1
}

func copyProbs(src map[string]float64) map[string]float64 {
	dst := make(map[string]float64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
