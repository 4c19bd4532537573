package learning

import (
	"fmt"
	"io"
	"sort"
)

// TokenStats describes how strongly one token points at a class
type TokenStats struct {
	Token      string  `json:"token"`
	HamProb    float64 `json:"ham_prob"`
	SpamProb   float64 `json:"spam_prob"`
	Spamminess float64 `json:"spamminess"`
}

// TokenStatsFor returns statistics for a token, or nil if it was never seen
func (m *Model) TokenStatsFor(token string) *TokenStats {
	pHam, ok := m.hamProbs[token]
	if !ok {
		return nil
	}
	pSpam := m.spamProbs[token]

	return &TokenStats{
		Token:      token,
		HamProb:    pHam,
		SpamProb:   pSpam,
		Spamminess: pSpam / (pSpam + pHam),
	}
}

// TopTokens returns the tokens most indicative of label, strongest first
func TopTokens(m *Model, label Label, limit int) []*TokenStats {
	tokens := make([]*TokenStats, 0, len(m.hamProbs))
	for token := range m.hamProbs {
		tokens = append(tokens, m.TokenStatsFor(token))
	}

	sort.Slice(tokens, func(i, j int) bool {
		a, b := tokens[i], tokens[j]
		if a.Spamminess != b.Spamminess {
			if label == Spam {
				return a.Spamminess > b.Spamminess
			}
			return a.Spamminess < b.Spamminess
		}
		return a.Token < b.Token
	})

	if limit > 0 && len(tokens) > limit {
		tokens = tokens[:limit]
	}
	return tokens
}

// PrintStats prints model statistics
func PrintStats(w io.Writer, m *Model, limit int) {
	fmt.Fprintf(w, "🧠 Naive Bayes Model\n")
	fmt.Fprintf(w, "════════════════════════════════════════\n")
	fmt.Fprintf(w, "Model ID: %s\n", m.id)
	if !m.trainedAt.IsZero() {
		fmt.Fprintf(w, "Trained: %s\n", m.trainedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(w, "\nTraining Data:\n")
	fmt.Fprintf(w, "  Ham documents: %d\n", m.hamDocs)
	fmt.Fprintf(w, "  Spam documents: %d\n", m.spamDocs)
	fmt.Fprintf(w, "  Vocabulary size: %d\n", m.VocabularySize())
	fmt.Fprintf(w, "  Prior P(ham): %.4f\n", m.priorHam)
	fmt.Fprintf(w, "  Prior P(spam): %.4f\n", m.priorSpam)

	fmt.Fprintf(w, "\n📈 Top Spam Tokens:\n")
	for i, ts := range TopTokens(m, Spam, limit) {
		fmt.Fprintf(w, "  %2d. %-20s (%.3f spamminess, P(t|spam)=%.3f, P(t|ham)=%.3f)\n",
			i+1, ts.Token, ts.Spamminess, ts.SpamProb, ts.HamProb)
	}

	fmt.Fprintf(w, "\n📉 Top Ham Tokens:\n")
	for i, ts := range TopTokens(m, Ham, limit) {
		fmt.Fprintf(w, "  %2d. %-20s (%.3f spamminess, P(t|spam)=%.3f, P(t|ham)=%.3f)\n",
			i+1, ts.Token, ts.Spamminess, ts.SpamProb, ts.HamProb)
	}

	fmt.Fprintf(w, "\n")
}
