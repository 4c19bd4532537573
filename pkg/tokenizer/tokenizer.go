package tokenizer

import (
	"bufio"
	"fmt"
	"io"
	"sort"
)

// maxTokenSize bounds a single whitespace-delimited token
const maxTokenSize = 1024 * 1024

// TokenSet is the set of unique tokens found in one document
type TokenSet map[string]struct{}

// NewTokenSet creates a token set from the given tokens
func NewTokenSet(tokens ...string) TokenSet {
	ts := make(TokenSet, len(tokens))
	for _, token := range tokens {
		ts.Add(token)
	}
	return ts
}

// Add inserts a token
func (ts TokenSet) Add(token string) {
	ts[token] = struct{}{}
}

// Has reports whether the token is in the set
func (ts TokenSet) Has(token string) bool {
	_, ok := ts[token]
	return ok
}

// Len returns the number of unique tokens
func (ts TokenSet) Len() int {
	return len(ts)
}

// Sorted returns the tokens in lexical order
func (ts TokenSet) Sorted() []string {
	tokens := make([]string, 0, len(ts))
	for token := range ts {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}

// Policy controls how a document is split into tokens.
//
// Documents conventionally start with a "Subject:" marker. With SkipHeader
// set, the first whitespace-delimited token is dropped whatever it is.
type Policy struct {
	SkipHeader bool `json:"skip_header" yaml:"skip_header"`
}

// DefaultPolicy returns the policy used for mail-like documents
func DefaultPolicy() Policy {
	return Policy{SkipHeader: true}
}

// Tokenize reads every whitespace-delimited token from r into a set.
// Punctuation is not stripped: "," and "!" are tokens when they stand alone.
func (p Policy) Tokenize(r io.Reader) (TokenSet, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxTokenSize)
	scanner.Split(bufio.ScanWords)

	tokens := make(TokenSet)
	skip := p.SkipHeader

	for scanner.Scan() {
		if skip {
			skip = false
			continue
		}
		tokens.Add(scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tokens: %w", err)
	}

	return tokens, nil
}
