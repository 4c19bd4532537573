// Package report renders classification results for the command line.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/zpam/nbayes/pkg/learning"
)

// Format selects how results are written
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates an output format name
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown output format: %s", s)
	}
}

// Record is the JSON form of a single result. Scores that are not finite
// (a class with zero prior) are written as null.
type Record struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	LogHam  *float64 `json:"log_ham"`
	LogSpam *float64 `json:"log_spam"`
}

// NewRecord converts a classifier result
func NewRecord(r learning.Result) Record {
	return Record{
		Name:    r.Name,
		Label:   r.Label.String(),
		LogHam:  finite(r.LogHam),
		LogSpam: finite(r.LogSpam),
	}
}

func finite(f float64) *float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}
	return &f
}

// Write renders results one per line: "<name> <label>" for text, one JSON
// object per line for json.
func Write(w io.Writer, format Format, results []learning.Result) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		for _, r := range results {
			if err := enc.Encode(NewRecord(r)); err != nil {
				return fmt.Errorf("failed to write result: %w", err)
			}
		}
	case FormatText, "":
		for _, r := range results {
			if _, err := fmt.Fprintf(w, "%s %s\n", r.Name, r.Label); err != nil {
				return fmt.Errorf("failed to write result: %w", err)
			}
		}
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
	return nil
}

// Summary counts results per label
type Summary struct {
	Total int
	Ham   int
	Spam  int
}

// Summarize counts results per label
func Summarize(results []learning.Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Label == learning.Spam {
			s.Spam++
		} else {
			s.Ham++
		}
	}
	return s
}
