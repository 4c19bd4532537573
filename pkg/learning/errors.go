package learning

import (
	"errors"
	"fmt"
)

// ErrDegeneratePrior is returned when training sees no documents at all,
// leaving the class priors undefined.
var ErrDegeneratePrior = errors.New("training corpus is empty: class priors are undefined")

// ErrInvalidModel is returned when model data breaks the trained invariants
var ErrInvalidModel = errors.New("invalid model")

// DocumentReadError reports a document that could not be opened or read.
// Training and classification abort on the first one.
type DocumentReadError struct {
	Document string
	Err      error
}

func (e *DocumentReadError) Error() string {
	return fmt.Sprintf("failed to read document %s: %v", e.Document, e.Err)
}

func (e *DocumentReadError) Unwrap() error {
	return e.Err
}
