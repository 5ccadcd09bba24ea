// Package metric implements the evaluation metrics of the training
// loop. A metric lives for a whole run: Reset at epoch start, Update
// once per batch, Compute at epoch end.
package metric

import "errors"
import "fmt"

import "gorgonia.org/tensor"

// Metric is the reset/update/compute lifecycle every evaluation metric
// follows.
type Metric interface {
	Reset()
	Update(output, target *tensor.Dense) error
	Compute() (float64, error)
}

// ErrNotComputable is returned by Compute before any example was seen.
var ErrNotComputable = errors.New("accuracy must have at least one example before it can be computed")

// ErrUnknownMode is returned when no classification mode matches the
// requested key.
var ErrUnknownMode = errors.New("unknown classification mode")

// Mode selects how predictions are matched against targets.
type Mode int

const (
	// Binary compares thresholded predictions elementwise.
	Binary Mode = iota
	// Multiclass compares the argmax over class columns per row.
	Multiclass
	// Multilabel requires every class channel to match per position.
	Multilabel
	// Semisupervised is Multiclass restricted to labeled indices.
	Semisupervised
)

// ParseMode maps the config key strings to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "binary":
		return Binary, nil
	case "multiclass":
		return Multiclass, nil
	case "multilabel":
		return Multilabel, nil
	case "semisupervised":
		return Semisupervised, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// String renders the config key of the mode.
func (m Mode) String() string {
	switch m {
	case Binary:
		return "binary"
	case Multiclass:
		return "multiclass"
	case Multilabel:
		return "multilabel"
	case Semisupervised:
		return "semisupervised"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}
