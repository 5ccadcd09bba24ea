package metric

import "github.com/neurlang/traintools/datasets"
import "github.com/neurlang/traintools/parallel"

import "github.com/pkg/errors"
import "gorgonia.org/tensor"

// Accuracy accumulates the fraction of correct predictions across
// batches. It is not safe for concurrent use; Threads only bounds the
// concurrency inside a single Update call.
type Accuracy struct {
	ExternalBest float64 // best accuracy of the run this one resumed from, or -1
	Threads      int     // number of threads for counting within one update

	mode     Mode
	mask     *datasets.Mask
	correct  int
	examples int
	best     float64
}

// NewAccuracy returns a reset accumulator for the given mode.
func NewAccuracy(mode Mode) *Accuracy {
	var a = &Accuracy{ExternalBest: -1, best: -1, mode: mode}
	a.Reset()
	return a
}

// Mode returns the classification mode the accumulator matches with.
func (a *Accuracy) Mode() Mode {
	return a.mode
}

// Reset zeroes the batch counters at epoch start. The running best is
// per-lifetime and survives.
func (a *Accuracy) Reset() {
	a.correct = 0
	a.examples = 0
}

// SetMask installs the labeled-example set the semisupervised mode
// evaluates on.
func (a *Accuracy) SetMask(m datasets.Mask) {
	a.mask = &m
}

// Update folds one batch into the counters. The output and target
// layout depends on the mode; see the mode constants.
func (a *Accuracy) Update(output, target *tensor.Dense) error {
	switch a.mode {
	case Binary:
		return a.updateBinary(output, target)
	case Multiclass:
		correct, n, err := a.countMulticlass(output, target, nil)
		if err != nil {
			return err
		}
		a.correct += correct
		a.examples += n
		return nil
	case Multilabel:
		return a.updateMultilabel(output, target)
	case Semisupervised:
		if a.mask == nil {
			return errors.New("semisupervised update needs labeled indices: call SetMask or UpdateLabeled")
		}
		return a.UpdateLabeled(output, target, a.mask.Select())
	}
	return errors.Errorf("%s: no update defined", a.mode)
}

// UpdateBatch folds one batch into the counters and returns that
// batch's own accuracy. Only the multiclass mode defines it.
func (a *Accuracy) UpdateBatch(output, target *tensor.Dense) (float64, error) {
	if a.mode != Multiclass {
		return 0, errors.Errorf("per-batch accuracy is only defined for multiclass, not %s", a.mode)
	}
	correct, n, err := a.countMulticlass(output, target, nil)
	if err != nil {
		return 0, err
	}
	a.correct += correct
	a.examples += n
	if n == 0 {
		return 0, ErrNotComputable
	}
	return float64(correct) / float64(n), nil
}

// UpdateLabeled folds in the labeled rows of a full-set output, the
// semisupervised per-batch step. idx holds the labeled row numbers.
func (a *Accuracy) UpdateLabeled(output, target *tensor.Dense, idx []int) error {
	if a.mode != Semisupervised {
		return errors.Errorf("labeled-subset update is only defined for semisupervised, not %s", a.mode)
	}
	if idx == nil {
		idx = []int{}
	}
	correct, n, err := a.countMulticlass(output, target, idx)
	if err != nil {
		return err
	}
	a.correct += correct
	a.examples += n
	return nil
}

// Compute returns correct/examples for the updates since the last
// Reset and raises the running best when exceeded.
func (a *Accuracy) Compute() (float64, error) {
	if a.examples == 0 {
		return 0, ErrNotComputable
	}
	var acc = float64(a.correct) / float64(a.examples)
	if acc > a.best {
		a.best = acc
	}
	return acc, nil
}

// Best returns the highest accuracy any Compute has returned over the
// accumulator's lifetime, or -1 before the first.
func (a *Accuracy) Best() float64 {
	return a.best
}

func (a *Accuracy) updateBinary(output, target *tensor.Dense) error {
	pred, err := values(output)
	if err != nil {
		return errors.Wrap(err, "output")
	}
	want, err := values(target)
	if err != nil {
		return errors.Wrap(err, "target")
	}
	if len(pred) != len(want) {
		return errors.Errorf("binary size mismatch: %d predictions, %d targets", len(pred), len(want))
	}
	// predictions are cast to the target's dtype before comparing, so
	// float predictions against integer targets match truncated
	var trunc = integral(target)
	a.correct += parallel.Count(len(pred), a.Threads, func(i int) bool {
		if trunc {
			return int64(pred[i]) == int64(want[i])
		}
		return pred[i] == want[i]
	})
	a.examples += len(pred)
	return nil
}

func (a *Accuracy) updateMultilabel(output, target *tensor.Dense) error {
	if output.Dims() < 2 {
		return errors.Errorf("multilabel output needs class channels, got shape %v", output.Shape())
	}
	if !output.Shape().Eq(target.Shape()) {
		return errors.Errorf("multilabel shapes differ: %v vs %v", output.Shape(), target.Shape())
	}
	pred, err := values(output)
	if err != nil {
		return errors.Wrap(err, "output")
	}
	want, err := values(target)
	if err != nil {
		return errors.Wrap(err, "target")
	}
	var shape = output.Shape()
	var classes = shape[1]
	var spatial = 1
	for _, d := range shape[2:] {
		spatial *= d
	}
	// one row per (example, spatial position); element (n, c, s) lives
	// at n*classes*spatial + c*spatial + s in row-major order
	var block = classes * spatial
	var total = shape[0] * spatial
	var trunc = integral(target)
	a.correct += parallel.Count(total, a.Threads, func(i int) bool {
		var base = (i/spatial)*block + i%spatial
		for c := 0; c < classes; c++ {
			p, w := pred[base+c*spatial], want[base+c*spatial]
			if trunc {
				if int64(p) != int64(w) {
					return false
				}
			} else if p != w {
				return false
			}
		}
		return true
	})
	a.examples += total
	return nil
}

// countMulticlass counts rows whose argmax over the class columns hits
// the target class. A nil idx means every row; otherwise only the
// given rows count.
func (a *Accuracy) countMulticlass(output, target *tensor.Dense, idx []int) (correct, n int, err error) {
	if output.Dims() != 2 {
		return 0, 0, errors.Errorf("multiclass output must be 2-D (rows, classes), got shape %v", output.Shape())
	}
	var shape = output.Shape()
	var rows, classes = shape[0], shape[1]
	pred, err := values(output)
	if err != nil {
		return 0, 0, errors.Wrap(err, "output")
	}
	want, err := values(target)
	if err != nil {
		return 0, 0, errors.Wrap(err, "target")
	}
	if len(want) != rows {
		return 0, 0, errors.Errorf("multiclass target has %d values for %d rows", len(want), rows)
	}
	var at = func(i int) int { return i }
	n = rows
	if idx != nil {
		for _, r := range idx {
			if r < 0 || r >= rows {
				return 0, 0, errors.Errorf("labeled index %d outside %d rows", r, rows)
			}
		}
		at = func(i int) int { return idx[i] }
		n = len(idx)
	}
	correct = parallel.Count(n, a.Threads, func(i int) bool {
		var r = at(i)
		var row = pred[r*classes : (r+1)*classes]
		var best = 0
		for c := 1; c < classes; c++ {
			if row[c] > row[best] {
				best = c
			}
		}
		return float64(best) == want[r]
	})
	return correct, n, nil
}

// values flattens a tensor's backing into float64, accepting the
// dtypes batch code produces.
func values(t *tensor.Dense) ([]float64, error) {
	switch data := t.Data().(type) {
	case []float64:
		return data, nil
	case []float32:
		var out = make([]float64, len(data))
		for i, v := range data {
			out[i] = float64(v)
		}
		return out, nil
	case []int:
		var out = make([]float64, len(data))
		for i, v := range data {
			out[i] = float64(v)
		}
		return out, nil
	}
	return nil, errors.Errorf("unsupported dtype %v", t.Dtype())
}

func integral(t *tensor.Dense) bool {
	return t.Dtype() == tensor.Int
}
