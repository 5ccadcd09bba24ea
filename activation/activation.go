// Package activation implements activation function lookup by string key.
// The four keys the training configs use are "relu", "sigm", "tanh" and
// "leaky"; anything else is ErrUnknown. Functions come in a functional
// form (Func) and an object form (Module).
package activation

import (
	"errors"
	"fmt"
	"math"

	"gorgonia.org/tensor"
)

// ErrUnknown is returned when no activation matches the requested key.
var ErrUnknown = errors.New("unknown activation function")

// DefaultSlope is the negative-side slope of the leaky rectifier.
const DefaultSlope = 0.01

// Func applies an activation elementwise and returns a fresh tensor;
// the input is never mutated.
type Func func(*tensor.Dense) (*tensor.Dense, error)

// ByName returns the activation Func for a key. Supported keys are
// "relu", "sigm", "tanh" and "leaky".
func ByName(name string) (Func, error) {
	switch name {
	case "relu":
		return elementwise(relu, as32(relu)), nil
	case "sigm":
		return elementwise(sigmoid, as32(sigmoid)), nil
	case "tanh":
		return elementwise(math.Tanh, as32(math.Tanh)), nil
	case "leaky":
		return elementwise(leaky(DefaultSlope), as32(leaky(DefaultSlope))), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
}

// Names lists the supported keys, for flag help strings.
func Names() []string {
	return []string{"relu", "sigm", "tanh", "leaky"}
}

func relu(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func leaky(slope float64) func(float64) float64 {
	return func(x float64) float64 {
		if x >= 0 {
			return x
		}
		return slope * x
	}
}

// as32 adapts a float64 scalar function to float32 tensors.
func as32(f func(float64) float64) func(float32) float32 {
	return func(x float32) float32 {
		return float32(f(float64(x)))
	}
}

// elementwise lifts the scalar functions onto dense tensors via Apply,
// dispatching on the tensor's dtype.
func elementwise(f64 func(float64) float64, f32 func(float32) float32) Func {
	return func(t *tensor.Dense) (*tensor.Dense, error) {
		switch t.Dtype() {
		case tensor.Float64:
			out, err := t.Apply(f64)
			if err != nil {
				return nil, err
			}
			return out.(*tensor.Dense), nil
		case tensor.Float32:
			out, err := t.Apply(f32)
			if err != nil {
				return nil, err
			}
			return out.(*tensor.Dense), nil
		}
		return nil, fmt.Errorf("activation on unsupported dtype %v", t.Dtype())
	}
}
