package activation

import (
	"fmt"
	"math"

	"gorgonia.org/tensor"
)

// Module is the object form of an activation, for code that wires
// activations into model graphs rather than calling them directly.
type Module interface {
	Forward(*tensor.Dense) (*tensor.Dense, error)
}

// ReLU is the rectifier module.
type ReLU struct{}

// Forward applies the rectifier.
func (ReLU) Forward(t *tensor.Dense) (*tensor.Dense, error) {
	return elementwise(relu, as32(relu))(t)
}

// Sigmoid is the logistic module.
type Sigmoid struct{}

// Forward applies the logistic function.
func (Sigmoid) Forward(t *tensor.Dense) (*tensor.Dense, error) {
	return elementwise(sigmoid, as32(sigmoid))(t)
}

// Tanh is the hyperbolic tangent module.
type Tanh struct{}

// Forward applies the hyperbolic tangent.
func (Tanh) Forward(t *tensor.Dense) (*tensor.Dense, error) {
	return elementwise(math.Tanh, as32(math.Tanh))(t)
}

// LeakyReLU is the leaky rectifier module. A zero Slope means
// DefaultSlope.
type LeakyReLU struct {
	Slope float64
}

// Forward applies the leaky rectifier.
func (l LeakyReLU) Forward(t *tensor.Dense) (*tensor.Dense, error) {
	slope := l.Slope
	if slope == 0 {
		slope = DefaultSlope
	}
	return elementwise(leaky(slope), as32(leaky(slope)))(t)
}

// ModuleByName returns the activation Module for a key, with the same
// keys and error behavior as ByName.
func ModuleByName(name string) (Module, error) {
	switch name {
	case "relu":
		return ReLU{}, nil
	case "sigm":
		return Sigmoid{}, nil
	case "tanh":
		return Tanh{}, nil
	case "leaky":
		return LeakyReLU{Slope: DefaultSlope}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
}
