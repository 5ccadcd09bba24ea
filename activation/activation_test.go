package activation

import (
	"errors"
	"math"
	"testing"

	"gorgonia.org/tensor"
)

func TestByNameMath(t *testing.T) {
	in := []float64{-2, -0.5, 0, 0.5, 2}
	testCases := []struct {
		name   string
		scalar func(float64) float64
	}{
		{"relu", func(x float64) float64 { return math.Max(x, 0) }},
		{"sigm", func(x float64) float64 { return 1 / (1 + math.Exp(-x)) }},
		{"tanh", math.Tanh},
		{"leaky", func(x float64) float64 {
			if x >= 0 {
				return x
			}
			return 0.01 * x
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fn, err := ByName(tc.name)
			if err != nil {
				t.Fatalf("ByName(%q): %v", tc.name, err)
			}
			src := tensor.New(tensor.WithShape(len(in)), tensor.WithBacking(append([]float64(nil), in...)))
			out, err := fn(src)
			if err != nil {
				t.Fatalf("%s: %v", tc.name, err)
			}
			got := out.Data().([]float64)
			for i, x := range in {
				want := tc.scalar(x)
				if math.Abs(got[i]-want) > 1e-12 {
					t.Errorf("%s(%v) == %v, want %v", tc.name, x, got[i], want)
				}
			}
		})
	}
}

func TestByNameUnknown(t *testing.T) {
	for _, name := range []string{"gelu", "ReLU", "", "sigmoid"} {
		if _, err := ByName(name); !errors.Is(err, ErrUnknown) {
			t.Errorf("ByName(%q) err == %v, want ErrUnknown", name, err)
		}
		if _, err := ModuleByName(name); !errors.Is(err, ErrUnknown) {
			t.Errorf("ModuleByName(%q) err == %v, want ErrUnknown", name, err)
		}
	}
}

func TestInputUnchanged(t *testing.T) {
	backing := []float64{-1, 2, -3, 4}
	src := tensor.New(tensor.WithShape(2, 2), tensor.WithBacking(backing))
	fn, err := ByName("relu")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fn(src); err != nil {
		t.Fatal(err)
	}
	want := []float64{-1, 2, -3, 4}
	for i := range want {
		if backing[i] != want[i] {
			t.Errorf("input element %d mutated to %v, want %v", i, backing[i], want[i])
		}
	}
}

func TestFloat32(t *testing.T) {
	src := tensor.New(tensor.WithShape(3), tensor.WithBacking([]float32{-2, 0, 2}))
	fn, err := ByName("leaky")
	if err != nil {
		t.Fatal(err)
	}
	out, err := fn(src)
	if err != nil {
		t.Fatal(err)
	}
	got := out.Data().([]float32)
	want := []float32{-0.02, 0, 2}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Errorf("element %d == %v, want %v", i, got[i], want[i])
		}
	}
}

func TestUnsupportedDtype(t *testing.T) {
	src := tensor.New(tensor.WithShape(2), tensor.WithBacking([]int{1, 2}))
	fn, err := ByName("relu")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fn(src); err == nil {
		t.Error("applying relu to an int tensor did not fail")
	}
}

func TestModuleParity(t *testing.T) {
	in := []float64{-1.5, -0.25, 0, 0.25, 1.5}
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			fn, err := ByName(name)
			if err != nil {
				t.Fatal(err)
			}
			mod, err := ModuleByName(name)
			if err != nil {
				t.Fatal(err)
			}
			src := tensor.New(tensor.WithShape(len(in)), tensor.WithBacking(append([]float64(nil), in...)))
			a, err := fn(src)
			if err != nil {
				t.Fatal(err)
			}
			b, err := mod.Forward(src)
			if err != nil {
				t.Fatal(err)
			}
			fa, fb := a.Data().([]float64), b.Data().([]float64)
			for i := range fa {
				if fa[i] != fb[i] {
					t.Errorf("%s: Func and Module disagree at %d: %v != %v", name, i, fa[i], fb[i])
				}
			}
		})
	}
}

func TestLeakySlope(t *testing.T) {
	src := tensor.New(tensor.WithShape(2), tensor.WithBacking([]float64{-10, 10}))
	out, err := LeakyReLU{Slope: 0.2}.Forward(src)
	if err != nil {
		t.Fatal(err)
	}
	got := out.Data().([]float64)
	if math.Abs(got[0]-(-2)) > 1e-12 || got[1] != 10 {
		t.Errorf("LeakyReLU{0.2} == %v, want [-2 10]", got)
	}
	out, err = LeakyReLU{}.Forward(src)
	if err != nil {
		t.Fatal(err)
	}
	got = out.Data().([]float64)
	if math.Abs(got[0]-(-0.1)) > 1e-12 {
		t.Errorf("zero-slope LeakyReLU negative side == %v, want -0.1", got[0])
	}
}
