package blobs

import (
	"math/rand"

	"gorgonia.org/tensor"
)

const spread = 4.0

// New generates n points of dim features in classes unit-variance
// clusters. Labels cycle through the classes, so the set is balanced.
// The same seed always yields the same set: cluster centers are drawn
// first, then the points, from one seeded source.
func New(n, classes, dim int, seed int64) (x *tensor.Dense, y []int) {
	if n <= 0 {
		n = 256
	}
	if classes <= 0 {
		classes = 2
	}
	if dim <= 0 {
		dim = 2
	}
	rng := rand.New(rand.NewSource(seed))

	centers := make([]float64, classes*dim)
	for i := range centers {
		centers[i] = (rng.Float64()*2 - 1) * spread
	}

	data := make([]float64, n*dim)
	y = make([]int, n)
	for i := 0; i < n; i++ {
		c := i % classes
		y[i] = c
		for j := 0; j < dim; j++ {
			data[i*dim+j] = centers[c*dim+j] + rng.NormFloat64()
		}
	}

	x = tensor.New(tensor.WithShape(n, dim), tensor.WithBacking(data))
	return x, y
}
