package datasets

import "github.com/neurlang/quaternary"

// Mask is a compact labeled-example set for semisupervised evaluation.
// It stores one boolean per example index in a quaternary filter, which
// answers exactly for every key it was built over at a fraction of the
// footprint of a map.
type Mask struct {
	filter  quaternary.Filter
	n       int
	labeled int
}

// NewMask builds a mask over the examples 0..n-1, marking the given
// indices as labeled. Out-of-range indices are dropped.
func NewMask(labeled []int, n int) Mask {
	if n <= 0 {
		return Mask{}
	}
	var m = make(map[uint32]bool, n)
	for i := 0; i < n; i++ {
		m[uint32(i)] = false
	}
	var count int
	for _, i := range labeled {
		if i < 0 || i >= n {
			continue
		}
		if !m[uint32(i)] {
			count++
		}
		m[uint32(i)] = true
	}
	return Mask{filter: quaternary.Make(m), n: n, labeled: count}
}

// Get reports whether example i is labeled.
func (m Mask) Get(i int) bool {
	if i < 0 || i >= m.n || m.filter == nil {
		return false
	}
	return m.filter.GetUint32(uint32(i))
}

// Select returns the labeled indices in ascending order.
func (m Mask) Select() (o []int) {
	o = make([]int, 0, m.labeled)
	for i := 0; i < m.n; i++ {
		if m.Get(i) {
			o = append(o, i)
		}
	}
	return
}

// Len returns the number of labeled examples.
func (m Mask) Len() int {
	return m.labeled
}

// Cap returns the total number of examples the mask covers.
func (m Mask) Cap() int {
	return m.n
}

// Size returns the footprint of the underlying filter in bytes.
func (m Mask) Size() int {
	return len(m.filter)
}
