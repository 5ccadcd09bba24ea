package datasets

import "github.com/jbarham/primegen"

// Perm is a deterministic random-access permutation of [0, n) used for
// epoch ordering. It walks the indices with a prime stride, so any
// position is computable in O(1) without materializing the order and
// loader workers can carve up an epoch without coordinating. The walk
// decorrelates neighboring examples; it is not a uniform shuffle.
type Perm struct {
	n      int
	stride uint64
	offset uint64
}

// NewPerm returns the permutation of [0, n) for the given seed. The
// stride is a prime above n (a prime cannot divide a smaller n, so the
// walk is a full cycle); the seed skips ahead in the prime stream and
// rotates the starting point.
func NewPerm(n int, seed int64) Perm {
	if n <= 0 {
		return Perm{}
	}
	var gen = primegen.New()
	var stride = gen.Next()
	for stride <= uint64(n) {
		stride = gen.Next()
	}
	for skip := uint64(seed) % 17; skip > 0; skip-- {
		stride = gen.Next()
	}
	return Perm{
		n:      n,
		stride: stride,
		offset: uint64(bucket(uint32(seed)^uint32(uint64(seed)>>32), 0x5eed, uint32(n))),
	}
}

// Len returns the length of the permutation.
func (p Perm) Len() int {
	return p.n
}

// At returns the i-th index of the permuted order. Positions wrap
// modulo the length, so At is total on any i for a non-empty Perm.
func (p Perm) At(i int) int {
	if p.n <= 0 {
		return 0
	}
	var j = uint64(i) % uint64(p.n)
	return int((p.offset + j*p.stride) % uint64(p.n))
}

// Indices materializes the whole order.
func (p Perm) Indices() (o []int) {
	o = make([]int, p.n)
	for i := range o {
		o[i] = p.At(i)
	}
	return
}
