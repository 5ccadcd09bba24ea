// Package datasets implements the training-loop data glue: batch tiling,
// deterministic epoch permutations, stable train/holdout splits and
// labeled-example masks.
package datasets

// Batches tiles [0, n) into half-open [start, end) index ranges of the
// given size; the final range is shorter when size does not divide n.
// A size of zero or less yields a single range covering everything.
func Batches(n, size int) (o [][2]int) {
	if n <= 0 {
		return nil
	}
	if size <= 0 || size > n {
		size = n
	}
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		o = append(o, [2]int{start, end})
	}
	return
}
