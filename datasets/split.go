package datasets

// bucket places a key on 0..max-1: xorshift mixing with prime
// coefficients, salted on both sides, then the Lemire multiply-shift
// reduction instead of a modulo.
// https://lemire.me/blog/2016/06/27/a-fast-alternative-to-the-modulo-reduction/
func bucket(key, salt, max uint32) uint32 {
	var m = key - salt

	m ^= m << 2
	m ^= m << 3
	m ^= m >> 5
	m ^= m >> 7
	m ^= m << 11
	m ^= m << 13
	m ^= m >> 17
	m ^= m << 19

	m += salt

	return uint32((uint64(m) * uint64(max)) >> 32)
}

// HashSplit reports whether example i falls into the held-out fraction
// of percent (0..100) under the given salt. Assignment depends only on
// (i, salt), never on the dataset size, so an example keeps its side as
// the dataset grows.
func HashSplit(i, salt uint32, percent int) bool {
	if percent <= 0 {
		return false
	}
	if percent >= 100 {
		return true
	}
	return bucket(i, salt, 100) < uint32(percent)
}

// Split partitions [0, n) into train and holdout index sets with
// approximately percent percent held out.
func Split(n, percent int, salt uint32) (train, holdout []int) {
	for i := 0; i < n; i++ {
		if HashSplit(uint32(i), salt, percent) {
			holdout = append(holdout, i)
		} else {
			train = append(train, i)
		}
	}
	return
}
