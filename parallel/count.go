package parallel

import (
	"sync"
	"sync/atomic"
)

// Count evaluates pred for every integer from 0 to length and reports how
// many returned true. Work is sliced into at most limit contiguous chunks,
// one goroutine each, so pred runs without per-index scheduling overhead.
// A limit below 2 counts serially.
func Count(length, limit int, pred func(i int) bool) int {
	if length <= 0 {
		return 0
	}
	if limit > length {
		limit = length
	}
	if limit <= 1 {
		var o int
		for i := 0; i < length; i++ {
			if pred(i) {
				o++
			}
		}
		return o
	}

	var total int64
	var wg sync.WaitGroup
	var chunk = (length + limit - 1) / limit

	for start := 0; start < length; start += chunk {
		end := start + chunk
		if end > length {
			end = length
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			var o int64
			for i := start; i < end; i++ {
				if pred(i) {
					o++
				}
			}
			atomic.AddInt64(&total, o)
		}(start, end)
	}

	wg.Wait()
	return int(total)
}
