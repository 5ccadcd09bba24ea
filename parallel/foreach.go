// Package parallel contains the bounded-concurrency loop helpers used by
// batch-level code: parallel ForEach() plus parallel Count().
package parallel

import "sync"

// ForEach executes a for loop with a limited number of concurrent goroutines.
// Each goroutine processes one integer, from 0 to length.
func ForEach(length, limit int, body func(i int)) {
	if length <= 0 {
		return
	}
	if limit <= 0 {
		limit = 1
	}

	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup
	wg.Add(length)

	for i := 0; i < length; i++ {
		sem <- struct{}{} // acquire
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }() // release

			body(i)
		}(i)
	}

	wg.Wait()
}
