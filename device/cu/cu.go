//go:build cgo

// Package cu implements the CUDA device prober over gorgonia.org/cu.
// It lives apart from the core device package so that CPU-only
// binaries do not link the CUDA toolkit; only commands that want GPU
// probing import it.
package cu

import "fmt"

import "gorgonia.org/cu"

// Prober reports the CUDA devices visible to the process. It
// implements device.Prober.
type Prober struct{}

// Count returns the number of CUDA devices, or zero when the driver
// reports an error.
func (Prober) Count() int {
	n, err := cu.NumDevices()
	if err != nil {
		return 0
	}
	return n
}

// Describe renders one line of the device table: index, name and total
// memory in mebibytes.
func Describe(i int) string {
	name, err := cu.Device(i).Name()
	if err != nil {
		name = "unknown"
	}
	memory, err := cu.Device(i).TotalMem()
	if err != nil || memory < 0 {
		memory = 0
	}
	return fmt.Sprintf("cuda:%d %s (%d MiB)", i, name, memory>>20)
}
