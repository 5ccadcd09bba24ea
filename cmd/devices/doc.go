//go:build cgo

// Package main provides a small utility that lists the compute devices a
// training run could target: the host CPU summary and every CUDA device
// the driver reports. It is the only binary linking the CUDA prober, so
// the rest of the tree builds without the toolkit.
package main
