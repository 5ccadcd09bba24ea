// Package main provides a demo program for training a softmax linear
// classifier on a synthetic Gaussian-blob dataset. This example shows the
// full helper surface in one place: activation lookup, device selection,
// permuted epoch ordering, the accuracy accumulator, the experiment
// journal and gzip-compressed npy weight snapshots.
package main
