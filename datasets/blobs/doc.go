// Package blobs provides a synthetic Gaussian-blob classification dataset
// for the traintools demo programs. Each class is a unit-variance cluster
// around its own randomly drawn center, far enough apart that a linear
// classifier can separate them and accuracy metrics have headroom to climb.
package blobs
