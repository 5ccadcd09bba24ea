// Package main provides a demo program for evaluating a trained blob
// classifier. It reloads the gzip-compressed npy weights, regenerates the
// dataset from the training seed, scores overall and hash-split holdout
// accuracy and prints a markdown summary table.
package main
