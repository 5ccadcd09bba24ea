// Package npy implements gzip-compressed NumPy array persistence for
// dense tensors. The array encoding is the tensor package's npy codec;
// this package adds the compression layer and the fixed file naming
// that run configs expect.
package npy

import "compress/gzip"
import "io"
import "os"

import "github.com/pkg/errors"
import "gorgonia.org/tensor"

// Suffix is appended to every filename passed to Save and Load, so
// callers name arrays without an extension.
const Suffix = ".npy.gz"

// Write writes t to w as a gzip-compressed npy stream.
func Write(w io.Writer, t *tensor.Dense) error {
	zw := gzip.NewWriter(w)
	if err := t.WriteNpy(zw); err != nil {
		zw.Close()
		return errors.Wrap(err, "encode npy")
	}
	return errors.Wrap(zw.Close(), "flush gzip")
}

// Read decodes one gzip-compressed npy stream from r.
func Read(r io.Reader) (*tensor.Dense, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "open gzip")
	}
	var t tensor.Dense
	if err := t.ReadNpy(zr); err != nil {
		zr.Close()
		return nil, errors.Wrap(err, "decode npy")
	}
	if err := zr.Close(); err != nil {
		return nil, errors.Wrap(err, "close gzip")
	}
	return &t, nil
}

// Save writes t to filename+Suffix, replacing any existing file.
func Save(filename string, t *tensor.Dense) error {
	name := filename + Suffix
	file, err := os.Create(name)
	if err != nil {
		return errors.Wrapf(err, "save %s", name)
	}
	err = Write(file, t)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return errors.Wrapf(err, "save %s", name)
}

// Load reads the tensor stored at filename+Suffix.
func Load(filename string) (*tensor.Dense, error) {
	name := filename + Suffix
	file, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", name)
	}
	t, err := Read(file)
	file.Close()
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", name)
	}
	return t, nil
}
