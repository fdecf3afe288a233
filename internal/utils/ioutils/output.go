// Copyright 2025 Greenmask
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ioutils

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/pgzip"
)

const gzipExtension = ".gz"

type CountWriteCloser interface {
	io.WriteCloser
	// Count returns the number of bytes written before compression.
	Count() int64
}

// CountWriter counts the bytes passed to the wrapped writer.
type CountWriter struct {
	w     io.WriteCloser
	count int64
}

func NewCountWriter(w io.WriteCloser) *CountWriter {
	return &CountWriter{
		w: w,
	}
}

func (cw *CountWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.count += int64(n)
	return n, err
}

func (cw *CountWriter) Close() error {
	return cw.w.Close()
}

func (cw *CountWriter) Count() int64 {
	return cw.count
}

type flushWriteCloser interface {
	io.WriteCloser
	Flush() error
}

// GzipWriter compresses into the wrapped writer and closes it after the gzip stream.
type GzipWriter struct {
	w  io.WriteCloser
	gz flushWriteCloser
}

// NewGzipWriter compresses with pgzip when usePgzip is set and with compress/gzip otherwise.
func NewGzipWriter(w io.WriteCloser, usePgzip bool) *GzipWriter {
	res := &GzipWriter{w: w}
	if usePgzip {
		res.gz = pgzip.NewWriter(w)
	} else {
		res.gz = gzip.NewWriter(w)
	}
	return res
}

func (gw *GzipWriter) Write(p []byte) (int, error) {
	return gw.gz.Write(p)
}

// Close flushes and closes the gzip stream and then closes the wrapped writer, even when the stream
// failed. All failures are returned.
func (gw *GzipWriter) Close() error {
	var errs []error
	if err := gw.gz.Flush(); err != nil {
		errs = append(errs, fmt.Errorf("flush gzip buffer: %w", err))
	}
	if err := gw.gz.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close gzip stream: %w", err))
	}
	if err := gw.w.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close output: %w", err))
	}
	return errors.Join(errs...)
}

type OutputOptions struct {
	// Compress enables gzip. A ".gz" path suffix enables it as well.
	Compress bool
	// Pgzip selects the parallel gzip implementation.
	Pgzip bool
}

// CreateOutput creates or truncates the file at path and wraps it with the gzip and counting writers.
func CreateOutput(path string, opts OutputOptions) (CountWriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	var w io.WriteCloser = f
	if opts.Compress || strings.HasSuffix(path, gzipExtension) {
		w = NewGzipWriter(f, opts.Pgzip)
	}
	return NewCountWriter(w), nil
}
