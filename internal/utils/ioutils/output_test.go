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
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const records = `{"code":"QX123","age":42,"tags":["a","b"]}
{"code":"JD907","age":18,"tags":["c","d"]}
{"code":"AB001","age":99,"tags":["e","f"]}
`

type writeCloserMock struct {
	data           []byte
	writeCallCount int
	writeCallFunc  func(callCount int) error
	closeCallCount int
	closeCallFunc  func(callCount int) error
}

func (w *writeCloserMock) Write(p []byte) (n int, err error) {
	w.writeCallCount++
	if w.writeCallFunc != nil {
		if err := w.writeCallFunc(w.writeCallCount); err != nil {
			return 0, err
		}
	}
	w.data = append(w.data, p...)
	return len(p), nil
}

func (w *writeCloserMock) Close() error {
	w.closeCallCount++
	if w.closeCallFunc != nil {
		return w.closeCallFunc(w.closeCallCount)
	}
	return nil
}

func decompress(t *testing.T, data []byte) string {
	t.Helper()
	r, err := pgzip.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	res, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	return string(res)
}

func TestGzipWriter_Write(t *testing.T) {
	for _, usePgzip := range []bool{false, true} {
		objSrc := &writeCloserMock{}
		w := NewGzipWriter(objSrc, usePgzip)
		_, err := w.Write([]byte(records))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		assert.Equal(t, records, decompress(t, objSrc.data), "pgzip=%t", usePgzip)
		assert.Equal(t, 1, objSrc.closeCallCount)
	}
}

func TestGzipWriter_Close(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		objSrc := &writeCloserMock{}
		w := NewGzipWriter(objSrc, false)
		require.NoError(t, w.Close())
		require.Equal(t, 1, objSrc.closeCallCount)
	})

	t.Run("Write error", func(t *testing.T) {
		objSrc := &writeCloserMock{
			writeCallFunc: func(c int) error {
				// The first call writes the gzip header
				if c == 2 {
					return errors.New("disk is full")
				}
				return nil
			},
		}
		w := NewGzipWriter(objSrc, false)
		_, err := w.Write([]byte(records))
		require.NoError(t, err)

		err = w.Close()
		require.Error(t, err)
		require.ErrorContains(t, err, "flush gzip buffer: disk is full")
		require.Equal(t, 1, objSrc.closeCallCount)
	})

	t.Run("Output close error", func(t *testing.T) {
		objSrc := &writeCloserMock{
			closeCallFunc: func(int) error {
				return errors.New("output is gone")
			},
		}
		w := NewGzipWriter(objSrc, false)
		err := w.Close()
		require.ErrorContains(t, err, "close output: output is gone")
	})
}

func TestCreateOutput(t *testing.T) {
	dir := t.TempDir()

	t.Run("plain", func(t *testing.T) {
		path := filepath.Join(dir, "records.jsonl")
		w, err := CreateOutput(path, OutputOptions{})
		require.NoError(t, err)
		_, err = w.Write([]byte(records))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		assert.Equal(t, int64(len(records)), w.Count())
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, records, string(data))
	})

	t.Run("compressed by suffix", func(t *testing.T) {
		path := filepath.Join(dir, "records.jsonl.gz")
		w, err := CreateOutput(path, OutputOptions{Pgzip: true})
		require.NoError(t, err)
		_, err = w.Write([]byte(records))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		assert.Equal(t, int64(len(records)), w.Count())
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		r, err := gzip.NewReader(bytes.NewReader(data))
		require.NoError(t, err)
		res, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, records, string(res))
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := CreateOutput(filepath.Join(dir, "missing", "records.jsonl"), OutputOptions{})
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
