package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/snappy"

	"github.com/matzehuels/statenet/pkg/errors"
)

// CompressedExt marks files stored in the snappy framing format.
const CompressedExt = ".sz"

// IsCompressed reports whether path names a snappy-framed file.
func IsCompressed(path string) bool { return strings.HasSuffix(path, CompressedExt) }

type readCloser struct {
	io.Reader
	f *os.File
}

func (r *readCloser) Close() error { return r.f.Close() }

// Open opens path for reading. Files ending in .sz are decompressed on the fly.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if IsCompressed(path) {
		return &readCloser{Reader: snappy.NewReader(f), f: f}, nil
	}
	return &readCloser{Reader: bufio.NewReaderSize(f, 1<<16), f: f}, nil
}

type writeCloser struct {
	w     *bufio.Writer
	snapw *snappy.Writer
	f     *os.File
}

func (w *writeCloser) Write(p []byte) (int, error) { return w.w.Write(p) }

// Close flushes all buffered (and compressed) data before closing the file.
func (w *writeCloser) Close() error {
	err := w.w.Flush()
	if w.snapw != nil {
		if cerr := w.snapw.Close(); err == nil {
			err = cerr
		}
	}
	if cerr := w.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// Create creates or truncates path for writing. Files ending in .sz are
// written snappy-compressed. The caller must Close the writer; Close reports
// flush errors.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	wc := &writeCloser{f: f}
	if IsCompressed(path) {
		wc.snapw = snappy.NewBufferedWriter(f)
		wc.w = bufio.NewWriterSize(wc.snapw, 1<<16)
	} else {
		wc.w = bufio.NewWriterSize(f, 1<<16)
	}
	return wc, nil
}

// Stem returns the path without a trailing .sz and its last extension.
// "data/2011_1.csv.sz" becomes "data/2011_1".
func Stem(path string) string {
	p := strings.TrimSuffix(path, CompressedExt)
	if i := strings.LastIndexByte(p, '.'); i > strings.LastIndexAny(p, `/\`) {
		return p[:i]
	}
	return p
}
