// Package input opens pattern inputs and splits them into lines.
//
// Compressed files are recognised by their magic bytes, not their names,
// and decompressed transparently.
package input

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// MaxLineSize is the longest line Lines accepts.
const MaxLineSize = 1 << 20

// Stdin is the path that selects standard input.
const Stdin = "-"

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Open opens path for reading, or standard input for "-". Closing the
// result never closes standard input.
func Open(path string) (io.ReadCloser, error) {
	if path == Stdin {
		return Decompress(io.NopCloser(os.Stdin))
	}
	f, err := os.Open(path) //nolint:gosec // G304: reading user-named files is the point
	if err != nil {
		return nil, err
	}
	rc, err := Decompress(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rc, nil
}

// Decompress sniffs the first bytes of rc and wraps it in a gzip or zstd
// decoder when they match. Closing the result closes rc.
func Decompress(rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(rc)
	head, err := br.Peek(len(zstdMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	switch {
	case bytes.HasPrefix(head, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return &readCloser{Reader: zr, close: func() error {
			return errors.Join(zr.Close(), rc.Close())
		}}, nil
	case bytes.HasPrefix(head, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return &readCloser{Reader: zr, close: func() error {
			zr.Close()
			return rc.Close()
		}}, nil
	default:
		return &readCloser{Reader: br, close: rc.Close}, nil
	}
}

type readCloser struct {
	io.Reader
	close func() error
}

func (r *readCloser) Close() error {
	return r.close()
}

// Lines calls fn for every line of r with its 1-based number. Line
// terminators, including a trailing '\r', are not passed to fn.
//
// Lines stops at the first error from fn, from reading, or from ctx.
func Lines(ctx context.Context, r io.Reader, fn func(lineNo int, line string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)

	lineNo := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		if err := fn(lineNo, sc.Text()); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("line %d: %w", lineNo+1, err)
	}
	return nil
}
