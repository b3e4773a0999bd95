// Package compress selects a stream compression codec from a file extension.
// Files ending in .lz4 use lz4 frames and files ending in .zst or .zstd use
// zstandard; every other file is read and written as-is.
package compress

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

// Codec identifies a compression format
type Codec int

const (
	// None leaves data uncompressed
	None Codec = iota
	// LZ4 compresses with lz4 frames
	LZ4
	// Zstd compresses with zstandard
	Zstd
)

// ForPath returns the Codec matching the extension of path
func ForPath(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lz4":
		return LZ4
	case ".zst", ".zstd":
		return Zstd
	default:
		return None
	}
}

// NewReader wraps r with a decompressor for the Codec of path. The returned
// close function releases the decompressor, not r.
func NewReader(path string, r io.Reader) (io.Reader, func(), error) {
	switch ForPath(path) {
	case LZ4:
		return lz4.NewReader(r), func() {}, nil
	case Zstd:
		decoder, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, nil, err
		}
		return decoder, decoder.Close, nil
	default:
		return r, func() {}, nil
	}
}

// NewWriter wraps w with a compressor for the Codec of path. Closing the
// returned writer flushes the compressor but does not close w.
func NewWriter(path string, w io.Writer) (io.WriteCloser, error) {
	switch ForPath(path) {
	case LZ4:
		return lz4.NewWriter(w), nil
	case Zstd:
		encoder, err := zstd.NewWriter(w, zstd.WithEncoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		return encoder, nil
	default:
		return nopCloser{w}, nil
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
