package dataset

import (
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects how array files are encoded on the store.
type Compression int

const (
	// CompressionNone stores raw NPY bytes.
	CompressionNone Compression = iota
	// CompressionZstd wraps the file in a zstd stream (".zst").
	CompressionZstd
	// CompressionLZ4 wraps the file in an lz4 frame (".lz4").
	CompressionLZ4
)

// Ext returns the file extension appended for this compression, or "".
func (c Compression) Ext() string {
	switch c {
	case CompressionZstd:
		return ".zst"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// DetectCompression returns the compression implied by name's extension.
func DetectCompression(name string) Compression {
	switch {
	case strings.HasSuffix(name, ".zst"):
		return CompressionZstd
	case strings.HasSuffix(name, ".lz4"):
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// wrapReader layers the decompressor over r. The returned closer releases
// decoder resources; it does not close r.
func (c Compression) wrapReader(r io.Reader) (io.Reader, func(), error) {
	switch c {
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, zr.Close, nil
	case CompressionLZ4:
		return lz4.NewReader(r), func() {}, nil
	default:
		return r, func() {}, nil
	}
}

// wrapWriter layers the compressor over w. The returned WriteCloser must be
// closed to flush; it does not close w.
func (c Compression) wrapWriter(w io.Writer) (io.WriteCloser, error) {
	switch c {
	case CompressionZstd:
		return zstd.NewWriter(w)
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nopWriteCloser{w}, nil
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
