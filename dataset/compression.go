package dataset

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionType defines the compression algorithm of a data file.
type CompressionType uint8

const (
	// CompressionNone indicates a plain file.
	CompressionNone CompressionType = iota
	// CompressionGzip indicates a gzip stream.
	CompressionGzip
	// CompressionZSTD indicates a Zstandard stream.
	CompressionZSTD
	// CompressionLZ4 indicates an LZ4 frame stream.
	CompressionLZ4
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZSTD:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Unknown(%d)", c)
	}
}

// DetectCompression infers the compression type from a file extension.
func DetectCompression(path string) CompressionType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return CompressionGzip
	case ".zst", ".zstd":
		return CompressionZSTD
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// NewDecompressor wraps r so that reads return decompressed bytes.
// Closing the returned reader releases decoder resources but not r.
func NewDecompressor(r io.Reader, c CompressionType) (io.ReadCloser, error) {
	switch c {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return zr, nil
	case CompressionZSTD:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return dec.IOReadCloser(), nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("unsupported compression: %v", c)
	}
}

// fileReader couples a decompressor with the file underneath it.
type fileReader struct {
	io.ReadCloser
	f *os.File
}

func (fr *fileReader) Close() error {
	err := fr.ReadCloser.Close()
	if ferr := fr.f.Close(); err == nil {
		err = ferr
	}
	return err
}

// Open opens path and decompresses it according to its extension.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	rc, err := NewDecompressor(f, DetectCompression(path))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &fileReader{ReadCloser: rc, f: f}, nil
}
