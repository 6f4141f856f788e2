package bundle

import (
	"fmt"
	"io"
	"os"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
)

// Compression algorithms supported for size measurement
const (
	CompressionNone   = "none"
	CompressionGzip   = "gzip"
	CompressionBrotli = "brotli"
)

// countingWriter discards data and counts how many bytes were written
type countingWriter struct {
	n int64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	return len(p), nil
}

// compressedSize returns the size of the file at path after compression
func compressedSize(path, compression string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return compressedReaderSize(f, compression)
}

func compressedReaderSize(r io.Reader, compression string) (int64, error) {
	counter := &countingWriter{}

	var w io.WriteCloser
	switch compression {
	case CompressionNone, "":
		n, err := io.Copy(counter, r)
		if err != nil {
			return 0, fmt.Errorf("failed to read content: %w", err)
		}
		return n, nil
	case CompressionGzip:
		gz, err := gzip.NewWriterLevel(counter, gzip.BestCompression)
		if err != nil {
			return 0, fmt.Errorf("failed to create gzip writer: %w", err)
		}
		w = gz
	case CompressionBrotli:
		w = brotli.NewWriterLevel(counter, brotli.BestCompression)
	default:
		return 0, fmt.Errorf("unsupported compression %q", compression)
	}

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return 0, fmt.Errorf("failed to compress content: %w", err)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("failed to flush %s writer: %w", compression, err)
	}

	return counter.n, nil
}
