package serializer

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// gzipCompressor implements Compressor with gzip framing.
type gzipCompressor struct {
	level int
}

// Gzip returns a gzip compressor at maximum compression, trading speed
// for size. The output carries only the framing and checksum the gzip
// format itself defines.
func Gzip() Compressor {
	return &gzipCompressor{level: gzip.BestCompression}
}

// GzipLevel returns a gzip compressor at a specific level
// (gzip.BestSpeed through gzip.BestCompression).
func GzipLevel(level int) Compressor {
	return &gzipCompressor{level: level}
}

func (c *gzipCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, c.level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompression, err)
	}
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompression, err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompression, err)
	}
	return buf.Bytes(), nil
}

func (c *gzipCompressor) Decompress(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompression, err)
	}
	out, err := io.ReadAll(zr)
	if err != nil {
		zr.Close()
		return nil, fmt.Errorf("%w: %w", ErrCompression, err)
	}
	// Close surfaces a trailing CRC mismatch that ReadAll may not.
	if err := zr.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompression, err)
	}
	return out, nil
}
