// Package compress provides the block compressors used by the brs framer.
//
// Save files always carry zlib streams, so ZlibCompressor is the codec used
// for real files. NoOpCompressor never shrinks its input, which makes the
// framer store every block raw; it is useful for debugging dumps.
package compress

import (
	"fmt"
)

// Compressor compresses a complete block payload.
type Compressor interface {
	// Compress returns the compressed form of data. The input is not
	// modified and the result is owned by the caller.
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
type Decompressor interface {
	// Decompress returns the original payload or an error if data is not a
	// valid stream for this codec.
	Decompress(data []byte) ([]byte, error)
}

// SizedDecompressor is implemented by decompressors that can stop reading
// once an expected output size is exceeded. The framer prefers it so a
// corrupt length header cannot make it inflate an unbounded stream.
type SizedDecompressor interface {
	// DecompressSized inflates data, reading at most size+1 output bytes.
	// The returned slice is longer than size only when the stream holds
	// more data than expected.
	DecompressSized(data []byte, size int) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// Stats describes one compression operation.
type Stats struct {
	OriginalSize   int64
	CompressedSize int64
}

// CompressionRatio returns compressed size / original size, or 0 for empty input.
func (s Stats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space saved as a percentage.
func (s Stats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec returns a zlib codec for the given level, or a no-op codec
// when compression is disabled.
//
// Level follows compress/flate conventions: -1 is the default level, 0 is
// stored, 1..9 trade speed for size.
func CreateCodec(level int, disabled bool) (Codec, error) {
	if disabled {
		return NewNoOpCompressor(), nil
	}

	if level < -1 || level > 9 {
		return nil, fmt.Errorf("invalid zlib compression level: %d", level)
	}

	return NewZlibCompressorLevel(level), nil
}
