package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zlib"
)

// ZlibCompressor compresses blocks as zlib streams.
type ZlibCompressor struct {
	level int
	pool  *sync.Pool
}

var (
	_ Codec             = (*ZlibCompressor)(nil)
	_ SizedDecompressor = (*ZlibCompressor)(nil)
)

var zlibPools sync.Map // level -> *sync.Pool of *zlib.Writer

func writerPool(level int) *sync.Pool {
	if p, ok := zlibPools.Load(level); ok {
		return p.(*sync.Pool) //nolint:forcetypeassert
	}

	p := &sync.Pool{
		New: func() any {
			w, err := zlib.NewWriterLevel(io.Discard, level)
			if err != nil {
				// level is validated before a pool is created
				panic(fmt.Sprintf("failed to create zlib writer for pool: %v", err))
			}
			return w
		},
	}
	actual, _ := zlibPools.LoadOrStore(level, p)

	return actual.(*sync.Pool) //nolint:forcetypeassert
}

// NewZlibCompressor creates a zlib codec at the default compression level.
func NewZlibCompressor() ZlibCompressor {
	return NewZlibCompressorLevel(zlib.DefaultCompression)
}

// NewZlibCompressorLevel creates a zlib codec at the given level.
// Out-of-range levels fall back to the default level.
func NewZlibCompressorLevel(level int) ZlibCompressor {
	if level < zlib.HuffmanOnly || level > zlib.BestCompression {
		level = zlib.DefaultCompression
	}

	return ZlibCompressor{level: level, pool: writerPool(level)}
}

// Level returns the configured compression level.
func (c ZlibCompressor) Level() int {
	return c.level
}

// Compress compresses data with a pooled zlib writer.
func (c ZlibCompressor) Compress(data []byte) ([]byte, error) {
	w, _ := c.pool.Get().(*zlib.Writer)
	defer c.pool.Put(w)

	var out bytes.Buffer
	out.Grow(len(data)/2 + 16)
	w.Reset(&out)

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("zlib compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("zlib compression failed: %w", err)
	}

	return out.Bytes(), nil
}

// Decompress inflates a complete zlib stream.
func (c ZlibCompressor) Decompress(data []byte) ([]byte, error) {
	return c.inflate(data, -1)
}

// DecompressSized inflates a zlib stream, reading at most size+1 bytes of output.
func (c ZlibCompressor) DecompressSized(data []byte, size int) ([]byte, error) {
	return c.inflate(data, size)
}

// maxInflateReserve caps the buffer reserved before inflating.
const maxInflateReserve = 1 << 20

func (c ZlibCompressor) inflate(data []byte, size int) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib decompression failed: %w", err)
	}
	defer r.Close()

	var src io.Reader = r
	var out bytes.Buffer
	if size >= 0 {
		src = io.LimitReader(r, int64(size)+1)
		// size comes from an untrusted header; grow with the real output
		out.Grow(min(size, maxInflateReserve))
	}

	if _, err := out.ReadFrom(src); err != nil {
		return nil, fmt.Errorf("zlib decompression failed: %w", err)
	}

	return out.Bytes(), nil
}
