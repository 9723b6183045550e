package compress

import (
	"bytes"
	"crypto/rand"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func getAllCodecs() map[string]Codec {
	return map[string]Codec{
		"NoOp":      NewNoOpCompressor(),
		"Zlib":      NewZlibCompressor(),
		"ZlibBest":  NewZlibCompressorLevel(9),
		"ZlibSpeed": NewZlibCompressorLevel(1),
	}
}

func compressiblePayload(size int) []byte {
	return bytes.Repeat([]byte("brick\x00\x01\x02"), size/8+1)[:size]
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	sizes := []int{0, 1, 16, 1024, 64 * 1024}

	for name, codec := range getAllCodecs() {
		for _, size := range sizes {
			t.Run(name, func(t *testing.T) {
				data := compressiblePayload(size)

				compressed, err := codec.Compress(data)
				require.NoError(t, err)

				decompressed, err := codec.Decompress(compressed)
				require.NoError(t, err)
				require.Equal(t, len(data), len(decompressed))
				if size > 0 {
					require.Equal(t, data, decompressed)
				}
			})
		}
	}
}

func TestZlibCompressor_ShrinksRepetitiveData(t *testing.T) {
	data := compressiblePayload(32 * 1024)
	compressed, err := NewZlibCompressor().Compress(data)
	require.NoError(t, err)
	require.Less(t, len(compressed), len(data)/4)

	stats := Stats{OriginalSize: int64(len(data)), CompressedSize: int64(len(compressed))}
	require.Less(t, stats.CompressionRatio(), 0.25)
	require.Greater(t, stats.SpaceSavings(), 75.0)
}

func TestZlibCompressor_InvalidData(t *testing.T) {
	_, err := NewZlibCompressor().Decompress([]byte{0xde, 0xad, 0xbe, 0xef})
	require.Error(t, err)
	require.Contains(t, err.Error(), "zlib decompression failed")
}

func TestZlibCompressor_DecompressSized(t *testing.T) {
	data := compressiblePayload(4096)
	codec := NewZlibCompressor()
	compressed, err := codec.Compress(data)
	require.NoError(t, err)

	exact, err := codec.DecompressSized(compressed, len(data))
	require.NoError(t, err)
	require.Equal(t, data, exact)

	// A smaller expected size stops one byte past the limit.
	short, err := codec.DecompressSized(compressed, 100)
	require.NoError(t, err)
	require.Len(t, short, 101)

	// A huge expected size only reserves what the stream produces.
	huge, err := codec.DecompressSized(compressed, math.MaxInt32)
	require.NoError(t, err)
	require.Equal(t, data, huge)
	require.LessOrEqual(t, cap(huge), maxInflateReserve+len(data))
}

func TestZlibCompressor_Level(t *testing.T) {
	require.Equal(t, -1, NewZlibCompressor().Level())
	require.Equal(t, 9, NewZlibCompressorLevel(9).Level())
	require.Equal(t, -1, NewZlibCompressorLevel(42).Level())
}

func TestCreateCodec(t *testing.T) {
	codec, err := CreateCodec(-1, false)
	require.NoError(t, err)
	require.IsType(t, ZlibCompressor{}, codec)

	codec, err = CreateCodec(5, true)
	require.NoError(t, err)
	require.IsType(t, NoOpCompressor{}, codec)

	_, err = CreateCodec(10, false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid zlib compression level")
}

func TestNoOpCompressor_NeverShrinks(t *testing.T) {
	data := make([]byte, 512)
	_, _ = rand.Read(data)

	out, err := NewNoOpCompressor().Compress(data)
	require.NoError(t, err)
	require.Len(t, out, len(data))
}

func TestStats_EmptyInput(t *testing.T) {
	require.Equal(t, 0.0, Stats{}.CompressionRatio())
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	codec := NewZlibCompressor()
	var wg sync.WaitGroup

	for i := range 8 {
		wg.Add(1)
		go func(seed byte) {
			defer wg.Done()
			data := bytes.Repeat([]byte{seed, seed + 1, seed + 2}, 2000)
			for range 20 {
				compressed, err := codec.Compress(data)
				require.NoError(t, err)
				out, err := codec.Decompress(compressed)
				require.NoError(t, err)
				require.Equal(t, data, out)
			}
		}(byte(i))
	}
	wg.Wait()
}
