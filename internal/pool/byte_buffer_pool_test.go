package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(8)
	require.Equal(t, 0, bb.Len())

	bb.MustWrite([]byte{1, 2, 3})
	require.NoError(t, bb.WriteByte(4))
	bb.MustWrite([]byte{5})
	require.Equal(t, []byte{1, 2, 3, 4, 5}, bb.Bytes())

	capBefore := cap(bb.B)
	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.Equal(t, capBefore, cap(bb.B))
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("sufficient capacity is a no-op", func(t *testing.T) {
		bb := NewByteBuffer(64)
		bb.Grow(32)
		require.Equal(t, 64, cap(bb.B))
	})

	t.Run("small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.Grow(1)
		require.Equal(t, SectionBufferDefaultSize, cap(bb.B))
	})

	t.Run("large buffer grows by a quarter", func(t *testing.T) {
		size := 8 * SectionBufferDefaultSize
		bb := NewByteBuffer(size)
		bb.B = bb.B[:size]
		bb.Grow(1)
		require.Equal(t, size+size/4, cap(bb.B))
	})

	t.Run("request larger than growth step", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.Grow(SectionBufferDefaultSize * 3)
		require.GreaterOrEqual(t, cap(bb.B), SectionBufferDefaultSize*3)
	})

	t.Run("preserves data", func(t *testing.T) {
		bb := NewByteBuffer(2)
		bb.MustWrite([]byte{9, 8})
		bb.Grow(100)
		require.Equal(t, []byte{9, 8}, bb.Bytes())
	})
}

func TestByteBufferPool_ReturnsEmptyBuffers(t *testing.T) {
	bb := GetSectionBuffer()
	require.NotNil(t, bb)
	bb.MustWrite([]byte("payload"))
	PutSectionBuffer(bb)

	again := GetSectionBuffer()
	require.Equal(t, 0, again.Len())
	PutSectionBuffer(again)

	PutSectionBuffer(nil)
}

func TestByteBufferPool_MaxThreshold(t *testing.T) {
	p := NewByteBufferPool(16, 32)

	big := NewByteBuffer(64)
	big.MustWrite([]byte("oversized"))
	p.Put(big)

	got := p.Get()
	require.Equal(t, 0, got.Len())
	require.LessOrEqual(t, cap(got.B), 32)
}

func TestByteBufferPool_ConcurrentAccess(t *testing.T) {
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			bb := GetSectionBuffer()
			bb.MustWrite([]byte{byte(id)})
			require.Equal(t, 1, bb.Len())
			PutSectionBuffer(bb)
		}(i)
	}
	wg.Wait()
}
