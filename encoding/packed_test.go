package encoding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/brs/errs"
)

// bitBuffer is a minimal LSB-first bit sink/source for exercising the packed
// encoders without the bitstream package.
type bitBuffer struct {
	bits []bool
	pos  int
}

func (b *bitBuffer) WriteBits(value uint64, numBits int) {
	for i := range numBits {
		b.bits = append(b.bits, value>>i&1 == 1)
	}
}

func (b *bitBuffer) ReadBits(numBits int) (uint64, error) {
	if b.pos+numBits > len(b.bits) {
		return 0, errs.ErrBitOverrun
	}

	var v uint64
	for i := range numBits {
		if b.bits[b.pos+i] {
			v |= 1 << i
		}
	}
	b.pos += numBits

	return v, nil
}

func (b *bitBuffer) bytes() []byte {
	out := make([]byte, (len(b.bits)+7)/8)
	for i, bit := range b.bits {
		if bit {
			out[i/8] |= 1 << (i % 8)
		}
	}

	return out
}

func TestUintPacked_WireForm(t *testing.T) {
	tests := []struct {
		name  string
		value uint32
		want  []byte
	}{
		{"zero", 0, []byte{0x00}},
		{"one", 1, []byte{0x02}},
		{"max single group", 127, []byte{0xfe}},
		{"two groups", 128, []byte{0x01, 0x02}},
		{"300", 300, []byte{0x59, 0x04}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bitBuffer
			WriteUintPacked(&buf, tt.value)
			require.Equal(t, tt.want, buf.bytes())
		})
	}
}

func TestUintPacked_RoundTrip(t *testing.T) {
	values := []uint32{0, 1, 63, 127, 128, 255, 16383, 16384, 1 << 21, 1<<28 - 1, 1 << 28, math.MaxUint32}

	var buf bitBuffer
	for _, v := range values {
		WriteUintPacked(&buf, v)
	}

	for _, want := range values {
		got, err := ReadUintPacked(&buf)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestIntPacked_RoundTrip(t *testing.T) {
	values := []int32{0, 1, -1, 63, -64, 1000, -1000, math.MaxInt32, math.MinInt32, math.MinInt32 + 1}

	var buf bitBuffer
	for _, v := range values {
		WriteIntPacked(&buf, v)
	}

	for _, want := range values {
		got, err := ReadIntPacked(&buf)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestIntPacked_SignAndMagnitude(t *testing.T) {
	var pos, neg bitBuffer
	WriteIntPacked(&pos, 1)
	WriteIntPacked(&neg, -1)

	// (1 << 1) | 1 = 3, packed as group 3 << 1
	require.Equal(t, []byte{0x06}, pos.bytes())
	// (1 << 1) | 0 = 2, packed as group 2 << 1
	require.Equal(t, []byte{0x04}, neg.bytes())
}

func TestUintPacked_Overflow(t *testing.T) {
	t.Run("continuation after last group", func(t *testing.T) {
		var buf bitBuffer
		for range maxPackedGroups {
			buf.WriteBits(0xff, 8)
		}
		_, err := ReadUintPacked(&buf)
		require.ErrorIs(t, err, errs.ErrPackedOverflow)
	})

	t.Run("value wider than 32 bits", func(t *testing.T) {
		var buf bitBuffer
		writePacked(&buf, 1<<33)
		_, err := ReadUintPacked(&buf)
		require.ErrorIs(t, err, errs.ErrPackedOverflow)
	})

	t.Run("signed magnitude too large", func(t *testing.T) {
		var buf bitBuffer
		writePacked(&buf, (uint64(1)<<31)<<1|1)
		_, err := ReadIntPacked(&buf)
		require.ErrorIs(t, err, errs.ErrPackedOverflow)
	})

	t.Run("truncated", func(t *testing.T) {
		var buf bitBuffer
		buf.WriteBits(0x01, 8)
		_, err := ReadUintPacked(&buf)
		require.ErrorIs(t, err, errs.ErrBitOverrun)
	})
}
