// Package bitstream implements the bit packer used by the brick and
// component tables.
//
// Bits are packed least significant bit first within each byte, and
// multi-bit fields are written least significant bit first. Byte runs
// written at an unaligned position are shifted bit by bit, so callers
// align explicitly wherever a record must start on a byte boundary.
package bitstream

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/arloliu/brs/encoding"
	"github.com/arloliu/brs/endian"
	"github.com/arloliu/brs/errs"
	"github.com/arloliu/brs/internal/pool"
)

// BitsFor returns the field width needed for indices into a table with the
// given number of entries. Tables with fewer than two entries are treated
// as having two, so the result is always at least one bit.
func BitsFor(cardinality int) int {
	return bits.Len(uint(Cardinality(cardinality) - 1))
}

// Cardinality returns the effective table size used for field widths and
// range checks: max(n, 2).
func Cardinality(n int) int {
	return max(n, 2)
}

// Writer accumulates bits into a pooled byte buffer.
//
// Writers are not safe for concurrent use. Call Release when the bytes are
// no longer needed.
type Writer struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	bitBuf uint64 // pending bits, least significant first
	count  int    // number of pending bits, always < 8 between calls
}

var _ encoding.BitWriter = (*Writer)(nil)

// NewWriter creates a bit writer backed by a pooled section buffer.
func NewWriter() *Writer {
	return &Writer{
		buf:    pool.GetSectionBuffer(),
		engine: endian.GetLittleEndianEngine(),
	}
}

// WriteBit writes a single bit.
func (w *Writer) WriteBit(bit bool) {
	var v uint64
	if bit {
		v = 1
	}
	w.WriteBits(v, 1)
}

// WriteBits writes the low numBits of value (0-64), least significant bit first.
func (w *Writer) WriteBits(value uint64, numBits int) {
	if numBits <= 0 {
		return
	}

	if numBits > 32 {
		w.WriteBits(value, 32)
		w.WriteBits(value>>32, numBits-32)

		return
	}

	value &= 1<<numBits - 1
	w.bitBuf |= value << w.count
	w.count += numBits

	for w.count >= 8 {
		_ = w.buf.WriteByte(byte(w.bitBuf))
		w.bitBuf >>= 8
		w.count -= 8
	}
}

// WriteUint writes value as a fixed-width field of width bits (1-32).
//
// Returns errs.ErrInvalidWidth for widths outside 1-32 and
// errs.ErrFieldOverflow if value needs more than width bits.
func (w *Writer) WriteUint(value uint32, width int) error {
	if width < 1 || width > 32 {
		return fmt.Errorf("%w: %d", errs.ErrInvalidWidth, width)
	}
	if width < 32 && value>>width != 0 {
		return fmt.Errorf("%w: %d in %d bits", errs.ErrFieldOverflow, value, width)
	}

	w.WriteBits(uint64(value), width)

	return nil
}

// WriteBytes writes a raw byte run, eight bits per byte.
func (w *Writer) WriteBytes(p []byte) {
	if w.count == 0 {
		w.buf.MustWrite(p)
		return
	}

	for _, b := range p {
		w.WriteBits(uint64(b), 8)
	}
}

// WriteInt32 writes v as four raw little-endian bytes.
func (w *Writer) WriteInt32(v int32) {
	w.WriteUint32(uint32(v)) //nolint:gosec
}

// WriteUint32 writes v as four raw little-endian bytes.
func (w *Writer) WriteUint32(v uint32) {
	var scratch [4]byte
	w.engine.PutUint32(scratch[:], v)
	w.WriteBytes(scratch[:])
}

// WriteUint64 writes v as eight raw little-endian bytes.
func (w *Writer) WriteUint64(v uint64) {
	var scratch [8]byte
	w.engine.PutUint64(scratch[:], v)
	w.WriteBytes(scratch[:])
}

// WriteCount writes an int32 element count as raw bytes.
func (w *Writer) WriteCount(n int) error {
	if n > math.MaxInt32 {
		return fmt.Errorf("array length %d exceeds maximum %d", n, math.MaxInt32)
	}
	w.WriteInt32(int32(n)) //nolint:gosec

	return nil
}

// WriteString writes an int32 byte length followed by the bytes of s.
func (w *Writer) WriteString(s string) error {
	if len(s) > encoding.MaxTextLength {
		return fmt.Errorf("text length %d exceeds maximum %d", len(s), encoding.MaxTextLength)
	}

	w.WriteInt32(int32(len(s))) //nolint:gosec
	w.WriteBytes([]byte(s))

	return nil
}

// WriteUintPacked writes a packed unsigned integer.
func (w *Writer) WriteUintPacked(v uint32) {
	encoding.WriteUintPacked(w, v)
}

// WriteIntPacked writes a packed signed integer.
func (w *Writer) WriteIntPacked(v int32) {
	encoding.WriteIntPacked(w, v)
}

// Align pads with zero bits up to the next byte boundary.
func (w *Writer) Align() {
	if w.count > 0 {
		_ = w.buf.WriteByte(byte(w.bitBuf))
		w.bitBuf = 0
		w.count = 0
	}
}

// BitLen returns the number of bits written so far.
func (w *Writer) BitLen() int {
	return w.buf.Len()*8 + w.count
}

// Bytes aligns the stream and returns the encoded bytes.
// The slice is only valid until Release.
func (w *Writer) Bytes() []byte {
	w.Align()

	return w.buf.Bytes()
}

// Release returns the buffer to the pool. The writer must not be used afterwards.
func (w *Writer) Release() {
	if w.buf != nil {
		pool.PutSectionBuffer(w.buf)
		w.buf = nil
	}
}
