package bitstream

import (
	"fmt"

	"github.com/arloliu/brs/encoding"
	"github.com/arloliu/brs/endian"
	"github.com/arloliu/brs/errs"
)

// Reader reads bit-packed fields from an immutable byte slice.
//
// Any read that would pass the end of the data fails with errs.ErrBitOverrun
// and leaves the cursor unchanged.
type Reader struct {
	data   []byte
	pos    int // bit position
	engine endian.EndianEngine
}

var _ encoding.BitReader = (*Reader)(nil)

// NewReader creates a bit reader over data. The reader does not copy data.
func NewReader(data []byte) *Reader {
	return &Reader{
		data:   data,
		engine: endian.GetLittleEndianEngine(),
	}
}

// Remaining returns the number of unread bits.
func (r *Reader) Remaining() int {
	return len(r.data)*8 - r.pos
}

// BitPos returns the current bit position.
func (r *Reader) BitPos() int {
	return r.pos
}

func (r *Reader) overrun(need int) error {
	return fmt.Errorf("%w: need %d bits at bit %d, have %d",
		errs.ErrBitOverrun, need, r.pos, r.Remaining())
}

// ReadBit reads a single bit.
func (r *Reader) ReadBit() (bool, error) {
	if r.Remaining() < 1 {
		return false, r.overrun(1)
	}

	bit := r.data[r.pos>>3]>>(r.pos&7)&1 == 1
	r.pos++

	return bit, nil
}

// ReadBits reads numBits bits (0-64), least significant bit first.
func (r *Reader) ReadBits(numBits int) (uint64, error) {
	if numBits < 0 || numBits > 64 {
		return 0, fmt.Errorf("%w: %d", errs.ErrInvalidWidth, numBits)
	}
	if numBits > r.Remaining() {
		return 0, r.overrun(numBits)
	}

	var result uint64
	shift := 0
	for numBits > 0 {
		offset := r.pos & 7
		take := min(8-offset, numBits)

		chunk := uint64(r.data[r.pos>>3]>>offset) & (1<<take - 1)
		result |= chunk << shift

		shift += take
		r.pos += take
		numBits -= take
	}

	return result, nil
}

// ReadUint reads a fixed-width field of width bits (1-32).
func (r *Reader) ReadUint(width int) (uint32, error) {
	if width < 1 || width > 32 {
		return 0, fmt.Errorf("%w: %d", errs.ErrInvalidWidth, width)
	}

	v, err := r.ReadBits(width)

	return uint32(v), err //nolint:gosec
}

// ReadBytes reads n raw bytes into a new slice.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidLength, n)
	}
	if n*8 > r.Remaining() {
		return nil, r.overrun(n * 8)
	}

	out := make([]byte, n)
	if r.pos&7 == 0 {
		start := r.pos >> 3
		copy(out, r.data[start:start+n])
		r.pos += n * 8

		return out, nil
	}

	for i := range out {
		v, _ := r.ReadBits(8)
		out[i] = byte(v)
	}

	return out, nil
}

// ReadUint32 reads four raw little-endian bytes.
func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint32(b), nil
}

// ReadUint64 reads eight raw little-endian bytes.
func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint64(b), nil
}

// ReadInt32 reads four raw little-endian bytes.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()

	return int32(v), err //nolint:gosec
}

// ReadCount reads an int32 element count, rejecting negative counts and
// counts that could not fit in the remaining bits at minBits per element.
func (r *Reader) ReadCount(minBits int) (int, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return 0, err
	}
	if n < 0 || (minBits > 0 && int(n) > r.Remaining()/minBits) {
		return 0, fmt.Errorf("%w: array length %d with %d bits remaining",
			errs.ErrInvalidLength, n, r.Remaining())
	}

	return int(n), nil
}

// ReadString reads an int32 length prefix and that many bytes.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return "", err
	}
	if n < 0 || int(n) > r.Remaining()/8 {
		return "", fmt.Errorf("%w: text length %d with %d bits remaining",
			errs.ErrInvalidLength, n, r.Remaining())
	}

	b, err := r.ReadBytes(int(n))

	return string(b), err
}

// ReadUintPacked reads a packed unsigned integer.
func (r *Reader) ReadUintPacked() (uint32, error) {
	return encoding.ReadUintPacked(r)
}

// ReadIntPacked reads a packed signed integer.
func (r *Reader) ReadIntPacked() (int32, error) {
	return encoding.ReadIntPacked(r)
}

// Align advances to the next byte boundary.
func (r *Reader) Align() error {
	aligned := (r.pos + 7) &^ 7
	if aligned > len(r.data)*8 {
		return r.overrun(aligned - r.pos)
	}
	r.pos = aligned

	return nil
}

// AtEnd reports whether every bit has been consumed.
func (r *Reader) AtEnd() bool {
	return r.Remaining() == 0
}
