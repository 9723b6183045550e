package encoding

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/arloliu/brs/endian"
	"github.com/arloliu/brs/errs"
)

// Reader decodes byte-aligned primitives from an in-memory payload.
//
// Every method fails with errs.ErrUnexpectedEOF when fewer bytes remain than
// the primitive needs; the read offset is left unchanged in that case.
type Reader struct {
	data   []byte
	pos    int
	engine endian.EndianEngine
}

// NewReader creates a reader over data. The reader does not copy data.
func NewReader(data []byte) *Reader {
	return &Reader{
		data:   data,
		engine: endian.GetLittleEndianEngine(),
	}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Offset returns the current read offset.
func (r *Reader) Offset() int {
	return r.pos
}

func (r *Reader) next(n int) ([]byte, error) {
	if n > r.Remaining() {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			errs.ErrUnexpectedEOF, n, r.pos, r.Remaining())
	}

	b := r.data[r.pos : r.pos+n]
	r.pos += n

	return b, nil
}

// ReadUint8 reads one byte.
func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.next(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// ReadUint16 reads a little-endian uint16.
func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.next(2)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint16(b), nil
}

// ReadUint32 reads a little-endian uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.next(4)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint32(b), nil
}

// ReadInt32 reads a little-endian int32.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()

	return int32(v), err //nolint:gosec
}

// ReadBytes reads n raw bytes into a new slice.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidLength, n)
	}

	b, err := r.next(n)
	if err != nil {
		return nil, err
	}

	out := make([]byte, n)
	copy(out, b)

	return out, nil
}

// ReadInto fills dst with the next len(dst) bytes.
func (r *Reader) ReadInto(dst []byte) error {
	b, err := r.next(len(dst))
	if err != nil {
		return err
	}
	copy(dst, b)

	return nil
}

// ReadString reads an int32 length prefix and that many bytes.
//
// A negative length, or one larger than the remaining payload, is
// errs.ErrInvalidLength.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return "", err
	}
	if n < 0 || int(n) > r.Remaining() {
		return "", fmt.Errorf("%w: text length %d with %d bytes remaining",
			errs.ErrInvalidLength, n, r.Remaining())
	}

	b, _ := r.next(int(n))

	return string(b), nil
}

// ReadUUID reads 16 raw bytes.
func (r *Reader) ReadUUID() (uuid.UUID, error) {
	var id uuid.UUID
	err := r.ReadInto(id[:])

	return id, err
}

// ReadCount reads an int32 element count. Every array element occupies at
// least one byte, so counts above the remaining payload are rejected before
// anything is allocated.
func (r *Reader) ReadCount() (int, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return 0, err
	}
	if n < 0 || int(n) > r.Remaining() {
		return 0, fmt.Errorf("%w: array length %d with %d bytes remaining",
			errs.ErrInvalidLength, n, r.Remaining())
	}

	return int(n), nil
}

// ReadArray reads an int32 count followed by that many elements.
// A zero count yields a nil slice.
func ReadArray[T any](r *Reader, fn func(*Reader) (T, error)) ([]T, error) {
	n, err := r.ReadCount()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}

	items := make([]T, 0, n)
	for i := range n {
		item, err := fn(r)
		if err != nil {
			return nil, fmt.Errorf("array element %d: %w", i, err)
		}
		items = append(items, item)
	}

	return items, nil
}

// ReadStrings reads a text array.
func ReadStrings(r *Reader) ([]string, error) {
	return ReadArray(r, (*Reader).ReadString)
}
