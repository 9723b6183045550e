package encoding

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/arloliu/brs/endian"
	"github.com/arloliu/brs/internal/pool"
)

// MaxTextLength is the largest text length the int32 prefix can describe.
const MaxTextLength = math.MaxInt32

// Writer appends byte-aligned primitives to a pooled buffer.
//
// Encoding format:
//   - integers: fixed width, little-endian
//   - text: int32 byte length followed by the UTF-8 bytes, no terminator
//   - uuid: 16 raw bytes in uuid.UUID order
//
// Writers are not safe for concurrent use. Call Release when the bytes are
// no longer needed.
type Writer struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
}

// NewWriter creates a writer backed by a pooled section buffer.
func NewWriter() *Writer {
	return &Writer{
		buf:    pool.GetSectionBuffer(),
		engine: endian.GetLittleEndianEngine(),
	}
}

// WriteUint8 appends a single byte.
func (w *Writer) WriteUint8(v uint8) {
	_ = w.buf.WriteByte(v)
}

// WriteUint16 appends a little-endian uint16.
func (w *Writer) WriteUint16(v uint16) {
	w.buf.B = w.engine.AppendUint16(w.buf.B, v)
}

// WriteUint32 appends a little-endian uint32.
func (w *Writer) WriteUint32(v uint32) {
	w.buf.B = w.engine.AppendUint32(w.buf.B, v)
}

// WriteInt32 appends a little-endian int32.
func (w *Writer) WriteInt32(v int32) {
	w.WriteUint32(uint32(v)) //nolint:gosec
}

// WriteBytes appends raw bytes.
func (w *Writer) WriteBytes(p []byte) {
	w.buf.MustWrite(p)
}

// WriteString appends an int32 length prefix and the bytes of s.
func (w *Writer) WriteString(s string) error {
	if len(s) > MaxTextLength {
		return fmt.Errorf("text length %d exceeds maximum %d", len(s), MaxTextLength)
	}

	w.buf.Grow(4 + len(s))
	w.WriteInt32(int32(len(s))) //nolint:gosec
	w.buf.B = append(w.buf.B, s...)

	return nil
}

// WriteUUID appends the 16 bytes of id.
func (w *Writer) WriteUUID(id uuid.UUID) {
	w.buf.MustWrite(id[:])
}

// WriteCount appends an int32 element count.
func (w *Writer) WriteCount(n int) error {
	if n > math.MaxInt32 {
		return fmt.Errorf("array length %d exceeds maximum %d", n, math.MaxInt32)
	}
	w.WriteInt32(int32(n)) //nolint:gosec

	return nil
}

// Bytes returns the encoded data. The slice is only valid until Release.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Release returns the buffer to the pool. The writer must not be used afterwards.
func (w *Writer) Release() {
	if w.buf != nil {
		pool.PutSectionBuffer(w.buf)
		w.buf = nil
	}
}

// WriteArray writes len(items) as an int32 count followed by each element.
func WriteArray[T any](w *Writer, items []T, fn func(*Writer, T) error) error {
	if err := w.WriteCount(len(items)); err != nil {
		return err
	}

	for i, item := range items {
		if err := fn(w, item); err != nil {
			return fmt.Errorf("array element %d: %w", i, err)
		}
	}

	return nil
}

// WriteStrings writes a text array.
func WriteStrings(w *Writer, items []string) error {
	return WriteArray(w, items, (*Writer).WriteString)
}
