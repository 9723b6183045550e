package section

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/arloliu/brs/endian"
	"github.com/arloliu/brs/errs"
	"github.com/arloliu/brs/format"
	"github.com/arloliu/brs/save"
)

// WritePreview writes the preview tag and, for a present preview, its
// length-prefixed bytes directly to w.
func WritePreview(w io.Writer, p save.Preview) error {
	if !p.Present() {
		if len(p.Data) != 0 {
			return fmt.Errorf("%w: %d bytes of data without a preview type", errs.ErrInvalidPreview, len(p.Data))
		}
		_, err := w.Write([]byte{byte(format.PreviewNone)})

		return err
	}

	if len(p.Data) > math.MaxInt32 {
		return fmt.Errorf("%w: %d bytes", errs.ErrInvalidPreview, len(p.Data))
	}

	var header [5]byte
	header[0] = byte(p.Type)
	endian.GetLittleEndianEngine().PutUint32(header[1:], uint32(len(p.Data))) //nolint:gosec

	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	_, err := w.Write(p.Data)

	return err
}

// ReadPreview reads a preview written by WritePreview. A present preview
// with zero bytes of data decodes with a nil Data slice.
func ReadPreview(r io.Reader) (save.Preview, error) {
	var tag [1]byte
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		return save.Preview{}, previewErr(err)
	}

	p := save.Preview{Type: format.PreviewType(tag[0])}
	if !p.Present() {
		return p, nil
	}

	var length [4]byte
	if _, err := io.ReadFull(r, length[:]); err != nil {
		return save.Preview{}, previewErr(err)
	}

	n := int32(endian.GetLittleEndianEngine().Uint32(length[:])) //nolint:gosec
	if n < 0 {
		return save.Preview{}, fmt.Errorf("%w: preview length %d", errs.ErrInvalidLength, n)
	}
	if n == 0 {
		return p, nil
	}

	// ReadAll grows with the data actually present, so a corrupt length
	// cannot force a large allocation up front.
	data, err := io.ReadAll(io.LimitReader(r, int64(n)))
	if err != nil {
		return save.Preview{}, previewErr(err)
	}
	if len(data) != int(n) {
		return save.Preview{}, fmt.Errorf("%w: preview has %d of %d bytes", errs.ErrUnexpectedEOF, len(data), n)
	}
	p.Data = data

	return p, nil
}

func previewErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: preview", errs.ErrUnexpectedEOF)
	}

	return fmt.Errorf("read preview: %w", err)
}
