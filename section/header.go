package section

import (
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/brs/endian"
	"github.com/arloliu/brs/errs"
	"github.com/arloliu/brs/format"
)

// Header0Size is the size of the uncompressed file header.
const Header0Size = len(format.Magic) + 2 + 4

// WriteHeader0 writes the magic bytes, the format version and the game version.
func WriteHeader0(w io.Writer, gameVersion int32) error {
	engine := endian.GetLittleEndianEngine()

	buf := make([]byte, 0, Header0Size)
	buf = append(buf, format.Magic[:]...)
	buf = engine.AppendUint16(buf, format.Version)
	buf = engine.AppendUint32(buf, uint32(gameVersion)) //nolint:gosec

	_, err := w.Write(buf)

	return err
}

// ReadHeader0 reads and validates the uncompressed file header and returns
// the game version.
func ReadHeader0(r io.Reader) (int32, error) {
	var buf [Header0Size]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, fmt.Errorf("%w: header", errs.ErrUnexpectedEOF)
		}

		return 0, err
	}

	if [4]byte(buf[:4]) != format.Magic {
		return 0, fmt.Errorf("%w: % x", errs.ErrInvalidMagic, buf[:4])
	}

	engine := endian.GetLittleEndianEngine()
	if v := engine.Uint16(buf[4:6]); v != format.Version {
		return 0, fmt.Errorf("%w: %d (supported: %d)", errs.ErrUnsupportedVersion, v, format.Version)
	}

	return int32(engine.Uint32(buf[6:10])), nil //nolint:gosec
}
