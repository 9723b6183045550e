// Package block implements the compressed block framing of the brs format.
//
// A block is:
//
//	uncompressed_len: int32
//	compressed_len:   int32  (0 = payload stored raw)
//	payload:          compressed_len bytes, or uncompressed_len raw bytes
//
// The writer keeps the compressed candidate only when it is strictly smaller
// than the input, so a block never costs more than 8 + len(data) bytes and a
// reader never has to guess whether a payload is compressed.
package block

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/arloliu/brs/compress"
	"github.com/arloliu/brs/endian"
	"github.com/arloliu/brs/errs"
	"github.com/arloliu/brs/internal/hash"
)

// HeaderSize is the size of the two length fields preceding a payload.
const HeaderSize = 8

// Info describes a framed block.
type Info struct {
	// Uncompressed is the payload size after inflation.
	Uncompressed int
	// Compressed is the stored payload size, or 0 when stored raw.
	Compressed int
	// Digest is the xxHash64 of the uncompressed payload.
	Digest uint64
}

// Stored reports whether the payload was stored without compression.
func (i Info) Stored() bool {
	return i.Compressed == 0
}

// WireSize returns the number of bytes the block occupies on the wire.
func (i Info) WireSize() int {
	if i.Stored() {
		return HeaderSize + i.Uncompressed
	}

	return HeaderSize + i.Compressed
}

// Stats returns the compression statistics of the block.
func (i Info) Stats() compress.Stats {
	stored := i.Compressed
	if i.Stored() {
		stored = i.Uncompressed
	}

	return compress.Stats{OriginalSize: int64(i.Uncompressed), CompressedSize: int64(stored)}
}

// Write frames data and writes it to w.
func Write(w io.Writer, c compress.Compressor, data []byte) (Info, error) {
	if len(data) > math.MaxInt32 {
		return Info{}, fmt.Errorf("%w: block of %d bytes", errs.ErrInvalidLength, len(data))
	}

	candidate, err := c.Compress(data)
	if err != nil {
		return Info{}, fmt.Errorf("%w: %w", errs.ErrCompress, err)
	}

	info := Info{Uncompressed: len(data), Digest: hash.Digest(data)}
	payload := data
	if len(candidate) < len(data) {
		info.Compressed = len(candidate)
		payload = candidate
	}

	engine := endian.GetLittleEndianEngine()
	var header [HeaderSize]byte
	engine.PutUint32(header[0:4], uint32(info.Uncompressed)) //nolint:gosec
	engine.PutUint32(header[4:8], uint32(info.Compressed))   //nolint:gosec

	if _, err := w.Write(header[:]); err != nil {
		return Info{}, fmt.Errorf("write block header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return Info{}, fmt.Errorf("write block payload: %w", err)
	}

	return info, nil
}

// Read reads one framed block from r and returns its uncompressed payload.
//
// Errors:
//   - errs.ErrInvalidLength: a negative length field
//   - errs.ErrTruncatedBlock: the source ends before the header or payload does
//   - errs.ErrDecompress: the compressed payload is not a valid stream
//   - errs.ErrInflateLengthMismatch: the inflated size differs from uncompressed_len
func Read(r io.Reader, d compress.Decompressor) ([]byte, Info, error) {
	var header [HeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, Info{}, readErr("header", err)
	}

	engine := endian.GetLittleEndianEngine()
	uncompressed := int32(engine.Uint32(header[0:4])) //nolint:gosec
	compressed := int32(engine.Uint32(header[4:8]))   //nolint:gosec
	if uncompressed < 0 || compressed < 0 {
		return nil, Info{}, fmt.Errorf("%w: block lengths %d/%d", errs.ErrInvalidLength, uncompressed, compressed)
	}

	info := Info{Uncompressed: int(uncompressed), Compressed: int(compressed)}

	if compressed == 0 {
		data, err := readPayload(r, info.Uncompressed)
		if err != nil {
			return nil, Info{}, err
		}
		info.Digest = hash.Digest(data)

		return data, info, nil
	}

	raw, err := readPayload(r, info.Compressed)
	if err != nil {
		return nil, Info{}, err
	}

	data, err := inflate(d, raw, info.Uncompressed)
	if err != nil {
		return nil, Info{}, err
	}
	if len(data) != info.Uncompressed {
		return nil, Info{}, fmt.Errorf("%w: expected %d bytes, inflated %d",
			errs.ErrInflateLengthMismatch, info.Uncompressed, len(data))
	}
	info.Digest = hash.Digest(data)

	return data, info, nil
}

// Skip reads a block header and discards its payload without inflating it.
func Skip(r io.Reader) (Info, error) {
	var header [HeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Info{}, readErr("header", err)
	}

	engine := endian.GetLittleEndianEngine()
	info := Info{
		Uncompressed: int(int32(engine.Uint32(header[0:4]))), //nolint:gosec
		Compressed:   int(int32(engine.Uint32(header[4:8]))), //nolint:gosec
	}
	if info.Uncompressed < 0 || info.Compressed < 0 {
		return Info{}, fmt.Errorf("%w: block lengths %d/%d", errs.ErrInvalidLength, info.Uncompressed, info.Compressed)
	}

	n, err := io.CopyN(io.Discard, r, int64(info.WireSize()-HeaderSize))
	if err != nil {
		return Info{}, fmt.Errorf("%w: payload ended after %d bytes", errs.ErrTruncatedBlock, n)
	}

	return info, nil
}

func inflate(d compress.Decompressor, raw []byte, size int) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if sd, ok := d.(compress.SizedDecompressor); ok {
		data, err = sd.DecompressSized(raw, size)
	} else {
		data, err = d.Decompress(raw)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrDecompress, err)
	}

	return data, nil
}

// readPayload reads exactly n bytes. Large payloads are read in chunks so a
// corrupt length cannot force a huge allocation before the source runs dry.
func readPayload(r io.Reader, n int) ([]byte, error) {
	const chunk = 1 << 20

	if n <= chunk {
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, readErr("payload", err)
		}

		return buf, nil
	}

	buf := make([]byte, 0, chunk)
	for len(buf) < n {
		step := min(chunk, n-len(buf))
		start := len(buf)
		buf = append(buf, make([]byte, step)...)
		if _, err := io.ReadFull(r, buf[start:]); err != nil {
			return nil, readErr("payload", err)
		}
	}

	return buf, nil
}

func readErr(part string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %s", errs.ErrTruncatedBlock, part)
	}

	return fmt.Errorf("read block %s: %w", part, err)
}
