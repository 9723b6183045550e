// Package errs defines the sentinel errors returned by the brs codec.
//
// Call sites wrap these with additional context, so callers should match
// them with errors.Is rather than by comparing error strings.
package errs

import "errors"

// Header 0 and framing errors.
var (
	ErrInvalidMagic          = errors.New("invalid magic bytes")
	ErrUnsupportedVersion    = errors.New("unsupported format version")
	ErrInvalidLength         = errors.New("invalid length prefix")
	ErrTruncatedBlock        = errors.New("truncated block")
	ErrInflateLengthMismatch = errors.New("inflated length does not match header")
	ErrDecompress            = errors.New("block decompression failed")
	ErrCompress              = errors.New("block compression failed")
)

// Primitive and bit-level decode errors.
var (
	ErrUnexpectedEOF  = errors.New("unexpected end of data")
	ErrBitOverrun     = errors.New("bit field overruns buffer")
	ErrPackedOverflow = errors.New("packed integer overflows 32 bits")
	ErrInvalidWidth   = errors.New("invalid bit width")
)

// Document consistency errors, raised on encode and decode.
var (
	ErrNilDocument        = errors.New("nil document")
	ErrBrickCountMismatch = errors.New("brick count does not match brick list")
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrFieldOverflow      = errors.New("value does not fit field width")
	ErrInvalidOrientation = errors.New("invalid brick orientation")
	ErrInvalidPreview     = errors.New("invalid preview")
	ErrUnknownComponent   = errors.New("brick references unknown component")
	ErrUnknownProperty    = errors.New("brick references property absent from component schema")
	ErrMissingProperty    = errors.New("brick lacks a value for a schema property")
	ErrDuplicateComponent = errors.New("duplicate component name")
	ErrMembershipMismatch = errors.New("component brick list disagrees with brick membership")
	ErrUnknownValueKind   = errors.New("unknown typed value kind")
	ErrValueKindMismatch  = errors.New("typed value kind does not match schema")
	ErrTrailingBlockData  = errors.New("unexpected trailing data in block")
)
