package encoding

import (
	"fmt"
	"math"

	"github.com/arloliu/brs/errs"
)

// BitWriter is the sink packed integers are written to.
type BitWriter interface {
	// WriteBits writes the low numBits of value, least significant bit first.
	WriteBits(value uint64, numBits int)
}

// BitReader is the source packed integers are read from.
type BitReader interface {
	// ReadBits reads numBits bits, least significant bit first.
	ReadBits(numBits int) (uint64, error)
}

const (
	packedGroupBits   = 8
	packedPayloadBits = 7
	packedPayloadMask = 1<<packedPayloadBits - 1
	// maxPackedGroups covers 35 payload bits: a full uint32 and the 33-bit
	// sign-and-magnitude form of math.MinInt32.
	maxPackedGroups = 5
)

// WriteUintPacked writes v as a sequence of 8-bit groups, least significant
// group first. Each group is (payload7 << 1) | more, so the continuation
// flag is the first bit of every group on the wire.
func WriteUintPacked(w BitWriter, v uint32) {
	writePacked(w, uint64(v))
}

// ReadUintPacked reads a value written by WriteUintPacked.
//
// Returns errs.ErrPackedOverflow if the encoded value exceeds 32 bits or the
// continuation flag is still set after the last allowed group.
func ReadUintPacked(r BitReader) (uint32, error) {
	v, err := readPacked(r)
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint32 {
		return 0, fmt.Errorf("%w: value %d", errs.ErrPackedOverflow, v)
	}

	return uint32(v), nil
}

// WriteIntPacked writes v in sign-and-magnitude form: (|v| << 1) | (v >= 0),
// then packs it like WriteUintPacked. The transform runs in 64-bit space so
// math.MinInt32 keeps its magnitude.
func WriteIntPacked(w BitWriter, v int32) {
	mag := int64(v)
	sign := uint64(1)
	if mag < 0 {
		mag = -mag
		sign = 0
	}

	writePacked(w, uint64(mag)<<1|sign) //nolint:gosec
}

// ReadIntPacked reads a value written by WriteIntPacked.
func ReadIntPacked(r BitReader) (int32, error) {
	u, err := readPacked(r)
	if err != nil {
		return 0, err
	}

	mag := u >> 1
	if u&1 == 1 {
		if mag > math.MaxInt32 {
			return 0, fmt.Errorf("%w: magnitude %d", errs.ErrPackedOverflow, mag)
		}

		return int32(mag), nil
	}

	if mag > -math.MinInt32 {
		return 0, fmt.Errorf("%w: magnitude -%d", errs.ErrPackedOverflow, mag)
	}

	return int32(-int64(mag)), nil //nolint:gosec
}

func writePacked(w BitWriter, v uint64) {
	for {
		payload := v & packedPayloadMask
		v >>= packedPayloadBits

		group := payload << 1
		if v != 0 {
			group |= 1
		}
		w.WriteBits(group, packedGroupBits)

		if v == 0 {
			return
		}
	}
}

func readPacked(r BitReader) (uint64, error) {
	var v uint64
	for i := range maxPackedGroups {
		group, err := r.ReadBits(packedGroupBits)
		if err != nil {
			return 0, err
		}

		v |= (group >> 1) << (packedPayloadBits * i)
		if group&1 == 0 {
			return v, nil
		}
	}

	return 0, fmt.Errorf("%w: more than %d groups", errs.ErrPackedOverflow, maxPackedGroups)
}
