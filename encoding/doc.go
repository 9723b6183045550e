// Package encoding implements the primitive codec of the brs format.
//
// Writer and Reader handle byte-aligned values: fixed-width little-endian
// integers, int32 length-prefixed UTF-8 text, 16-byte UUIDs and int32
// counted arrays.
//
// The packed integer functions work on any bit-level sink or source. They
// are used inside bit-packed sections, where a value does not necessarily
// start on a byte boundary:
//
//	encoding.WriteUintPacked(bits, brick.OwnerIndex)
//	encoding.WriteIntPacked(bits, brick.Position.X)
package encoding
