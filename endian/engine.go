// Package endian provides the byte order engine used for every fixed-width
// integer in a brs file.
//
// The save format is little-endian throughout; the engine interface exists
// so primitive writers can append directly without scratch buffers:
//
//	buf = endian.GetLittleEndianEngine().AppendUint32(buf, v)
package endian

import "encoding/binary"

// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
