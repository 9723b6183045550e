// Package section encodes and decodes the payloads of a brs save.
//
// A save is laid out as:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header 0 (10 bytes, never compressed)                   │
//	│  - Magic (4 bytes)                                      │
//	│  - Format version (uint16)                              │
//	│  - Game version (int32)                                 │
//	├─────────────────────────────────────────────────────────┤
//	│ Identity block                                          │
//	│  - map, author, description, host, save time, bricks    │
//	├─────────────────────────────────────────────────────────┤
//	│ Catalog block                                           │
//	│  - mods, assets, colors, materials, owners, physicals   │
//	├─────────────────────────────────────────────────────────┤
//	│ Preview (tag byte, [length:int32, bytes])               │
//	├─────────────────────────────────────────────────────────┤
//	│ Brick table block (bit-packed)                          │
//	├─────────────────────────────────────────────────────────┤
//	│ Component table block (bit-packed)                      │
//	└─────────────────────────────────────────────────────────┘
//
// Blocks are framed by package block. This package only produces and
// consumes their uncompressed payloads, except for the preview which is
// written straight to the stream.
//
// # Brick Record
//
// Each brick starts on a byte boundary. Index field widths come from
// Widths, which is derived from the catalog once per document:
//
//	Field              | Encoding
//	-------------------|-------------------------------------------
//	asset index        | Widths.AssetBits
//	size               | bit (1 = procedural) [+ 3 packed uint]
//	position           | 3 packed int
//	orientation        | 24 bits: direction << 2 | rotation
//	collision          | 4 bits: player, weapon, interaction, tool
//	visibility         | 1 bit
//	material index     | Widths.MaterialBits
//	physical index     | Widths.PhysicalBits
//	material intensity | 11 bits
//	color              | bit 0 + Widths.ColorBits, or bit 1 + r, g, b bytes
//	owner index        | packed uint
//
// # Component Table
//
// Components are written in ascending name order. After the name, each
// component holds its version, the ascending indices of the bricks that
// reference it, its property schema, and one typed value per (brick,
// property) pair. The stream is aligned after every component.
package section
