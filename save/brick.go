package save

import "github.com/arloliu/brs/format"

// Brick is a single placed brick.
type Brick struct {
	AssetNameIndex    uint32
	Size              Size
	Position          Position
	Direction         format.Direction
	Rotation          format.Rotation
	Collision         Collision
	Visible           bool
	MaterialIndex     uint32
	PhysicalIndex     uint32
	MaterialIntensity uint32
	Color             BrickColor
	OwnerIndex        uint32
	// Components maps component name -> property name -> value.
	Components map[string]map[string]Value
}

// Size is either empty (asset-defined) or a procedural x, y, z extent.
type Size struct {
	Procedural bool
	X, Y, Z    uint32
}

// EmptySize returns the size of a non-procedural brick.
func EmptySize() Size {
	return Size{}
}

// ProceduralSize returns a procedural size with the given half extents.
func ProceduralSize(x, y, z uint32) Size {
	return Size{Procedural: true, X: x, Y: y, Z: z}
}

// Position is a brick center in save units.
type Position struct {
	X, Y, Z int32
}

// Collision holds the four independent collision channels.
type Collision struct {
	Player      bool
	Weapon      bool
	Interaction bool
	Tool        bool
}

// DefaultCollision enables every channel.
func DefaultCollision() Collision {
	return Collision{Player: true, Weapon: true, Interaction: true, Tool: true}
}

// BrickColor is either an index into Catalog.Colors or a unique RGB color.
type BrickColor struct {
	Unique  bool
	Index   uint32
	R, G, B uint8
}

// IndexColor returns a color that references the catalog color table.
func IndexColor(index uint32) BrickColor {
	return BrickColor{Index: index}
}

// UniqueColor returns a color stored inline on the brick.
func UniqueColor(r, g, b uint8) BrickColor {
	return BrickColor{Unique: true, R: r, G: g, B: b}
}

// Orientation packs direction and rotation the way the brick table stores them.
func (b *Brick) Orientation() uint32 {
	return uint32(b.Direction)<<2 | uint32(b.Rotation)
}
