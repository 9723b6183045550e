package section

import (
	"fmt"

	"github.com/arloliu/brs/bitstream"
	"github.com/arloliu/brs/errs"
	"github.com/arloliu/brs/format"
	"github.com/arloliu/brs/save"
)

// WriteBricks writes the brick table payload.
//
// Every index field is checked against its effective table cardinality and
// every enum against its range; the first violation aborts the write.
func WriteBricks(w *bitstream.Writer, bricks []save.Brick, widths Widths) error {
	for i := range bricks {
		if err := writeBrick(w, &bricks[i], widths); err != nil {
			return fmt.Errorf("brick %d: %w", i, err)
		}
	}
	w.Align()

	return nil
}

func writeBrick(w *bitstream.Writer, b *save.Brick, widths Widths) error {
	w.Align()

	if err := writeIndex(w, "asset name index", b.AssetNameIndex, widths.Assets, widths.AssetBits); err != nil {
		return err
	}

	w.WriteBit(b.Size.Procedural)
	if b.Size.Procedural {
		w.WriteUintPacked(b.Size.X)
		w.WriteUintPacked(b.Size.Y)
		w.WriteUintPacked(b.Size.Z)
	}

	w.WriteIntPacked(b.Position.X)
	w.WriteIntPacked(b.Position.Y)
	w.WriteIntPacked(b.Position.Z)

	if !b.Direction.Valid() || !b.Rotation.Valid() {
		return fmt.Errorf("%w: direction %d, rotation %d", errs.ErrInvalidOrientation, b.Direction, b.Rotation)
	}
	if err := w.WriteUint(b.Orientation(), format.OrientationBits); err != nil {
		return err
	}

	w.WriteBit(b.Collision.Player)
	w.WriteBit(b.Collision.Weapon)
	w.WriteBit(b.Collision.Interaction)
	w.WriteBit(b.Collision.Tool)

	w.WriteBit(b.Visible)

	if err := writeIndex(w, "material index", b.MaterialIndex, widths.Materials, widths.MaterialBits); err != nil {
		return err
	}
	if err := writeIndex(w, "physical index", b.PhysicalIndex, widths.PhysicalMaterials, widths.PhysicalBits); err != nil {
		return err
	}

	if b.MaterialIntensity > format.MaxMaterialIntensity {
		return fmt.Errorf("%w: material intensity %d", errs.ErrFieldOverflow, b.MaterialIntensity)
	}
	if err := w.WriteUint(b.MaterialIntensity, format.IntensityBits); err != nil {
		return err
	}

	w.WriteBit(b.Color.Unique)
	if b.Color.Unique {
		w.WriteBytes([]byte{b.Color.R, b.Color.G, b.Color.B})
	} else if err := writeIndex(w, "color index", b.Color.Index, widths.Colors, widths.ColorBits); err != nil {
		return err
	}

	w.WriteUintPacked(b.OwnerIndex)

	return nil
}

// ReadBricks parses a brick table payload holding exactly count bricks.
//
// Decoded bricks carry no component values; those are attached by
// ReadComponents. An empty table decodes as nil.
func ReadBricks(data []byte, count int, widths Widths) ([]save.Brick, error) {
	// Every brick starts on a byte boundary and needs at least one byte.
	if count < 0 || count > len(data) {
		return nil, fmt.Errorf("%w: %d bricks in a %d byte table", errs.ErrBrickCountMismatch, count, len(data))
	}

	r := bitstream.NewReader(data)
	var bricks []save.Brick
	if count > 0 {
		bricks = make([]save.Brick, count)
	}
	for i := range bricks {
		if err := readBrick(r, &bricks[i], widths); err != nil {
			return nil, fmt.Errorf("brick %d: %w", i, err)
		}
	}

	if err := r.Align(); err != nil {
		return nil, err
	}
	if !r.AtEnd() {
		return nil, fmt.Errorf("%w: %d bits after brick %d", errs.ErrTrailingBlockData, r.Remaining(), count)
	}

	return bricks, nil
}

func readBrick(r *bitstream.Reader, b *save.Brick, widths Widths) error {
	if err := r.Align(); err != nil {
		return err
	}

	var err error
	if b.AssetNameIndex, err = readIndex(r, "asset name index", widths.Assets, widths.AssetBits); err != nil {
		return err
	}

	procedural, err := r.ReadBit()
	if err != nil {
		return err
	}
	if procedural {
		b.Size.Procedural = true
		if b.Size.X, err = r.ReadUintPacked(); err != nil {
			return err
		}
		if b.Size.Y, err = r.ReadUintPacked(); err != nil {
			return err
		}
		if b.Size.Z, err = r.ReadUintPacked(); err != nil {
			return err
		}
	}

	if b.Position.X, err = r.ReadIntPacked(); err != nil {
		return err
	}
	if b.Position.Y, err = r.ReadIntPacked(); err != nil {
		return err
	}
	if b.Position.Z, err = r.ReadIntPacked(); err != nil {
		return err
	}

	orientation, err := r.ReadUint(format.OrientationBits)
	if err != nil {
		return err
	}
	b.Direction = format.Direction(orientation >> 2) //nolint:gosec
	b.Rotation = format.Rotation(orientation & 0x3)
	if orientation>>2 > uint32(format.ZNegative) {
		return fmt.Errorf("%w: orientation %d", errs.ErrInvalidOrientation, orientation)
	}

	flags, err := r.ReadBits(5)
	if err != nil {
		return err
	}
	b.Collision.Player = flags&0x01 != 0
	b.Collision.Weapon = flags&0x02 != 0
	b.Collision.Interaction = flags&0x04 != 0
	b.Collision.Tool = flags&0x08 != 0
	b.Visible = flags&0x10 != 0

	if b.MaterialIndex, err = readIndex(r, "material index", widths.Materials, widths.MaterialBits); err != nil {
		return err
	}
	if b.PhysicalIndex, err = readIndex(r, "physical index", widths.PhysicalMaterials, widths.PhysicalBits); err != nil {
		return err
	}
	if b.MaterialIntensity, err = r.ReadUint(format.IntensityBits); err != nil {
		return err
	}

	unique, err := r.ReadBit()
	if err != nil {
		return err
	}
	if unique {
		rgb, err := r.ReadBytes(3)
		if err != nil {
			return err
		}
		b.Color = save.UniqueColor(rgb[0], rgb[1], rgb[2])
	} else {
		index, err := readIndex(r, "color index", widths.Colors, widths.ColorBits)
		if err != nil {
			return err
		}
		b.Color = save.IndexColor(index)
	}

	b.OwnerIndex, err = r.ReadUintPacked()

	return err
}
