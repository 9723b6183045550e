package section

import (
	"fmt"

	"github.com/arloliu/brs/encoding"
	"github.com/arloliu/brs/errs"
	"github.com/arloliu/brs/save"
)

// WriteCatalog writes the catalog section payload.
func WriteCatalog(w *encoding.Writer, c *save.Catalog) error {
	if err := encoding.WriteStrings(w, c.Mods); err != nil {
		return fmt.Errorf("mods: %w", err)
	}
	if err := encoding.WriteStrings(w, c.BrickAssets); err != nil {
		return fmt.Errorf("brick assets: %w", err)
	}
	if err := encoding.WriteArray(w, c.Colors, writeColorBGRA); err != nil {
		return fmt.Errorf("colors: %w", err)
	}
	if err := encoding.WriteStrings(w, c.Materials); err != nil {
		return fmt.Errorf("materials: %w", err)
	}
	if err := encoding.WriteArray(w, c.BrickOwners, writeOwner); err != nil {
		return fmt.Errorf("brick owners: %w", err)
	}
	if err := encoding.WriteStrings(w, c.PhysicalMaterials); err != nil {
		return fmt.Errorf("physical materials: %w", err)
	}

	return nil
}

// ReadCatalog parses a catalog section payload. Empty tables decode as nil.
func ReadCatalog(data []byte) (save.Catalog, error) {
	r := encoding.NewReader(data)

	var (
		c   save.Catalog
		err error
	)

	if c.Mods, err = encoding.ReadStrings(r); err != nil {
		return save.Catalog{}, fmt.Errorf("mods: %w", err)
	}
	if c.BrickAssets, err = encoding.ReadStrings(r); err != nil {
		return save.Catalog{}, fmt.Errorf("brick assets: %w", err)
	}
	if c.Colors, err = encoding.ReadArray(r, readColorBGRA); err != nil {
		return save.Catalog{}, fmt.Errorf("colors: %w", err)
	}
	if c.Materials, err = encoding.ReadStrings(r); err != nil {
		return save.Catalog{}, fmt.Errorf("materials: %w", err)
	}
	if c.BrickOwners, err = encoding.ReadArray(r, readOwner); err != nil {
		return save.Catalog{}, fmt.Errorf("brick owners: %w", err)
	}
	if c.PhysicalMaterials, err = encoding.ReadStrings(r); err != nil {
		return save.Catalog{}, fmt.Errorf("physical materials: %w", err)
	}

	if r.Remaining() != 0 {
		return save.Catalog{}, fmt.Errorf("%w: %d bytes after catalog", errs.ErrTrailingBlockData, r.Remaining())
	}

	return c, nil
}

func writeColorBGRA(w *encoding.Writer, c save.Color) error {
	w.WriteBytes([]byte{c.B, c.G, c.R, c.A})
	return nil
}

func readColorBGRA(r *encoding.Reader) (save.Color, error) {
	var bgra [4]byte
	if err := r.ReadInto(bgra[:]); err != nil {
		return save.Color{}, err
	}

	return save.Color{B: bgra[0], G: bgra[1], R: bgra[2], A: bgra[3]}, nil
}

func writeOwner(w *encoding.Writer, o save.Owner) error {
	w.WriteUUID(o.ID)
	if err := w.WriteString(o.Name); err != nil {
		return err
	}
	w.WriteInt32(int32(o.BrickCount)) //nolint:gosec

	return nil
}

func readOwner(r *encoding.Reader) (save.Owner, error) {
	var (
		o   save.Owner
		err error
	)

	if o.ID, err = r.ReadUUID(); err != nil {
		return save.Owner{}, err
	}
	if o.Name, err = r.ReadString(); err != nil {
		return save.Owner{}, err
	}

	count, err := r.ReadInt32()
	if err != nil {
		return save.Owner{}, err
	}
	o.BrickCount = uint32(count) //nolint:gosec

	return o, nil
}
