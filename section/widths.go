package section

import (
	"fmt"

	"github.com/arloliu/brs/bitstream"
	"github.com/arloliu/brs/errs"
	"github.com/arloliu/brs/save"
)

// Widths holds the table-size-dependent field widths of the brick table.
//
// It is computed once per document from the catalog and passed to every
// brick read and write; the effective cardinality of each table is
// max(len(table), 2), so an empty or single-entry table still gets a
// one-bit field.
type Widths struct {
	Assets            int
	Materials         int
	PhysicalMaterials int
	Colors            int

	AssetBits    int
	MaterialBits int
	PhysicalBits int
	ColorBits    int
}

// NewWidths derives the brick table widths from a catalog.
func NewWidths(c *save.Catalog) Widths {
	return Widths{
		Assets:            bitstream.Cardinality(len(c.BrickAssets)),
		Materials:         bitstream.Cardinality(len(c.Materials)),
		PhysicalMaterials: bitstream.Cardinality(len(c.PhysicalMaterials)),
		Colors:            bitstream.Cardinality(len(c.Colors)),

		AssetBits:    bitstream.BitsFor(len(c.BrickAssets)),
		MaterialBits: bitstream.BitsFor(len(c.Materials)),
		PhysicalBits: bitstream.BitsFor(len(c.PhysicalMaterials)),
		ColorBits:    bitstream.BitsFor(len(c.Colors)),
	}
}

func checkIndex(field string, index uint32, cardinality int) error {
	if int64(index) >= int64(cardinality) {
		return fmt.Errorf("%w: %s %d, table size %d", errs.ErrIndexOutOfRange, field, index, cardinality)
	}

	return nil
}

func writeIndex(w *bitstream.Writer, field string, index uint32, cardinality, width int) error {
	if err := checkIndex(field, index, cardinality); err != nil {
		return err
	}

	return w.WriteUint(index, width)
}

func readIndex(r *bitstream.Reader, field string, cardinality, width int) (uint32, error) {
	index, err := r.ReadUint(width)
	if err != nil {
		return 0, err
	}

	return index, checkIndex(field, index, cardinality)
}
