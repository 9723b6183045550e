package section

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/brs/bitstream"
	"github.com/arloliu/brs/errs"
	"github.com/arloliu/brs/format"
	"github.com/arloliu/brs/save"
)

func pairCatalog() *save.Catalog {
	return &save.Catalog{
		BrickAssets:       []string{"a", "b"},
		Colors:            make([]save.Color, 2),
		Materials:         []string{"m0", "m1"},
		PhysicalMaterials: []string{"p0", "p1"},
	}
}

func encodeBricks(t *testing.T, bricks []save.Brick, widths Widths) []byte {
	t.Helper()

	w := bitstream.NewWriter()
	defer w.Release()
	require.NoError(t, WriteBricks(w, bricks, widths))

	return append([]byte(nil), w.Bytes()...)
}

func TestNewWidths(t *testing.T) {
	widths := NewWidths(&save.Catalog{
		BrickAssets: make([]string, 300),
		Colors:      make([]save.Color, 5),
		Materials:   []string{"only"},
	})

	require.Equal(t, Widths{
		Assets: 300, Materials: 2, PhysicalMaterials: 2, Colors: 5,
		AssetBits: 9, MaterialBits: 1, PhysicalBits: 1, ColorBits: 3,
	}, widths)
}

func TestBrickWireLayout(t *testing.T) {
	b := save.Brick{
		AssetNameIndex:    1,
		Size:              save.EmptySize(),
		Direction:         format.ZPositive,
		Rotation:          format.Deg0,
		Collision:         save.DefaultCollision(),
		Visible:           true,
		MaterialIndex:     0,
		PhysicalIndex:     1,
		MaterialIntensity: 5,
		Color:             save.IndexColor(1),
	}

	data := encodeBricks(t, []save.Brick{b}, NewWidths(pairCatalog()))
	require.Equal(t, []byte{0x09, 0x08, 0x08, 0x40, 0x00, 0x00, 0x7c, 0x0b, 0x20, 0x00}, data)

	got, err := ReadBricks(data, 1, NewWidths(pairCatalog()))
	require.NoError(t, err)
	require.Equal(t, []save.Brick{b}, got)
}

func TestBricksRoundTrip(t *testing.T) {
	widths := NewWidths(&save.Catalog{
		BrickAssets:       make([]string, 7),
		Colors:            make([]save.Color, 33),
		Materials:         make([]string, 3),
		PhysicalMaterials: nil,
	})

	bricks := []save.Brick{
		{
			AssetNameIndex: 6,
			Size:           save.ProceduralSize(4, 4, 6),
			Position:       save.Position{X: math.MinInt32, Y: math.MaxInt32, Z: -1},
			Direction:      format.ZNegative,
			Rotation:       format.Deg270,
			Collision:      save.Collision{Weapon: true, Tool: true},
			MaterialIndex:  2,
			PhysicalIndex:  1,

			MaterialIntensity: format.MaxMaterialIntensity,
			Color:             save.IndexColor(32),
			OwnerIndex:        math.MaxUint32,
		},
		{
			Size:      save.EmptySize(),
			Position:  save.Position{X: 100, Y: -100, Z: 0},
			Direction: format.XNegative,
			Rotation:  format.Deg90,
			Visible:   true,
			Color:     save.UniqueColor(10, 20, 30),
		},
		{
			Size:       save.ProceduralSize(0, math.MaxUint32, 1),
			Collision:  save.Collision{Player: true, Interaction: true},
			OwnerIndex: 300,
		},
	}

	data := encodeBricks(t, bricks, widths)
	got, err := ReadBricks(data, len(bricks), widths)
	require.NoError(t, err)
	require.Equal(t, bricks, got)
}

func TestBricksEmptyTableFloor(t *testing.T) {
	widths := NewWidths(&save.Catalog{})
	require.Equal(t, 1, widths.AssetBits)
	require.Equal(t, 1, widths.ColorBits)

	b := save.Brick{AssetNameIndex: 1, MaterialIndex: 1, PhysicalIndex: 1, Color: save.IndexColor(1)}
	data := encodeBricks(t, []save.Brick{b}, widths)

	got, err := ReadBricks(data, 1, widths)
	require.NoError(t, err)
	require.Equal(t, []save.Brick{b}, got)

	b.AssetNameIndex = 2
	w := bitstream.NewWriter()
	defer w.Release()
	require.ErrorIs(t, WriteBricks(w, []save.Brick{b}, widths), errs.ErrIndexOutOfRange)
}

func TestReadBricksEmpty(t *testing.T) {
	got, err := ReadBricks(nil, 0, NewWidths(&save.Catalog{}))
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestWriteBricksErrors(t *testing.T) {
	widths := NewWidths(pairCatalog())

	tests := []struct {
		name  string
		brick save.Brick
		want  error
	}{
		{"asset index", save.Brick{AssetNameIndex: 2}, errs.ErrIndexOutOfRange},
		{"material index", save.Brick{MaterialIndex: 5}, errs.ErrIndexOutOfRange},
		{"physical index", save.Brick{PhysicalIndex: 2}, errs.ErrIndexOutOfRange},
		{"color index", save.Brick{Color: save.IndexColor(2)}, errs.ErrIndexOutOfRange},
		{"direction", save.Brick{Direction: 6}, errs.ErrInvalidOrientation},
		{"rotation", save.Brick{Rotation: 4}, errs.ErrInvalidOrientation},
		{"intensity", save.Brick{MaterialIntensity: 2048}, errs.ErrFieldOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := bitstream.NewWriter()
			defer w.Release()
			require.ErrorIs(t, WriteBricks(w, []save.Brick{tt.brick}, widths), tt.want)
		})
	}
}

func TestReadBricksErrors(t *testing.T) {
	widths := NewWidths(pairCatalog())
	data := encodeBricks(t, []save.Brick{{}, {}}, widths)

	_, err := ReadBricks(data, 3, widths)
	require.Error(t, err)

	_, err = ReadBricks(data, 1, widths)
	require.ErrorIs(t, err, errs.ErrTrailingBlockData)

	_, err = ReadBricks(data[:len(data)-1], 2, widths)
	require.ErrorIs(t, err, errs.ErrBitOverrun)

	_, err = ReadBricks(data, 100, widths)
	require.ErrorIs(t, err, errs.ErrBrickCountMismatch)

	// a color table of 3 entries still uses 2 bits, so index 3 fits the field
	// but not the table
	three := NewWidths(&save.Catalog{Colors: make([]save.Color, 3)})
	w := bitstream.NewWriter()
	defer w.Release()
	require.NoError(t, WriteBricks(w, []save.Brick{{Color: save.IndexColor(3)}}, NewWidths(&save.Catalog{Colors: make([]save.Color, 4)})))
	_, err = ReadBricks(w.Bytes(), 1, three)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
}

func TestReadBricksInvalidOrientation(t *testing.T) {
	widths := NewWidths(pairCatalog())

	w := bitstream.NewWriter()
	defer w.Release()
	w.WriteBit(false) // asset
	w.WriteBit(false) // empty size
	w.WriteIntPacked(0)
	w.WriteIntPacked(0)
	w.WriteIntPacked(0)
	require.NoError(t, w.WriteUint(6<<2, format.OrientationBits))
	w.WriteBits(0, 5+1+1+11+1+1)
	w.WriteUintPacked(0)

	_, err := ReadBricks(w.Bytes(), 1, widths)
	require.ErrorIs(t, err, errs.ErrInvalidOrientation)
}
