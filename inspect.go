package brs

import (
	"fmt"
	"io"

	"github.com/arloliu/brs/block"
	"github.com/arloliu/brs/compress"
	"github.com/arloliu/brs/format"
	"github.com/arloliu/brs/save"
	"github.com/arloliu/brs/section"
)

// BlockSummary describes one framed block of a save file.
type BlockSummary struct {
	Name string
	block.Info
}

// Summary is the header-level view of a save file returned by Inspect.
type Summary struct {
	Version     uint16
	GameVersion int32
	Identity    save.Identity
	Catalog     save.Catalog
	PreviewType format.PreviewType
	PreviewSize int
	// Blocks lists the four framed blocks in file order. The brick and
	// component blocks are skipped without inflation, so their Digest is 0.
	Blocks []BlockSummary
}

// WireSize returns the total size of the file in bytes.
func (s *Summary) WireSize() int {
	n := section.Header0Size + 1
	if s.PreviewType != format.PreviewNone {
		n += 4 + s.PreviewSize
	}
	for _, b := range s.Blocks {
		n += b.WireSize()
	}

	return n
}

// Inspect reads the header, identity and catalog of a save file and walks
// the remaining blocks without decoding bricks or components.
func Inspect(r io.Reader) (*Summary, error) {
	gameVersion, err := section.ReadHeader0(r)
	if err != nil {
		return nil, err
	}

	s := &Summary{Version: format.Version, GameVersion: gameVersion}
	codec := compress.NewZlibCompressor()

	data, info, err := block.Read(r, codec)
	if err != nil {
		return nil, fmt.Errorf("read identity block: %w", err)
	}
	if s.Identity, err = section.ReadIdentity(data); err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}
	s.Blocks = append(s.Blocks, BlockSummary{Name: "identity", Info: info})

	data, info, err = block.Read(r, codec)
	if err != nil {
		return nil, fmt.Errorf("read catalog block: %w", err)
	}
	if s.Catalog, err = section.ReadCatalog(data); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	s.Blocks = append(s.Blocks, BlockSummary{Name: "catalog", Info: info})

	preview, err := section.ReadPreview(r)
	if err != nil {
		return nil, err
	}
	s.PreviewType = preview.Type
	s.PreviewSize = len(preview.Data)

	for _, name := range []string{"bricks", "components"} {
		info, err := block.Skip(r)
		if err != nil {
			return nil, fmt.Errorf("skip %s block: %w", name, err)
		}
		s.Blocks = append(s.Blocks, BlockSummary{Name: name, Info: info})
	}

	return s, nil
}
