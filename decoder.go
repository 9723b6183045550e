package brs

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/arloliu/brs/block"
	"github.com/arloliu/brs/compress"
	"github.com/arloliu/brs/save"
	"github.com/arloliu/brs/section"
)

// Decoder reads save documents from an input stream.
type Decoder struct {
	r      io.Reader
	codec  compress.Decompressor
	logger *zap.Logger
}

// NewDecoder returns a decoder reading from r. Compression options are
// accepted but have no effect: every compressed block is a zlib stream.
func NewDecoder(r io.Reader, opts ...Option) (*Decoder, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Decoder{r: r, codec: compress.NewZlibCompressor(), logger: cfg.logger}, nil
}

// Decode reads one complete save file.
//
// The decoder does not read past the last block, so trailing data in r is
// left for the caller. On any error no document is returned.
func (d *Decoder) Decode() (*save.Document, error) {
	gameVersion, err := section.ReadHeader0(d.r)
	if err != nil {
		return nil, err
	}

	data, err := d.readBlock("identity")
	if err != nil {
		return nil, err
	}
	identity, err := section.ReadIdentity(data)
	if err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}

	data, err = d.readBlock("catalog")
	if err != nil {
		return nil, err
	}
	catalog, err := section.ReadCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	preview, err := section.ReadPreview(d.r)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("read preview",
		zap.Stringer("type", preview.Type),
		zap.Int("size", len(preview.Data)))

	data, err = d.readBlock("bricks")
	if err != nil {
		return nil, err
	}
	bricks, err := section.ReadBricks(data, int(identity.BrickCount), section.NewWidths(&catalog))
	if err != nil {
		return nil, fmt.Errorf("decode bricks: %w", err)
	}

	data, err = d.readBlock("components")
	if err != nil {
		return nil, err
	}
	components, err := section.ReadComponents(data, bricks)
	if err != nil {
		return nil, fmt.Errorf("decode components: %w", err)
	}

	return &save.Document{
		GameVersion: gameVersion,
		Identity:    identity,
		Catalog:     catalog,
		Preview:     preview,
		Bricks:      bricks,
		Components:  components,
	}, nil
}

func (d *Decoder) readBlock(name string) ([]byte, error) {
	data, info, err := block.Read(d.r, d.codec)
	if err != nil {
		return nil, fmt.Errorf("read %s block: %w", name, err)
	}

	d.logger.Debug("read block",
		zap.String("section", name),
		zap.Int("uncompressed", info.Uncompressed),
		zap.Int("compressed", info.Compressed),
		zap.Uint64("digest", info.Digest))

	return data, nil
}
