package brs

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/arloliu/brs/bitstream"
	"github.com/arloliu/brs/block"
	"github.com/arloliu/brs/compress"
	"github.com/arloliu/brs/encoding"
	"github.com/arloliu/brs/errs"
	"github.com/arloliu/brs/save"
	"github.com/arloliu/brs/section"
)

// Encoder writes save documents to an output stream.
type Encoder struct {
	w      io.Writer
	codec  compress.Codec
	logger *zap.Logger
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer, opts ...Option) (*Encoder, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	codec, err := cfg.codec()
	if err != nil {
		return nil, err
	}

	return &Encoder{w: w, codec: codec, logger: cfg.logger}, nil
}

// payloads holds the serialized, not yet framed, section contents.
type payloads struct {
	identity   *encoding.Writer
	catalog    *encoding.Writer
	bricks     *bitstream.Writer
	components *bitstream.Writer
}

func (p *payloads) release() {
	if p.identity != nil {
		p.identity.Release()
	}
	if p.catalog != nil {
		p.catalog.Release()
	}
	if p.bricks != nil {
		p.bricks.Release()
	}
	if p.components != nil {
		p.components.Release()
	}
}

// Encode writes doc as a complete save file.
//
// Every section is serialized and validated before the first byte reaches
// the output, so a document that fails validation leaves w untouched.
// I/O and compression failures after that point may leave a partial file.
func (e *Encoder) Encode(doc *save.Document) error {
	if doc == nil {
		return errs.ErrNilDocument
	}
	if int(doc.Identity.BrickCount) != len(doc.Bricks) {
		return fmt.Errorf("%w: identity declares %d, document holds %d",
			errs.ErrBrickCountMismatch, doc.Identity.BrickCount, len(doc.Bricks))
	}

	p, err := serialize(doc)
	defer p.release()
	if err != nil {
		return err
	}

	if err := section.WriteHeader0(e.w, doc.GameVersion); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := e.writeBlock("identity", p.identity.Bytes()); err != nil {
		return err
	}
	if err := e.writeBlock("catalog", p.catalog.Bytes()); err != nil {
		return err
	}
	if err := section.WritePreview(e.w, doc.Preview); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	e.logger.Debug("wrote preview",
		zap.Stringer("type", doc.Preview.Type),
		zap.Int("size", len(doc.Preview.Data)))

	if err := e.writeBlock("bricks", p.bricks.Bytes()); err != nil {
		return err
	}

	return e.writeBlock("components", p.components.Bytes())
}

func serialize(doc *save.Document) (*payloads, error) {
	p := &payloads{
		identity:   encoding.NewWriter(),
		catalog:    encoding.NewWriter(),
		bricks:     bitstream.NewWriter(),
		components: bitstream.NewWriter(),
	}

	if !doc.Preview.Present() && len(doc.Preview.Data) != 0 {
		return p, fmt.Errorf("%w: %d bytes of data without a preview type", errs.ErrInvalidPreview, len(doc.Preview.Data))
	}
	if err := section.WriteIdentity(p.identity, &doc.Identity); err != nil {
		return p, fmt.Errorf("encode identity: %w", err)
	}
	if err := section.WriteCatalog(p.catalog, &doc.Catalog); err != nil {
		return p, fmt.Errorf("encode catalog: %w", err)
	}
	if err := section.WriteBricks(p.bricks, doc.Bricks, section.NewWidths(&doc.Catalog)); err != nil {
		return p, fmt.Errorf("encode bricks: %w", err)
	}
	if err := section.WriteComponents(p.components, doc.Components, doc.Bricks); err != nil {
		return p, fmt.Errorf("encode components: %w", err)
	}

	return p, nil
}

func (e *Encoder) writeBlock(name string, data []byte) error {
	info, err := block.Write(e.w, e.codec, data)
	if err != nil {
		return fmt.Errorf("write %s block: %w", name, err)
	}

	e.logger.Debug("wrote block",
		zap.String("section", name),
		zap.Int("uncompressed", info.Uncompressed),
		zap.Int("compressed", info.Compressed),
		zap.Uint64("digest", info.Digest))

	return nil
}
