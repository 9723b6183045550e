package section

import (
	"fmt"

	"github.com/arloliu/brs/encoding"
	"github.com/arloliu/brs/errs"
	"github.com/arloliu/brs/format"
	"github.com/arloliu/brs/save"
)

// WriteIdentity writes the identity section payload.
//
// A nil host is written as the author, so the distinction does not survive
// a round trip.
func WriteIdentity(w *encoding.Writer, id *save.Identity) error {
	host := id.ResolvedHost()

	for _, s := range []string{id.Map, id.Author.Name, id.Description} {
		if err := w.WriteString(s); err != nil {
			return err
		}
	}
	w.WriteUUID(id.Author.ID)

	if err := w.WriteString(host.Name); err != nil {
		return err
	}
	w.WriteUUID(host.ID)

	w.WriteBytes(id.SaveTime[:])
	w.WriteInt32(id.BrickCount)

	return nil
}

// ReadIdentity parses an identity section payload. The returned identity
// always has a non-nil Host.
func ReadIdentity(data []byte) (save.Identity, error) {
	r := encoding.NewReader(data)

	var (
		id   save.Identity
		host save.Actor
		err  error
	)

	if id.Map, err = r.ReadString(); err != nil {
		return save.Identity{}, fmt.Errorf("map: %w", err)
	}
	if id.Author.Name, err = r.ReadString(); err != nil {
		return save.Identity{}, fmt.Errorf("author name: %w", err)
	}
	if id.Description, err = r.ReadString(); err != nil {
		return save.Identity{}, fmt.Errorf("description: %w", err)
	}
	if id.Author.ID, err = r.ReadUUID(); err != nil {
		return save.Identity{}, fmt.Errorf("author id: %w", err)
	}
	if host.Name, err = r.ReadString(); err != nil {
		return save.Identity{}, fmt.Errorf("host name: %w", err)
	}
	if host.ID, err = r.ReadUUID(); err != nil {
		return save.Identity{}, fmt.Errorf("host id: %w", err)
	}
	id.Host = &host

	if err = r.ReadInto(id.SaveTime[:format.SaveTimeSize]); err != nil {
		return save.Identity{}, fmt.Errorf("save time: %w", err)
	}
	if id.BrickCount, err = r.ReadInt32(); err != nil {
		return save.Identity{}, fmt.Errorf("brick count: %w", err)
	}
	if id.BrickCount < 0 {
		return save.Identity{}, fmt.Errorf("%w: brick count %d", errs.ErrInvalidLength, id.BrickCount)
	}

	if r.Remaining() != 0 {
		return save.Identity{}, fmt.Errorf("%w: %d bytes after identity", errs.ErrTrailingBlockData, r.Remaining())
	}

	return id, nil
}
