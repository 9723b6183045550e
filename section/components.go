package section

import (
	"fmt"
	"slices"

	"github.com/arloliu/brs/bitstream"
	"github.com/arloliu/brs/errs"
	"github.com/arloliu/brs/format"
	"github.com/arloliu/brs/internal/membership"
	"github.com/arloliu/brs/save"
)

// minComponentBits is the smallest possible component record: name length,
// version, brick count and property count.
const minComponentBits = 4 * 32

// WriteComponents writes the component table payload.
//
// Brick membership is derived from bricks, not stored: every component name
// a brick references must exist in components, and the brick must carry a
// value for every property of that component's schema and for nothing else.
func WriteComponents(w *bitstream.Writer, components map[string]save.Component, bricks []save.Brick) error {
	members := membership.Derive(bricks)
	for _, name := range members.Names() {
		if _, ok := components[name]; !ok {
			return fmt.Errorf("%w: %q (brick %d)", errs.ErrUnknownComponent, name, members.Bricks(name)[0])
		}
	}

	names := make([]string, 0, len(components))
	for name := range components {
		names = append(names, name)
	}
	slices.Sort(names)

	if err := w.WriteCount(len(names)); err != nil {
		return err
	}

	indexBits := bitstream.BitsFor(len(bricks))
	for _, name := range names {
		if err := writeComponent(w, name, components[name], members.Bricks(name), bricks, indexBits); err != nil {
			return fmt.Errorf("component %q: %w", name, err)
		}
	}

	return nil
}

func writeComponent(w *bitstream.Writer, name string, c save.Component, indices []uint32,
	bricks []save.Brick, indexBits int,
) error {
	kinds := make([]format.ValueKind, len(c.Properties))
	for i, p := range c.Properties {
		kind, err := resolveKind(p.Type)
		if err != nil {
			return fmt.Errorf("property %q: %w", p.Name, err)
		}
		kinds[i] = kind
	}

	if err := w.WriteString(name); err != nil {
		return err
	}
	w.WriteInt32(c.Version)

	if err := w.WriteCount(len(indices)); err != nil {
		return err
	}
	for _, index := range indices {
		if err := w.WriteUint(index, indexBits); err != nil {
			return err
		}
	}

	if err := w.WriteCount(len(c.Properties)); err != nil {
		return err
	}
	for _, p := range c.Properties {
		if err := w.WriteString(p.Name); err != nil {
			return err
		}
		if err := w.WriteString(p.Type); err != nil {
			return err
		}
	}

	for _, index := range indices {
		values := bricks[index].Components[name]
		if err := checkSchema(values, c.Properties); err != nil {
			return fmt.Errorf("brick %d: %w", index, err)
		}

		for i, p := range c.Properties {
			if err := writeValue(w, kinds[i], values[p.Name]); err != nil {
				return fmt.Errorf("brick %d property %q: %w", index, p.Name, err)
			}
		}
	}

	w.Align()

	return nil
}

// checkSchema verifies that values holds a non-nil entry for every schema
// property and no entry outside the schema.
func checkSchema(values map[string]save.Value, props []save.Property) error {
	for _, p := range props {
		if v, ok := values[p.Name]; !ok || v == nil {
			return fmt.Errorf("%w: %q", errs.ErrMissingProperty, p.Name)
		}
	}

	if len(values) != len(props) {
		for key := range values {
			if !slices.ContainsFunc(props, func(p save.Property) bool { return p.Name == key }) {
				return fmt.Errorf("%w: %q", errs.ErrUnknownProperty, key)
			}
		}
	}

	return nil
}

// ReadComponents parses a component table payload and attaches the decoded
// values to bricks, which must be the already decoded brick table.
//
// After all components are read, membership is derived again from the
// bricks and must match each component's embedded brick list exactly.
// A nil map is returned when the table holds no components.
func ReadComponents(data []byte, bricks []save.Brick) (map[string]save.Component, error) {
	r := bitstream.NewReader(data)

	count, err := r.ReadCount(minComponentBits)
	if err != nil {
		return nil, fmt.Errorf("component count: %w", err)
	}
	if count == 0 {
		if !r.AtEnd() {
			return nil, fmt.Errorf("%w: %d bits after component table", errs.ErrTrailingBlockData, r.Remaining())
		}

		return nil, nil
	}

	tracker := membership.NewTracker()
	components := make(map[string]save.Component, count)
	lists := make(map[string][]uint32, count)
	indexBits := bitstream.BitsFor(len(bricks))

	for i := range count {
		name, err := r.ReadString()
		if err != nil {
			return nil, fmt.Errorf("component %d name: %w", i, err)
		}
		if err := tracker.TrackComponent(name); err != nil {
			return nil, err
		}

		c, indices, err := readComponent(r, name, bricks, indexBits)
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", name, err)
		}
		components[name] = c
		lists[name] = indices
	}

	if !r.AtEnd() {
		return nil, fmt.Errorf("%w: %d bits after component table", errs.ErrTrailingBlockData, r.Remaining())
	}

	derived := membership.Derive(bricks)
	for name := range components {
		if !derived.Equal(name, lists[name]) {
			return nil, fmt.Errorf("%w: %q", errs.ErrMembershipMismatch, name)
		}
	}
	if derived.Count() > len(components) {
		return nil, fmt.Errorf("%w: %d components referenced, %d declared",
			errs.ErrMembershipMismatch, derived.Count(), len(components))
	}

	return components, nil
}

func readComponent(r *bitstream.Reader, name string, bricks []save.Brick, indexBits int) (save.Component, []uint32, error) {
	var c save.Component

	version, err := r.ReadInt32()
	if err != nil {
		return c, nil, fmt.Errorf("version: %w", err)
	}
	c.Version = version

	n, err := r.ReadCount(indexBits)
	if err != nil {
		return c, nil, fmt.Errorf("brick indices: %w", err)
	}

	var indices []uint32
	if n > 0 {
		indices = make([]uint32, n)
	}
	for i := range indices {
		index, err := r.ReadUint(indexBits)
		if err != nil {
			return c, nil, fmt.Errorf("brick index %d: %w", i, err)
		}
		if int64(index) >= int64(len(bricks)) {
			return c, nil, fmt.Errorf("%w: brick index %d of %d bricks", errs.ErrIndexOutOfRange, index, len(bricks))
		}
		if i > 0 && index <= indices[i-1] {
			return c, nil, fmt.Errorf("%w: brick index %d after %d", errs.ErrMembershipMismatch, index, indices[i-1])
		}
		indices[i] = index
	}

	pc, err := r.ReadCount(64)
	if err != nil {
		return c, nil, fmt.Errorf("properties: %w", err)
	}

	kinds := make([]format.ValueKind, pc)
	if pc > 0 {
		c.Properties = make([]save.Property, pc)
	}
	for i := range c.Properties {
		p := &c.Properties[i]
		if p.Name, err = r.ReadString(); err != nil {
			return c, nil, fmt.Errorf("property %d name: %w", i, err)
		}
		if p.Type, err = r.ReadString(); err != nil {
			return c, nil, fmt.Errorf("property %q type: %w", p.Name, err)
		}
		if kinds[i], err = resolveKind(p.Type); err != nil {
			return c, nil, fmt.Errorf("property %q: %w", p.Name, err)
		}
	}

	for _, index := range indices {
		b := &bricks[index]
		if b.Components == nil {
			b.Components = make(map[string]map[string]save.Value)
		}
		// a component without properties decodes as a nil value map
		var values map[string]save.Value
		if len(c.Properties) > 0 {
			values = make(map[string]save.Value, len(c.Properties))
		}
		b.Components[name] = values

		for i, p := range c.Properties {
			v, err := readValue(r, kinds[i])
			if err != nil {
				return c, nil, fmt.Errorf("brick %d property %q: %w", index, p.Name, err)
			}
			values[p.Name] = v
		}
	}

	if err := r.Align(); err != nil {
		return c, nil, err
	}

	return c, indices, nil
}
