package section

import (
	"fmt"
	"math"

	"github.com/arloliu/brs/bitstream"
	"github.com/arloliu/brs/errs"
	"github.com/arloliu/brs/format"
	"github.com/arloliu/brs/save"
)

// resolveKind maps a schema type name to its value kind.
func resolveKind(typeName string) (format.ValueKind, error) {
	kind, ok := format.ParseValueKind(typeName)
	if !ok {
		return 0, fmt.Errorf("%w: %q", errs.ErrUnknownValueKind, typeName)
	}

	return kind, nil
}

// writeValue writes v in the wire form of kind. The value must be of that
// kind; the wire form carries no tag of its own.
func writeValue(w *bitstream.Writer, kind format.ValueKind, v save.Value) error {
	if v.Kind() != kind {
		return fmt.Errorf("%w: schema %s, value %s", errs.ErrValueKindMismatch, kind, v.Kind())
	}

	switch v := v.(type) {
	case save.Class:
		return w.WriteString(string(v))
	case save.String:
		return w.WriteString(string(v))
	case save.Boolean:
		var u uint32
		if v {
			u = 1
		}
		w.WriteUint32(u)
	case save.Float:
		writeFloat(w, float32(v))
	case save.Color:
		w.WriteBytes([]byte{v.B, v.G, v.R, v.A})
	case save.Byte:
		w.WriteBytes([]byte{byte(v)})
	case save.Rotator:
		writeFloat(w, v.Pitch)
		writeFloat(w, v.Yaw)
		writeFloat(w, v.Roll)
	case save.Integer:
		w.WriteInt32(int32(v))
	case save.Integer64:
		w.WriteUint64(uint64(v)) //nolint:gosec
	case save.Vector:
		writeFloat(w, v.X)
		writeFloat(w, v.Y)
		writeFloat(w, v.Z)
	default:
		return fmt.Errorf("%w: %T", errs.ErrUnknownValueKind, v)
	}

	return nil
}

// readValue reads one value in the wire form of kind.
func readValue(r *bitstream.Reader, kind format.ValueKind) (save.Value, error) {
	switch kind {
	case format.KindClass:
		s, err := r.ReadString()
		return save.Class(s), err
	case format.KindString:
		s, err := r.ReadString()
		return save.String(s), err
	case format.KindBoolean:
		u, err := r.ReadUint32()
		return save.Boolean(u != 0), err
	case format.KindFloat:
		f, err := readFloat(r)
		return save.Float(f), err
	case format.KindColor:
		b, err := r.ReadBytes(4)
		if err != nil {
			return nil, err
		}
		return save.Color{B: b[0], G: b[1], R: b[2], A: b[3]}, nil
	case format.KindByte:
		b, err := r.ReadBytes(1)
		if err != nil {
			return nil, err
		}
		return save.Byte(b[0]), nil
	case format.KindRotator:
		f, err := readFloats(r)
		return save.Rotator{Pitch: f[0], Yaw: f[1], Roll: f[2]}, err
	case format.KindInteger:
		i, err := r.ReadInt32()
		return save.Integer(i), err
	case format.KindInteger64:
		u, err := r.ReadUint64()
		return save.Integer64(int64(u)), err //nolint:gosec
	case format.KindVector:
		f, err := readFloats(r)
		return save.Vector{X: f[0], Y: f[1], Z: f[2]}, err
	default:
		return nil, fmt.Errorf("%w: kind %d", errs.ErrUnknownValueKind, kind)
	}
}

func writeFloat(w *bitstream.Writer, f float32) {
	w.WriteUint32(math.Float32bits(f))
}

func readFloat(r *bitstream.Reader) (float32, error) {
	u, err := r.ReadUint32()
	return math.Float32frombits(u), err
}

func readFloats(r *bitstream.Reader) ([3]float32, error) {
	var out [3]float32
	for i := range out {
		f, err := readFloat(r)
		if err != nil {
			return out, err
		}
		out[i] = f
	}

	return out, nil
}
