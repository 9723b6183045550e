package save

import "github.com/arloliu/brs/format"

// Value is a typed component property value.
//
// The set of implementations is closed: Class, String, Boolean, Float,
// Color, Byte, Rotator, Integer, Integer64 and Vector. Each reports the
// format.ValueKind its schema type must resolve to.
type Value interface {
	Kind() format.ValueKind
	value()
}

type (
	// Class is a class path such as "BP_Light_C".
	Class string
	// String is free text.
	String string
	// Boolean is a flag, stored as a 32-bit integer.
	Boolean bool
	// Float is a 32-bit float.
	Float float32
	// Byte is an unsigned byte.
	Byte uint8
	// Integer is a signed 32-bit integer.
	Integer int32
	// Integer64 is a signed 64-bit integer.
	Integer64 int64
)

// Color is an RGBA color. It is both a catalog entry and a component value;
// on the wire it is always stored in BGRA order.
type Color struct {
	R, G, B, A uint8
}

// Rotator is a pitch, yaw, roll rotation in degrees.
type Rotator struct {
	Pitch, Yaw, Roll float32
}

// Vector is a 3-component float vector.
type Vector struct {
	X, Y, Z float32
}

func (Class) Kind() format.ValueKind     { return format.KindClass }
func (String) Kind() format.ValueKind    { return format.KindString }
func (Boolean) Kind() format.ValueKind   { return format.KindBoolean }
func (Float) Kind() format.ValueKind     { return format.KindFloat }
func (Color) Kind() format.ValueKind     { return format.KindColor }
func (Byte) Kind() format.ValueKind      { return format.KindByte }
func (Rotator) Kind() format.ValueKind   { return format.KindRotator }
func (Integer) Kind() format.ValueKind   { return format.KindInteger }
func (Integer64) Kind() format.ValueKind { return format.KindInteger64 }
func (Vector) Kind() format.ValueKind    { return format.KindVector }

func (Class) value()     {}
func (String) value()    {}
func (Boolean) value()   {}
func (Float) value()     {}
func (Color) value()     {}
func (Byte) value()      {}
func (Rotator) value()   {}
func (Integer) value()   {}
func (Integer64) value() {}
func (Vector) value()    {}
