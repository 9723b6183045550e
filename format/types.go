package format

import "strings"

// Magic identifies a brs save file. It is the first four bytes on the wire.
var Magic = [4]byte{'B', 'R', 'S', 0x00}

// Version is the only save format version this module reads and writes.
const Version uint16 = 10

// SaveTimeSize is the size of the opaque save time stamp in the identity section.
const SaveTimeSize = 8

// MaxMaterialIntensity is the largest intensity the 11-bit field can carry.
const MaxMaterialIntensity = 1<<11 - 1

// OrientationBits is the width of the combined direction/rotation field.
const OrientationBits = 24

// IntensityBits is the width of the material intensity field.
const IntensityBits = 11

type (
	Direction   uint8
	Rotation    uint8
	PreviewType uint8
	ValueKind   uint8
)

const (
	XPositive Direction = iota
	XNegative
	YPositive
	YNegative
	ZPositive
	ZNegative
)

const (
	Deg0 Rotation = iota
	Deg90
	Deg180
	Deg270
)

const (
	PreviewNone PreviewType = 0x0 // PreviewNone means no preview is stored.
	PreviewPNG  PreviewType = 0x1 // PreviewPNG holds PNG image bytes.
	PreviewJPEG PreviewType = 0x2 // PreviewJPEG holds JPEG image bytes.
)

const (
	KindClass     ValueKind = iota + 1 // KindClass is a class path, encoded as text.
	KindString                         // KindString is free text.
	KindBoolean                        // KindBoolean is a 32-bit 0/1 flag.
	KindFloat                          // KindFloat is a 32-bit IEEE float.
	KindColor                          // KindColor is a BGRA quadruple.
	KindByte                           // KindByte is a single byte.
	KindRotator                        // KindRotator is pitch, yaw, roll as three floats.
	KindInteger                        // KindInteger is a signed 32-bit integer.
	KindInteger64                      // KindInteger64 is a signed 64-bit integer.
	KindVector                         // KindVector is x, y, z as three floats.
)

func (d Direction) Valid() bool {
	return d <= ZNegative
}

func (d Direction) String() string {
	switch d {
	case XPositive:
		return "X+"
	case XNegative:
		return "X-"
	case YPositive:
		return "Y+"
	case YNegative:
		return "Y-"
	case ZPositive:
		return "Z+"
	case ZNegative:
		return "Z-"
	default:
		return "Unknown"
	}
}

func (r Rotation) Valid() bool {
	return r <= Deg270
}

func (r Rotation) String() string {
	switch r {
	case Deg0:
		return "0"
	case Deg90:
		return "90"
	case Deg180:
		return "180"
	case Deg270:
		return "270"
	default:
		return "Unknown"
	}
}

func (p PreviewType) String() string {
	switch p {
	case PreviewNone:
		return "None"
	case PreviewPNG:
		return "PNG"
	case PreviewJPEG:
		return "JPEG"
	default:
		return "Unknown"
	}
}

// String returns the canonical schema type name of the kind.
func (k ValueKind) String() string {
	switch k {
	case KindClass:
		return "Class"
	case KindString:
		return "String"
	case KindBoolean:
		return "Boolean"
	case KindFloat:
		return "Float"
	case KindColor:
		return "Color"
	case KindByte:
		return "Byte"
	case KindRotator:
		return "Rotator"
	case KindInteger:
		return "Integer"
	case KindInteger64:
		return "Integer64"
	case KindVector:
		return "Vector"
	default:
		return "Unknown"
	}
}

var valueKindAliases = map[string]ValueKind{
	"class":     KindClass,
	"object":    KindClass,
	"string":    KindString,
	"str":       KindString,
	"text":      KindString,
	"boolean":   KindBoolean,
	"bool":      KindBoolean,
	"float":     KindFloat,
	"color":     KindColor,
	"byte":      KindByte,
	"rotator":   KindRotator,
	"integer":   KindInteger,
	"int":       KindInteger,
	"int32":     KindInteger,
	"integer64": KindInteger64,
	"int64":     KindInteger64,
	"vector":    KindVector,
}

// ParseValueKind resolves a component property type name to its kind.
//
// Matching is case-insensitive and accepts the canonical names returned by
// ValueKind.String as well as short aliases such as "int" or "bool".
// The second result is false when the name is not a known kind.
func ParseValueKind(name string) (ValueKind, bool) {
	k, ok := valueKindAliases[strings.ToLower(name)]
	return k, ok
}
