package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseValueKind(t *testing.T) {
	tests := []struct {
		name string
		want ValueKind
	}{
		{"Class", KindClass},
		{"object", KindClass},
		{"String", KindString},
		{"str", KindString},
		{"Boolean", KindBoolean},
		{"BOOL", KindBoolean},
		{"Float", KindFloat},
		{"Color", KindColor},
		{"Byte", KindByte},
		{"Rotator", KindRotator},
		{"Integer", KindInteger},
		{"int", KindInteger},
		{"Integer64", KindInteger64},
		{"int64", KindInteger64},
		{"Vector", KindVector},
	}

	for _, tt := range tests {
		got, ok := ParseValueKind(tt.name)
		require.True(t, ok, tt.name)
		require.Equal(t, tt.want, got, tt.name)
	}

	_, ok := ParseValueKind("Quaternion")
	require.False(t, ok)
}

func TestValueKindStringRoundTrip(t *testing.T) {
	for k := KindClass; k <= KindVector; k++ {
		got, ok := ParseValueKind(k.String())
		require.True(t, ok, k.String())
		require.Equal(t, k, got)
	}

	require.Equal(t, "Unknown", ValueKind(0).String())
}

func TestOrientationEnums(t *testing.T) {
	require.True(t, ZNegative.Valid())
	require.False(t, Direction(6).Valid())
	require.Equal(t, "Z-", ZNegative.String())
	require.Equal(t, "Unknown", Direction(6).String())

	require.True(t, Deg270.Valid())
	require.False(t, Rotation(4).Valid())
	require.Equal(t, "90", Deg90.String())
}

func TestPreviewTypeString(t *testing.T) {
	require.Equal(t, "None", PreviewNone.String())
	require.Equal(t, "PNG", PreviewPNG.String())
	require.Equal(t, "JPEG", PreviewJPEG.String())
	require.Equal(t, "Unknown", PreviewType(9).String())
}

func TestBitWidths(t *testing.T) {
	require.Equal(t, 1<<IntensityBits-1, MaxMaterialIntensity)
	require.Equal(t, [4]byte{'B', 'R', 'S', 0}, Magic)
	require.Equal(t, uint16(10), Version)
}
