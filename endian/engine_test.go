package endian

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLittleEndianEngine(t *testing.T) {
	engine := GetLittleEndianEngine()

	buf := engine.AppendUint32(nil, 0x0a0b0c0d)
	require.Equal(t, []byte{0x0d, 0x0c, 0x0b, 0x0a}, buf)
	require.Equal(t, uint32(0x0a0b0c0d), engine.Uint32(buf))

	buf = engine.AppendUint16(nil, 10)
	require.Equal(t, []byte{0x0a, 0x00}, buf)
}
