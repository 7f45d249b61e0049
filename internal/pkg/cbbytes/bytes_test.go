package cbbytes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFloatArrayRoundTrip(t *testing.T) {
	in := []float32{0, -1.5, 3.25, 1e-7}
	code := FloatArrayByte(in)
	require.Len(t, code, 16)

	out, err := ByteToFloat32Array(code)
	require.NoError(t, err)
	require.Equal(t, in, out)
	require.Equal(t, float32(-1.5), ByteToFloat32(code[4:]))
}

func TestByteToFloat32ArrayRejectsPartial(t *testing.T) {
	_, err := ByteToFloat32Array([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestCloneBytes(t *testing.T) {
	require.Nil(t, CloneBytes(nil))
	src := []byte{1, 2}
	dst := CloneBytes(src)
	dst[0] = 9
	require.Equal(t, byte(1), src[0])
}
