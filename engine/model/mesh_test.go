package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMeshFromPositions(t *testing.T) {
	m := NewMesh(
		WithName("tri"),
		WithPositions([]float32{0, 0, 0, 1, 0, 0, 0, 1, 0}),
		WithTexCoords([]float32{0, 0, 1, 0, 0, 1}),
		WithIndices([]uint32{0, 1, 2}),
	)

	assert.Equal(t, "tri", m.Name())
	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, 3, m.IndexCount())
	assert.Equal(t, []string{AttribPosition, AttribTexCoord}, m.VertexBuffer().ChannelNames())
}

func TestNewMeshPanicsOnRaggedPositions(t *testing.T) {
	assert.Panics(t, func() {
		NewMesh(WithPositions([]float32{0, 0}))
	})
}

func TestVertexBufferChannels(t *testing.T) {
	vb := NewVertexBuffer()
	require.Equal(t, uint64(0), vb.Version())

	require.NoError(t, vb.SetFloatVec("a_w", []float32{1, 2, 3, 4}, 4))
	require.NoError(t, vb.SetIntVec("a_i", []int32{5, 6, 7, 8}, 4))
	assert.Equal(t, uint64(2), vb.Version())

	f, stride, ok := vb.FloatVec("a_w")
	require.True(t, ok)
	assert.Equal(t, 4, stride)
	assert.Equal(t, []float32{1, 2, 3, 4}, f)

	_, _, ok = vb.FloatVec("a_i")
	assert.False(t, ok, "int channel must not be visible as float")

	i, _, ok := vb.IntVec("a_i")
	require.True(t, ok)
	assert.Equal(t, []int32{5, 6, 7, 8}, i)

	c, ok := vb.Channel("a_i")
	require.True(t, ok)
	assert.Equal(t, ChannelTypeInt32, c.Type)
	assert.Equal(t, 1, c.Len())
}

func TestVertexBufferCopiesInput(t *testing.T) {
	vb := NewVertexBuffer()
	data := []float32{1, 2}
	require.NoError(t, vb.SetFloatVec("a", data, 2))
	data[0] = 9

	got, _, _ := vb.FloatVec("a")
	assert.Equal(t, float32(1), got[0])
}

func TestVertexBufferRejectsBadStride(t *testing.T) {
	vb := NewVertexBuffer()
	assert.ErrorIs(t, vb.SetFloatVec("a", []float32{1, 2, 3}, 2), ErrInvalidStride)
	assert.ErrorIs(t, vb.SetIntVec("a", []int32{1}, 0), ErrInvalidStride)
	assert.Equal(t, uint64(0), vb.Version())
}
