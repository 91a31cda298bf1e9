package skeleton

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrixTableResetBumpsGeneration(t *testing.T) {
	table := NewMatrixTable(2)
	gen := table.Generation()
	h := table.Handle(1)
	require.True(t, h.Valid())

	table.Reset(2)

	assert.Equal(t, gen+1, table.Generation())
	assert.False(t, h.Valid())
	assert.True(t, table.Handle(1).Valid())
}

func TestMatrixHandleOutOfRange(t *testing.T) {
	table := NewMatrixTable(1)

	assert.False(t, table.Handle(1).Valid())
	assert.False(t, table.Handle(-1).Set(common.Identity4()))
	assert.False(t, MatrixHandle{}.Valid())

	_, ok := table.Matrix(5)
	assert.False(t, ok)
	assert.False(t, table.SetMatrix(5, common.Identity4()))
}

func TestMatrixTableBytes(t *testing.T) {
	table := NewMatrixTable(2)
	m := common.Translation(4, 5, 6)
	require.True(t, table.Handle(1).Set(m))

	buf := table.Bytes()
	require.Len(t, buf, 128)

	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])))
	assert.Equal(t, float32(4), math.Float32frombits(binary.LittleEndian.Uint32(buf[64+12*4:])))
	assert.Equal(t, float32(6), math.Float32frombits(binary.LittleEndian.Uint32(buf[64+14*4:])))

	require.True(t, table.Handle(0).Set(common.Translation(7, 0, 0)))
	assert.Equal(t, float32(7), math.Float32frombits(binary.LittleEndian.Uint32(table.Bytes()[12*4:])))
	assert.Empty(t, NewMatrixTable(0).Bytes())
}

func TestTransformMatrix(t *testing.T) {
	assert.Equal(t, common.Identity4(), IdentityTransform().Matrix())

	tr := IdentityTransform()
	tr.Translation = [3]float32{1, 2, 3}
	tr.Scale = [3]float32{2, 2, 2}
	m := tr.Matrix()
	assert.Equal(t, float32(2), m[0])
	assert.Equal(t, float32(2), m[5])
	assert.Equal(t, float32(2), m[10])
	assert.Equal(t, [3]float32{1, 2, 3}, [3]float32{m[12], m[13], m[14]})

	// 90 degrees about Y maps +X to -Z.
	s := float32(math.Sqrt2 / 2)
	rot := IdentityTransform()
	rot.Rotation = [4]float32{0, s, 0, s}
	r := rot.Matrix()
	assert.InDelta(t, 0, r[0], 1e-6)
	assert.InDelta(t, -1, r[2], 1e-6)
}

func TestNewBoneDefaults(t *testing.T) {
	b := NewBone("root")

	assert.Equal(t, int32(-1), b.ParentIndex)
	assert.Equal(t, common.Identity4(), b.InverseBindMatrix)
	_, ok := b.FinalTransform()
	assert.False(t, ok)
}
