package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMul4Identity(t *testing.T) {
	m := Translation(1, 2, 3)
	assert.Equal(t, m, Mul4(Identity4(), m))
	assert.Equal(t, m, Mul4(m, Identity4()))
}

func TestMul4Translations(t *testing.T) {
	got := Mul4(Translation(1, 0, 0), Translation(0, 2, 0))
	assert.Equal(t, Translation(1, 2, 0), got)
}

func TestRotationYQuarterTurn(t *testing.T) {
	m := RotationY(math.Pi / 2)
	// column-major: x axis maps to -z
	assert.InDelta(t, 0, m[0], 1e-6)
	assert.InDelta(t, -1, m[2], 1e-6)
	assert.InDelta(t, 1, m[8], 1e-6)
}

func TestLookAtOrigin(t *testing.T) {
	m := LookAt([3]float32{0, 0, 5}, [3]float32{0, 0, 0}, [3]float32{0, 1, 0})
	assert.InDelta(t, -5, m[14], 1e-6)
	assert.InDelta(t, 1, m[0], 1e-6)
	assert.InDelta(t, 1, m[5], 1e-6)
	assert.InDelta(t, 1, m[10], 1e-6)
}

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes([]float32{}))
	b := SliceToBytes([]int32{1, 2})
	require.Len(t, b, 8)
}

func TestCheckerboard(t *testing.T) {
	white := [4]uint8{255, 255, 255, 255}
	black := [4]uint8{0, 0, 0, 255}
	tex := Checkerboard(4, 2, white, black)
	require.Len(t, tex.Pixels, 4*4*4)
	assert.Equal(t, uint32(4), tex.Width)
	assert.Equal(t, white[0], tex.Pixels[0])
	// pixel (2,0) falls in the second cell
	assert.Equal(t, black[0], tex.Pixels[2*4])
}
