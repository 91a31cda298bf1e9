package texture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTexture(t *testing.T) {
	tex := NewTexture(TargetCube, WithSize(64, 32))

	assert.Equal(t, TargetCube, tex.Target())
	w, h := tex.Size()
	assert.Equal(t, uint32(64), w)
	assert.Equal(t, uint32(32), h)
	assert.Nil(t, tex.View())
	assert.Nil(t, tex.Sampler())
}

func TestReleaseWithoutGPUResources(t *testing.T) {
	tex := NewTexture(Target2D)

	assert.NotPanics(t, func() {
		tex.Release()
		tex.Release()
	})
}

func TestTargetString(t *testing.T) {
	assert.Equal(t, "2d", Target2D.String())
	assert.Equal(t, "cube", TargetCube.String())
	assert.Equal(t, "external", TargetExternal.String())
	assert.Equal(t, "Target(7)", Target(7).String())
}
