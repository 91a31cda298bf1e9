package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProvider(t *testing.T) {
	p := NewBindGroupProvider("draw 0", WithVersion(3))

	assert.Equal(t, "draw 0", p.Label())
	assert.Equal(t, uint64(3), p.Version())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.Buffer(0))
	assert.Nil(t, p.VertexBuffer(0))
	assert.Nil(t, p.IndexBuffer())
	assert.Zero(t, p.IndexCount())
}

func TestReleaseEmptyProvider(t *testing.T) {
	p := NewBindGroupProvider("empty")
	p.SetIndexBuffer(nil, 6)
	assert.Equal(t, 6, p.IndexCount())

	assert.NotPanics(t, p.Release)
	assert.Zero(t, p.IndexCount())
}
