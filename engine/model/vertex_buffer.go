package model

import (
	"errors"
	"fmt"
	"sort"
)

// ChannelType identifies the element type stored in a vertex buffer channel.
type ChannelType int

const (
	// ChannelTypeFloat32 marks a channel holding float32 components.
	ChannelTypeFloat32 ChannelType = iota

	// ChannelTypeInt32 marks a channel holding int32 components.
	ChannelTypeInt32
)

// ErrInvalidStride is returned when a channel write has a non-positive stride or a
// data length that is not a multiple of the stride.
var ErrInvalidStride = errors.New("invalid vertex channel stride")

// Channel is one named per-vertex attribute stream held by a VertexBuffer.
// Exactly one of Floats or Ints is populated, according to Type.
type Channel struct {
	// Name is the attribute name the channel binds to (e.g. "a_position").
	Name string

	// Type is the component type of the channel.
	Type ChannelType

	// Stride is the number of components per vertex.
	Stride int

	// Floats holds the data of a ChannelTypeFloat32 channel.
	Floats []float32

	// Ints holds the data of a ChannelTypeInt32 channel.
	Ints []int32
}

// Len returns the number of vertices described by the channel.
//
// Returns:
//   - int: component count divided by stride
func (c Channel) Len() int {
	if c.Stride <= 0 {
		return 0
	}
	if c.Type == ChannelTypeInt32 {
		return len(c.Ints) / c.Stride
	}
	return len(c.Floats) / c.Stride
}

// vertexBuffer is the implementation of the VertexBuffer interface.
type vertexBuffer struct {
	channels map[string]Channel
	version  uint64
}

// VertexBuffer holds named per-vertex attribute channels for a mesh. Each write replaces
// the whole channel and bumps the buffer version so GPU-side copies know to re-upload.
type VertexBuffer interface {
	// SetFloatVec replaces the named float channel with a copy of data.
	//
	// Parameters:
	//   - name: the attribute name
	//   - data: the channel components, len(data) must be a multiple of stride
	//   - stride: the number of components per vertex
	//
	// Returns:
	//   - error: ErrInvalidStride if the stride does not fit the data
	SetFloatVec(name string, data []float32, stride int) error

	// SetIntVec replaces the named int channel with a copy of data.
	//
	// Parameters:
	//   - name: the attribute name
	//   - data: the channel components, len(data) must be a multiple of stride
	//   - stride: the number of components per vertex
	//
	// Returns:
	//   - error: ErrInvalidStride if the stride does not fit the data
	SetIntVec(name string, data []int32, stride int) error

	// FloatVec retrieves the named float channel data and stride.
	//
	// Parameters:
	//   - name: the attribute name
	//
	// Returns:
	//   - []float32: the channel data
	//   - int: the stride
	//   - bool: false if no float channel with that name exists
	FloatVec(name string) ([]float32, int, bool)

	// IntVec retrieves the named int channel data and stride.
	//
	// Parameters:
	//   - name: the attribute name
	//
	// Returns:
	//   - []int32: the channel data
	//   - int: the stride
	//   - bool: false if no int channel with that name exists
	IntVec(name string) ([]int32, int, bool)

	// Channel retrieves a named channel of either type.
	//
	// Parameters:
	//   - name: the attribute name
	//
	// Returns:
	//   - Channel: the channel
	//   - bool: false if the channel does not exist
	Channel(name string) (Channel, bool)

	// ChannelNames returns the names of all channels in sorted order.
	//
	// Returns:
	//   - []string: channel names
	ChannelNames() []string

	// Version returns a counter incremented on every successful channel write.
	//
	// Returns:
	//   - uint64: the current version
	Version() uint64
}

var _ VertexBuffer = &vertexBuffer{}

// NewVertexBuffer creates an empty VertexBuffer.
//
// Returns:
//   - VertexBuffer: a new vertex buffer with no channels
func NewVertexBuffer() VertexBuffer {
	return &vertexBuffer{
		channels: make(map[string]Channel),
	}
}

func (vb *vertexBuffer) SetFloatVec(name string, data []float32, stride int) error {
	if err := checkStride(name, len(data), stride); err != nil {
		return err
	}
	vb.channels[name] = Channel{
		Name:   name,
		Type:   ChannelTypeFloat32,
		Stride: stride,
		Floats: append([]float32(nil), data...),
	}
	vb.version++
	return nil
}

func (vb *vertexBuffer) SetIntVec(name string, data []int32, stride int) error {
	if err := checkStride(name, len(data), stride); err != nil {
		return err
	}
	vb.channels[name] = Channel{
		Name:   name,
		Type:   ChannelTypeInt32,
		Stride: stride,
		Ints:   append([]int32(nil), data...),
	}
	vb.version++
	return nil
}

func (vb *vertexBuffer) FloatVec(name string) ([]float32, int, bool) {
	c, ok := vb.channels[name]
	if !ok || c.Type != ChannelTypeFloat32 {
		return nil, 0, false
	}
	return c.Floats, c.Stride, true
}

func (vb *vertexBuffer) IntVec(name string) ([]int32, int, bool) {
	c, ok := vb.channels[name]
	if !ok || c.Type != ChannelTypeInt32 {
		return nil, 0, false
	}
	return c.Ints, c.Stride, true
}

func (vb *vertexBuffer) Channel(name string) (Channel, bool) {
	c, ok := vb.channels[name]
	return c, ok
}

func (vb *vertexBuffer) ChannelNames() []string {
	names := make([]string, 0, len(vb.channels))
	for name := range vb.channels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (vb *vertexBuffer) Version() uint64 {
	return vb.version
}

func checkStride(name string, n, stride int) error {
	if stride <= 0 || n%stride != 0 {
		return fmt.Errorf("channel %q: %d components with stride %d: %w", name, n, stride, ErrInvalidStride)
	}
	return nil
}
