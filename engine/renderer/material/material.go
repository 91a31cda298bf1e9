package material

import (
	"github.com/Carmen-Shannon/oxy-rig/engine/renderer/texture"
)

// FeatureSet is a bitmask of optional shader capabilities a material requires.
type FeatureSet uint32

const (
	// FeatureDiffuseTexture marks a material sampled from a diffuse texture instead of flat colors.
	FeatureDiffuseTexture FeatureSet = 1 << iota

	// FeatureSpecularTexture marks a material carrying a specular texture.
	FeatureSpecularTexture
)

// Names of the uniforms a material carries.
const (
	// Color is the vec3 tint applied to the final fragment.
	Color = "color"

	// Opacity is the float alpha multiplier.
	Opacity = "opacity"

	// DiffuseColor is the vec4 flat diffuse color used when no diffuse texture is bound.
	DiffuseColor = "diffuse_color"

	// AmbientColor is the vec4 flat ambient color used when no diffuse texture is bound.
	AmbientColor = "ambient_color"

	// MainTexture is the texture sampled when FeatureDiffuseTexture is set.
	MainTexture = "main_texture"

	// SpecularTexture is the texture sampled when FeatureSpecularTexture is set.
	SpecularTexture = "specular_texture"
)

// material is the implementation of the Material interface.
type material struct {
	name       string
	featureSet FeatureSet
	vec3s      map[string][3]float32
	floats     map[string]float32
	vec4s      map[string][4]float32
	textures   map[string]texture.Texture
}

// Material defines the interface for a render material: a feature-set bitmask selecting the
// shader variant, plus named uniform values and textures read at draw time.
//
// Values are looked up by name. Lookups of names that were never set report false, except
// for the defaults every material starts with: Color (1,1,1), Opacity 1,
// DiffuseColor (1,1,1,1) and AmbientColor (0,0,0,0).
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// FeatureSet retrieves the bitmask of shader features the material requires.
	//
	// Returns:
	//   - FeatureSet: the feature bitmask
	FeatureSet() FeatureSet

	// SetFeatureSet replaces the feature bitmask.
	//
	// Parameters:
	//   - fs: the new feature bitmask
	SetFeatureSet(fs FeatureSet)

	// Vec3 retrieves a named vec3 uniform.
	//
	// Parameters:
	//   - name: the uniform name
	//
	// Returns:
	//   - [3]float32: the value
	//   - bool: false if the name was never set
	Vec3(name string) ([3]float32, bool)

	// Float retrieves a named float uniform.
	//
	// Parameters:
	//   - name: the uniform name
	//
	// Returns:
	//   - float32: the value
	//   - bool: false if the name was never set
	Float(name string) (float32, bool)

	// Vec4 retrieves a named vec4 uniform.
	//
	// Parameters:
	//   - name: the uniform name
	//
	// Returns:
	//   - [4]float32: the value
	//   - bool: false if the name was never set
	Vec4(name string) ([4]float32, bool)

	// Texture retrieves a named texture.
	//
	// Parameters:
	//   - name: the texture name
	//
	// Returns:
	//   - texture.Texture: the texture, or nil if none is set
	Texture(name string) texture.Texture

	// SetVec3 sets a named vec3 uniform.
	//
	// Parameters:
	//   - name: the uniform name
	//   - v: the value
	SetVec3(name string, v [3]float32)

	// SetFloat sets a named float uniform.
	//
	// Parameters:
	//   - name: the uniform name
	//   - v: the value
	SetFloat(name string, v float32)

	// SetVec4 sets a named vec4 uniform.
	//
	// Parameters:
	//   - name: the uniform name
	//   - v: the value
	SetVec4(name string, v [4]float32)

	// SetTexture sets a named texture. Setting MainTexture or SpecularTexture also sets the
	// matching feature bit; setting either to nil clears it.
	//
	// Parameters:
	//   - name: the texture name
	//   - tex: the texture, or nil to remove it
	SetTexture(name string, tex texture.Texture)
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		vec3s:    map[string][3]float32{Color: {1, 1, 1}},
		floats:   map[string]float32{Opacity: 1},
		vec4s:    map[string][4]float32{DiffuseColor: {1, 1, 1, 1}, AmbientColor: {0, 0, 0, 0}},
		textures: make(map[string]texture.Texture),
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) FeatureSet() FeatureSet {
	return m.featureSet
}

func (m *material) SetFeatureSet(fs FeatureSet) {
	m.featureSet = fs
}

func (m *material) Vec3(name string) ([3]float32, bool) {
	v, ok := m.vec3s[name]
	return v, ok
}

func (m *material) Float(name string) (float32, bool) {
	v, ok := m.floats[name]
	return v, ok
}

func (m *material) Vec4(name string) ([4]float32, bool) {
	v, ok := m.vec4s[name]
	return v, ok
}

func (m *material) Texture(name string) texture.Texture {
	return m.textures[name]
}

func (m *material) SetVec3(name string, v [3]float32) {
	m.vec3s[name] = v
}

func (m *material) SetFloat(name string, v float32) {
	m.floats[name] = v
}

func (m *material) SetVec4(name string, v [4]float32) {
	m.vec4s[name] = v
}

func (m *material) SetTexture(name string, tex texture.Texture) {
	if tex == nil {
		delete(m.textures, name)
	} else {
		m.textures[name] = tex
	}

	var bit FeatureSet
	switch name {
	case MainTexture:
		bit = FeatureDiffuseTexture
	case SpecularTexture:
		bit = FeatureSpecularTexture
	default:
		return
	}
	if tex == nil {
		m.featureSet &^= bit
	} else {
		m.featureSet |= bit
	}
}
