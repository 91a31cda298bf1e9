package material

import "github.com/Carmen-Shannon/oxy-rig/engine/renderer/texture"

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithFeatureSet is an option builder that sets the feature bitmask directly.
//
// Parameters:
//   - fs: the feature bitmask
//
// Returns:
//   - MaterialBuilderOption: a function that applies the feature set option to a material
func WithFeatureSet(fs FeatureSet) MaterialBuilderOption {
	return func(m *material) {
		m.featureSet = fs
	}
}

// WithColor is an option builder that sets the vec3 tint.
//
// Parameters:
//   - color: the RGB tint
//
// Returns:
//   - MaterialBuilderOption: a function that applies the color option to a material
func WithColor(color [3]float32) MaterialBuilderOption {
	return func(m *material) {
		m.vec3s[Color] = color
	}
}

// WithOpacity is an option builder that sets the alpha multiplier.
//
// Parameters:
//   - opacity: the opacity, 1 for fully opaque
//
// Returns:
//   - MaterialBuilderOption: a function that applies the opacity option to a material
func WithOpacity(opacity float32) MaterialBuilderOption {
	return func(m *material) {
		m.floats[Opacity] = opacity
	}
}

// WithDiffuseColor is an option builder that sets the flat diffuse color.
//
// Parameters:
//   - color: the RGBA diffuse color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the diffuse color option to a material
func WithDiffuseColor(color [4]float32) MaterialBuilderOption {
	return func(m *material) {
		m.vec4s[DiffuseColor] = color
	}
}

// WithAmbientColor is an option builder that sets the flat ambient color.
//
// Parameters:
//   - color: the RGBA ambient color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the ambient color option to a material
func WithAmbientColor(color [4]float32) MaterialBuilderOption {
	return func(m *material) {
		m.vec4s[AmbientColor] = color
	}
}

// WithTexture is an option builder that sets a named texture, updating the feature bits the
// same way SetTexture does.
//
// Parameters:
//   - name: the texture name, usually MainTexture
//   - tex: the texture
//
// Returns:
//   - MaterialBuilderOption: a function that applies the texture option to a material
func WithTexture(name string, tex texture.Texture) MaterialBuilderOption {
	return func(m *material) {
		m.SetTexture(name, tex)
	}
}
