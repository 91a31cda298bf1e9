package shader

import (
	_ "embed"
	"errors"
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-rig/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-rig/engine/renderer/texture"
)

//go:embed assets/variant_vertex.wgsl
var variantVertexSource string

//go:embed assets/variant_fragment.wgsl
var variantFragmentSource string

var (
	// ErrVariantCompile is wrapped when a variant fails to compile during construction.
	ErrVariantCompile = errors.New("shader variant compile failed")

	// ErrProgramReleased is returned by Render after Teardown.
	ErrProgramReleased = errors.New("variant program released")

	// ErrMissingTexture is returned when the diffuse texture feature is set but the material
	// has no main texture.
	ErrMissingTexture = errors.New("material has no main texture")

	// ErrTextureTarget is returned when the main texture is not a 2D texture.
	ErrTextureTarget = errors.New("main texture target mismatch")
)

// State is the lifecycle stage of a VariantProgram.
type State int

const (
	// StateUninitialized is the stage before every variant has compiled.
	StateUninitialized State = iota

	// StateReady means every variant compiled and Render may be called.
	StateReady

	// StateReleased is terminal, reached through Teardown.
	StateReleased
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateReleased:
		return "released"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// variantProgram is the implementation of the VariantProgram interface.
type variantProgram struct {
	label            string
	device           Device
	vertexTemplate   string
	fragmentTemplate string
	variants         [VariantCount]Program
	state            State
}

// VariantProgram holds one compiled program per combination of optional features and draws
// meshes with the variant matching a material's feature set.
//
// A VariantProgram belongs to the rendering thread of its Device.
type VariantProgram interface {
	// Label retrieves the debug label the variants were compiled with.
	//
	// Returns:
	//   - string: the label
	Label() string

	// State retrieves the lifecycle stage.
	//
	// Returns:
	//   - State: the current state
	State() State

	// Variant retrieves the program compiled for a feature set. Bits outside the variant
	// table are masked off.
	//
	// Parameters:
	//   - mask: the feature set
	//
	// Returns:
	//   - Program: the variant, or nil after Teardown
	Variant(mask material.FeatureSet) Program

	// Render draws the mesh of rd with the variant selected by the material's feature set.
	//
	// When the diffuse texture feature is set the material's main texture is bound, and must
	// exist and be a 2D texture; otherwise the flat diffuse and ambient colors are bound. Both
	// texture checks run before any device call, so a failed Render leaves device state as it
	// was.
	//
	// Parameters:
	//   - mvp: the column-major model-view-projection matrix
	//   - rd: the render data holding the mesh
	//   - mat: the material supplying the feature set and uniform values
	//
	// Returns:
	//   - error: ErrProgramReleased, ErrMissingTexture, ErrTextureTarget, or a draw error
	Render(mvp [16]float32, rd RenderData, mat material.Material) error

	// Teardown releases every variant. Later calls do nothing.
	Teardown()
}

var _ VariantProgram = &variantProgram{}

// NewVariantProgram compiles every variant on the device. Construction is all-or-nothing:
// when any variant fails the ones already compiled are released.
//
// Parameters:
//   - device: the device to compile on and draw with
//   - options: variadic list of VariantProgramBuilderOption functions
//
// Returns:
//   - VariantProgram: the ready program
//   - error: an error wrapping ErrVariantCompile and the device error
func NewVariantProgram(device Device, options ...VariantProgramBuilderOption) (VariantProgram, error) {
	if device == nil {
		panic("shader: VariantProgram requires a device")
	}
	vp := &variantProgram{
		label:            "variant",
		device:           device,
		vertexTemplate:   variantVertexSource,
		fragmentTemplate: variantFragmentSource,
	}
	for _, opt := range options {
		opt(vp)
	}

	for mask := range material.FeatureSet(VariantCount) {
		label := fmt.Sprintf("%s[%d]", vp.label, mask)
		p, err := device.CompileProgram(label,
			BuildVariantSources(mask, vp.vertexTemplate),
			BuildVariantSources(mask, vp.fragmentTemplate),
		)
		if err != nil {
			vp.releaseVariants()
			return nil, fmt.Errorf("%w: %s feature set %d: %w", ErrVariantCompile, vp.label, mask, err)
		}
		vp.variants[mask] = p
	}

	vp.state = StateReady
	log.Printf("[Shader] %s: compiled %d variants", vp.label, VariantCount)
	return vp, nil
}

func (vp *variantProgram) Label() string {
	return vp.label
}

func (vp *variantProgram) State() State {
	return vp.state
}

func (vp *variantProgram) Variant(mask material.FeatureSet) Program {
	return vp.variants[mask&(VariantCount-1)]
}

func (vp *variantProgram) Render(mvp [16]float32, rd RenderData, mat material.Material) error {
	if vp.state != StateReady {
		return ErrProgramReleased
	}

	fs := mat.FeatureSet() & (VariantCount - 1)
	textured := fs&material.FeatureDiffuseTexture != 0

	var tex texture.Texture
	if textured {
		tex = mat.Texture(material.MainTexture)
		if tex == nil {
			return fmt.Errorf("%w: material %q", ErrMissingTexture, mat.Name())
		}
		if tex.Target() != texture.Target2D {
			return fmt.Errorf("%w: material %q has a %s texture, want %s", ErrTextureTarget, mat.Name(), tex.Target(), texture.Target2D)
		}
	}

	p := vp.variants[fs]
	d := vp.device
	d.UseProgram(p)
	d.UniformMatrix4(p.UniformLocation(UniformMVP), mvp)

	if textured {
		d.BindTexture(p.UniformLocation(UniformTexture), 0, tex)
	} else {
		diffuse, _ := mat.Vec4(material.DiffuseColor)
		ambient, _ := mat.Vec4(material.AmbientColor)
		d.Uniform4f(p.UniformLocation(UniformDiffuseColor), diffuse)
		d.Uniform4f(p.UniformLocation(UniformAmbientColor), ambient)
	}

	color, _ := mat.Vec3(material.Color)
	opacity, _ := mat.Float(material.Opacity)
	d.Uniform3f(p.UniformLocation(UniformColor), color)
	d.Uniform1f(p.UniformLocation(UniformOpacity), opacity)

	return d.DrawIndexed(rd.Mesh())
}

func (vp *variantProgram) Teardown() {
	if vp.state == StateReleased {
		return
	}
	vp.releaseVariants()
	vp.state = StateReleased
}

// releaseVariants releases every compiled variant and clears the table.
func (vp *variantProgram) releaseVariants() {
	for i, p := range vp.variants {
		if p != nil {
			p.Release()
			vp.variants[i] = nil
		}
	}
}
