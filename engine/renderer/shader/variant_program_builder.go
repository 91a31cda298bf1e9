package shader

// VariantProgramBuilderOption is a function that configures a variant program during construction.
type VariantProgramBuilderOption func(*variantProgram)

// WithLabel is an option builder that sets the debug label prefix of the compiled variants.
//
// Parameters:
//   - label: the label
//
// Returns:
//   - VariantProgramBuilderOption: a function that applies the label option
func WithLabel(label string) VariantProgramBuilderOption {
	return func(vp *variantProgram) {
		vp.label = label
	}
}

// WithVertexTemplate is an option builder that replaces the embedded vertex stage template.
//
// Parameters:
//   - source: the WGSL template, may use #ifdef on feature macros
//
// Returns:
//   - VariantProgramBuilderOption: a function that applies the vertex template option
func WithVertexTemplate(source string) VariantProgramBuilderOption {
	return func(vp *variantProgram) {
		vp.vertexTemplate = source
	}
}

// WithFragmentTemplate is an option builder that replaces the embedded fragment stage template.
//
// Parameters:
//   - source: the WGSL template, may use #ifdef on feature macros
//
// Returns:
//   - VariantProgramBuilderOption: a function that applies the fragment template option
func WithFragmentTemplate(source string) VariantProgramBuilderOption {
	return func(vp *variantProgram) {
		vp.fragmentTemplate = source
	}
}

// VertexTemplate returns the embedded vertex stage template.
func VertexTemplate() string {
	return variantVertexSource
}

// FragmentTemplate returns the embedded fragment stage template.
func FragmentTemplate() string {
	return variantFragmentSource
}
