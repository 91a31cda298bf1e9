package shader

import "github.com/Carmen-Shannon/oxy-rig/engine/renderer/material"

// featureCount is the number of optional shader features.
const featureCount = 2

// VariantCount is the number of precompiled variants, one per feature combination.
const VariantCount = 1 << featureCount

// Feature is one optional shader capability toggled by a bit of the material feature set.
type Feature struct {
	// Bit is the feature set bit that enables the feature.
	Bit material.FeatureSet

	// Macro is the preprocessor name templates test with #ifdef.
	Macro string
}

// Features lists the optional shader features in bit order.
var Features = [featureCount]Feature{
	{Bit: material.FeatureDiffuseTexture, Macro: "AS_DIFFUSE_TEXTURE"},
	{Bit: material.FeatureSpecularTexture, Macro: "AS_SPECULAR_TEXTURE"},
}

// DefineSnippet returns the source line defining the feature macro.
func (f Feature) DefineSnippet() string {
	return "#define " + f.Macro + "\n"
}

// UndefSnippet returns the source line undefining the feature macro.
func (f Feature) UndefSnippet() string {
	return "#undef " + f.Macro + "\n"
}

// BuildVariantSources builds the ordered source list of one stage of a variant: a define or
// undef snippet for every feature in bit order, followed by the template. Bits outside the
// variant table are ignored.
//
// Parameters:
//   - mask: the feature set of the variant
//   - template: the shared stage template
//
// Returns:
//   - []string: featureCount snippets then the template
func BuildVariantSources(mask material.FeatureSet, template string) []string {
	sources := make([]string, 0, featureCount+1)
	for _, f := range Features {
		if mask&f.Bit != 0 {
			sources = append(sources, f.DefineSnippet())
		} else {
			sources = append(sources, f.UndefSnippet())
		}
	}
	return append(sources, template)
}
