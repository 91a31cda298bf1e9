// Command variantc compiles every shader variant offline and optionally writes the SPIR-V
// of each stage to a directory. It exits non-zero when any variant fails to compile.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-rig/engine/renderer"
	"github.com/Carmen-Shannon/oxy-rig/engine/renderer/shader"
)

func main() {
	label := flag.String("label", "unlit", "label the variants are compiled under")
	vertexPath := flag.String("vertex", "", "vertex template (default: built-in)")
	fragmentPath := flag.String("fragment", "", "fragment template (default: built-in)")
	outDir := flag.String("out", "", "directory to write <label>_<mask>.{vert,frag}.spv into")
	flag.Parse()

	if err := run(*label, *vertexPath, *fragmentPath, *outDir); err != nil {
		log.Fatalf("[Shader] %v", err)
	}
}

func run(label, vertexPath, fragmentPath, outDir string) error {
	opts := []shader.VariantProgramBuilderOption{shader.WithLabel(label)}
	if vertexPath != "" {
		src, err := os.ReadFile(vertexPath)
		if err != nil {
			return err
		}
		opts = append(opts, shader.WithVertexTemplate(string(src)))
	}
	if fragmentPath != "" {
		src, err := os.ReadFile(fragmentPath)
		if err != nil {
			return err
		}
		opts = append(opts, shader.WithFragmentTemplate(string(src)))
	}

	compiler := renderer.NewSPIRVCompiler()
	vp, err := shader.NewVariantProgram(compiler, opts...)
	if err != nil {
		return err
	}
	defer vp.Teardown()

	return writeModules(outDir, label, compiler.Programs())
}

// writeModules writes both stages of every program. An empty dir writes nothing.
func writeModules(dir, label string, programs []renderer.SPIRVProgram) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for mask, p := range programs {
		base := filepath.Join(dir, fmt.Sprintf("%s_%d", label, mask))
		if err := os.WriteFile(base+".vert.spv", p.VertexSPIRV(), 0o644); err != nil {
			return err
		}
		if err := os.WriteFile(base+".frag.spv", p.FragmentSPIRV(), 0o644); err != nil {
			return err
		}
	}
	log.Printf("[Shader] wrote %d modules to %s", 2*len(programs), dir)
	return nil
}
