// Command viewer draws a row of rigged quads with every shader variant the unlit program
// provides. Keys: T toggles the diffuse texture, M toggles the specular feature, Space
// pauses the animation, R re-normalizes the rigs.
package main

import (
	"flag"
	"log"
	"math"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-rig/cmd/viewer/config"
	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/profiler"
	"github.com/Carmen-Shannon/oxy-rig/engine/renderer"
	"github.com/Carmen-Shannon/oxy-rig/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-rig/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-rig/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-rig/engine/skeleton"
	"github.com/Carmen-Shannon/oxy-rig/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

func init() {
	// GLFW and the WebGPU surface must live on the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[Viewer] %v", err)
	}
	if err := run(cfg); err != nil {
		log.Fatalf("[Viewer] %v", err)
	}
}

func run(cfg config.Config) error {
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		return err
	}
	defer win.Close()

	device, err := renderer.NewWGPUDevice(win.SurfaceDescriptor(),
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.Renderer.MSAA)),
		renderer.WithPresentMode(renderer.ParsePresentMode(cfg.Renderer.PresentMode)),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.SoftwareRenderer),
		renderer.WithClearColor(cfg.Renderer.ClearColor),
		renderer.WithRenderState(pipeline.NewRenderState(
			pipeline.WithCullMode(wgpu.CullModeNone),
			pipeline.WithBlendEnabled(cfg.Scene.Opacity < 1),
		)),
	)
	if err != nil {
		return err
	}
	defer device.Release()

	if err := device.ConfigureSurface(win.Width(), win.Height()); err != nil {
		return err
	}

	program, err := shader.NewVariantProgram(device, shader.WithLabel("unlit"))
	if err != nil {
		return err
	}
	defer program.Teardown()

	tex, err := device.CreateTexture(
		common.Checkerboard(cfg.Scene.TextureSize, cfg.Scene.CheckerCell, [4]uint8{235, 235, 235, 255}, [4]uint8{40, 90, 160, 255}),
		common.SamplerStagingData{MagFilter: wgpu.FilterModeNearest},
	)
	if err != nil {
		return err
	}
	defer tex.Release()

	pool := worker.NewDynamicWorkerPool(runtime.NumCPU(), cfg.Scene.Quads, 0)
	defer pool.Stop()

	quads, err := buildScene(cfg.Scene, tex, pool)
	if err != nil {
		return err
	}
	log.Printf("[Viewer] %d quads, %d variants", len(quads), shader.VariantCount)

	prof := profiler.NewProfiler()
	last := time.Now()
	paused := false

	win.SetResizeCallback(func(width, height int) {
		if width == 0 || height == 0 {
			return
		}
		if err := device.ConfigureSurface(width, height); err != nil {
			log.Printf("[Viewer] resize: %v", err)
		}
	})

	win.SetKeyDownCallback(func(key uint32) {
		switch key {
		case common.KeyT:
			toggleFeature(quads, material.FeatureDiffuseTexture)
		case common.KeyM:
			toggleFeature(quads, material.FeatureSpecularTexture)
		case common.KeySpace:
			paused = !paused
		case common.KeyR:
			rigs := make([]skeleton.VertexBoneData, len(quads))
			for i, q := range quads {
				rigs[i] = q.rig
			}
			if err := skeleton.NormalizeAll(pool, rigs...); err != nil {
				log.Printf("[Viewer] normalize: %v", err)
			}
		}
	})

	win.SetUpdateCallback(func() {
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now
		if paused {
			dt = 0
		}

		aspect := float32(win.Width()) / float32(max(win.Height(), 1))
		viewProj := common.Mul4(
			common.Perspective(math.Pi/4, aspect, 0.1, 100),
			common.LookAt([3]float32{0, 0.5, 5}, [3]float32{0, 0, 0}, [3]float32{0, 1, 0}),
		)

		if err := device.BeginFrame(); err != nil {
			log.Printf("[Viewer] begin frame: %v", err)
			return
		}
		for _, q := range quads {
			if err := q.anim.Advance(dt); err != nil {
				log.Printf("[Viewer] %s: %v", q.mesh.Name(), err)
			}
			mvp := common.Mul4(viewProj, q.modelMatrix())
			if err := program.Render(mvp, shader.NewRenderData(q.mesh), q.material); err != nil {
				log.Printf("[Viewer] %s: %v", q.mesh.Name(), err)
			}
		}
		if err := device.EndFrame(); err != nil {
			log.Printf("[Viewer] end frame: %v", err)
			return
		}
		device.Present()
		prof.Tick(device.Stats().Draws)
	})

	win.ProcessMessages()
	return nil
}
