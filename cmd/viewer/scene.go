package main

import (
	"fmt"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-rig/cmd/viewer/config"
	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/model"
	"github.com/Carmen-Shannon/oxy-rig/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-rig/engine/renderer/texture"
	"github.com/Carmen-Shannon/oxy-rig/engine/skeleton"
)

// quadSpacing is the distance between quad centers along X.
const quadSpacing = 1.5

// quad is one rigged, two-bone strip of the scene.
type quad struct {
	mesh     model.Mesh
	rig      skeleton.VertexBoneData
	anim     skeleton.Animator
	material material.Material
	offset   float32
}

// swayClip turns the root around Y and bends the tip around Z over four ticks.
func swayClip(ticksPerSecond float32) *skeleton.Clip {
	angles := []float32{0, 0.6, 0, -0.6, 0}
	root := skeleton.Channel{BoneIndex: 0}
	tip := skeleton.Channel{BoneIndex: 1}
	for i, a := range angles {
		root.Keys = append(root.Keys, skeleton.Keyframe{
			Time:     float32(i),
			Rotation: skeleton.AxisAngle([3]float32{0, 1, 0}, a),
			Scale:    [3]float32{1, 1, 1},
		})
		tip.Keys = append(tip.Keys, skeleton.Keyframe{
			Time:        float32(i),
			Translation: [3]float32{0, 0.5, 0},
			Rotation:    skeleton.AxisAngle([3]float32{0, 0, 1}, a/2),
			Scale:       [3]float32{1, 1, 1},
		})
	}
	return &skeleton.Clip{
		Name:           "sway",
		Duration:       float32(len(angles) - 1),
		TicksPerSecond: ticksPerSecond,
		Channels:       []skeleton.Channel{root, tip},
	}
}

// newQuadMesh builds a 1x1 strip of three vertex rows so the middle row can blend two bones.
//
//	4 - 5   row 2: tip bone
//	2 - 3   row 1: both bones
//	0 - 1   row 0: root bone
func newQuadMesh(name string) model.Mesh {
	return model.NewMesh(
		model.WithName(name),
		model.WithPositions([]float32{
			-0.5, -0.5, 0, 0.5, -0.5, 0,
			-0.5, 0, 0, 0.5, 0, 0,
			-0.5, 0.5, 0, 0.5, 0.5, 0,
		}),
		model.WithTexCoords([]float32{
			0, 1, 1, 1,
			0, 0.5, 1, 0.5,
			0, 0, 1, 0,
		}),
		model.WithIndices([]uint32{0, 1, 3, 0, 3, 2, 2, 3, 5, 2, 5, 4}),
	)
}

// rigQuad binds a root and a tip bone to the strip. Weights are written raw, the way an
// importer hands them over, and normalized later in one batch.
func rigQuad(mesh model.Mesh) skeleton.VertexBoneData {
	root := skeleton.NewBone("root")
	tip := skeleton.NewBone("tip")
	tip.ParentIndex = 0
	tip.LocalTransform.Translation = [3]float32{0, 0.5, 0}
	rig := skeleton.NewVertexBoneData(mesh, skeleton.WithBones([]*skeleton.Bone{root, tip}))

	assign := func(vertex, bone int, weight float32) {
		slot := rig.FreeBoneSlot(vertex)
		if slot == skeleton.NoSlot {
			panic(fmt.Sprintf("viewer: vertex %d has no free bone slot", vertex))
		}
		rig.SetVertexBoneWeight(vertex, slot, bone, weight)
	}
	for _, v := range []int{0, 1} {
		assign(v, 0, 1)
	}
	for _, v := range []int{2, 3} {
		assign(v, 0, 1)
		assign(v, 1, 1)
	}
	for _, v := range []int{4, 5} {
		assign(v, 1, 3)
	}
	return rig
}

// buildScene creates the quads and normalizes every rig on the pool. Even quads sample tex
// when the scene is textured; the rest use flat colors.
func buildScene(cfg config.Scene, tex texture.Texture, pool worker.DynamicWorkerPool) ([]*quad, error) {
	quads := make([]*quad, cfg.Quads)
	rigs := make([]skeleton.VertexBoneData, cfg.Quads)
	first := -float32(cfg.Quads-1) * quadSpacing / 2
	clip := swayClip(cfg.SwaySpeed)

	for i := range quads {
		mesh := newQuadMesh(fmt.Sprintf("quad%d", i))
		opts := []material.MaterialBuilderOption{
			material.WithName(fmt.Sprintf("quad%d", i)),
			material.WithColor(cfg.Color),
			material.WithOpacity(cfg.Opacity),
			material.WithDiffuseColor(cfg.DiffuseColor),
			material.WithAmbientColor(cfg.AmbientColor),
		}
		if cfg.Textured && i%2 == 0 && tex != nil {
			opts = append(opts, material.WithTexture(material.MainTexture, tex))
		}
		mat := material.NewMaterial(opts...)
		if cfg.Specular {
			mat.SetFeatureSet(mat.FeatureSet() | material.FeatureSpecularTexture)
		}

		rig := rigQuad(mesh)
		anim := skeleton.NewAnimator(rig.Bones())
		anim.Play(clip, true)
		anim.SetTime(float32(i) * 0.7)
		if err := anim.Advance(0); err != nil {
			return nil, err
		}

		q := &quad{
			mesh:     mesh,
			rig:      rig,
			anim:     anim,
			material: mat,
			offset:   first + float32(i)*quadSpacing,
		}
		quads[i] = q
		rigs[i] = q.rig
	}

	if err := skeleton.NormalizeAll(pool, rigs...); err != nil {
		return nil, err
	}
	return quads, nil
}

// modelMatrix places the strip at its offset and applies the root bone's pose. The unlit
// templates are not skinned, so the strip follows its root rigidly.
func (q *quad) modelMatrix() common.Mat4 {
	place := common.Translation(q.offset, 0, 0)
	m, ok := q.rig.Bones()[0].FinalTransform()
	if !ok {
		return place
	}
	return common.Mul4(place, m)
}

// toggleFeature flips bit on every quad. The diffuse texture bit only flips on quads that
// carry a main texture.
func toggleFeature(quads []*quad, bit material.FeatureSet) {
	for _, q := range quads {
		if bit == material.FeatureDiffuseTexture && q.material.Texture(material.MainTexture) == nil {
			continue
		}
		q.material.SetFeatureSet(q.material.FeatureSet() ^ bit)
	}
}
