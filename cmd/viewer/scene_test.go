package main

import (
	"testing"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-rig/cmd/viewer/config"
	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/model"
	"github.com/Carmen-Shannon/oxy-rig/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-rig/engine/renderer/texture"
	"github.com/Carmen-Shannon/oxy-rig/engine/skeleton"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSceneNormalizesRigs(t *testing.T) {
	pool := worker.NewDynamicWorkerPool(2, 4, 0)
	defer pool.Stop()

	cfg := config.Default().Scene
	cfg.Quads = 3
	quads, err := buildScene(cfg, texture.NewTexture(texture.Target2D), pool)
	require.NoError(t, err)
	require.Len(t, quads, 3)

	rig := quads[0].rig
	assert.Equal(t, 2, rig.BoneCount())
	assert.Equal(t, 6, rig.VertexCount())
	assert.Equal(t, [skeleton.BonesPerVertex]float32{1, 0, 0, 0}, rig.VertexWeights(0))
	assert.Equal(t, [skeleton.BonesPerVertex]float32{0.5, 0.5, 0, 0}, rig.VertexWeights(2))
	assert.Equal(t, [skeleton.BonesPerVertex]float32{1, 0, 0, 0}, rig.VertexWeights(5))
	assert.Equal(t, [skeleton.BonesPerVertex]int32{1, 0, 0, 0}, rig.VertexBoneIDs(5))

	for _, q := range quads {
		w, stride, ok := q.mesh.VertexBuffer().FloatVec(model.AttribBoneWeights)
		require.True(t, ok)
		assert.Equal(t, skeleton.BonesPerVertex, stride)
		assert.Len(t, w, 6*skeleton.BonesPerVertex)
	}
}

func TestBuildSceneMaterials(t *testing.T) {
	cfg := config.Default().Scene
	cfg.Quads = 2
	cfg.Specular = true
	quads, err := buildScene(cfg, texture.NewTexture(texture.Target2D), nil)
	require.NoError(t, err)

	assert.Equal(t, material.FeatureDiffuseTexture|material.FeatureSpecularTexture, quads[0].material.FeatureSet())
	assert.Equal(t, material.FeatureSpecularTexture, quads[1].material.FeatureSet())

	toggleFeature(quads, material.FeatureDiffuseTexture)
	assert.Equal(t, material.FeatureSpecularTexture, quads[0].material.FeatureSet())
	assert.Equal(t, material.FeatureSpecularTexture, quads[1].material.FeatureSet(), "untextured quads keep their bits")

	toggleFeature(quads, material.FeatureSpecularTexture)
	assert.Zero(t, quads[1].material.FeatureSet())
}

func TestQuadFollowsRootBone(t *testing.T) {
	cfg := config.Default().Scene
	cfg.Quads = 1
	quads, err := buildScene(cfg, nil, nil)
	require.NoError(t, err)

	q := quads[0]
	q.anim.SetTime(0)
	require.NoError(t, q.anim.Advance(0))
	assert.Equal(t, common.Translation(q.offset, 0, 0), q.modelMatrix())

	tip, ok := q.rig.Bones()[1].FinalTransform()
	require.True(t, ok)
	assert.InDelta(t, 0.5, tip[13], 1e-6)

	q.anim.SetTime(1)
	require.NoError(t, q.anim.Advance(0))
	assert.NotEqual(t, common.Translation(q.offset, 0, 0), q.modelMatrix(), "root turns at the first key")
}

func TestSwayClip(t *testing.T) {
	clip := swayClip(2)
	assert.Equal(t, float32(4), clip.Duration)
	require.Len(t, clip.Channels, 2)
	assert.Len(t, clip.Channels[0].Keys, 5)
}
