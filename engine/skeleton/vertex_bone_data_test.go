package skeleton

import (
	"bytes"
	"log"
	"os"
	"testing"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMesh(vertices int) model.Mesh {
	return model.NewMesh(model.WithName("test"), model.WithVertexCount(vertices))
}

func newBones(n int) []*Bone {
	bones := make([]*Bone, n)
	for i := range bones {
		bones[i] = NewBone("bone")
	}
	return bones
}

func TestNewVertexBoneDataPanicsWithoutMesh(t *testing.T) {
	assert.Panics(t, func() { NewVertexBoneData(nil) })
}

func TestBindSizesStorage(t *testing.T) {
	d := NewVertexBoneData(newTestMesh(3), WithBones(newBones(2)))

	assert.Equal(t, 2, d.BoneCount())
	assert.Equal(t, 3, d.VertexCount())
	assert.Equal(t, 2, d.BoneMatrices().Len())
	for v := 0; v < 3; v++ {
		assert.Equal(t, [BonesPerVertex]float32{}, d.VertexWeights(v))
		assert.Equal(t, [BonesPerVertex]int32{}, d.VertexBoneIDs(v))
	}
}

func TestBindEmptyKeepsVertexStorage(t *testing.T) {
	d := NewVertexBoneData(newTestMesh(2), WithBones(newBones(1)))
	d.SetVertexBoneWeight(1, 0, 0, 0.25)

	d.Bind(nil)

	assert.Equal(t, 0, d.BoneCount())
	assert.Equal(t, 0, d.BoneMatrices().Len())
	assert.Equal(t, 2, d.VertexCount())
	assert.Equal(t, float32(0.25), d.VertexWeights(1)[0])
}

func TestBindResetsAssignments(t *testing.T) {
	d := NewVertexBoneData(newTestMesh(1), WithBones(newBones(1)))
	d.SetVertexBoneWeight(0, 0, 0, 1)
	require.Equal(t, 1, d.FreeBoneSlot(0))

	d.Bind(newBones(3))

	assert.Equal(t, 0, d.FreeBoneSlot(0))
	assert.Equal(t, [BonesPerVertex]float32{}, d.VertexWeights(0))
}

func TestBindHandlesGoStale(t *testing.T) {
	bones := newBones(2)
	d := NewVertexBoneData(newTestMesh(1), WithBones(bones))

	m := common.Translation(1, 2, 3)
	require.True(t, bones[1].WriteFinalTransform(m))
	got, ok := d.BoneMatrices().Matrix(1)
	require.True(t, ok)
	assert.Equal(t, m, got)

	old := bones[1].FinalTransformHandle()
	d.Bind(newBones(2))

	assert.False(t, old.Valid())
	assert.False(t, bones[1].WriteFinalTransform(m))
	_, ok = bones[1].FinalTransform()
	assert.False(t, ok)

	got, _ = d.BoneMatrices().Matrix(1)
	assert.Equal(t, common.Identity4(), got)
}

func TestFreeBoneSlotLowestFree(t *testing.T) {
	d := NewVertexBoneData(newTestMesh(1), WithBones(newBones(4)))

	for want := 0; want < BonesPerVertex; want++ {
		slot := d.FreeBoneSlot(0)
		require.Equal(t, want, slot)
		d.SetVertexBoneWeight(0, slot, want, 0.1)
	}
	assert.Equal(t, NoSlot, d.FreeBoneSlot(0))
}

func TestFreeBoneSlotSkipsAssignedZeroWeight(t *testing.T) {
	d := NewVertexBoneData(newTestMesh(1), WithBones(newBones(1)))
	d.SetVertexBoneWeight(0, 0, 0, 0)

	assert.Equal(t, 1, d.FreeBoneSlot(0))
}

func TestFreeBoneSlotInvalidVertex(t *testing.T) {
	d := NewVertexBoneData(newTestMesh(2), WithBones(newBones(1)))
	version := d.Mesh().VertexBuffer().Version()

	assert.Equal(t, NoSlot, d.FreeBoneSlot(-1))
	assert.Equal(t, NoSlot, d.FreeBoneSlot(2))
	assert.Equal(t, NoSlot, d.FreeBoneSlot(100))

	assert.Equal(t, 0, d.FreeBoneSlot(0))
	assert.Equal(t, 0, d.FreeBoneSlot(1))
	assert.Equal(t, version, d.Mesh().VertexBuffer().Version())
}

func TestSetVertexBoneWeightPanicsWithoutWriting(t *testing.T) {
	d := NewVertexBoneData(newTestMesh(1), WithBones(newBones(1)))

	cases := []struct {
		name   string
		vertex int
		slot   int
		bone   int
	}{
		{"slot too high", 0, BonesPerVertex, 0},
		{"negative slot", 0, -1, 0},
		{"bone too high", 0, 0, MaxBones},
		{"negative bone", 0, 0, -1},
		{"vertex too high", 1, 0, 0},
		{"negative vertex", -1, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Panics(t, func() {
				d.SetVertexBoneWeight(tc.vertex, tc.slot, tc.bone, 0.5)
			})
			assert.Equal(t, [BonesPerVertex]float32{}, d.VertexWeights(0))
			assert.Equal(t, 0, d.FreeBoneSlot(0))
		})
	}
}

func TestSetVertexBoneWeightAcceptsBoundaryIDs(t *testing.T) {
	d := NewVertexBoneData(newTestMesh(1), WithBones(newBones(1)))

	d.SetVertexBoneWeight(0, BonesPerVertex-1, MaxBones-1, 0.5)

	assert.Equal(t, int32(MaxBones-1), d.VertexBoneIDs(0)[BonesPerVertex-1])
	assert.Equal(t, float32(0.5), d.VertexWeights(0)[BonesPerVertex-1])
}

func TestNormalizeWeights(t *testing.T) {
	d := NewVertexBoneData(newTestMesh(3), WithBones(newBones(3)))
	d.SetVertexBoneWeight(0, 0, 0, 2)
	d.SetVertexBoneWeight(0, 1, 1, 2)
	d.SetVertexBoneWeight(2, 0, 0, 1)
	d.SetVertexBoneWeight(2, 1, 1, 3)
	d.SetVertexBoneWeight(2, 2, 2, 4)

	d.NormalizeWeights()

	assert.Equal(t, [BonesPerVertex]float32{0.5, 0.5, 0, 0}, d.VertexWeights(0))
	assert.Equal(t, [BonesPerVertex]float32{}, d.VertexWeights(1))

	w := d.VertexWeights(2)
	assert.InDelta(t, 0.125, w[0], 1e-6)
	assert.InDelta(t, 0.375, w[1], 1e-6)
	assert.InDelta(t, 0.5, w[2], 1e-6)
	assert.InDelta(t, 1.0, w[0]+w[1]+w[2]+w[3], 1e-5)
}

func TestNormalizeWeightsSkipsTinySums(t *testing.T) {
	d := NewVertexBoneData(newTestMesh(1), WithBones(newBones(1)), WithTolerance(0.01))
	d.SetVertexBoneWeight(0, 0, 0, 0.005)

	d.NormalizeWeights()

	assert.Equal(t, float32(0.005), d.VertexWeights(0)[0])
}

func TestNormalizeAndUploadWritesChannels(t *testing.T) {
	d := NewVertexBoneData(newTestMesh(2), WithBones(newBones(2)))
	d.SetVertexBoneWeight(0, 0, 1, 3)
	d.SetVertexBoneWeight(0, 1, 0, 1)
	d.SetVertexBoneWeight(1, 0, 1, 5)

	require.NoError(t, d.NormalizeAndUpload())

	vb := d.Mesh().VertexBuffer()
	weights, stride, ok := vb.FloatVec(model.AttribBoneWeights)
	require.True(t, ok)
	assert.Equal(t, BonesPerVertex, stride)
	assert.Equal(t, []float32{0.75, 0.25, 0, 0, 1, 0, 0, 0}, weights)

	ids, stride, ok := vb.IntVec(model.AttribBoneIndices)
	require.True(t, ok)
	assert.Equal(t, BonesPerVertex, stride)
	assert.Equal(t, []int32{1, 0, 0, 0, 1, 0, 0, 0}, ids)
}

func TestNormalizeAndUploadNoBones(t *testing.T) {
	d := NewVertexBoneData(newTestMesh(2), WithBones(newBones(1)))
	d.SetVertexBoneWeight(0, 0, 0, 2)
	d.Bind(nil)
	version := d.Mesh().VertexBuffer().Version()

	require.NoError(t, d.NormalizeAndUpload())

	assert.Equal(t, version, d.Mesh().VertexBuffer().Version())
	assert.Equal(t, float32(2), d.VertexWeights(0)[0])
	_, _, ok := d.Mesh().VertexBuffer().FloatVec(model.AttribBoneWeights)
	assert.False(t, ok)
}

func TestNormalizeAndUploadNoVertices(t *testing.T) {
	d := NewVertexBoneData(newTestMesh(0), WithBones(newBones(1)))

	require.NoError(t, d.NormalizeAndUpload())

	assert.Empty(t, d.Mesh().VertexBuffer().ChannelNames())
}

func TestNormalizeAllInline(t *testing.T) {
	a := NewVertexBoneData(newTestMesh(1), WithBones(newBones(1)))
	b := NewVertexBoneData(newTestMesh(1), WithBones(newBones(1)))
	a.SetVertexBoneWeight(0, 0, 0, 4)
	b.SetVertexBoneWeight(0, 0, 0, 8)

	require.NoError(t, NormalizeAll(nil, a, b))

	assert.Equal(t, float32(1), a.VertexWeights(0)[0])
	assert.Equal(t, float32(1), b.VertexWeights(0)[0])
}

func TestNormalizeAllOnPool(t *testing.T) {
	pool := worker.NewDynamicWorkerPool(2, 8, 0)
	defer pool.Stop()

	stores := make([]VertexBoneData, 6)
	for i := range stores {
		stores[i] = NewVertexBoneData(newTestMesh(2), WithBones(newBones(2)))
		stores[i].SetVertexBoneWeight(0, 0, 0, 1)
		stores[i].SetVertexBoneWeight(0, 1, 1, 1)
	}

	require.NoError(t, NormalizeAll(pool, stores...))

	for _, s := range stores {
		assert.Equal(t, [BonesPerVertex]float32{0.5, 0.5, 0, 0}, s.VertexWeights(0))
		_, _, ok := s.Mesh().VertexBuffer().FloatVec(model.AttribBoneWeights)
		assert.True(t, ok)
	}
}

func TestBindCopiesBones(t *testing.T) {
	bones := newBones(2)
	d := NewVertexBoneData(newTestMesh(1), WithBones(bones))

	bones[0] = NewBone("replaced")
	_ = append(bones[:1], NewBone("appended"))

	require.Len(t, d.Bones(), 2)
	assert.Equal(t, "bone", d.Bones()[0].Name)
	assert.NotSame(t, bones[0], d.Bones()[0])
}

func TestBindNilBonePanicsBeforeChanges(t *testing.T) {
	d := NewVertexBoneData(newTestMesh(2), WithBones(newBones(1)))
	d.SetVertexBoneWeight(0, 0, 0, 1)
	table := d.BoneMatrices()
	h := d.Bones()[0].FinalTransformHandle()

	assert.PanicsWithValue(t, "skeleton: nil bone 1", func() {
		d.Bind([]*Bone{NewBone("a"), nil})
	})

	assert.Equal(t, 1, d.BoneCount())
	assert.Equal(t, 1, table.Len())
	assert.Equal(t, float32(1), d.VertexWeights(0)[0])
	_, ok := h.Get()
	assert.True(t, ok)
}

// growingMesh reports a vertex count that no longer matches the bound storage.
type growingMesh struct {
	model.Mesh
	count int
}

func (m *growingMesh) VertexCount() int { return m.count }

func TestFreeBoneSlotLogsTableLength(t *testing.T) {
	mesh := &growingMesh{Mesh: newTestMesh(2), count: 2}
	d := NewVertexBoneData(mesh, WithBones(newBones(1)))
	mesh.count = 5

	var out bytes.Buffer
	log.SetOutput(&out)
	defer log.SetOutput(os.Stderr)

	assert.Equal(t, NoSlot, d.FreeBoneSlot(3))
	assert.Contains(t, out.String(), "table holds 2 vertices (mesh has 5)")
}
