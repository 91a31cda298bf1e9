package skeleton

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boundChain(t *testing.T) ([]*Bone, VertexBoneData) {
	t.Helper()
	root := NewBone("root")
	child := NewBone("child")
	child.ParentIndex = 0
	child.LocalTransform.Translation = [3]float32{0, 1, 0}
	bones := []*Bone{root, child}
	return bones, NewVertexBoneData(newTestMesh(1), WithBones(bones))
}

func translationClip() *Clip {
	return &Clip{
		Name:           "lift",
		Duration:       10,
		TicksPerSecond: 10,
		Channels: []Channel{{
			BoneIndex: 0,
			Keys: []Keyframe{
				{Time: 0, Rotation: [4]float32{0, 0, 0, 1}, Scale: [3]float32{1, 1, 1}},
				{Time: 10, Translation: [3]float32{0, 2, 0}, Rotation: [4]float32{0, 0, 0, 1}, Scale: [3]float32{1, 1, 1}},
			},
		}},
	}
}

func TestAxisAngle(t *testing.T) {
	q := AxisAngle([3]float32{0, 2, 0}, math32.Pi)
	assert.InDelta(t, 1, q[1], 1e-6)
	assert.InDelta(t, 0, q[3], 1e-6)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, AxisAngle([3]float32{}, 1))
}

func TestChannelSample(t *testing.T) {
	ch := translationClip().Channels[0]

	mid, ok := ch.Sample(5)
	require.True(t, ok)
	assert.InDelta(t, 1, mid.Translation[1], 1e-6)
	assert.Equal(t, [3]float32{1, 1, 1}, mid.Scale)

	before, _ := ch.Sample(-3)
	assert.Equal(t, float32(0), before.Translation[1])
	after, _ := ch.Sample(30)
	assert.Equal(t, float32(2), after.Translation[1])

	_, ok = Channel{}.Sample(0)
	assert.False(t, ok)
}

func TestSlerpHalfway(t *testing.T) {
	a := AxisAngle([3]float32{0, 1, 0}, 0)
	b := AxisAngle([3]float32{0, 1, 0}, math32.Pi/2)
	q := slerp(a, b, 0.5)
	want := AxisAngle([3]float32{0, 1, 0}, math32.Pi/4)
	for i := range q {
		assert.InDelta(t, want[i], q[i], 1e-5)
	}
}

func TestComputePoseHierarchy(t *testing.T) {
	bones, _ := boundChain(t)
	bones[0].LocalTransform.Translation = [3]float32{3, 0, 0}
	bones[1].InverseBindMatrix = common.Translation(0, -1, 0)

	require.NoError(t, ComputePose(bones))

	root, ok := bones[0].FinalTransform()
	require.True(t, ok)
	assert.Equal(t, float32(3), root[12])

	child, ok := bones[1].FinalTransform()
	require.True(t, ok)
	assert.Equal(t, float32(3), child[12])
	assert.Equal(t, float32(0), child[13], "inverse bind cancels the rest offset")
}

func TestComputePoseErrors(t *testing.T) {
	bones, rig := boundChain(t)
	bones[0].ParentIndex = 1
	assert.ErrorIs(t, ComputePose(bones), ErrBoneOrder)

	bones[0].ParentIndex = -1
	rig.Bind(nil)
	assert.ErrorIs(t, ComputePose(bones), ErrStaleHandle)
}

func TestAnimatorAdvance(t *testing.T) {
	bones, _ := boundChain(t)
	a := NewAnimator(bones)
	assert.False(t, a.Playing())
	require.NoError(t, a.Advance(1), "idle animators still write the pose")

	a.Play(translationClip(), false)
	require.NoError(t, a.Advance(0.5))
	assert.InDelta(t, 5, a.Time(), 1e-5)
	m, _ := bones[1].FinalTransform()
	assert.InDelta(t, 2, m[13], 1e-5, "child inherits the root lift")

	require.NoError(t, a.Advance(1))
	assert.Equal(t, float32(10), a.Time())
	assert.False(t, a.Playing())
}

func TestAnimatorLoopsAndReverses(t *testing.T) {
	bones, _ := boundChain(t)
	a := NewAnimator(bones)
	a.Play(translationClip(), true)

	require.NoError(t, a.Advance(1.25))
	assert.InDelta(t, 2.5, a.Time(), 1e-4)
	assert.True(t, a.Playing())

	a.SetSpeed(-1)
	require.NoError(t, a.Advance(0.5))
	assert.InDelta(t, 7.5, a.Time(), 1e-4)

	a.Play(translationClip(), false)
	a.SetTime(2)
	a.SetSpeed(-1)
	require.NoError(t, a.Advance(1))
	assert.Equal(t, float32(0), a.Time())
	assert.False(t, a.Playing())
}
