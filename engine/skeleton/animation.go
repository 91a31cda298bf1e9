package skeleton

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/chewxy/math32"
)

var (
	// ErrBoneOrder is returned when a bone's parent does not precede it.
	ErrBoneOrder = errors.New("parent bone must precede its children")

	// ErrStaleHandle is returned when a bone's final transform handle no longer resolves.
	ErrStaleHandle = errors.New("bone final transform handle is stale")
)

// Keyframe is one sampled local transform at a point in clip time.
type Keyframe struct {
	// Time is the keyframe time in ticks.
	Time float32

	Translation [3]float32

	// Rotation is a unit quaternion (x, y, z, w).
	Rotation [4]float32

	Scale [3]float32
}

// Channel animates one bone. Keys must be sorted by Time.
type Channel struct {
	BoneIndex int
	Keys      []Keyframe
}

// Clip is a named set of channels.
type Clip struct {
	Name string

	// Duration is the clip length in ticks.
	Duration float32

	// TicksPerSecond converts seconds into ticks. Zero means one tick per second.
	TicksPerSecond float32

	Channels []Channel
}

// AxisAngle builds a unit quaternion rotating angle radians around axis.
//
// Parameters:
//   - axis: the rotation axis, need not be normalized
//   - angle: the angle in radians
//
// Returns:
//   - [4]float32: the quaternion (x, y, z, w)
func AxisAngle(axis [3]float32, angle float32) [4]float32 {
	l := math32.Sqrt(axis[0]*axis[0] + axis[1]*axis[1] + axis[2]*axis[2])
	if l == 0 {
		return [4]float32{0, 0, 0, 1}
	}
	s := math32.Sin(angle/2) / l
	return [4]float32{axis[0] * s, axis[1] * s, axis[2] * s, math32.Cos(angle / 2)}
}

// Sample interpolates the channel at time t in ticks. Times outside the keys clamp to the
// first or last key.
//
// Parameters:
//   - t: the time in ticks
//
// Returns:
//   - Transform: the interpolated local transform
//   - bool: false when the channel has no keys
func (c Channel) Sample(t float32) (Transform, bool) {
	n := len(c.Keys)
	if n == 0 {
		return Transform{}, false
	}
	if t <= c.Keys[0].Time {
		return c.Keys[0].transform(), true
	}
	if t >= c.Keys[n-1].Time {
		return c.Keys[n-1].transform(), true
	}

	i := 1
	for c.Keys[i].Time < t {
		i++
	}
	a, b := c.Keys[i-1], c.Keys[i]
	f := (t - a.Time) / (b.Time - a.Time)
	return Transform{
		Translation: lerp3(a.Translation, b.Translation, f),
		Rotation:    slerp(a.Rotation, b.Rotation, f),
		Scale:       lerp3(a.Scale, b.Scale, f),
	}, true
}

func (k Keyframe) transform() Transform {
	return Transform{Translation: k.Translation, Rotation: k.Rotation, Scale: k.Scale}
}

func lerp3(a, b [3]float32, f float32) [3]float32 {
	return [3]float32{
		a[0] + (b[0]-a[0])*f,
		a[1] + (b[1]-a[1])*f,
		a[2] + (b[2]-a[2])*f,
	}
}

// slerp interpolates unit quaternions along the shorter arc.
func slerp(a, b [4]float32, f float32) [4]float32 {
	dot := a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
	if dot < 0 {
		b = [4]float32{-b[0], -b[1], -b[2], -b[3]}
		dot = -dot
	}

	var wa, wb float32
	if dot > 0.9995 {
		wa, wb = 1-f, f
	} else {
		theta := math32.Acos(dot)
		sin := math32.Sin(theta)
		wa = math32.Sin((1-f)*theta) / sin
		wb = math32.Sin(f*theta) / sin
	}

	out := [4]float32{
		wa*a[0] + wb*b[0],
		wa*a[1] + wb*b[1],
		wa*a[2] + wb*b[2],
		wa*a[3] + wb*b[3],
	}
	l := math32.Sqrt(out[0]*out[0] + out[1]*out[1] + out[2]*out[2] + out[3]*out[3])
	for i := range out {
		out[i] /= l
	}
	return out
}

// ComputePose resolves the hierarchy and writes every bone's skinning matrix
// (global * inverse bind) through its final transform handle. Parents must precede
// children in bones.
//
// Parameters:
//   - bones: the bones in hierarchy order
//
// Returns:
//   - error: ErrBoneOrder, or ErrStaleHandle joined per failing bone
func ComputePose(bones []*Bone) error {
	globals := make([]common.Mat4, len(bones))
	var errs []error
	for i, b := range bones {
		local := b.LocalTransform.Matrix()
		switch p := int(b.ParentIndex); {
		case p < 0:
			globals[i] = local
		case p >= i:
			return fmt.Errorf("%w: bone %q (%d) has parent %d", ErrBoneOrder, b.Name, i, p)
		default:
			globals[i] = common.Mul4(globals[p], local)
		}
		if !b.WriteFinalTransform(common.Mul4(globals[i], b.InverseBindMatrix)) {
			errs = append(errs, fmt.Errorf("%w: bone %q", ErrStaleHandle, b.Name))
		}
	}
	return errors.Join(errs...)
}

// animator is the implementation of the Animator interface.
type animator struct {
	bones []*Bone
	clip  *Clip
	time  float32
	speed float32
	loop  bool
	done  bool
}

// Animator plays one clip on a bone list on the CPU.
type Animator interface {
	// Play starts clip from time zero at unit speed.
	//
	// Parameters:
	//   - clip: the clip, or nil to stop
	//   - loop: whether playback wraps at the clip end
	Play(clip *Clip, loop bool)

	// SetSpeed sets the playback rate. Negative rates play backwards.
	//
	// Parameters:
	//   - speed: the rate multiplier
	SetSpeed(speed float32)

	// SetTime jumps to a clip time in ticks.
	//
	// Parameters:
	//   - t: the time in ticks
	SetTime(t float32)

	// Time retrieves the playback position in ticks.
	//
	// Returns:
	//   - float32: the time
	Time() float32

	// Playing reports whether a clip is active and, for one-shot clips, not yet finished.
	//
	// Returns:
	//   - bool: true while playing
	Playing() bool

	// Advance moves playback forward by dt seconds, samples every channel into the bones'
	// local transforms and recomputes the pose.
	//
	// Parameters:
	//   - dt: elapsed seconds
	//
	// Returns:
	//   - error: the ComputePose error
	Advance(dt float32) error
}

var _ Animator = &animator{}

// NewAnimator creates an animator for bones, which must be in hierarchy order.
//
// Parameters:
//   - bones: the bones to animate
//
// Returns:
//   - Animator: the idle animator
func NewAnimator(bones []*Bone) Animator {
	return &animator{bones: bones, speed: 1}
}

func (a *animator) Play(clip *Clip, loop bool) {
	a.clip = clip
	a.time = 0
	a.speed = 1
	a.loop = loop
	a.done = false
}

func (a *animator) SetSpeed(speed float32) {
	a.speed = speed
}

func (a *animator) SetTime(t float32) {
	a.time = t
	a.done = false
}

func (a *animator) Time() float32 {
	return a.time
}

func (a *animator) Playing() bool {
	return a.clip != nil && !a.done
}

func (a *animator) Advance(dt float32) error {
	if a.Playing() {
		tps := a.clip.TicksPerSecond
		if tps == 0 {
			tps = 1
		}
		a.time += dt * tps * a.speed

		if d := a.clip.Duration; d > 0 {
			switch {
			case a.loop:
				a.time = math32.Mod(a.time, d)
				if a.time < 0 {
					a.time += d
				}
			case a.time >= d:
				a.time, a.done = d, true
			case a.time <= 0 && a.speed < 0:
				a.time, a.done = 0, true
			}
		}

		for _, ch := range a.clip.Channels {
			if ch.BoneIndex < 0 || ch.BoneIndex >= len(a.bones) {
				continue
			}
			if tr, ok := ch.Sample(a.time); ok {
				a.bones[ch.BoneIndex].LocalTransform = tr
			}
		}
	}
	return ComputePose(a.bones)
}
