package model

import (
	"sort"
)

// CoreTrack is the keyframe curve of one bone within a CoreAnimation.
type CoreTrack struct {
	// CoreBoneID is the id of the animated bone in the owning skeleton.
	CoreBoneID int

	keyframes []CoreKeyframe
}

// NewCoreTrack creates a track for a bone. Keyframes are sorted by time.
//
// Parameters:
//   - coreBoneID: the animated bone's id
//   - keyframes: the keyframes in any order
//
// Returns:
//   - *CoreTrack: the new track
func NewCoreTrack(coreBoneID int, keyframes ...CoreKeyframe) *CoreTrack {
	t := &CoreTrack{CoreBoneID: coreBoneID}
	for _, k := range keyframes {
		t.AddKeyframe(k)
	}
	return t
}

// AddKeyframe inserts a keyframe, keeping keyframes ordered by time.
// A keyframe with the same time as an existing one is placed after it.
func (t *CoreTrack) AddKeyframe(k CoreKeyframe) {
	i := sort.Search(len(t.keyframes), func(i int) bool {
		return t.keyframes[i].Time > k.Time
	})
	t.keyframes = append(t.keyframes, CoreKeyframe{})
	copy(t.keyframes[i+1:], t.keyframes[i:])
	t.keyframes[i] = k
}

// Keyframes returns the time-ordered keyframes.
func (t *CoreTrack) Keyframes() []CoreKeyframe {
	return t.keyframes
}

// State samples the track at the given time.
// Times before the first keyframe or after the last clamp to that keyframe; otherwise the two
// bracketing keyframes are blended. A track without keyframes yields the identity transform.
//
// Parameters:
//   - time: the sample time in seconds
//
// Returns:
//   - Transform: the sampled bone pose relative to its parent
func (t *CoreTrack) State(time float32) Transform {
	n := len(t.keyframes)
	if n == 0 {
		return IdentityTransform()
	}
	after := sort.Search(n, func(i int) bool {
		return t.keyframes[i].Time > time
	})
	if after == 0 {
		return t.keyframes[0].Transform()
	}
	if after == n {
		return t.keyframes[n-1].Transform()
	}

	before := t.keyframes[after-1]
	next := t.keyframes[after]
	span := next.Time - before.Time
	if span <= 0 {
		return next.Transform()
	}
	return BlendTransform((time-before.Time)/span, before.Transform(), next.Transform())
}

// Fixup remaps the track's bone id through the skeleton's translation table.
// Ids outside the table are left unchanged so the mixer can skip them.
//
// Parameters:
//   - skeleton: the skeleton whose translation table is applied
func (t *CoreTrack) Fixup(skeleton *CoreSkeleton) {
	table := skeleton.BoneIDTranslation()
	if t.CoreBoneID >= 0 && t.CoreBoneID < len(table) {
		t.CoreBoneID = table[t.CoreBoneID]
	}
}

// Scale multiplies every keyframe translation by factor.
func (t *CoreTrack) Scale(factor float32) {
	for i := range t.keyframes {
		t.keyframes[i].Translation = t.keyframes[i].Translation.Mul(factor)
	}
}
