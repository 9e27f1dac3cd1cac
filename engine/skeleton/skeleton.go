// package skeleton contains the per-instance runtime bone state that the mixer blends into and the
// skinning kernels read from.
package skeleton

import (
	"github.com/Carmen-Shannon/oxy-rig/engine/model"
)

// Skeleton is the runtime state of a CoreSkeleton for one model instance.
// It is not safe for concurrent use; callers serialize updates per instance.
type Skeleton struct {
	core       *model.CoreSkeleton
	bones      []Bone
	transforms []model.BoneTransform
}

// NewSkeleton creates runtime state for every bone of core, posed at the bind pose.
//
// Parameters:
//   - core: the shared skeleton definition
//
// Returns:
//   - *Skeleton: the new runtime skeleton
func NewSkeleton(core *model.CoreSkeleton) *Skeleton {
	s := &Skeleton{
		core:       core,
		bones:      make([]Bone, core.BoneCount()),
		transforms: make([]model.BoneTransform, core.BoneCount()),
	}
	for i, cb := range core.CoreBones() {
		s.bones[i] = newBone(cb)
	}
	s.CalculateState()
	return s
}

// CoreSkeleton returns the shared skeleton definition.
func (s *Skeleton) CoreSkeleton() *model.CoreSkeleton {
	return s.core
}

// BoneCount returns the number of bones.
func (s *Skeleton) BoneCount() int {
	return len(s.bones)
}

// Bone returns the bone at id. The id is not range checked.
func (s *Skeleton) Bone(id int) *Bone {
	return &s.bones[id]
}

// Bones returns every bone in topological order.
func (s *Skeleton) Bones() []Bone {
	return s.bones
}

// ClearState resets every bone's blend bookkeeping.
func (s *Skeleton) ClearState() {
	for i := range s.bones {
		s.bones[i].ClearState()
	}
}

// LockState commits every bone's running blend.
func (s *Skeleton) LockState() {
	for i := range s.bones {
		s.bones[i].LockState()
	}
}

// CalculateState computes absolute poses and skinning transforms in hierarchy order.
func (s *Skeleton) CalculateState() {
	for i := range s.bones {
		b := &s.bones[i]
		var parent *Bone
		if b.core.HasParent() {
			parent = &s.bones[b.core.ParentID]
		}
		b.CalculateState(parent)
		s.transforms[i] = b.boneTransform
	}
}

// BoneTransforms returns the skinning transforms from the last CalculateState.
// The slice is owned by the skeleton and reused every frame.
func (s *Skeleton) BoneTransforms() []model.BoneTransform {
	return s.transforms
}
