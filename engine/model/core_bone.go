package model

import (
	"github.com/go-gl/mathgl/mgl32"
)

// CoreBone is the immutable definition of one bone in a CoreSkeleton.
type CoreBone struct {
	// Name is the bone's identifier, unique within its skeleton.
	Name string

	// ParentID is the index of the parent bone, or NoParent for a root.
	// Before NewCoreSkeleton runs it refers to the candidate's original index.
	ParentID int

	// Translation is the bind-pose translation relative to the parent.
	Translation mgl32.Vec3

	// Rotation is the bind-pose rotation relative to the parent.
	Rotation mgl32.Quat

	// TranslationBoneSpace is the translation of the inverse bind transform.
	TranslationBoneSpace mgl32.Vec3

	// RotationBoneSpace is the rotation of the inverse bind transform.
	RotationBoneSpace mgl32.Quat
}

// NewCoreBone creates a bone with identity bind and bone-space transforms.
//
// Parameters:
//   - name: the bone name
//   - parentID: the parent index, or NoParent
//
// Returns:
//   - *CoreBone: the new bone
func NewCoreBone(name string, parentID int) *CoreBone {
	return &CoreBone{
		Name:              name,
		ParentID:          parentID,
		Rotation:          mgl32.QuatIdent(),
		RotationBoneSpace: mgl32.QuatIdent(),
	}
}

// HasParent reports whether the bone is attached to a parent.
func (b *CoreBone) HasParent() bool {
	return b.ParentID != NoParent
}

// LocalTransform returns the bind-pose transform relative to the parent.
func (b *CoreBone) LocalTransform() Transform {
	return Transform{Rotation: b.Rotation, Translation: b.Translation}
}

// BoneSpaceTransform returns the inverse bind transform.
func (b *CoreBone) BoneSpaceTransform() Transform {
	return Transform{Rotation: b.RotationBoneSpace, Translation: b.TranslationBoneSpace}
}

// Scale multiplies both translations by factor.
func (b *CoreBone) Scale(factor float32) {
	b.Translation = b.Translation.Mul(factor)
	b.TranslationBoneSpace = b.TranslationBoneSpace.Mul(factor)
}
