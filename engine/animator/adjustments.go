package animator

import (
	"github.com/go-gl/mathgl/mgl32"
)

// BoneTransformAdjustment overrides a bone's local pose ahead of every animation.
// It blends at full weight as a Replace contribution, so a ramp value of 1 hides all animation of
// the bone.
type BoneTransformAdjustment struct {
	// BoneID is the adjusted bone. It is not range checked.
	BoneID int

	// LocalOrientation is the rotation relative to the parent.
	LocalOrientation mgl32.Quat

	// LocalTranslation replaces the bone's bind translation when set.
	LocalTranslation *mgl32.Vec3

	// RampValue fades the adjustment in and out.
	RampValue float32
}

// BoneScaleAdjustment sets a bone's bone-space mesh scale for one update.
type BoneScaleAdjustment struct {
	// BoneID is the adjusted bone. It is not range checked.
	BoneID int

	// MeshScaleAbsolute is the per-axis scale applied in bone space.
	MeshScaleAbsolute mgl32.Vec3
}
