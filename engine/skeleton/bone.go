package skeleton

import (
	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// Bone is the per-instance animated state of one CoreBone.
//
// A frame runs through three phases. BlendState folds weighted poses into a running blend,
// LockState commits that blend as the bone's relative pose, and CalculateState composes the
// relative pose with the parent's absolute pose and derives the skinning transform.
type Bone struct {
	core *model.CoreBone

	relative      model.Transform
	absolute      model.Transform
	blend         model.Transform
	boneTransform model.BoneTransform
	meshScale     mgl32.Vec3

	accumulatedWeight         float32
	accumulatedWeightAbsolute float32
	replacementAttenuation    float32
}

func newBone(core *model.CoreBone) Bone {
	b := Bone{core: core}
	b.ClearState()
	b.relative = core.LocalTransform()
	b.absolute = model.IdentityTransform()
	b.blend = model.IdentityTransform()
	b.boneTransform = model.IdentityBoneTransform()
	return b
}

// CoreBone returns the bone's immutable definition.
func (b *Bone) CoreBone() *model.CoreBone {
	return b.core
}

// OriginalTranslation returns the bind-pose translation relative to the parent.
func (b *Bone) OriginalTranslation() mgl32.Vec3 {
	return b.core.Translation
}

// Relative returns the locked pose relative to the parent.
func (b *Bone) Relative() model.Transform {
	return b.relative
}

// Absolute returns the pose in model space computed by the last CalculateState.
func (b *Bone) Absolute() model.Transform {
	return b.absolute
}

// BoneTransform returns the skinning transform computed by the last CalculateState.
func (b *Bone) BoneTransform() model.BoneTransform {
	return b.boneTransform
}

// AccumulatedWeight returns the total weight committed by LockState this frame.
func (b *Bone) AccumulatedWeight() float32 {
	return b.accumulatedWeight
}

// MeshScaleAbsolute returns the bone-space scale applied to the skinning transform.
func (b *Bone) MeshScaleAbsolute() mgl32.Vec3 {
	return b.meshScale
}

// SetMeshScaleAbsolute sets the bone-space scale applied to the skinning transform.
// It is reset to one by ClearState.
func (b *Bone) SetMeshScaleAbsolute(scale mgl32.Vec3) {
	b.meshScale = scale
}

// ClearState resets the blend bookkeeping for a new frame.
func (b *Bone) ClearState() {
	b.accumulatedWeight = 0
	b.accumulatedWeightAbsolute = 0
	b.replacementAttenuation = 1
	b.meshScale = mgl32.Vec3{1, 1, 1}
}

// BlendState folds one weighted pose into the running blend.
// The effective weight is weight * rampValue, further attenuated by every replace contribution
// made earlier this frame. The first contribution is taken as is; later ones blend in with a
// factor of scale * weight / (accumulated + weight). A replace contribution attenuates all later
// contributions by (1 - rampValue), so a fully ramped replace hides everything after it.
//
// Parameters:
//   - weight: the contribution weight before ramping
//   - transform: the pose relative to the parent
//   - scale: the blend scale, clamped to [0, 1]
//   - replace: whether the contribution attenuates later ones
//   - rampValue: the fade multiplier
func (b *Bone) BlendState(weight float32, transform model.Transform, scale float32, replace bool, rampValue float32) {
	attenuated := weight * rampValue * b.replacementAttenuation
	scale = common.Clamp01(scale)

	if b.accumulatedWeightAbsolute == 0 {
		b.accumulatedWeightAbsolute = attenuated
		b.blend = transform
	} else {
		factor := scale * attenuated / (b.accumulatedWeightAbsolute + attenuated)
		b.blend = model.BlendTransform(factor, b.blend, transform)
		b.accumulatedWeightAbsolute += attenuated
	}

	if replace {
		b.replacementAttenuation *= 1 - rampValue
	}
}

// LockState commits the running blend into the relative pose.
// The running weight is capped so the committed weight never exceeds one.
func (b *Bone) LockState() {
	if b.accumulatedWeightAbsolute > 1-b.accumulatedWeight {
		b.accumulatedWeightAbsolute = 1 - b.accumulatedWeight
	}
	if b.accumulatedWeightAbsolute <= 0 {
		return
	}

	if b.accumulatedWeight == 0 {
		b.relative = b.blend
		b.accumulatedWeight = b.accumulatedWeightAbsolute
	} else {
		factor := b.accumulatedWeightAbsolute / (b.accumulatedWeight + b.accumulatedWeightAbsolute)
		b.relative = model.BlendTransform(factor, b.relative, b.blend)
		b.accumulatedWeight += b.accumulatedWeightAbsolute
	}
	b.accumulatedWeightAbsolute = 0
}

// CalculateState derives the absolute pose and skinning transform.
// A bone nothing contributed to this frame falls back to its bind pose.
// The parent, if any, must already be calculated.
//
// Parameters:
//   - parent: the parent bone, or nil for a root
func (b *Bone) CalculateState(parent *Bone) {
	if b.accumulatedWeight == 0 {
		b.relative = b.core.LocalTransform()
	}

	if parent == nil {
		b.absolute = b.relative
	} else {
		b.absolute = parent.absolute.Mul(b.relative)
	}

	bs := b.core.BoneSpaceTransform()
	scaled := mgl32.Vec3{
		bs.Translation[0] * b.meshScale[0],
		bs.Translation[1] * b.meshScale[1],
		bs.Translation[2] * b.meshScale[2],
	}
	translation := b.absolute.Apply(scaled)
	m := b.absolute.Rotation.Mat4().Mat3().Mul3(mgl32.Diag3(b.meshScale)).Mul3(bs.Rotation.Mat4().Mat3())
	b.boneTransform = model.NewBoneTransform(m, translation)
}
