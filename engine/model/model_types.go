package model

import (
	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/go-gl/mathgl/mgl32"
)

// NoParent is the parent id of a root bone.
const NoParent = -1

// --- Transform Types ---

// Transform is a rigid rotate-then-translate transform used for bone poses and keyframes.
type Transform struct {
	// Rotation is the orientation as a unit quaternion.
	Rotation mgl32.Quat

	// Translation is the position offset applied after the rotation.
	Translation mgl32.Vec3
}

// IdentityTransform returns the transform that leaves every point unchanged.
//
// Returns:
//   - Transform: the identity transform
func IdentityTransform() Transform {
	return Transform{Rotation: mgl32.QuatIdent()}
}

// Mul composes two transforms so that the result applies inner first and then t.
//
// Parameters:
//   - inner: the transform applied first
//
// Returns:
//   - Transform: t * inner
func (t Transform) Mul(inner Transform) Transform {
	return Transform{
		Rotation:    t.Rotation.Mul(inner.Rotation),
		Translation: t.Rotation.Rotate(inner.Translation).Add(t.Translation),
	}
}

// Apply transforms a point.
func (t Transform) Apply(v mgl32.Vec3) mgl32.Vec3 {
	return t.Rotation.Rotate(v).Add(t.Translation)
}

// Invert returns the transform that undoes t.
// Since t rotates and then translates, the inverse translates back and then rotates back.
//
// Returns:
//   - Transform: the inverse transform
func (t Transform) Invert() Transform {
	inv := t.Rotation.Inverse()
	return Transform{
		Rotation:    inv,
		Translation: inv.Rotate(t.Translation.Mul(-1)),
	}
}

// BlendTransform interpolates rotation along the shortest arc and translation linearly.
//
// Parameters:
//   - factor: interpolation amount in [0, 1]; 0 yields left, 1 yields right
//   - left: the starting transform
//   - right: the target transform
//
// Returns:
//   - Transform: the blended transform
func BlendTransform(factor float32, left, right Transform) Transform {
	return Transform{
		Rotation:    common.Slerp(factor, left.Rotation, right.Rotation),
		Translation: common.Lerp(factor, left.Translation, right.Translation),
	}
}

// BoneTransform is a compact affine transform laid out as three rows.
// The xyz components of each row hold the 3x3 rotation-scale matrix row and w holds the
// translation component for that axis.
type BoneTransform struct {
	RowX, RowY, RowZ mgl32.Vec4
}

// IdentityBoneTransform returns a BoneTransform with an identity rotation and no translation.
//
// Returns:
//   - BoneTransform: the identity bone transform
func IdentityBoneTransform() BoneTransform {
	return BoneTransform{
		RowX: mgl32.Vec4{1, 0, 0, 0},
		RowY: mgl32.Vec4{0, 1, 0, 0},
		RowZ: mgl32.Vec4{0, 0, 1, 0},
	}
}

// NewBoneTransform builds a BoneTransform from a 3x3 matrix and a translation.
//
// Parameters:
//   - m: the rotation-scale matrix (column-major, as produced by mgl32)
//   - t: the translation
//
// Returns:
//   - BoneTransform: the packed transform
func NewBoneTransform(m mgl32.Mat3, t mgl32.Vec3) BoneTransform {
	return BoneTransform{
		RowX: mgl32.Vec4{m.At(0, 0), m.At(0, 1), m.At(0, 2), t[0]},
		RowY: mgl32.Vec4{m.At(1, 0), m.At(1, 1), m.At(1, 2), t[1]},
		RowZ: mgl32.Vec4{m.At(2, 0), m.At(2, 1), m.At(2, 2), t[2]},
	}
}

// AddWeighted accumulates weight * other into b and returns the sum.
func (b BoneTransform) AddWeighted(weight float32, other BoneTransform) BoneTransform {
	return BoneTransform{
		RowX: b.RowX.Add(other.RowX.Mul(weight)),
		RowY: b.RowY.Add(other.RowY.Mul(weight)),
		RowZ: b.RowZ.Add(other.RowZ.Mul(weight)),
	}
}

// TransformPoint applies the full affine transform to p.
func (b BoneTransform) TransformPoint(p mgl32.Vec3) mgl32.Vec3 {
	h := p.Vec4(1)
	return mgl32.Vec3{b.RowX.Dot(h), b.RowY.Dot(h), b.RowZ.Dot(h)}
}

// TransformVector applies only the rotation-scale part to v.
func (b BoneTransform) TransformVector(v mgl32.Vec3) mgl32.Vec3 {
	h := v.Vec4(0)
	return mgl32.Vec3{b.RowX.Dot(h), b.RowY.Dot(h), b.RowZ.Dot(h)}
}

// --- Mesh Types ---

// Vertex is the bind-pose geometry of one submesh vertex.
type Vertex struct {
	// Position is the bind-pose position in model space.
	Position mgl32.Vec3

	// Normal is the bind-pose normal in model space.
	Normal mgl32.Vec3
}

// TextureCoordinate is a UV pair. Values are nominally in [0, 1] but any value is representable.
type TextureCoordinate struct {
	U, V float32
}

// Influence describes how strongly one bone moves one vertex.
// Influences of a vertex are stored contiguously in a submesh, heaviest first,
// and the final entry of each run has LastForVertex set.
type Influence struct {
	// BoneID is the index of the influencing bone in the owning skeleton.
	BoneID int

	// Weight is the blend weight of the bone for the vertex.
	Weight float32

	// LastForVertex marks the terminating influence of a vertex's run.
	LastForVertex bool
}

// Face is a triangle as three vertex indices.
type Face [3]int

// VertexOffset is a sparse morph-target delta for a single vertex.
type VertexOffset struct {
	// VertexID is the index of the affected vertex.
	VertexID int

	// Position is added to the vertex position.
	Position mgl32.Vec3

	// Normal is added to the vertex normal.
	Normal mgl32.Vec3
}

// --- Animation Types ---

// CoreKeyframe is a sampled bone pose at a point in time.
type CoreKeyframe struct {
	// Time is the keyframe timestamp in seconds.
	Time float32

	// Rotation is the bone's rotation relative to its parent at Time.
	Rotation mgl32.Quat

	// Translation is the bone's translation relative to its parent at Time.
	Translation mgl32.Vec3
}

// Transform returns the keyframe pose as a Transform.
func (k CoreKeyframe) Transform() Transform {
	return Transform{Rotation: k.Rotation, Translation: k.Translation}
}
