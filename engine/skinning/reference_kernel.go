package skinning

import (
	"github.com/Carmen-Shannon/oxy-rig/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/spatial/r3"
)

// referenceKernel accumulates in float64 and is the yardstick the float32 kernels are tested against.
type referenceKernel struct{}

var _ Kernel = referenceKernel{}

// affine64 is a BoneTransform widened to float64: three rotation-scale rows plus a translation.
type affine64 struct {
	x, y, z r3.Vec
	t       r3.Vec
}

func widen(b *model.BoneTransform) affine64 {
	return affine64{
		x: r3.Vec{X: float64(b.RowX[0]), Y: float64(b.RowX[1]), Z: float64(b.RowX[2])},
		y: r3.Vec{X: float64(b.RowY[0]), Y: float64(b.RowY[1]), Z: float64(b.RowY[2])},
		z: r3.Vec{X: float64(b.RowZ[0]), Y: float64(b.RowZ[1]), Z: float64(b.RowZ[2])},
		t: r3.Vec{X: float64(b.RowX[3]), Y: float64(b.RowY[3]), Z: float64(b.RowZ[3])},
	}
}

func (a affine64) addWeighted(w float64, o affine64) affine64 {
	return affine64{
		x: r3.Add(a.x, r3.Scale(w, o.x)),
		y: r3.Add(a.y, r3.Scale(w, o.y)),
		z: r3.Add(a.z, r3.Scale(w, o.z)),
		t: r3.Add(a.t, r3.Scale(w, o.t)),
	}
}

func (a affine64) apply(v model.Vertex) (mgl32.Vec3, mgl32.Vec3) {
	p := r3.Vec{X: float64(v.Position[0]), Y: float64(v.Position[1]), Z: float64(v.Position[2])}
	n := r3.Vec{X: float64(v.Normal[0]), Y: float64(v.Normal[1]), Z: float64(v.Normal[2])}
	pos := mgl32.Vec3{
		float32(r3.Dot(a.x, p) + a.t.X),
		float32(r3.Dot(a.y, p) + a.t.Y),
		float32(r3.Dot(a.z, p) + a.t.Z),
	}
	nrm := mgl32.Vec3{
		float32(r3.Dot(a.x, n)),
		float32(r3.Dot(a.y, n)),
		float32(r3.Dot(a.z, n)),
	}
	return pos, nrm
}

func (referenceKernel) Type() KernelType {
	return KernelTypeReference
}

func (referenceKernel) Skin(bones []model.BoneTransform, vertexCount int, vertices []model.Vertex, influences []model.Influence, output []mgl32.Vec3) {
	inf := 0
	for v := range vertexCount {
		var blended affine64
		for {
			in := influences[inf]
			inf++
			blended = blended.addWeighted(float64(in.Weight), widen(&bones[in.BoneID]))
			if in.LastForVertex {
				break
			}
		}
		output[2*v], output[2*v+1] = blended.apply(vertices[v])
	}
}

func (referenceKernel) Transform(bone model.BoneTransform, vertexCount int, vertices []model.Vertex, output []mgl32.Vec3) {
	a := widen(&bone)
	for v := range vertexCount {
		output[2*v], output[2*v+1] = a.apply(vertices[v])
	}
}
