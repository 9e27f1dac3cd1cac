package skinning

import (
	"github.com/Carmen-Shannon/oxy-rig/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// vectorKernel accumulates whole rows with mgl32 Vec4 arithmetic.
type vectorKernel struct{}

var _ Kernel = vectorKernel{}

func (vectorKernel) Type() KernelType {
	return KernelTypeVector
}

func (vectorKernel) Skin(bones []model.BoneTransform, vertexCount int, vertices []model.Vertex, influences []model.Influence, output []mgl32.Vec3) {
	inf := 0
	for v := range vertexCount {
		var blended model.BoneTransform
		for {
			in := influences[inf]
			inf++
			blended = blended.AddWeighted(in.Weight, bones[in.BoneID])
			if in.LastForVertex {
				break
			}
		}
		output[2*v] = blended.TransformPoint(vertices[v].Position)
		output[2*v+1] = blended.TransformVector(vertices[v].Normal)
	}
}

func (vectorKernel) Transform(bone model.BoneTransform, vertexCount int, vertices []model.Vertex, output []mgl32.Vec3) {
	for v := range vertexCount {
		output[2*v] = bone.TransformPoint(vertices[v].Position)
		output[2*v+1] = bone.TransformVector(vertices[v].Normal)
	}
}
