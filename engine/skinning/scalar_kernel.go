package skinning

import (
	"github.com/Carmen-Shannon/oxy-rig/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// scalarKernel is the portable float32 kernel.
type scalarKernel struct{}

var _ Kernel = scalarKernel{}

func (scalarKernel) Type() KernelType {
	return KernelTypeScalar
}

func (scalarKernel) Skin(bones []model.BoneTransform, vertexCount int, vertices []model.Vertex, influences []model.Influence, output []mgl32.Vec3) {
	inf := 0
	for v := range vertexCount {
		var (
			xx, xy, xz, xw float32
			yx, yy, yz, yw float32
			zx, zy, zz, zw float32
		)
		for {
			in := influences[inf]
			inf++
			b := &bones[in.BoneID]
			w := in.Weight
			xx += w * b.RowX[0]
			xy += w * b.RowX[1]
			xz += w * b.RowX[2]
			xw += w * b.RowX[3]
			yx += w * b.RowY[0]
			yy += w * b.RowY[1]
			yz += w * b.RowY[2]
			yw += w * b.RowY[3]
			zx += w * b.RowZ[0]
			zy += w * b.RowZ[1]
			zz += w * b.RowZ[2]
			zw += w * b.RowZ[3]
			if in.LastForVertex {
				break
			}
		}

		p := vertices[v].Position
		n := vertices[v].Normal
		output[2*v] = mgl32.Vec3{
			xx*p[0] + xy*p[1] + xz*p[2] + xw,
			yx*p[0] + yy*p[1] + yz*p[2] + yw,
			zx*p[0] + zy*p[1] + zz*p[2] + zw,
		}
		output[2*v+1] = mgl32.Vec3{
			xx*n[0] + xy*n[1] + xz*n[2],
			yx*n[0] + yy*n[1] + yz*n[2],
			zx*n[0] + zy*n[1] + zz*n[2],
		}
	}
}

func (scalarKernel) Transform(bone model.BoneTransform, vertexCount int, vertices []model.Vertex, output []mgl32.Vec3) {
	x, y, z := bone.RowX, bone.RowY, bone.RowZ
	for v := range vertexCount {
		p := vertices[v].Position
		n := vertices[v].Normal
		output[2*v] = mgl32.Vec3{
			x[0]*p[0] + x[1]*p[1] + x[2]*p[2] + x[3],
			y[0]*p[0] + y[1]*p[1] + y[2]*p[2] + y[3],
			z[0]*p[0] + z[1]*p[1] + z[2]*p[2] + z[3],
		}
		output[2*v+1] = mgl32.Vec3{
			x[0]*n[0] + x[1]*n[1] + x[2]*n[2],
			y[0]*n[0] + y[1]*n[1] + y[2]*n[2],
			z[0]*n[0] + z[1]*n[1] + z[2]*n[2],
		}
	}
}
