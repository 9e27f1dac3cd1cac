package skinning

import (
	"github.com/Carmen-Shannon/oxy-rig/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

const lanes = 4

// lane4 holds one scalar per lane.
type lane4 [lanes]float32

// wideKernel skins four vertices per batch with each coefficient stored across lanes.
// The lane loops compile to scalar code; the layout matches the four-joint vertex packing.
type wideKernel struct{}

var _ Kernel = wideKernel{}

func (wideKernel) Type() KernelType {
	return KernelTypeWide
}

func (wideKernel) Skin(bones []model.BoneTransform, vertexCount int, vertices []model.Vertex, influences []model.Influence, output []mgl32.Vec3) {
	inf := 0
	for base := 0; base < vertexCount; base += lanes {
		active := min(lanes, vertexCount-base)

		var m [12]lane4
		for l := range active {
			for {
				in := influences[inf]
				inf++
				b := &bones[in.BoneID]
				w := in.Weight
				for c := range 4 {
					m[c][l] += w * b.RowX[c]
					m[4+c][l] += w * b.RowY[c]
					m[8+c][l] += w * b.RowZ[c]
				}
				if in.LastForVertex {
					break
				}
			}
		}

		writeBatch(&m, base, active, vertices, output)
	}
}

func (wideKernel) Transform(bone model.BoneTransform, vertexCount int, vertices []model.Vertex, output []mgl32.Vec3) {
	var m [12]lane4
	for c := range 4 {
		for l := range lanes {
			m[c][l] = bone.RowX[c]
			m[4+c][l] = bone.RowY[c]
			m[8+c][l] = bone.RowZ[c]
		}
	}
	for base := 0; base < vertexCount; base += lanes {
		writeBatch(&m, base, min(lanes, vertexCount-base), vertices, output)
	}
}

// writeBatch applies the per-lane transforms in m to up to four vertices starting at base.
func writeBatch(m *[12]lane4, base, active int, vertices []model.Vertex, output []mgl32.Vec3) {
	var px, py, pz, nx, ny, nz lane4
	for l := range active {
		v := &vertices[base+l]
		px[l], py[l], pz[l] = v.Position[0], v.Position[1], v.Position[2]
		nx[l], ny[l], nz[l] = v.Normal[0], v.Normal[1], v.Normal[2]
	}

	var ox, oy, oz, onx, ony, onz lane4
	for l := range lanes {
		ox[l] = m[0][l]*px[l] + m[1][l]*py[l] + m[2][l]*pz[l] + m[3][l]
		oy[l] = m[4][l]*px[l] + m[5][l]*py[l] + m[6][l]*pz[l] + m[7][l]
		oz[l] = m[8][l]*px[l] + m[9][l]*py[l] + m[10][l]*pz[l] + m[11][l]
		onx[l] = m[0][l]*nx[l] + m[1][l]*ny[l] + m[2][l]*nz[l]
		ony[l] = m[4][l]*nx[l] + m[5][l]*ny[l] + m[6][l]*nz[l]
		onz[l] = m[8][l]*nx[l] + m[9][l]*ny[l] + m[10][l]*nz[l]
	}

	for l := range active {
		output[2*(base+l)] = mgl32.Vec3{ox[l], oy[l], oz[l]}
		output[2*(base+l)+1] = mgl32.Vec3{onx[l], ony[l], onz[l]}
	}
}
