// package skinning blends bone transforms into vertex positions and normals.
//
// Every Kernel computes the same function. For each vertex the transforms of its influence run are
// summed by weight and applied to the bind-pose position; the normal receives only the
// rotation-scale part. Kernels differ in how they lay out the arithmetic and in precision, and
// agree to within float32 tolerance for identical inputs.
package skinning

import (
	"github.com/Carmen-Shannon/oxy-rig/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// KernelType identifies a skinning kernel implementation.
type KernelType int

const (
	// KernelTypeScalar accumulates the twelve affine coefficients as plain float32 scalars.
	KernelTypeScalar KernelType = iota

	// KernelTypeVector accumulates whole transform rows with mgl32 vector operations.
	KernelTypeVector

	// KernelTypeWide processes vertices in four-lane structure-of-arrays batches.
	// It is a layout variant and not hardware accelerated.
	KernelTypeWide

	// KernelTypeReference accumulates in float64 and rounds once per output component.
	KernelTypeReference
)

// KernelTypes lists every kernel implementation.
var KernelTypes = []KernelType{KernelTypeScalar, KernelTypeVector, KernelTypeWide, KernelTypeReference}

// String returns the name of the kernel type.
func (t KernelType) String() string {
	switch t {
	case KernelTypeScalar:
		return "scalar"
	case KernelTypeVector:
		return "vector"
	case KernelTypeWide:
		return "wide"
	case KernelTypeReference:
		return "reference"
	default:
		return "unknown"
	}
}

// Kernel transforms bind-pose vertices by blended bone transforms.
// Output holds two entries per vertex: the position at 2*i and the normal at 2*i+1.
// Kernels are stateless and safe for concurrent use.
type Kernel interface {
	// Type returns the kernel's implementation type.
	//
	// Returns:
	//   - KernelType: the kernel type
	Type() KernelType

	// Skin blends each vertex's influence run and applies it to the vertex.
	// Influences must hold one contiguous run per vertex, each terminated by LastForVertex.
	//
	// Parameters:
	//   - bones: the per-bone skinning transforms
	//   - vertexCount: the number of vertices to skin
	//   - vertices: the bind-pose vertices
	//   - influences: the flattened influence runs
	//   - output: receives 2*vertexCount entries
	Skin(bones []model.BoneTransform, vertexCount int, vertices []model.Vertex, influences []model.Influence, output []mgl32.Vec3)

	// Transform applies one shared transform to every vertex.
	// This is the shortcut for submeshes whose vertices all share one influence set.
	//
	// Parameters:
	//   - bone: the shared transform
	//   - vertexCount: the number of vertices to transform
	//   - vertices: the bind-pose vertices
	//   - output: receives 2*vertexCount entries
	Transform(bone model.BoneTransform, vertexCount int, vertices []model.Vertex, output []mgl32.Vec3)
}

// NewKernel creates a kernel of the given type. Unknown types fall back to the scalar kernel.
//
// Parameters:
//   - kernelType: the implementation to create
//
// Returns:
//   - Kernel: the kernel
func NewKernel(kernelType KernelType) Kernel {
	switch kernelType {
	case KernelTypeVector:
		return vectorKernel{}
	case KernelTypeWide:
		return wideKernel{}
	case KernelTypeReference:
		return referenceKernel{}
	case KernelTypeScalar:
		fallthrough
	default:
		return scalarKernel{}
	}
}

// OutputSize returns the number of output entries a kernel writes for vertexCount vertices.
func OutputSize(vertexCount int) int {
	return 2 * vertexCount
}

// SkinSubmesh skins every vertex of a submesh into output.
// Static submeshes are transformed by their single blended transform.
//
// Parameters:
//   - k: the kernel to use
//   - bones: the per-bone skinning transforms
//   - submesh: the submesh to skin
//   - output: receives OutputSize(submesh.VertexCount()) entries
func SkinSubmesh(k Kernel, bones []model.BoneTransform, submesh *model.CoreSubmesh, output []mgl32.Vec3) {
	n := submesh.VertexCount()
	if submesh.IsStatic() {
		k.Transform(submesh.StaticTransform(bones), n, submesh.Vertices(), output)
		return
	}
	k.Skin(bones, n, submesh.Vertices(), submesh.Influences(), output)
}
