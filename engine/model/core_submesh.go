package model

import (
	"fmt"
	"slices"
	"sort"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/logger"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// CoreSubmesh holds the bind-pose geometry and bone influences of one skinned surface.
// Its vertex and face capacities are fixed at construction.
type CoreSubmesh struct {
	vertexCapacity int
	faceCapacity   int

	vertices      []Vertex
	colors        []common.Color32
	texCoords     []TextureCoordinate
	influences    []Influence
	runStarts     []int
	faces         []Face
	morphTargets  []*CoreMorphTarget
	boundingBox   common.BoundingBox
	minVertexSize int

	static    bool
	staticSet []Influence
}

// NewCoreSubmesh creates an empty submesh with fixed capacities.
//
// Parameters:
//   - vertexCount: the number of vertices the submesh will hold
//   - hasTextureCoordinates: whether a texture coordinate is stored per vertex
//   - faceCount: the number of faces the submesh will hold
//
// Returns:
//   - *CoreSubmesh: the new submesh
func NewCoreSubmesh(vertexCount int, hasTextureCoordinates bool, faceCount int) *CoreSubmesh {
	s := &CoreSubmesh{
		vertexCapacity: vertexCount,
		faceCapacity:   faceCount,
		vertices:       make([]Vertex, 0, vertexCount),
		colors:         make([]common.Color32, 0, vertexCount),
		runStarts:      make([]int, 0, vertexCount+1),
		faces:          make([]Face, 0, faceCount),
	}
	s.runStarts = append(s.runStarts, 0)
	if hasTextureCoordinates {
		s.texCoords = make([]TextureCoordinate, vertexCount)
	}
	return s
}

// --- Vertices & Influences ---

// AddVertex appends a vertex with its color and bone influences.
// Influences are stored heaviest first with the last entry flagged. A vertex without influences
// receives a zero-weight influence on bone 0 and makes the submesh non-static.
//
// Parameters:
//   - vertex: the bind-pose position and normal
//   - color: the vertex color
//   - influences: the bone influences in any order
//
// Returns:
//   - error: ErrSubmeshFull if the vertex capacity is already used
func (s *CoreSubmesh) AddVertex(vertex Vertex, color common.Color32, influences []Influence) error {
	if len(s.vertices) >= s.vertexCapacity {
		return fmt.Errorf("add vertex %d: %w", len(s.vertices), ErrSubmeshFull)
	}

	if len(s.vertices) == 0 {
		s.boundingBox = common.NewBoundingBox(vertex.Position)
	} else {
		s.boundingBox = s.boundingBox.Extend(vertex.Position)
	}

	canonical := canonicalInfluences(influences)
	if len(s.vertices) == 0 {
		s.static = true
		s.staticSet = canonical
	} else if s.static {
		s.static = slices.Equal(canonical, s.staticSet)
	}

	run := make([]Influence, len(influences))
	copy(run, influences)
	if len(run) == 0 {
		s.static = false
		run = append(run, Influence{BoneID: 0, Weight: 0})
	}
	sort.SliceStable(run, func(i, j int) bool {
		return run[i].Weight > run[j].Weight
	})
	for i := range run {
		run[i].LastForVertex = i == len(run)-1
	}

	s.vertices = append(s.vertices, vertex)
	s.colors = append(s.colors, color)
	s.influences = append(s.influences, run...)
	s.runStarts = append(s.runStarts, len(s.influences))
	return nil
}

// canonicalInfluences returns the influences ordered by bone then weight with run flags cleared,
// so two sets describing the same weights compare equal.
func canonicalInfluences(influences []Influence) []Influence {
	out := make([]Influence, len(influences))
	for i, inf := range influences {
		out[i] = Influence{BoneID: inf.BoneID, Weight: inf.Weight}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BoneID != out[j].BoneID {
			return out[i].BoneID < out[j].BoneID
		}
		return out[i].Weight < out[j].Weight
	})
	return out
}

// VertexCount returns the number of vertices added so far.
func (s *CoreSubmesh) VertexCount() int {
	return len(s.vertices)
}

// VertexCapacity returns the fixed number of vertices the submesh was created for.
func (s *CoreSubmesh) VertexCapacity() int {
	return s.vertexCapacity
}

// Vertices returns the bind-pose vertices.
func (s *CoreSubmesh) Vertices() []Vertex {
	return s.vertices
}

// Colors returns the per-vertex colors.
func (s *CoreSubmesh) Colors() []common.Color32 {
	return s.colors
}

// Influences returns the flattened influence list.
func (s *CoreSubmesh) Influences() []Influence {
	return s.influences
}

// VertexInfluences returns the influence run of one vertex.
func (s *CoreSubmesh) VertexInfluences(vertexID int) []Influence {
	return s.influences[s.runStarts[vertexID]:s.runStarts[vertexID+1]]
}

// BoundingBox returns the axis-aligned bounds of all vertex positions.
func (s *CoreSubmesh) BoundingBox() common.BoundingBox {
	return s.boundingBox
}

// --- Texture Coordinates ---

// HasTextureCoordinates reports whether the submesh stores texture coordinates.
func (s *CoreSubmesh) HasTextureCoordinates() bool {
	return s.texCoords != nil
}

// TextureCoordinates returns the per-vertex texture coordinates, or nil if the submesh has none.
func (s *CoreSubmesh) TextureCoordinates() []TextureCoordinate {
	return s.texCoords
}

// SetTextureCoordinate stores the texture coordinate of one vertex.
//
// Parameters:
//   - vertexID: the vertex index
//   - tc: the texture coordinate
//
// Returns:
//   - bool: false if the submesh has no texture coordinates or vertexID is out of range
func (s *CoreSubmesh) SetTextureCoordinate(vertexID int, tc TextureCoordinate) bool {
	if s.texCoords == nil || vertexID < 0 || vertexID >= len(s.texCoords) {
		return false
	}
	s.texCoords[vertexID] = tc
	return true
}

// HasTextureCoordinatesOutsideUnitRange reports whether any texture coordinate lies outside [0, 1].
func (s *CoreSubmesh) HasTextureCoordinatesOutsideUnitRange() bool {
	for _, tc := range s.texCoords {
		if tc.U < 0 || tc.U > 1 || tc.V < 0 || tc.V > 1 {
			return true
		}
	}
	return false
}

// --- Faces ---

// AddFace appends a triangle and grows the minimum vertex buffer size to cover its indices.
//
// Parameters:
//   - face: the three vertex indices
//
// Returns:
//   - error: ErrFacesFull if the face capacity is already used
func (s *CoreSubmesh) AddFace(face Face) error {
	if len(s.faces) >= s.faceCapacity {
		return fmt.Errorf("add face %d: %w", len(s.faces), ErrFacesFull)
	}
	for _, idx := range face {
		s.minVertexSize = max(s.minVertexSize, idx+1)
	}
	s.faces = append(s.faces, face)
	return nil
}

// Faces returns the triangles.
func (s *CoreSubmesh) Faces() []Face {
	return s.faces
}

// FaceCapacity returns the fixed number of faces the submesh was created for.
func (s *CoreSubmesh) FaceCapacity() int {
	return s.faceCapacity
}

// HasValidFaces reports whether every face index refers to an added vertex.
func (s *CoreSubmesh) HasValidFaces() bool {
	for _, f := range s.faces {
		for _, idx := range f {
			if idx < 0 || idx >= len(s.vertices) {
				return false
			}
		}
	}
	return true
}

// MinimumVertexBufferSize returns one past the highest vertex index referenced by any face.
func (s *CoreSubmesh) MinimumVertexBufferSize() int {
	return s.minVertexSize
}

// --- Static Skinning ---

// IsStatic reports whether every vertex shares one influence set and there are no morph targets.
// Such a submesh can be skinned with a single shared transform.
func (s *CoreSubmesh) IsStatic() bool {
	return s.static && len(s.morphTargets) == 0
}

// StaticInfluences returns the influence set shared by every vertex when the submesh is static.
func (s *CoreSubmesh) StaticInfluences() []Influence {
	return s.staticSet
}

// StaticTransform blends the static influence set into one transform.
//
// Parameters:
//   - bones: the per-bone skinning transforms
//
// Returns:
//   - BoneTransform: the weighted sum of the static set's bone transforms
func (s *CoreSubmesh) StaticTransform(bones []BoneTransform) BoneTransform {
	var out BoneTransform
	for _, inf := range s.staticSet {
		out = out.AddWeighted(inf.Weight, bones[inf.BoneID])
	}
	return out
}

// --- Fixup ---

// Fixup remaps influence bone ids through the skeleton's translation table.
// Ids outside the table are reset to bone 0 with their weight kept.
//
// Parameters:
//   - skeleton: the skeleton whose translation table is applied
func (s *CoreSubmesh) Fixup(skeleton *CoreSkeleton) {
	table := skeleton.BoneIDTranslation()
	remap := func(id int) int {
		if id < 0 || id >= len(table) {
			logger.Component("core_submesh").WithFields(logrus.Fields{"bone": id, "bones": len(table)}).Debug("influence bone out of range, resetting to bone 0")
			return 0
		}
		return table[id]
	}
	for i := range s.influences {
		s.influences[i].BoneID = remap(s.influences[i].BoneID)
	}
	for i := range s.staticSet {
		s.staticSet[i].BoneID = remap(s.staticSet[i].BoneID)
	}
	s.staticSet = canonicalInfluences(s.staticSet)
}

// --- Morph Targets ---

// AddMorphTarget attaches a morph target. Targets without offsets are ignored.
//
// Parameters:
//   - target: the morph target to add
//
// Returns:
//   - bool: true if the target was added
func (s *CoreSubmesh) AddMorphTarget(target *CoreMorphTarget) bool {
	if target == nil || len(target.Offsets) == 0 {
		return false
	}
	s.morphTargets = append(s.morphTargets, target)
	return true
}

// MorphTargets returns the attached morph targets.
func (s *CoreSubmesh) MorphTargets() []*CoreMorphTarget {
	return s.morphTargets
}

// ReplaceMeshWithMorphTarget bakes every morph target with the given name into the vertices.
//
// Parameters:
//   - name: the morph target name
//
// Returns:
//   - bool: true if at least one target matched
func (s *CoreSubmesh) ReplaceMeshWithMorphTarget(name string) bool {
	found := false
	for _, mt := range s.morphTargets {
		if mt.Name != name {
			continue
		}
		found = true
		for _, off := range mt.Offsets {
			if off.VertexID < 0 || off.VertexID >= len(s.vertices) {
				continue
			}
			v := &s.vertices[off.VertexID]
			v.Position = v.Position.Add(off.Position)
			v.Normal = v.Normal.Add(off.Normal)
		}
	}
	if found {
		s.recomputeBoundingBox()
	}
	return found
}

// --- Coordinate Utilities ---

// Scale multiplies vertex positions and morph position offsets by factor.
func (s *CoreSubmesh) Scale(factor float32) {
	for i := range s.vertices {
		s.vertices[i].Position = s.vertices[i].Position.Mul(factor)
	}
	for _, mt := range s.morphTargets {
		for i := range mt.Offsets {
			mt.Offsets[i].Position = mt.Offsets[i].Position.Mul(factor)
		}
	}
	s.recomputeBoundingBox()
}

// ApplyZUpToYUp converts positions, normals and morph offsets from Z-up to Y-up.
func (s *CoreSubmesh) ApplyZUpToYUp() {
	s.transformVectors(common.ZUpToYUp)
}

// ApplyCoordinateTransform rotates positions, normals and morph offsets by q.
func (s *CoreSubmesh) ApplyCoordinateTransform(q mgl32.Quat) {
	s.transformVectors(q.Rotate)
}

func (s *CoreSubmesh) transformVectors(fn func(mgl32.Vec3) mgl32.Vec3) {
	for i := range s.vertices {
		s.vertices[i].Position = fn(s.vertices[i].Position)
		s.vertices[i].Normal = fn(s.vertices[i].Normal)
	}
	for _, mt := range s.morphTargets {
		for i := range mt.Offsets {
			mt.Offsets[i].Position = fn(mt.Offsets[i].Position)
			mt.Offsets[i].Normal = fn(mt.Offsets[i].Normal)
		}
	}
	s.recomputeBoundingBox()
}

func (s *CoreSubmesh) recomputeBoundingBox() {
	for i, v := range s.vertices {
		if i == 0 {
			s.boundingBox = common.NewBoundingBox(v.Position)
			continue
		}
		s.boundingBox = s.boundingBox.Extend(v.Position)
	}
}
