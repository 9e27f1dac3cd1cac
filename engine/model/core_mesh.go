package model

// CoreMesh is a named group of submeshes skinned against the same skeleton.
type CoreMesh struct {
	// Name identifies the mesh within its model.
	Name string

	submeshes []*CoreSubmesh
}

// NewCoreMesh creates a mesh from its submeshes.
//
// Parameters:
//   - name: the mesh name
//   - submeshes: the submeshes
//
// Returns:
//   - *CoreMesh: the new mesh
func NewCoreMesh(name string, submeshes ...*CoreSubmesh) *CoreMesh {
	return &CoreMesh{Name: name, submeshes: submeshes}
}

// AddCoreSubmesh appends a submesh and returns its index.
func (m *CoreMesh) AddCoreSubmesh(s *CoreSubmesh) int {
	m.submeshes = append(m.submeshes, s)
	return len(m.submeshes) - 1
}

// CoreSubmeshes returns the submeshes.
func (m *CoreMesh) CoreSubmeshes() []*CoreSubmesh {
	return m.submeshes
}

// Fixup remaps bone ids of every submesh through the skeleton's translation table.
func (m *CoreMesh) Fixup(skeleton *CoreSkeleton) {
	for _, s := range m.submeshes {
		s.Fixup(skeleton)
	}
}

// Scale scales every submesh by factor.
func (m *CoreMesh) Scale(factor float32) {
	for _, s := range m.submeshes {
		s.Scale(factor)
	}
}
