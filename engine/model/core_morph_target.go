package model

// CoreMorphTarget is a named set of sparse vertex offsets for a submesh.
// Offsets are only applied when the target is explicitly selected.
type CoreMorphTarget struct {
	// Name identifies the target. Several targets in one submesh may share a name.
	Name string

	// Offsets holds one delta per affected vertex.
	Offsets []VertexOffset
}

// NewCoreMorphTarget creates a morph target.
//
// Parameters:
//   - name: the target name
//   - offsets: the per-vertex deltas
//
// Returns:
//   - *CoreMorphTarget: the new morph target
func NewCoreMorphTarget(name string, offsets ...VertexOffset) *CoreMorphTarget {
	return &CoreMorphTarget{Name: name, Offsets: offsets}
}
