package model

import "errors"

var (
	// ErrBoneNotFound is returned when a bone name has no mapping in the skeleton.
	ErrBoneNotFound = errors.New("bone not found")

	// ErrSubmeshFull is returned when adding a vertex beyond the submesh's fixed vertex count.
	ErrSubmeshFull = errors.New("submesh vertex capacity reached")

	// ErrFacesFull is returned when adding a face beyond the submesh's fixed face count.
	ErrFacesFull = errors.New("submesh face capacity reached")

	// ErrEmptyVertexSet is returned when splitting a submesh that has no vertices.
	ErrEmptyVertexSet = errors.New("submesh has no vertices")

	// ErrVertexTriangleMismatch is returned when a face references a vertex outside the submesh.
	ErrVertexTriangleMismatch = errors.New("face references a vertex beyond the vertex count")

	// ErrInvalidBoneLimit is returned when a split is requested with a bone limit below one.
	ErrInvalidBoneLimit = errors.New("bone limit must be at least one")

	// ErrAnimationNotFound is returned when an animation name is not part of a model.
	ErrAnimationNotFound = errors.New("animation not found")

	// ErrMeshNotFound is returned when a mesh name is not part of a model.
	ErrMeshNotFound = errors.New("mesh not found")
)
