package model

import (
	"fmt"
)

// SplitByBoneLimit partitions the submesh so that no part is influenced by more than limit bones.
// Faces are packed greedily in order into parts while the union of their bones fits. A face that
// alone exceeds the limit gets a part of its own. Each part carries the vertices its faces use, in
// first-use order, with faces and morph offsets remapped accordingly. A submesh that already fits,
// or has no faces, is returned as the only element.
//
// Parameters:
//   - limit: the maximum number of distinct bones per part
//
// Returns:
//   - []*CoreSubmesh: the parts
//   - error: ErrInvalidBoneLimit, ErrEmptyVertexSet or ErrVertexTriangleMismatch
func (s *CoreSubmesh) SplitByBoneLimit(limit int) ([]*CoreSubmesh, error) {
	if limit < 1 {
		return nil, fmt.Errorf("split with limit %d: %w", limit, ErrInvalidBoneLimit)
	}
	if len(s.vertices) == 0 {
		return nil, fmt.Errorf("split: %w", ErrEmptyVertexSet)
	}
	if !s.HasValidFaces() {
		return nil, fmt.Errorf("split: %w", ErrVertexTriangleMismatch)
	}

	all := make(map[int]struct{})
	for _, inf := range s.influences {
		all[inf.BoneID] = struct{}{}
	}
	if len(all) <= limit || len(s.faces) == 0 {
		return []*CoreSubmesh{s}, nil
	}

	var buckets [][]Face
	var current []Face
	bones := make(map[int]struct{})
	for _, f := range s.faces {
		faceBones := make(map[int]struct{})
		for _, v := range f {
			for _, inf := range s.VertexInfluences(v) {
				faceBones[inf.BoneID] = struct{}{}
			}
		}
		added := 0
		for b := range faceBones {
			if _, ok := bones[b]; !ok {
				added++
			}
		}
		if len(current) > 0 && len(bones)+added > limit {
			buckets = append(buckets, current)
			current = nil
			clear(bones)
		}
		current = append(current, f)
		for b := range faceBones {
			bones[b] = struct{}{}
		}
	}
	buckets = append(buckets, current)

	parts := make([]*CoreSubmesh, 0, len(buckets))
	for _, faces := range buckets {
		parts = append(parts, s.extract(faces))
	}
	return parts, nil
}

// extract builds a new submesh from a subset of faces.
func (s *CoreSubmesh) extract(faces []Face) *CoreSubmesh {
	remap := make(map[int]int)
	var order []int
	for _, f := range faces {
		for _, v := range f {
			if _, ok := remap[v]; !ok {
				remap[v] = len(order)
				order = append(order, v)
			}
		}
	}

	part := NewCoreSubmesh(len(order), s.HasTextureCoordinates(), len(faces))
	for newID, oldID := range order {
		// capacity matches len(order), so AddVertex cannot fail
		_ = part.AddVertex(s.vertices[oldID], s.colors[oldID], s.VertexInfluences(oldID))
		if s.HasTextureCoordinates() {
			part.SetTextureCoordinate(newID, s.texCoords[oldID])
		}
	}
	for _, f := range faces {
		_ = part.AddFace(Face{remap[f[0]], remap[f[1]], remap[f[2]]})
	}
	for _, mt := range s.morphTargets {
		var offsets []VertexOffset
		for _, off := range mt.Offsets {
			if newID, ok := remap[off.VertexID]; ok {
				off.VertexID = newID
				offsets = append(offsets, off)
			}
		}
		part.AddMorphTarget(NewCoreMorphTarget(mt.Name, offsets...))
	}
	return part
}
