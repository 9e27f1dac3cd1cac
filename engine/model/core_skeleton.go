package model

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/logger"
	"github.com/sirupsen/logrus"
)

// CoreSkeleton is the immutable bone hierarchy shared by every instance of a model.
// Bones are stored in topological order: a bone's parent, if any, always has a lower index.
type CoreSkeleton struct {
	bones        []*CoreBone
	children     [][]int
	roots        []int
	nameToID     map[string]int
	translation  []int
	ambientColor common.Color32
}

// NewCoreSkeleton builds a topologically sorted skeleton from candidate bones.
// Each candidate's ParentID refers to the original index of its parent in bones, or NoParent.
// Parents that point at the bone itself, fall outside the slice, or close a cycle are demoted to
// NoParent. Roots keep their original relative order and children follow their parent in
// original order. The old-to-new index mapping is kept as the bone-id translation table.
//
// Parameters:
//   - bones: the candidate bones, consumed by the skeleton
//
// Returns:
//   - *CoreSkeleton: the sorted skeleton
func NewCoreSkeleton(bones []*CoreBone) *CoreSkeleton {
	log := logger.Component("core_skeleton")
	n := len(bones)

	parents := make([]int, n)
	for i, b := range bones {
		p := b.ParentID
		if p == i || p < NoParent || p >= n {
			log.WithFields(logrus.Fields{"bone": b.Name, "parent": p}).Debug("invalid parent, demoting bone to root")
			p = NoParent
		}
		parents[i] = p
	}

	// 0 = unvisited, 1 = on the current parent walk, 2 = known to reach a root
	state := make([]uint8, n)
	path := make([]int, 0, n)
	for i := range n {
		path = path[:0]
		j := i
		for j != NoParent && state[j] == 0 {
			state[j] = 1
			path = append(path, j)
			j = parents[j]
		}
		if j != NoParent && state[j] == 1 {
			log.WithFields(logrus.Fields{"bone": bones[j].Name, "parent": parents[j]}).Debug("parent cycle, demoting bone to root")
			parents[j] = NoParent
		}
		for _, k := range path {
			state[k] = 2
		}
	}

	origChildren := make([][]int, n)
	var origRoots []int
	for i, p := range parents {
		if p == NoParent {
			origRoots = append(origRoots, i)
		} else {
			origChildren[p] = append(origChildren[p], i)
		}
	}

	order := make([]int, 0, n)
	stack := make([]int, 0, n)
	for _, r := range origRoots {
		stack = append(stack, r)
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			order = append(order, top)
			kids := origChildren[top]
			for k := len(kids) - 1; k >= 0; k-- {
				stack = append(stack, kids[k])
			}
		}
	}

	translation := make([]int, n)
	for newID, oldID := range order {
		translation[oldID] = newID
	}

	s := &CoreSkeleton{
		bones:       make([]*CoreBone, n),
		children:    make([][]int, n),
		nameToID:    make(map[string]int, n),
		translation: translation,
	}
	for newID, oldID := range order {
		b := bones[oldID]
		if parents[oldID] == NoParent {
			b.ParentID = NoParent
			s.roots = append(s.roots, newID)
		} else {
			b.ParentID = translation[parents[oldID]]
			s.children[b.ParentID] = append(s.children[b.ParentID], newID)
		}
		s.bones[newID] = b
	}
	for oldID, b := range bones {
		s.nameToID[b.Name] = translation[oldID]
	}
	return s
}

// AddCoreBone appends a bone after construction.
// The parent must already be part of the skeleton, otherwise the bone becomes a root.
// The translation table is extended with an identity entry.
//
// Parameters:
//   - bone: the bone to append
//
// Returns:
//   - int: the new bone's id
func (s *CoreSkeleton) AddCoreBone(bone *CoreBone) int {
	id := len(s.bones)
	if bone.ParentID < 0 || bone.ParentID >= id {
		if bone.ParentID != NoParent {
			logger.Component("core_skeleton").WithFields(logrus.Fields{"bone": bone.Name, "parent": bone.ParentID}).Debug("invalid parent, demoting bone to root")
		}
		bone.ParentID = NoParent
		s.roots = append(s.roots, id)
	} else {
		s.children[bone.ParentID] = append(s.children[bone.ParentID], id)
	}
	s.bones = append(s.bones, bone)
	s.children = append(s.children, nil)
	s.translation = append(s.translation, id)
	s.nameToID[bone.Name] = id
	return id
}

// CoreBoneID looks up a bone id by name.
//
// Parameters:
//   - name: the bone name
//
// Returns:
//   - int: the bone id, or NoParent on a miss
//   - error: ErrBoneNotFound if no bone has the name
func (s *CoreSkeleton) CoreBoneID(name string) (int, error) {
	id, ok := s.nameToID[name]
	if !ok {
		return NoParent, fmt.Errorf("core bone %q: %w", name, ErrBoneNotFound)
	}
	return id, nil
}

// CoreBoneByName looks up a bone by name.
//
// Parameters:
//   - name: the bone name
//
// Returns:
//   - *CoreBone: the bone, or nil on a miss
//   - error: ErrBoneNotFound if no bone has the name
func (s *CoreSkeleton) CoreBoneByName(name string) (*CoreBone, error) {
	id, err := s.CoreBoneID(name)
	if err != nil {
		return nil, err
	}
	return s.bones[id], nil
}

// MapCoreBoneName points name at the given bone id, overwriting any previous mapping.
//
// Parameters:
//   - id: the bone id
//   - name: the name to map
//
// Returns:
//   - bool: false if id is out of range
func (s *CoreSkeleton) MapCoreBoneName(id int, name string) bool {
	if id < 0 || id >= len(s.bones) {
		return false
	}
	s.nameToID[name] = id
	return true
}

// CoreBone returns the bone at id, or nil if id is out of range.
func (s *CoreSkeleton) CoreBone(id int) *CoreBone {
	if id < 0 || id >= len(s.bones) {
		return nil
	}
	return s.bones[id]
}

// CoreBones returns the bones in topological order.
func (s *CoreSkeleton) CoreBones() []*CoreBone {
	return s.bones
}

// BoneCount returns the number of bones.
func (s *CoreSkeleton) BoneCount() int {
	return len(s.bones)
}

// RootCoreBoneIDs returns the ids of all bones without a parent.
func (s *CoreSkeleton) RootCoreBoneIDs() []int {
	return s.roots
}

// ChildCoreBoneIDs returns the ids of the direct children of a bone.
func (s *CoreSkeleton) ChildCoreBoneIDs(id int) []int {
	if id < 0 || id >= len(s.children) {
		return nil
	}
	return s.children[id]
}

// BoneIDTranslation returns the old-index to new-index table produced by sorting.
func (s *CoreSkeleton) BoneIDTranslation() []int {
	return s.translation
}

// SceneAmbientColor returns the scene ambient color attribute.
func (s *CoreSkeleton) SceneAmbientColor() common.Color32 {
	return s.ambientColor
}

// SetSceneAmbientColor sets the scene ambient color attribute.
func (s *CoreSkeleton) SetSceneAmbientColor(c common.Color32) {
	s.ambientColor = c
}

// Scale multiplies every bone's translations by factor.
//
// Parameters:
//   - factor: the uniform scale factor
func (s *CoreSkeleton) Scale(factor float32) {
	for _, b := range s.bones {
		b.Scale(factor)
	}
}

// CalculateBoneSpace derives every bone's bone-space transform as the inverse of its absolute
// bind-pose transform. Parents are always resolved before children because of the sort order.
func (s *CoreSkeleton) CalculateBoneSpace() {
	absolute := make([]Transform, len(s.bones))
	for i, b := range s.bones {
		if b.HasParent() {
			absolute[i] = absolute[b.ParentID].Mul(b.LocalTransform())
		} else {
			absolute[i] = b.LocalTransform()
		}
		inv := absolute[i].Invert()
		b.RotationBoneSpace = inv.Rotation
		b.TranslationBoneSpace = inv.Translation
	}
}
