package model

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/logger"
	"github.com/sirupsen/logrus"
)

// model is the implementation of the Model interface.
type model struct {
	name           string
	skeleton       *CoreSkeleton
	animations     []*CoreAnimation
	meshes         []*CoreMesh
	scale          float32
	boneSpace      bool
	boundingRadius float32
}

// Model defines the interface for a rigged model's shared reference data.
// A Model bundles a CoreSkeleton with the animations and meshes that refer to its bones.
// Bone ids in animations and meshes are remapped through the skeleton's translation table once,
// inside NewModel. After construction the data is read-only and may be shared by any number of
// instances across goroutines.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Skinned reports whether this model has a skeleton with at least one bone.
	//
	// Returns:
	//   - bool: true if the model has bone data
	Skinned() bool

	// CoreSkeleton retrieves the bone hierarchy for this model.
	// Returns nil for models built without a skeleton.
	//
	// Returns:
	//   - *CoreSkeleton: the skeleton or nil
	CoreSkeleton() *CoreSkeleton

	// CoreAnimations retrieves all animations bundled with this model.
	//
	// Returns:
	//   - []*CoreAnimation: the animations
	CoreAnimations() []*CoreAnimation

	// CoreAnimation retrieves an animation by name.
	//
	// Parameters:
	//   - name: the animation name
	//
	// Returns:
	//   - *CoreAnimation: the animation
	//   - error: ErrAnimationNotFound if no animation has the name
	CoreAnimation(name string) (*CoreAnimation, error)

	// AnimationCount returns the number of available animations.
	//
	// Returns:
	//   - int: the animation count
	AnimationCount() int

	// AnimationNames returns the names of all animations.
	//
	// Returns:
	//   - []string: the animation names
	AnimationNames() []string

	// GetAnimationIndex returns the index of an animation by name, or -1 if not found.
	//
	// Parameters:
	//   - name: the animation name to search for
	//
	// Returns:
	//   - int: the animation index, or -1 if not found
	GetAnimationIndex(name string) int

	// CoreMeshes retrieves all meshes bundled with this model.
	//
	// Returns:
	//   - []*CoreMesh: the meshes
	CoreMeshes() []*CoreMesh

	// CoreMesh retrieves a mesh by name.
	//
	// Parameters:
	//   - name: the mesh name
	//
	// Returns:
	//   - *CoreMesh: the mesh
	//   - error: ErrMeshNotFound if no mesh has the name
	CoreMesh(name string) (*CoreMesh, error)

	// BoundingRadius returns the bind-pose bounding sphere radius, measured as the maximum
	// vertex distance from the origin.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32
}

var _ Model = &model{}

// NewModel creates a new Model with the specified options applied.
// Once the options are applied the model scales its data if requested, derives bone-space
// transforms if requested, and fixes up every animation and mesh against the skeleton.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}

	m.scale = common.Coalesce(m.scale, 1)
	if m.scale != 1 {
		if m.skeleton != nil {
			m.skeleton.Scale(m.scale)
		}
		for _, a := range m.animations {
			a.Scale(m.scale)
		}
		for _, mesh := range m.meshes {
			mesh.Scale(m.scale)
		}
	}

	if m.skeleton != nil {
		if m.boneSpace {
			m.skeleton.CalculateBoneSpace()
		}
		for _, a := range m.animations {
			a.Fixup(m.skeleton)
		}
		for _, mesh := range m.meshes {
			mesh.Fixup(m.skeleton)
		}
	}

	m.boundingRadius = computeBoundingRadius(m.meshes)

	logger.Component("model").WithFields(logrus.Fields{
		"model":      m.name,
		"animations": len(m.animations),
		"meshes":     len(m.meshes),
	}).Debug("model constructed")
	return m
}

func computeBoundingRadius(meshes []*CoreMesh) float32 {
	var maxDistSq float32
	for _, mesh := range meshes {
		for _, sm := range mesh.CoreSubmeshes() {
			for _, v := range sm.Vertices() {
				maxDistSq = max(maxDistSq, v.Position.Dot(v.Position))
			}
		}
	}
	return float32(math.Sqrt(float64(maxDistSq)))
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Skinned() bool {
	return m.skeleton != nil && m.skeleton.BoneCount() > 0
}

func (m *model) CoreSkeleton() *CoreSkeleton {
	return m.skeleton
}

func (m *model) CoreAnimations() []*CoreAnimation {
	return m.animations
}

func (m *model) CoreAnimation(name string) (*CoreAnimation, error) {
	idx := m.GetAnimationIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("model %q animation %q: %w", m.name, name, ErrAnimationNotFound)
	}
	return m.animations[idx], nil
}

func (m *model) AnimationCount() int {
	return len(m.animations)
}

func (m *model) AnimationNames() []string {
	names := make([]string, len(m.animations))
	for i, anim := range m.animations {
		names[i] = anim.Name
	}
	return names
}

func (m *model) GetAnimationIndex(name string) int {
	for i, anim := range m.animations {
		if anim.Name == name {
			return i
		}
	}
	return -1
}

func (m *model) CoreMeshes() []*CoreMesh {
	return m.meshes
}

func (m *model) CoreMesh(name string) (*CoreMesh, error) {
	for _, mesh := range m.meshes {
		if mesh.Name == name {
			return mesh, nil
		}
	}
	return nil, fmt.Errorf("model %q mesh %q: %w", m.name, name, ErrMeshNotFound)
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}
