package model

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithSkeleton is an option builder that sets the bone hierarchy of the Model.
// Animations and meshes are fixed up against this skeleton when the Model is built.
//
// Parameters:
//   - skeleton: the skeleton to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the skeleton option to a model
func WithSkeleton(skeleton *CoreSkeleton) ModelBuilderOption {
	return func(m *model) {
		m.skeleton = skeleton
	}
}

// WithAnimations is an option builder that appends animations to the Model.
//
// Parameters:
//   - animations: the animations to add
//
// Returns:
//   - ModelBuilderOption: a function that applies the animations option to a model
func WithAnimations(animations ...*CoreAnimation) ModelBuilderOption {
	return func(m *model) {
		m.animations = append(m.animations, animations...)
	}
}

// WithMeshes is an option builder that appends meshes to the Model.
//
// Parameters:
//   - meshes: the meshes to add
//
// Returns:
//   - ModelBuilderOption: a function that applies the meshes option to a model
func WithMeshes(meshes ...*CoreMesh) ModelBuilderOption {
	return func(m *model) {
		m.meshes = append(m.meshes, meshes...)
	}
}

// WithScale is an option builder that uniformly scales the skeleton, animations and meshes
// when the Model is built. A factor of 0 or 1 leaves the data unchanged.
//
// Parameters:
//   - factor: the uniform scale factor
//
// Returns:
//   - ModelBuilderOption: a function that applies the scale option to a model
func WithScale(factor float32) ModelBuilderOption {
	return func(m *model) {
		m.scale = factor
	}
}

// WithBoneSpaceFromBindPose is an option builder that derives every bone's bone-space transform
// from the skeleton's bind pose when the Model is built, replacing any values set on the bones.
//
// Parameters:
//   - enabled: true to derive bone-space transforms
//
// Returns:
//   - ModelBuilderOption: a function that applies the bone space option to a model
func WithBoneSpaceFromBindPose(enabled bool) ModelBuilderOption {
	return func(m *model) {
		m.boneSpace = enabled
	}
}
