package scene

import (
	"github.com/Carmen-Shannon/oxy-rig/engine/instance"
	"github.com/sirupsen/logrus"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithInstances adds initial instances to the scene.
// Instances without IDs will be assigned new IDs. Nil instances are skipped.
//
// Parameters:
//   - instances: the instances to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithInstances(instances ...instance.Instance) SceneBuilderOption {
	return func(s *scene) {
		for _, inst := range instances {
			if inst != nil {
				s.register(inst)
			}
		}
	}
}

// WithComputeWorkers sets the number of worker goroutines Update fans instances out to.
// Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of compute workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithComputeWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.computeWorkers = n
	}
}

// WithSkinningDisabled makes Update advance animation and pose without skinning vertices.
// Useful when only bone transforms are consumed.
//
// Parameters:
//   - disabled: true to skip skinning
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSkinningDisabled(disabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.skinningDisabled = disabled
	}
}

// WithLogger sets the log entry the scene reports through.
//
// Parameters:
//   - log: the log entry to use
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLogger(log *logrus.Entry) SceneBuilderOption {
	return func(s *scene) {
		s.log = log
	}
}
