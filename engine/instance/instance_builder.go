package instance

import (
	"github.com/Carmen-Shannon/oxy-rig/engine/animator"
	"github.com/Carmen-Shannon/oxy-rig/engine/skinning"
	"github.com/sirupsen/logrus"
)

// InstanceBuilderOption is a functional option for configuring an Instance via NewInstance.
type InstanceBuilderOption func(*instance)

// WithID sets the ID of the Instance.
//
// Parameters:
//   - id: the unique identifier
//
// Returns:
//   - InstanceBuilderOption: a function that applies the ID option to an instance
func WithID(id uint64) InstanceBuilderOption {
	return func(i *instance) {
		i.id = id
	}
}

// WithEnabled sets whether the Instance starts enabled. Instances are enabled by default.
//
// Parameters:
//   - enabled: the initial enabled state
//
// Returns:
//   - InstanceBuilderOption: a function that applies the enabled option to an instance
func WithEnabled(enabled bool) InstanceBuilderOption {
	return func(i *instance) {
		i.enabled.Store(enabled)
	}
}

// WithKernelType sets the skinning kernel by type.
//
// Parameters:
//   - kernelType: the kernel implementation to use
//
// Returns:
//   - InstanceBuilderOption: a function that applies the kernel option to an instance
func WithKernelType(kernelType skinning.KernelType) InstanceBuilderOption {
	return func(i *instance) {
		i.kernel = skinning.NewKernel(kernelType)
	}
}

// WithKernel sets the skinning kernel.
//
// Parameters:
//   - k: the kernel to use
//
// Returns:
//   - InstanceBuilderOption: a function that applies the kernel option to an instance
func WithKernel(k skinning.Kernel) InstanceBuilderOption {
	return func(i *instance) {
		i.kernel = k
	}
}

// WithMixer sets the mixer that drives the instance's skeleton.
//
// Parameters:
//   - m: the mixer to use
//
// Returns:
//   - InstanceBuilderOption: a function that applies the mixer option to an instance
func WithMixer(m animator.Mixer) InstanceBuilderOption {
	return func(i *instance) {
		i.mixer = m
	}
}

// WithLogger sets the log entry the Instance and its default mixer report through.
//
// Parameters:
//   - log: the log entry to use
//
// Returns:
//   - InstanceBuilderOption: a function that applies the logger option to an instance
func WithLogger(log *logrus.Entry) InstanceBuilderOption {
	return func(i *instance) {
		i.log = log
	}
}
