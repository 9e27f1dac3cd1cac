package instance

import (
	"fmt"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-rig/engine/animator"
	"github.com/Carmen-Shannon/oxy-rig/engine/logger"
	"github.com/Carmen-Shannon/oxy-rig/engine/model"
	"github.com/Carmen-Shannon/oxy-rig/engine/skeleton"
	"github.com/Carmen-Shannon/oxy-rig/engine/skinning"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

type instance struct {
	id      uint64
	enabled atomic.Bool

	mdl    model.Model
	skel   *skeleton.Skeleton
	mixer  animator.Mixer
	kernel skinning.Kernel
	log    *logrus.Entry

	transformAdjustments []animator.BoneTransformAdjustment
	scaleAdjustments     []animator.BoneScaleAdjustment

	// buffers[mesh][submesh] holds the skinned position/normal pairs.
	buffers [][][]mgl32.Vec3
}

// Instance is one animated copy of a Model. It owns a runtime skeleton, a mixer of active
// animations, and the skinned vertex buffers for every submesh of the model.
//
// An Instance is not safe for concurrent use. A scene processes each instance from a single task.
type Instance interface {
	// ID returns the unique identifier of the instance.
	//
	// Returns:
	//   - uint64: the instance ID
	ID() uint64

	// SetID sets the unique identifier of the instance.
	//
	// Parameters:
	//   - id: the new ID
	SetID(id uint64)

	// Enabled reports whether the instance is updated by its scene.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled enables or disables the instance.
	//
	// Parameters:
	//   - enabled: the new enabled state
	SetEnabled(enabled bool)

	// Model returns the shared model this instance animates.
	//
	// Returns:
	//   - model.Model: the model
	Model() model.Model

	// Skeleton returns the runtime skeleton, or nil if the model has no skeleton.
	//
	// Returns:
	//   - *skeleton.Skeleton: the runtime skeleton
	Skeleton() *skeleton.Skeleton

	// Mixer returns the animation mixer.
	//
	// Returns:
	//   - animator.Mixer: the mixer
	Mixer() animator.Mixer

	// Kernel returns the skinning kernel used by Skin.
	//
	// Returns:
	//   - skinning.Kernel: the kernel
	Kernel() skinning.Kernel

	// Play starts the named animation of the model and adds it to the mixer.
	//
	// Parameters:
	//   - name: the core animation name
	//   - options: options applied to the new animation
	//
	// Returns:
	//   - *animator.Animation: the active animation
	//   - error: wraps model.ErrAnimationNotFound if no animation has that name
	Play(name string, options ...animator.AnimationBuilderOption) (*animator.Animation, error)

	// Stop removes an active animation. With a positive fadeOut it ramps the animation to zero
	// over that many seconds instead, and the mixer removes it once the ramp completes.
	//
	// Parameters:
	//   - anim: the animation to stop
	//   - fadeOut: fade duration in seconds, or 0 to remove immediately
	//
	// Returns:
	//   - bool: true if the animation was active
	Stop(anim *animator.Animation, fadeOut float32) bool

	// SetBoneAdjustments replaces the bone adjustments applied on every Update.
	// Adjustment bone ids are not validated.
	//
	// Parameters:
	//   - transforms: per-bone orientation/translation adjustments
	//   - scales: per-bone mesh scale adjustments
	SetBoneAdjustments(transforms []animator.BoneTransformAdjustment, scales []animator.BoneScaleAdjustment)

	// Update advances the mixer by deltaTime seconds and recalculates the skeleton pose.
	//
	// Parameters:
	//   - deltaTime: elapsed time in seconds
	Update(deltaTime float32)

	// Skin writes the current pose of every submesh into the instance's vertex buffers.
	//
	// Returns:
	//   - int: the number of vertices skinned
	Skin() int

	// Vertices returns the skinned buffer of a submesh: the position of vertex i at 2*i and its
	// normal at 2*i+1. Returns nil for an out-of-range mesh or submesh index.
	//
	// Parameters:
	//   - mesh: the mesh index
	//   - submesh: the submesh index within the mesh
	//
	// Returns:
	//   - []mgl32.Vec3: the skinned buffer
	Vertices(mesh, submesh int) []mgl32.Vec3
}

var _ Instance = &instance{}

// NewInstance creates an Instance of the given model configured with the given options.
// The instance starts enabled, in the bind pose, with the kernel picked by skinning.DetectKernelType.
//
// Parameters:
//   - m: the model to animate
//   - options: functional options to configure the instance
//
// Returns:
//   - Instance: the newly created instance
func NewInstance(m model.Model, options ...InstanceBuilderOption) Instance {
	if m == nil {
		panic("instance: model must not be nil")
	}

	inst := &instance{
		mdl: m,
	}
	inst.enabled.Store(true)
	for _, option := range options {
		option(inst)
	}

	if inst.log == nil {
		inst.log = logger.Component("instance")
	}
	if inst.kernel == nil {
		inst.kernel = skinning.NewKernel(skinning.DetectKernelType())
	}
	if inst.mixer == nil {
		inst.mixer = animator.NewMixer(animator.WithLogger(inst.log))
	}
	if core := m.CoreSkeleton(); core != nil {
		inst.skel = skeleton.NewSkeleton(core)
	}

	meshes := m.CoreMeshes()
	inst.buffers = make([][][]mgl32.Vec3, len(meshes))
	for i, mesh := range meshes {
		submeshes := mesh.CoreSubmeshes()
		inst.buffers[i] = make([][]mgl32.Vec3, len(submeshes))
		for j, sm := range submeshes {
			inst.buffers[i][j] = make([]mgl32.Vec3, skinning.OutputSize(sm.VertexCapacity()))
		}
	}

	inst.log.WithFields(logrus.Fields{
		"id":     inst.id,
		"model":  m.Name(),
		"kernel": inst.kernel.Type().String(),
	}).Debug("instance created")
	return inst
}

func (i *instance) ID() uint64 {
	return i.id
}

func (i *instance) SetID(id uint64) {
	i.id = id
}

func (i *instance) Enabled() bool {
	return i.enabled.Load()
}

func (i *instance) SetEnabled(enabled bool) {
	i.enabled.Store(enabled)
}

func (i *instance) Model() model.Model {
	return i.mdl
}

func (i *instance) Skeleton() *skeleton.Skeleton {
	return i.skel
}

func (i *instance) Mixer() animator.Mixer {
	return i.mixer
}

func (i *instance) Kernel() skinning.Kernel {
	return i.kernel
}

func (i *instance) Play(name string, options ...animator.AnimationBuilderOption) (*animator.Animation, error) {
	core, err := i.mdl.CoreAnimation(name)
	if err != nil {
		return nil, fmt.Errorf("instance %d: play: %w", i.id, err)
	}
	anim := animator.NewAnimation(core, options...)
	i.mixer.AddManualAnimation(anim)
	return anim, nil
}

func (i *instance) Stop(anim *animator.Animation, fadeOut float32) bool {
	if fadeOut <= 0 {
		return i.mixer.RemoveManualAnimation(anim)
	}
	for _, a := range i.mixer.ActiveAnimations() {
		if a == anim {
			anim.FadeOut(fadeOut)
			return true
		}
	}
	return false
}

func (i *instance) SetBoneAdjustments(transforms []animator.BoneTransformAdjustment, scales []animator.BoneScaleAdjustment) {
	i.transformAdjustments = transforms
	i.scaleAdjustments = scales
}

func (i *instance) Update(deltaTime float32) {
	i.mixer.UpdateAnimation(deltaTime)
	if i.skel == nil {
		return
	}
	i.mixer.UpdateSkeleton(i.skel, i.transformAdjustments, i.scaleAdjustments)
}

func (i *instance) Skin() int {
	var bones []model.BoneTransform
	if i.skel != nil {
		bones = i.skel.BoneTransforms()
	}

	total := 0
	for m, mesh := range i.mdl.CoreMeshes() {
		for s, sm := range mesh.CoreSubmeshes() {
			out := i.buffers[m][s]
			if len(bones) == 0 {
				i.kernel.Transform(model.IdentityBoneTransform(), sm.VertexCount(), sm.Vertices(), out)
			} else {
				skinning.SkinSubmesh(i.kernel, bones, sm, out)
			}
			total += sm.VertexCount()
		}
	}
	return total
}

func (i *instance) Vertices(mesh, submesh int) []mgl32.Vec3 {
	if mesh < 0 || mesh >= len(i.buffers) {
		return nil
	}
	if submesh < 0 || submesh >= len(i.buffers[mesh]) {
		return nil
	}
	n := i.mdl.CoreMeshes()[mesh].CoreSubmeshes()[submesh].VertexCount()
	return i.buffers[mesh][submesh][:skinning.OutputSize(n)]
}
