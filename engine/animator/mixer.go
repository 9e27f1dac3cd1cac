package animator

import (
	"slices"

	"github.com/Carmen-Shannon/oxy-rig/engine/logger"
	"github.com/Carmen-Shannon/oxy-rig/engine/model"
	"github.com/Carmen-Shannon/oxy-rig/engine/skeleton"
	"github.com/sirupsen/logrus"
)

// mixer is the implementation of the Mixer interface.
type mixer struct {
	animations []*Animation
	log        *logrus.Entry
}

// Mixer composes the active animations of one model instance into its runtime skeleton.
//
// Active animations are kept in priority order: Replace entries first, then CrossFade, then
// Average. Within a class the most recently inserted entry comes first. A Mixer is owned by a
// single instance and is not safe for concurrent use.
type Mixer interface {
	// AddManualAnimation inserts an animation at the front of its composition class, giving it the
	// highest priority within that class.
	//
	// Parameters:
	//   - a: the animation to add
	AddManualAnimation(a *Animation)

	// RemoveManualAnimation removes an animation by identity.
	//
	// Parameters:
	//   - a: the animation to remove
	//
	// Returns:
	//   - bool: true if the animation was active
	RemoveManualAnimation(a *Animation) bool

	// SetManualAnimationAttributes replaces an animation's blend state.
	// When the composition function changes, the animation moves to the front of its new class:
	// the very front for Replace, after the last Replace for CrossFade, and after the last
	// non-Average entry for Average. The relative order of every other entry is kept.
	// An animation that is not active is added to the mixer when its class changes.
	//
	// Parameters:
	//   - a: the animation to update
	//   - attrs: the new blend state
	SetManualAnimationAttributes(a *Animation, attrs AnimationAttributes)

	// ActiveAnimations returns the active animations in priority order.
	// The slice is owned by the mixer and changes on the next mutation.
	//
	// Returns:
	//   - []*Animation: the active animations
	ActiveAnimations() []*Animation

	// UpdateAnimation advances every active animation by deltaTime scaled by its speed.
	// Looping animations wrap at their duration and fades progress. Non-looping animations that
	// reach their end, and animations that have faded out, are removed.
	//
	// Parameters:
	//   - deltaTime: the elapsed time in seconds
	//
	// Returns:
	//   - []*Animation: the animations removed by this call
	UpdateAnimation(deltaTime float32) []*Animation

	// UpdateSkeleton runs the blend pass for one frame.
	// The skeleton is cleared, the adjustments are applied as full weight Replace contributions,
	// every active animation's tracks are sampled and blended in priority order, and finally the
	// skeleton is locked and its absolute transforms calculated. Tracks whose bone id is outside
	// the skeleton are skipped. Adjustment bone ids are not range checked.
	//
	// Parameters:
	//   - skel: the runtime skeleton to write
	//   - boneTransformAdjustments: direct local pose overrides
	//   - boneScaleAdjustments: bone-space mesh scale overrides
	UpdateSkeleton(skel *skeleton.Skeleton, boneTransformAdjustments []BoneTransformAdjustment, boneScaleAdjustments []BoneScaleAdjustment)
}

var _ Mixer = &mixer{}

// NewMixer creates a new Mixer with the specified options applied.
//
// Parameters:
//   - options: a variadic list of MixerBuilderOption functions to configure the Mixer
//
// Returns:
//   - Mixer: a new instance of Mixer configured with the provided options
func NewMixer(options ...MixerBuilderOption) Mixer {
	m := &mixer{}
	for _, opt := range options {
		opt(m)
	}
	if m.log == nil {
		m.log = logger.Component("mixer")
	}
	return m
}

func (m *mixer) AddManualAnimation(a *Animation) {
	m.insert(a)
}

func (m *mixer) RemoveManualAnimation(a *Animation) bool {
	idx := slices.Index(m.animations, a)
	if idx < 0 {
		return false
	}
	m.animations = slices.Delete(m.animations, idx, idx+1)
	return true
}

func (m *mixer) SetManualAnimationAttributes(a *Animation, attrs AnimationAttributes) {
	previous := a.attributes.CompositionFunction
	a.attributes = attrs
	if previous == attrs.CompositionFunction {
		return
	}
	m.RemoveManualAnimation(a)
	m.insert(a)
}

func (m *mixer) ActiveAnimations() []*Animation {
	return m.animations
}

func (m *mixer) UpdateAnimation(deltaTime float32) []*Animation {
	var finished []*Animation
	kept := m.animations[:0]
	for _, a := range m.animations {
		if a.advance(deltaTime) {
			finished = append(finished, a)
			m.log.WithFields(logrus.Fields{"animation": a.coreAnimation.Name, "time": a.attributes.Time}).Debug("animation finished")
			continue
		}
		kept = append(kept, a)
	}
	clear(m.animations[len(kept):])
	m.animations = kept
	return finished
}

func (m *mixer) UpdateSkeleton(skel *skeleton.Skeleton, boneTransformAdjustments []BoneTransformAdjustment, boneScaleAdjustments []BoneScaleAdjustment) {
	skel.ClearState()

	// adjustments go first so every animation blends under them
	m.applyBoneAdjustments(skel, boneTransformAdjustments, boneScaleAdjustments)

	boneCount := skel.BoneCount()
	for _, a := range m.animations {
		replace := a.attributes.CompositionFunction != CompositionAverage
		for _, track := range a.coreAnimation.CoreTracks() {
			if track.CoreBoneID < 0 || track.CoreBoneID >= boneCount {
				continue
			}
			skel.Bone(track.CoreBoneID).BlendState(
				a.attributes.Weight,
				track.State(a.attributes.Time),
				a.attributes.Scale,
				replace,
				a.attributes.RampValue,
			)
		}
	}

	skel.LockState()
	skel.CalculateState()
}

func (m *mixer) applyBoneAdjustments(skel *skeleton.Skeleton, transforms []BoneTransformAdjustment, scales []BoneScaleAdjustment) {
	for _, adj := range transforms {
		bone := skel.Bone(adj.BoneID)
		translation := bone.OriginalTranslation()
		if adj.LocalTranslation != nil {
			translation = *adj.LocalTranslation
		}
		bone.BlendState(1, model.Transform{Rotation: adj.LocalOrientation, Translation: translation}, 1, true, adj.RampValue)
	}
	for _, adj := range scales {
		skel.Bone(adj.BoneID).SetMeshScaleAbsolute(adj.MeshScaleAbsolute)
	}
}

// insert places a at the front of its composition class.
func (m *mixer) insert(a *Animation) {
	idx := len(m.animations)
	switch a.attributes.CompositionFunction {
	case CompositionReplace:
		idx = 0
	case CompositionCrossFade:
		if i := slices.IndexFunc(m.animations, func(o *Animation) bool {
			return o.attributes.CompositionFunction != CompositionReplace
		}); i >= 0 {
			idx = i
		}
	default:
		if i := slices.IndexFunc(m.animations, func(o *Animation) bool {
			return o.attributes.CompositionFunction == CompositionAverage
		}); i >= 0 {
			idx = i
		}
	}
	m.animations = slices.Insert(m.animations, idx, a)
}
