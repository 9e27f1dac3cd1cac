// package animator blends concurrently playing animations into a runtime skeleton.
package animator

import (
	"github.com/Carmen-Shannon/oxy-rig/engine/model"
)

// CompositionFunction selects how an animation's contribution merges with the others.
// The mixer orders active animations Replace first, then CrossFade, then Average.
type CompositionFunction int

const (
	// CompositionReplace blends as a replacement and attenuates every lower priority animation.
	CompositionReplace CompositionFunction = iota

	// CompositionCrossFade blends as a replacement but ranks after every Replace animation.
	CompositionCrossFade

	// CompositionAverage blends additively into whatever weight higher priority animations left.
	CompositionAverage
)

// String returns the name of the composition function.
func (c CompositionFunction) String() string {
	switch c {
	case CompositionReplace:
		return "replace"
	case CompositionCrossFade:
		return "crossfade"
	case CompositionAverage:
		return "average"
	default:
		return "unknown"
	}
}

// AnimationAttributes is the per-frame blend state of an active animation.
type AnimationAttributes struct {
	// Time is the playback position in seconds.
	Time float32

	// Weight is the blend weight before ramping.
	Weight float32

	// Scale limits how far the animation can pull a bone away from higher priority poses.
	Scale float32

	// RampValue is the fade multiplier applied on top of Weight.
	RampValue float32

	// CompositionFunction is the merge rule and priority class.
	CompositionFunction CompositionFunction
}

// Animation is one playing instance of a CoreAnimation.
// It belongs to a single mixer and must not be shared between instances.
type Animation struct {
	coreAnimation *model.CoreAnimation
	attributes    AnimationAttributes
	speed         float32
	loop          bool

	fadeTarget float32
	fadeRate   float32
	stopping   bool
}

// NewAnimation creates an animation instance with the specified options applied.
// Defaults are time 0, weight 1, scale 1, ramp value 1, Replace composition, speed 1 and no loop.
//
// Parameters:
//   - core: the shared animation data
//   - options: a variadic list of AnimationBuilderOption functions to configure the Animation
//
// Returns:
//   - *Animation: the new animation instance
func NewAnimation(core *model.CoreAnimation, options ...AnimationBuilderOption) *Animation {
	a := &Animation{
		coreAnimation: core,
		attributes: AnimationAttributes{
			Weight:              1,
			Scale:               1,
			RampValue:           1,
			CompositionFunction: CompositionReplace,
		},
		speed: 1,
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

// CoreAnimation returns the shared animation data.
func (a *Animation) CoreAnimation() *model.CoreAnimation {
	return a.coreAnimation
}

// Attributes returns the current blend state.
func (a *Animation) Attributes() AnimationAttributes {
	return a.attributes
}

// Time returns the playback position in seconds.
func (a *Animation) Time() float32 {
	return a.attributes.Time
}

// Weight returns the blend weight.
func (a *Animation) Weight() float32 {
	return a.attributes.Weight
}

// Scale returns the blend scale.
func (a *Animation) Scale() float32 {
	return a.attributes.Scale
}

// RampValue returns the fade multiplier.
func (a *Animation) RampValue() float32 {
	return a.attributes.RampValue
}

// CompositionFunction returns the merge rule.
func (a *Animation) CompositionFunction() CompositionFunction {
	return a.attributes.CompositionFunction
}

// Speed returns the playback rate multiplier.
func (a *Animation) Speed() float32 {
	return a.speed
}

// SetSpeed sets the playback rate multiplier.
func (a *Animation) SetSpeed(speed float32) {
	a.speed = speed
}

// Loop reports whether playback wraps at the end of the animation.
func (a *Animation) Loop() bool {
	return a.loop
}

// SetLoop sets whether playback wraps at the end of the animation.
func (a *Animation) SetLoop(loop bool) {
	a.loop = loop
}

// Fade moves the ramp value linearly to target over duration seconds of mixer time.
// A non-positive duration applies target immediately.
//
// Parameters:
//   - target: the ramp value to reach
//   - duration: the fade length in seconds
func (a *Animation) Fade(target, duration float32) {
	if duration <= 0 {
		a.attributes.RampValue = target
		a.fadeRate = 0
		return
	}
	a.fadeTarget = target
	a.fadeRate = abs(target-a.attributes.RampValue) / duration
}

// FadeOut ramps the animation to zero over duration seconds, after which the mixer removes it.
func (a *Animation) FadeOut(duration float32) {
	a.stopping = true
	a.Fade(0, duration)
}

// Fading reports whether a fade is in progress.
func (a *Animation) Fading() bool {
	return a.fadeRate > 0
}

// advance moves time and ramp forward and reports whether the animation has finished.
func (a *Animation) advance(deltaTime float32) bool {
	a.attributes.Time += deltaTime * a.speed
	duration := a.coreAnimation.Duration

	// a zero-length animation is a pose and never finishes on its own
	finished := false
	if duration <= 0 {
		a.attributes.Time = 0
	} else if a.loop {
		if a.attributes.Time > duration || a.attributes.Time < 0 {
			a.attributes.Time = wrap(a.attributes.Time, duration)
		}
	} else if a.speed >= 0 && a.attributes.Time >= duration {
		a.attributes.Time = duration
		finished = true
	} else if a.speed < 0 && a.attributes.Time <= 0 {
		a.attributes.Time = 0
		finished = true
	}

	if a.fadeRate > 0 {
		step := a.fadeRate * deltaTime
		ramp := a.attributes.RampValue
		if abs(a.fadeTarget-ramp) <= step {
			ramp = a.fadeTarget
			a.fadeRate = 0
		} else if a.fadeTarget > ramp {
			ramp += step
		} else {
			ramp -= step
		}
		a.attributes.RampValue = ramp
	}

	if a.stopping && a.fadeRate == 0 && a.attributes.RampValue <= 0 {
		finished = true
	}
	return finished
}
