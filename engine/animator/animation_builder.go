package animator

// AnimationBuilderOption is a functional option for configuring an Animation via NewAnimation.
type AnimationBuilderOption func(*Animation)

// WithAttributes is an option builder that sets the full blend state of the Animation.
//
// Parameters:
//   - attrs: the blend state to set
//
// Returns:
//   - AnimationBuilderOption: a function that applies the attributes option to an animation
func WithAttributes(attrs AnimationAttributes) AnimationBuilderOption {
	return func(a *Animation) {
		a.attributes = attrs
	}
}

// WithWeight is an option builder that sets the blend weight of the Animation.
//
// Parameters:
//   - weight: the blend weight
//
// Returns:
//   - AnimationBuilderOption: a function that applies the weight option to an animation
func WithWeight(weight float32) AnimationBuilderOption {
	return func(a *Animation) {
		a.attributes.Weight = weight
	}
}

// WithCompositionFunction is an option builder that sets the merge rule of the Animation.
//
// Parameters:
//   - c: the composition function
//
// Returns:
//   - AnimationBuilderOption: a function that applies the composition option to an animation
func WithCompositionFunction(c CompositionFunction) AnimationBuilderOption {
	return func(a *Animation) {
		a.attributes.CompositionFunction = c
	}
}

// WithSpeed is an option builder that sets the playback rate of the Animation.
//
// Parameters:
//   - speed: the playback rate multiplier
//
// Returns:
//   - AnimationBuilderOption: a function that applies the speed option to an animation
func WithSpeed(speed float32) AnimationBuilderOption {
	return func(a *Animation) {
		a.speed = speed
	}
}

// WithLoop is an option builder that sets whether the Animation wraps at its end.
//
// Parameters:
//   - loop: true to wrap playback
//
// Returns:
//   - AnimationBuilderOption: a function that applies the loop option to an animation
func WithLoop(loop bool) AnimationBuilderOption {
	return func(a *Animation) {
		a.loop = loop
	}
}

// WithFadeIn is an option builder that starts the Animation at ramp value 0 and fades it to 1.
//
// Parameters:
//   - duration: the fade length in seconds
//
// Returns:
//   - AnimationBuilderOption: a function that applies the fade in option to an animation
func WithFadeIn(duration float32) AnimationBuilderOption {
	return func(a *Animation) {
		if duration <= 0 {
			return
		}
		a.attributes.RampValue = 0
		a.Fade(1, duration)
	}
}
