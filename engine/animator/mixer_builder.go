package animator

import (
	"github.com/sirupsen/logrus"
)

// MixerBuilderOption is a functional option for configuring a Mixer via NewMixer.
type MixerBuilderOption func(*mixer)

// WithLogger is an option builder that sets the log entry the Mixer reports through.
//
// Parameters:
//   - log: the log entry to use
//
// Returns:
//   - MixerBuilderOption: a function that applies the logger option to a mixer
func WithLogger(log *logrus.Entry) MixerBuilderOption {
	return func(m *mixer) {
		m.log = log
	}
}

// WithAnimations is an option builder that adds animations to the Mixer in the given order,
// as if by repeated calls to AddManualAnimation.
//
// Parameters:
//   - animations: the animations to add
//
// Returns:
//   - MixerBuilderOption: a function that applies the animations option to a mixer
func WithAnimations(animations ...*Animation) MixerBuilderOption {
	return func(m *mixer) {
		for _, a := range animations {
			m.insert(a)
		}
	}
}
