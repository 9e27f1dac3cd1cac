package model

// CoreAnimation is a named set of bone tracks sharing one timeline.
type CoreAnimation struct {
	// Name identifies the animation within its model.
	Name string

	// Duration is the length of the animation in seconds.
	Duration float32

	tracks []*CoreTrack
}

// NewCoreAnimation creates an animation from its tracks.
//
// Parameters:
//   - name: the animation name
//   - duration: the length in seconds
//   - tracks: the bone tracks
//
// Returns:
//   - *CoreAnimation: the new animation
func NewCoreAnimation(name string, duration float32, tracks ...*CoreTrack) *CoreAnimation {
	return &CoreAnimation{Name: name, Duration: duration, tracks: tracks}
}

// AddCoreTrack appends a track.
func (a *CoreAnimation) AddCoreTrack(t *CoreTrack) {
	a.tracks = append(a.tracks, t)
}

// CoreTracks returns the animation's tracks.
func (a *CoreAnimation) CoreTracks() []*CoreTrack {
	return a.tracks
}

// CoreTrack returns the first track animating the given bone, or nil.
func (a *CoreAnimation) CoreTrack(coreBoneID int) *CoreTrack {
	for _, t := range a.tracks {
		if t.CoreBoneID == coreBoneID {
			return t
		}
	}
	return nil
}

// Fixup remaps every track's bone id through the skeleton's translation table.
func (a *CoreAnimation) Fixup(skeleton *CoreSkeleton) {
	for _, t := range a.tracks {
		t.Fixup(skeleton)
	}
}

// Scale multiplies every keyframe translation by factor.
func (a *CoreAnimation) Scale(factor float32) {
	for _, t := range a.tracks {
		t.Scale(factor)
	}
}
