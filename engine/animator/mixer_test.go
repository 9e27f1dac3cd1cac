package animator

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/model"
	"github.com/Carmen-Shannon/oxy-rig/engine/skeleton"
	"github.com/go-gl/mathgl/mgl32"
)

func newTestAnimation(name string, c CompositionFunction) *Animation {
	return NewAnimation(model.NewCoreAnimation(name, 1), WithCompositionFunction(c))
}

func names(anims []*Animation) []string {
	out := make([]string, len(anims))
	for i, a := range anims {
		out[i] = a.CoreAnimation().Name
	}
	return out
}

func assertOrder(t *testing.T, got []*Animation, want ...string) {
	t.Helper()
	gotNames := names(got)
	if len(gotNames) != len(want) {
		t.Fatalf("order = %v, want %v", gotNames, want)
	}
	for i := range want {
		if gotNames[i] != want[i] {
			t.Fatalf("order = %v, want %v", gotNames, want)
		}
	}
}

// poseAnimation builds a single-keyframe animation holding bone at translation.
func poseAnimation(name string, bone int, translation mgl32.Vec3, options ...AnimationBuilderOption) *Animation {
	core := model.NewCoreAnimation(name, 1, model.NewCoreTrack(bone, model.CoreKeyframe{
		Rotation:    mgl32.QuatIdent(),
		Translation: translation,
	}))
	return NewAnimation(core, options...)
}

func singleBoneSkeleton() *skeleton.Skeleton {
	return skeleton.NewSkeleton(model.NewCoreSkeleton([]*model.CoreBone{model.NewCoreBone("b", model.NoParent)}))
}

func TestMixerAddManualAnimationOrdersByClass(t *testing.T) {
	m := NewMixer()
	m.AddManualAnimation(newTestAnimation("avg1", CompositionAverage))
	m.AddManualAnimation(newTestAnimation("rep1", CompositionReplace))
	m.AddManualAnimation(newTestAnimation("cf1", CompositionCrossFade))
	m.AddManualAnimation(newTestAnimation("avg2", CompositionAverage))
	m.AddManualAnimation(newTestAnimation("rep2", CompositionReplace))
	m.AddManualAnimation(newTestAnimation("cf2", CompositionCrossFade))

	assertOrder(t, m.ActiveAnimations(), "rep2", "rep1", "cf2", "cf1", "avg2", "avg1")
}

func TestMixerSetManualAnimationAttributesReorders(t *testing.T) {
	tests := []struct {
		name   string
		target string
		to     CompositionFunction
		want   []string
	}{
		{"average to replace", "avg2", CompositionReplace, []string{"avg2", "rep2", "rep1", "cf2", "cf1", "avg1"}},
		{"average to crossfade", "avg1", CompositionCrossFade, []string{"rep2", "rep1", "avg1", "cf2", "cf1", "avg2"}},
		{"replace to average", "rep2", CompositionAverage, []string{"rep1", "cf2", "cf1", "rep2", "avg2", "avg1"}},
		{"replace to crossfade", "rep1", CompositionCrossFade, []string{"rep2", "rep1", "cf2", "cf1", "avg2", "avg1"}},
		{"crossfade to replace", "cf1", CompositionReplace, []string{"cf1", "rep2", "rep1", "cf2", "avg2", "avg1"}},
		{"crossfade to average", "cf2", CompositionAverage, []string{"rep2", "rep1", "cf1", "cf2", "avg2", "avg1"}},
		{"same class keeps position", "avg1", CompositionAverage, []string{"rep2", "rep1", "cf2", "cf1", "avg2", "avg1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anims := map[string]*Animation{
				"avg1": newTestAnimation("avg1", CompositionAverage),
				"rep1": newTestAnimation("rep1", CompositionReplace),
				"cf1":  newTestAnimation("cf1", CompositionCrossFade),
				"avg2": newTestAnimation("avg2", CompositionAverage),
				"rep2": newTestAnimation("rep2", CompositionReplace),
				"cf2":  newTestAnimation("cf2", CompositionCrossFade),
			}
			m := NewMixer(WithAnimations(anims["avg1"], anims["rep1"], anims["cf1"], anims["avg2"], anims["rep2"], anims["cf2"]))

			a := anims[tt.target]
			attrs := a.Attributes()
			attrs.Weight = 0.7
			attrs.CompositionFunction = tt.to
			m.SetManualAnimationAttributes(a, attrs)

			assertOrder(t, m.ActiveAnimations(), tt.want...)
			if a.Weight() != 0.7 || a.CompositionFunction() != tt.to {
				t.Errorf("attributes = %+v, want weight 0.7 and %v", a.Attributes(), tt.to)
			}
		})
	}
}

func TestMixerSetManualAnimationAttributesInactive(t *testing.T) {
	tests := []struct {
		name string
		to   CompositionFunction
		want []string
	}{
		{name: "class change adds it", to: CompositionReplace, want: []string{"idle", "rep"}},
		{name: "same class leaves it out", to: CompositionAverage, want: []string{"rep"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMixer(WithAnimations(newTestAnimation("rep", CompositionReplace)))
			idle := newTestAnimation("idle", CompositionAverage)

			attrs := idle.Attributes()
			attrs.CompositionFunction = tt.to
			m.SetManualAnimationAttributes(idle, attrs)

			assertOrder(t, m.ActiveAnimations(), tt.want...)
		})
	}
}

func TestMixerRemoveManualAnimation(t *testing.T) {
	a := newTestAnimation("a", CompositionReplace)
	b := newTestAnimation("a", CompositionReplace)
	m := NewMixer(WithAnimations(a, b))

	if !m.RemoveManualAnimation(a) {
		t.Fatal("RemoveManualAnimation(a) = false, want true")
	}
	if got := m.ActiveAnimations(); len(got) != 1 || got[0] != b {
		t.Errorf("ActiveAnimations() after remove = %v, want only b", got)
	}
	if m.RemoveManualAnimation(a) {
		t.Error("RemoveManualAnimation(a) twice = true, want false")
	}
}

func TestMixerReplaceOverridesAverage(t *testing.T) {
	// attenuation follows the ramp, so a partial replace weight still masks averages
	for _, weight := range []float32{1, 0.6} {
		skel := singleBoneSkeleton()
		replace := poseAnimation("replace", 0, mgl32.Vec3{1, 2, 3}, WithCompositionFunction(CompositionReplace), WithWeight(weight))
		average := poseAnimation("average", 0, mgl32.Vec3{9, 9, 9}, WithCompositionFunction(CompositionAverage), WithWeight(0.5))

		for _, order := range [][]*Animation{{replace, average}, {average, replace}} {
			m := NewMixer(WithAnimations(order...))
			m.UpdateSkeleton(skel, nil, nil)

			if got := skel.Bone(0).Absolute().Translation; !common.ApproxEqualVec3(got, mgl32.Vec3{1, 2, 3}, 1e-6) {
				t.Errorf("weight %v: bone translation = %v, want replace pose [1 2 3]", weight, got)
			}
		}
	}
}

func TestMixerCrossFadeBlendsAsReplace(t *testing.T) {
	skel := singleBoneSkeleton()
	m := NewMixer(WithAnimations(
		poseAnimation("cf", 0, mgl32.Vec3{4, 0, 0}, WithCompositionFunction(CompositionCrossFade)),
		poseAnimation("avg", 0, mgl32.Vec3{0, 4, 0}, WithCompositionFunction(CompositionAverage)),
	))
	m.UpdateSkeleton(skel, nil, nil)

	if got := skel.Bone(0).Absolute().Translation; !common.ApproxEqualVec3(got, mgl32.Vec3{4, 0, 0}, 1e-6) {
		t.Errorf("bone translation = %v, want crossfade pose [4 0 0]", got)
	}
}

func TestMixerAveragesBlendTogether(t *testing.T) {
	skel := singleBoneSkeleton()
	m := NewMixer(WithAnimations(
		poseAnimation("a", 0, mgl32.Vec3{2, 0, 0}, WithCompositionFunction(CompositionAverage)),
		poseAnimation("b", 0, mgl32.Vec3{0, 2, 0}, WithCompositionFunction(CompositionAverage)),
	))
	m.UpdateSkeleton(skel, nil, nil)

	if got := skel.Bone(0).Absolute().Translation; !common.ApproxEqualVec3(got, mgl32.Vec3{1, 1, 0}, 1e-6) {
		t.Errorf("bone translation = %v, want [1 1 0]", got)
	}
}

func TestMixerWeightedAverageLayers(t *testing.T) {
	skel := singleBoneSkeleton()
	m := NewMixer(WithAnimations(
		poseAnimation("base", 0, mgl32.Vec3{3, 0, 0}, WithCompositionFunction(CompositionAverage)),
		poseAnimation("layer", 0, mgl32.Vec3{0, 3, 0}, WithCompositionFunction(CompositionAverage), WithWeight(0.5)),
	))
	m.UpdateSkeleton(skel, nil, nil)

	if got := skel.Bone(0).Absolute().Translation; !common.ApproxEqualVec3(got, mgl32.Vec3{2, 1, 0}, 1e-5) {
		t.Errorf("bone translation = %v, want [2 1 0]", got)
	}
}

func TestMixerSkipsTracksOutsideSkeleton(t *testing.T) {
	bone := model.NewCoreBone("b", model.NoParent)
	bone.Translation = mgl32.Vec3{0, 0, 7}
	skel := skeleton.NewSkeleton(model.NewCoreSkeleton([]*model.CoreBone{bone}))

	m := NewMixer(WithAnimations(
		poseAnimation("far", 5, mgl32.Vec3{1, 1, 1}),
		poseAnimation("negative", -1, mgl32.Vec3{1, 1, 1}),
	))
	m.UpdateSkeleton(skel, nil, nil)

	if got := skel.Bone(0).Absolute().Translation; got != (mgl32.Vec3{0, 0, 7}) {
		t.Errorf("untouched bone translation = %v, want bind pose [0 0 7]", got)
	}
}

func TestMixerBoneAdjustments(t *testing.T) {
	bone := model.NewCoreBone("b", model.NoParent)
	bone.Translation = mgl32.Vec3{0, 5, 0}
	skel := skeleton.NewSkeleton(model.NewCoreSkeleton([]*model.CoreBone{bone}))
	turn := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	m := NewMixer(WithAnimations(poseAnimation("walk", 0, mgl32.Vec3{3, 0, 0})))

	t.Run("full ramp overrides animation", func(t *testing.T) {
		m.UpdateSkeleton(skel, []BoneTransformAdjustment{{BoneID: 0, LocalOrientation: turn, RampValue: 1}}, nil)
		abs := skel.Bone(0).Absolute()
		if !common.ApproxEqualVec3(abs.Translation, mgl32.Vec3{0, 5, 0}, 1e-6) {
			t.Errorf("translation = %v, want original [0 5 0]", abs.Translation)
		}
		if !abs.Rotation.ApproxEqualThreshold(turn, 1e-5) {
			t.Errorf("rotation = %v, want %v", abs.Rotation, turn)
		}
	})

	t.Run("explicit translation", func(t *testing.T) {
		pos := mgl32.Vec3{1, 1, 1}
		m.UpdateSkeleton(skel, []BoneTransformAdjustment{{BoneID: 0, LocalOrientation: mgl32.QuatIdent(), LocalTranslation: &pos, RampValue: 1}}, nil)
		if got := skel.Bone(0).Absolute().Translation; !common.ApproxEqualVec3(got, pos, 1e-6) {
			t.Errorf("translation = %v, want %v", got, pos)
		}
	})

	t.Run("zero ramp lets animation through", func(t *testing.T) {
		m.UpdateSkeleton(skel, []BoneTransformAdjustment{{BoneID: 0, LocalOrientation: turn, RampValue: 0}}, nil)
		if got := skel.Bone(0).Absolute().Translation; !common.ApproxEqualVec3(got, mgl32.Vec3{3, 0, 0}, 1e-6) {
			t.Errorf("translation = %v, want animated [3 0 0]", got)
		}
	})

	t.Run("scale adjustment", func(t *testing.T) {
		m.UpdateSkeleton(skel, nil, []BoneScaleAdjustment{{BoneID: 0, MeshScaleAbsolute: mgl32.Vec3{2, 2, 2}}})
		if got := skel.Bone(0).MeshScaleAbsolute(); got != (mgl32.Vec3{2, 2, 2}) {
			t.Errorf("MeshScaleAbsolute() = %v, want [2 2 2]", got)
		}
		m.UpdateSkeleton(skel, nil, nil)
		if got := skel.Bone(0).MeshScaleAbsolute(); got != (mgl32.Vec3{1, 1, 1}) {
			t.Errorf("MeshScaleAbsolute() on next frame = %v, want [1 1 1]", got)
		}
	})
}

func TestMixerSamplesAtAnimationTime(t *testing.T) {
	skel := singleBoneSkeleton()
	core := model.NewCoreAnimation("slide", 2, model.NewCoreTrack(0,
		model.CoreKeyframe{Time: 0, Rotation: mgl32.QuatIdent(), Translation: mgl32.Vec3{0, 0, 0}},
		model.CoreKeyframe{Time: 2, Rotation: mgl32.QuatIdent(), Translation: mgl32.Vec3{4, 0, 0}},
	))
	m := NewMixer(WithAnimations(NewAnimation(core, WithLoop(true))))

	m.UpdateAnimation(0.5)
	m.UpdateSkeleton(skel, nil, nil)
	if got := skel.Bone(0).Absolute().Translation; !common.ApproxEqualVec3(got, mgl32.Vec3{1, 0, 0}, 1e-5) {
		t.Errorf("translation at 0.5s = %v, want [1 0 0]", got)
	}
}
