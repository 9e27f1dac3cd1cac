package instance

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/animator"
	"github.com/Carmen-Shannon/oxy-rig/engine/model"
	"github.com/Carmen-Shannon/oxy-rig/engine/skinning"
	"github.com/go-gl/mathgl/mgl32"
)

// liftModel has one root bone, one vertex at (1,0,0) bound to it, and a "lift" pose that raises
// the bone to (0,2,0).
func liftModel() model.Model {
	sm := model.NewCoreSubmesh(1, false, 0)
	_ = sm.AddVertex(model.Vertex{Position: mgl32.Vec3{1, 0, 0}, Normal: mgl32.Vec3{0, 1, 0}}, 0,
		[]model.Influence{{BoneID: 0, Weight: 1}})

	lift := model.NewCoreAnimation("lift", 1, model.NewCoreTrack(0, model.CoreKeyframe{
		Rotation:    mgl32.QuatIdent(),
		Translation: mgl32.Vec3{0, 2, 0},
	}))

	return model.NewModel(
		model.WithName("crate"),
		model.WithSkeleton(model.NewCoreSkeleton([]*model.CoreBone{model.NewCoreBone("root", model.NoParent)})),
		model.WithAnimations(lift),
		model.WithMeshes(model.NewCoreMesh("body", sm)),
	)
}

func TestInstancePlaySkinsPose(t *testing.T) {
	for _, kt := range skinning.KernelTypes {
		t.Run(kt.String(), func(t *testing.T) {
			inst := NewInstance(liftModel(), WithKernelType(kt), WithID(7))

			if n := inst.Skin(); n != 1 {
				t.Fatalf("Skin() = %d, want 1", n)
			}
			if got := inst.Vertices(0, 0)[0]; !got.ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, common.Epsilon) {
				t.Errorf("bind pose position = %v, want (1,0,0)", got)
			}

			if _, err := inst.Play("lift"); err != nil {
				t.Fatalf("Play(lift) error = %v", err)
			}
			inst.Update(0)
			inst.Skin()

			out := inst.Vertices(0, 0)
			if len(out) != 2 {
				t.Fatalf("len(Vertices) = %d, want 2", len(out))
			}
			if !out[0].ApproxEqualThreshold(mgl32.Vec3{1, 2, 0}, common.Epsilon) {
				t.Errorf("posed position = %v, want (1,2,0)", out[0])
			}
			if !out[1].ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, common.Epsilon) {
				t.Errorf("posed normal = %v, want (0,1,0)", out[1])
			}
			if inst.Kernel().Type() != kt {
				t.Errorf("Kernel().Type() = %v, want %v", inst.Kernel().Type(), kt)
			}
		})
	}
}

func TestInstancePlayUnknownAnimation(t *testing.T) {
	inst := NewInstance(liftModel())
	if _, err := inst.Play("jump"); !errors.Is(err, model.ErrAnimationNotFound) {
		t.Errorf("Play(jump) error = %v, want ErrAnimationNotFound", err)
	}
	if got := len(inst.Mixer().ActiveAnimations()); got != 0 {
		t.Errorf("active animations = %d, want 0", got)
	}
}

func TestInstanceStop(t *testing.T) {
	tests := []struct {
		name       string
		fadeOut    float32
		step       float32
		wantActive int
	}{
		{name: "immediate", fadeOut: 0, step: 0, wantActive: 0},
		{name: "fade not finished", fadeOut: 1, step: 0.25, wantActive: 1},
		{name: "fade finished", fadeOut: 0.5, step: 0.5, wantActive: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := NewInstance(liftModel())
			anim, err := inst.Play("lift")
			if err != nil {
				t.Fatalf("Play(lift) error = %v", err)
			}
			anim.SetLoop(true)

			if !inst.Stop(anim, tt.fadeOut) {
				t.Fatal("Stop() = false, want true for an active animation")
			}
			inst.Update(tt.step)
			if got := len(inst.Mixer().ActiveAnimations()); got != tt.wantActive {
				t.Errorf("active animations = %d, want %d", got, tt.wantActive)
			}
			if inst.Stop(anim, 0) != (tt.wantActive == 1) {
				t.Errorf("second Stop() mismatch for active=%d", tt.wantActive)
			}
		})
	}
}

func TestInstanceBoneAdjustments(t *testing.T) {
	lifted := mgl32.Vec3{0, 5, 0}
	tests := []struct {
		name       string
		transforms []animator.BoneTransformAdjustment
		scales     []animator.BoneScaleAdjustment
		want       mgl32.Vec3
	}{
		{name: "none", want: mgl32.Vec3{1, 0, 0}},
		{
			name:   "mesh scale",
			scales: []animator.BoneScaleAdjustment{{BoneID: 0, MeshScaleAbsolute: mgl32.Vec3{2, 3, 4}}},
			want:   mgl32.Vec3{2, 0, 0},
		},
		{
			name: "translation override",
			transforms: []animator.BoneTransformAdjustment{{
				BoneID:           0,
				LocalOrientation: mgl32.QuatIdent(),
				LocalTranslation: &lifted,
				RampValue:        1,
			}},
			want: mgl32.Vec3{1, 5, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := NewInstance(liftModel(), WithKernelType(skinning.KernelTypeReference))
			inst.SetBoneAdjustments(tt.transforms, tt.scales)
			inst.Update(0)
			inst.Skin()
			if got := inst.Vertices(0, 0)[0]; !got.ApproxEqualThreshold(tt.want, common.Epsilon) {
				t.Errorf("position = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInstanceUnskinnedModel(t *testing.T) {
	sm := model.NewCoreSubmesh(2, false, 0)
	_ = sm.AddVertex(model.Vertex{Position: mgl32.Vec3{1, 2, 3}}, 0, nil)
	_ = sm.AddVertex(model.Vertex{Position: mgl32.Vec3{4, 5, 6}}, 0, nil)
	m := model.NewModel(model.WithName("rock"), model.WithMeshes(model.NewCoreMesh("rock", sm)))

	inst := NewInstance(m)
	if inst.Skeleton() != nil {
		t.Error("Skeleton() != nil for a model without a skeleton")
	}
	inst.Update(1)
	if n := inst.Skin(); n != 2 {
		t.Fatalf("Skin() = %d, want 2", n)
	}
	out := inst.Vertices(0, 0)
	if !out[2].ApproxEqualThreshold(mgl32.Vec3{4, 5, 6}, 1e-6) {
		t.Errorf("position = %v, want bind pose (4,5,6)", out[2])
	}
}

func TestInstanceVerticesOutOfRange(t *testing.T) {
	inst := NewInstance(liftModel())
	for _, idx := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		if got := inst.Vertices(idx[0], idx[1]); got != nil {
			t.Errorf("Vertices(%d, %d) = %v, want nil", idx[0], idx[1], got)
		}
	}
}

func TestInstanceOptions(t *testing.T) {
	inst := NewInstance(liftModel(), WithID(3), WithEnabled(false))
	if inst.ID() != 3 {
		t.Errorf("ID() = %d, want 3", inst.ID())
	}
	if inst.Enabled() {
		t.Error("Enabled() = true, want false")
	}
	inst.SetEnabled(true)
	inst.SetID(4)
	if !inst.Enabled() || inst.ID() != 4 {
		t.Errorf("after setters: enabled=%v id=%d", inst.Enabled(), inst.ID())
	}
	if inst.Model().Name() != "crate" {
		t.Errorf("Model().Name() = %q, want crate", inst.Model().Name())
	}
}

func TestNewInstancePanicsOnNilModel(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewInstance(nil) did not panic")
		}
	}()
	NewInstance(nil)
}
