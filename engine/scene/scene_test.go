package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/instance"
	"github.com/Carmen-Shannon/oxy-rig/engine/model"
	"github.com/Carmen-Shannon/oxy-rig/engine/skinning"
	"github.com/go-gl/mathgl/mgl32"
)

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

func TestSceneUpdateFansOutEveryInstance(t *testing.T) {
	tests := []struct {
		name      string
		instances int
		workers   int
		disabled  map[int]bool
	}{
		{name: "single worker", instances: 5, workers: 1},
		{name: "more instances than workers", instances: 40, workers: 4},
		{name: "disabled instances skipped", instances: 6, workers: 3, disabled: map[int]bool{1: true, 4: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := liftModel()
			s := NewScene("crowd", WithComputeWorkers(tt.workers))

			insts := make([]instance.Instance, tt.instances)
			for i := range insts {
				insts[i] = instance.NewInstance(m,
					instance.WithKernelType(skinning.KernelTypes[i%len(skinning.KernelTypes)]),
					instance.WithEnabled(!tt.disabled[i]),
				)
				if _, err := insts[i].Play("lift"); err != nil {
					t.Fatalf("Play(lift) error = %v", err)
				}
				s.Add(insts[i])
			}

			stats := s.Update(0.1)
			want := tt.instances - len(tt.disabled)
			if stats.Instances != want || stats.Vertices != want {
				t.Errorf("Update() = %+v, want %d instances and %d vertices", stats, want, want)
			}

			for i, inst := range insts {
				got := inst.Vertices(0, 0)[0]
				wantPos := mgl32.Vec3{1, 2, 0}
				if tt.disabled[i] {
					wantPos = mgl32.Vec3{}
				}
				if !got.ApproxEqualThreshold(wantPos, common.Epsilon) {
					t.Errorf("instance %d position = %v, want %v", i, got, wantPos)
				}
			}
		})
	}
}

func TestSceneSkinningDisabled(t *testing.T) {
	inst := instance.NewInstance(liftModel())
	if _, err := inst.Play("lift"); err != nil {
		t.Fatalf("Play(lift) error = %v", err)
	}
	s := NewScene("bones only", WithInstances(inst), WithSkinningDisabled(true))

	stats := s.Update(0)
	if stats.Instances != 1 || stats.Vertices != 0 {
		t.Errorf("Update() = %+v, want 1 instance and 0 vertices", stats)
	}
	if got := inst.Skeleton().Bone(0).Absolute().Translation; !got.ApproxEqualThreshold(mgl32.Vec3{0, 2, 0}, common.Epsilon) {
		t.Errorf("bone translation = %v, want (0,2,0)", got)
	}
}

func TestSceneRegistry(t *testing.T) {
	m := liftModel()
	preset := instance.NewInstance(m, instance.WithID(10))
	s := NewScene("registry", WithInstances(preset), WithActive(true))

	a := instance.NewInstance(m)
	b := instance.NewInstance(m)
	idA := s.Add(a)
	idB := s.Add(b)

	if idA != 1 || idB != 2 {
		t.Errorf("assigned IDs = %d, %d, want 1, 2", idA, idB)
	}
	if s.Count() != 3 {
		t.Errorf("Count() = %d, want 3", s.Count())
	}
	if s.Get(10) != preset {
		t.Error("Get(10) did not return the preset instance")
	}

	ids := make([]uint64, 0, 3)
	for _, inst := range s.Instances() {
		ids = append(ids, inst.ID())
	}
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 2 || ids[2] != 10 {
		t.Errorf("Instances() ids = %v, want [1 2 10]", ids)
	}

	if !s.Remove(idA) {
		t.Error("Remove(idA) = false, want true")
	}
	if s.Remove(idA) {
		t.Error("second Remove(idA) = true, want false")
	}
	if s.Get(idA) != nil {
		t.Error("Get(idA) != nil after Remove")
	}

	s.Clear()
	if s.Count() != 0 {
		t.Errorf("Count() after Clear = %d, want 0", s.Count())
	}
	if !s.Active() || s.Name() != "registry" {
		t.Errorf("Active() = %v, Name() = %q", s.Active(), s.Name())
	}
}

func TestSceneAddNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Add(nil) did not panic")
		}
	}()
	NewScene("nil").Add(nil)
}
