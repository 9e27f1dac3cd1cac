package model

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/go-gl/mathgl/mgl32"
)

func TestNewModelFixesUpAgainstSkeleton(t *testing.T) {
	skel := NewCoreSkeleton([]*CoreBone{
		NewCoreBone("arm", 1),
		NewCoreBone("body", NoParent),
	})

	// bone ids below refer to the original candidate order: 0 = arm, 1 = body
	anim := NewCoreAnimation("wave", 1, NewCoreTrack(0, CoreKeyframe{Rotation: mgl32.QuatIdent()}))
	sm := NewCoreSubmesh(1, false, 0)
	_ = sm.AddVertex(vtx(0, 3, 4), 0, []Influence{{BoneID: 0, Weight: 1}})

	m := NewModel(
		WithName("robot"),
		WithSkeleton(skel),
		WithAnimations(anim),
		WithMeshes(NewCoreMesh("body", sm)),
	)

	if !m.Skinned() {
		t.Error("Skinned() = false, want true")
	}
	if got := anim.CoreTracks()[0].CoreBoneID; got != 1 {
		t.Errorf("track bone = %d, want 1 (arm after sort)", got)
	}
	if got := sm.Influences()[0].BoneID; got != 1 {
		t.Errorf("influence bone = %d, want 1 (arm after sort)", got)
	}
	if got := m.BoundingRadius(); !common.ApproxEqual(got, 5, 1e-5) {
		t.Errorf("BoundingRadius() = %v, want 5", got)
	}
}

func TestModelLookups(t *testing.T) {
	m := NewModel(
		WithName("robot"),
		WithAnimations(NewCoreAnimation("idle", 1), NewCoreAnimation("run", 1)),
		WithMeshes(NewCoreMesh("torso")),
	)

	if got := m.AnimationCount(); got != 2 {
		t.Errorf("AnimationCount() = %d, want 2", got)
	}
	if got := m.AnimationNames(); len(got) != 2 || got[1] != "run" {
		t.Errorf("AnimationNames() = %v, want [idle run]", got)
	}
	if got := m.GetAnimationIndex("run"); got != 1 {
		t.Errorf("GetAnimationIndex(run) = %d, want 1", got)
	}
	if got := m.GetAnimationIndex("jump"); got != -1 {
		t.Errorf("GetAnimationIndex(jump) = %d, want -1", got)
	}
	if _, err := m.CoreAnimation("jump"); !errors.Is(err, ErrAnimationNotFound) {
		t.Errorf("CoreAnimation(jump) error = %v, want ErrAnimationNotFound", err)
	}
	if a, err := m.CoreAnimation("idle"); err != nil || a.Name != "idle" {
		t.Errorf("CoreAnimation(idle) = %v, %v", a, err)
	}
	if _, err := m.CoreMesh("legs"); !errors.Is(err, ErrMeshNotFound) {
		t.Errorf("CoreMesh(legs) error = %v, want ErrMeshNotFound", err)
	}
	if m.Skinned() {
		t.Error("Skinned() = true, want false without a skeleton")
	}
}

func TestNewModelScaleAndBoneSpace(t *testing.T) {
	root := NewCoreBone("root", NoParent)
	root.Translation = mgl32.Vec3{0, 1, 0}
	sm := NewCoreSubmesh(1, false, 0)
	_ = sm.AddVertex(vtx(0, 1, 0), 0, []Influence{{BoneID: 0, Weight: 1}})

	m := NewModel(
		WithSkeleton(NewCoreSkeleton([]*CoreBone{root})),
		WithMeshes(NewCoreMesh("m", sm)),
		WithScale(2),
		WithBoneSpaceFromBindPose(true),
	)

	b := m.CoreSkeleton().CoreBone(0)
	if b.Translation != (mgl32.Vec3{0, 2, 0}) {
		t.Errorf("Translation = %v, want [0 2 0]", b.Translation)
	}
	if !common.ApproxEqualVec3(b.TranslationBoneSpace, mgl32.Vec3{0, -2, 0}, 1e-6) {
		t.Errorf("TranslationBoneSpace = %v, want [0 -2 0]", b.TranslationBoneSpace)
	}
	if got := m.BoundingRadius(); !common.ApproxEqual(got, 2, 1e-6) {
		t.Errorf("BoundingRadius() = %v, want 2", got)
	}
}
