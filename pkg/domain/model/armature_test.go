// 指示: miu200521358
package model

import (
	"testing"

	"github.com/miu200521358/mu_bvh_retarget/pkg/domain/mmath"
)

// buildTestArmature は Hips→Spine→Head の3ボーンアーマチュアを生成する。
func buildTestArmature(t *testing.T) *Armature {
	t.Helper()
	bones := NewBoneCollection()

	hips := NewBone("Hips")
	hips.Position = mmath.NewVec3(0, 1, 0)
	if _, err := bones.Append(hips); err != nil {
		t.Fatalf("append hips failed: %v", err)
	}

	spine := NewBone("Spine")
	spine.ParentIndex = 0
	spine.Position = mmath.NewVec3(0, 0.5, 0)
	if _, err := bones.Append(spine); err != nil {
		t.Fatalf("append spine failed: %v", err)
	}

	head := NewBone("Head")
	head.ParentIndex = 1
	head.Position = mmath.NewVec3(0, 0.3, 0)
	if _, err := bones.Append(head); err != nil {
		t.Fatalf("append head failed: %v", err)
	}

	armature := NewArmature("test", bones)
	armature.UpdateWorldTransforms()
	return armature
}

func TestUpdateWorldTransformsAccumulatesTranslation(t *testing.T) {
	armature := buildTestArmature(t)

	head, exists := armature.Bones.GetByName("Head")
	if !exists {
		t.Fatalf("head bone missing")
	}
	if !head.WorldPosition.NearEquals(mmath.NewVec3(0, 1.8, 0), 1e-9) {
		t.Fatalf("head world position mismatch: %+v", head.WorldPosition)
	}
}

func TestUpdateWorldTransformsAppliesParentRotation(t *testing.T) {
	armature := buildTestArmature(t)

	hips, _ := armature.Bones.GetByName("Hips")
	hips.Rotation = mmath.NewQuaternionFromDegrees(0, 0, 90)
	armature.UpdateWorldTransforms()

	// Z軸90度回転でローカル+Yの子はワールド-X側へ回る。
	spine, _ := armature.Bones.GetByName("Spine")
	if !spine.WorldPosition.NearEquals(mmath.NewVec3(-0.5, 1, 0), 1e-9) {
		t.Fatalf("spine world position mismatch: %+v", spine.WorldPosition)
	}
	head, _ := armature.Bones.GetByName("Head")
	if !head.WorldPosition.NearEquals(mmath.NewVec3(-0.8, 1, 0), 1e-9) {
		t.Fatalf("head world position mismatch: %+v", head.WorldPosition)
	}
}

func TestUpdateWorldTransformsAppliesArmatureTransform(t *testing.T) {
	armature := buildTestArmature(t)
	armature.Position = mmath.NewVec3(10, 0, 0)
	armature.Scale = mmath.NewVec3(2, 2, 2)
	armature.UpdateWorldTransforms()

	spine, _ := armature.Bones.GetByName("Spine")
	if !spine.WorldPosition.NearEquals(mmath.NewVec3(10, 3, 0), 1e-9) {
		t.Fatalf("spine world position mismatch: %+v", spine.WorldPosition)
	}
	if !spine.WorldScale.NearEquals(mmath.NewVec3(2, 2, 2), 1e-9) {
		t.Fatalf("spine world scale mismatch: %+v", spine.WorldScale)
	}
}

func TestWorldPointToBoneLocalInvertsParentTransform(t *testing.T) {
	armature := buildTestArmature(t)
	hips, _ := armature.Bones.GetByName("Hips")
	hips.Rotation = mmath.NewQuaternionFromDegrees(0, 90, 0)
	armature.UpdateWorldTransforms()

	spine, _ := armature.Bones.GetByName("Spine")
	local, err := armature.WorldPointToBoneLocal(spine, spine.WorldPosition)
	if err != nil {
		t.Fatalf("world to local failed: %v", err)
	}
	if !local.NearEquals(spine.Position, 1e-9) {
		t.Fatalf("world to local should recover local position: %+v", local)
	}
}

func TestWorldPointToBoneLocalForRootUsesArmatureTransform(t *testing.T) {
	armature := buildTestArmature(t)
	armature.Position = mmath.NewVec3(5, 0, 0)
	armature.UpdateWorldTransforms()

	hips, _ := armature.Bones.GetByName("Hips")
	local, err := armature.WorldPointToBoneLocal(hips, mmath.NewVec3(5, 2, 0))
	if err != nil {
		t.Fatalf("world to local failed: %v", err)
	}
	if !local.NearEquals(mmath.NewVec3(0, 2, 0), 1e-9) {
		t.Fatalf("root local position mismatch: %+v", local)
	}
}

func TestArmatureCloneIsIndependent(t *testing.T) {
	armature := buildTestArmature(t)
	cloned, err := armature.Clone()
	if err != nil {
		t.Fatalf("clone failed: %v", err)
	}
	if cloned.Bones.Len() != armature.Bones.Len() {
		t.Fatalf("clone bone count mismatch: %d", cloned.Bones.Len())
	}

	originalSpine, _ := armature.Bones.GetByName("Spine")
	clonedSpine, exists := cloned.Bones.GetByName("Spine")
	if !exists {
		t.Fatalf("cloned spine missing")
	}
	if !clonedSpine.WorldPosition.NearEquals(originalSpine.WorldPosition, 1e-9) {
		t.Fatalf("cloned world position mismatch: %+v", clonedSpine.WorldPosition)
	}

	clonedSpine.Position = mmath.NewVec3(9, 9, 9)
	if originalSpine.Position.NearEquals(clonedSpine.Position, 1e-9) {
		t.Fatalf("clone should not share bone instances")
	}
}

func TestMotionClipCopyIsIndependent(t *testing.T) {
	clip := &MotionClip{
		Name:       "walk",
		FrameCount: 2,
		FrameTime:  1.0 / 30.0,
		Tracks: []*BoneKeyframeTrack{
			{
				BoneName:  "Hips",
				BoneIndex: 0,
				Keyframes: []BoneKeyframe{
					{Time: 0, Position: mmath.NewVec3(0, 1, 0), Rotation: mmath.NewQuaternion(), Scale: mmath.ONE_VEC3},
					{Time: 1.0 / 30.0, Position: mmath.NewVec3(0, 1.1, 0), Rotation: mmath.NewQuaternion(), Scale: mmath.ONE_VEC3},
				},
			},
		},
	}

	copied, err := clip.Copy()
	if err != nil {
		t.Fatalf("copy failed: %v", err)
	}
	copied.Tracks[0].Keyframes[0].Position = mmath.NewVec3(99, 0, 0)
	if clip.Tracks[0].Keyframes[0].Position.NearEquals(mmath.NewVec3(99, 0, 0), 1e-12) {
		t.Fatalf("copy should not share keyframe storage")
	}
	if copied.Duration() != clip.Duration() {
		t.Fatalf("duration mismatch: %f != %f", copied.Duration(), clip.Duration())
	}
}
