// 指示: miu200521358
package minteractor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/miu200521358/mu_bvh_retarget/pkg/domain/mmath"
	"github.com/miu200521358/mu_bvh_retarget/pkg/domain/model"
)

// stubRayIntersector は固定の交差結果を返すテスト用実装。
type stubRayIntersector struct {
	mesh  *model.Mesh
	point mmath.Vec3
	hit   bool
}

func (s *stubRayIntersector) IntersectMeshes(ray model.Ray, meshes []*model.Mesh) (*model.Mesh, mmath.Vec3, bool) {
	if !s.hit {
		return nil, mmath.ZERO_VEC3, false
	}
	return s.mesh, s.point, true
}

// newSnapTestCamera は単位ビュー・単位プロジェクションのカメラを返す。
// スクリーン中央(50,50)からのレイは原点方向+Z軸に一致する。
func newSnapTestCamera() model.Camera {
	return model.Camera{
		View:           mgl64.Ident4(),
		Projection:     mgl64.Ident4(),
		ViewportWidth:  100,
		ViewportHeight: 100,
	}
}

// newSnapTestArmature はZ軸上にボーンが並ぶドラッグテスト用スケルトンを生成する。
func newSnapTestArmature(t *testing.T) *model.Armature {
	t.Helper()
	bones := model.NewBoneCollection()
	appendEditTestBone(t, bones, "Hips", -1, mmath.NewVec3(0, 0, 0))
	appendEditTestBone(t, bones, "Spine", 0, mmath.NewVec3(0, 0, 0.5))
	appendEditTestBone(t, bones, "LeftArm", 1, mmath.NewVec3(0.2, 0, 0))
	armature := model.NewArmature("Hips", bones)
	armature.UpdateWorldTransforms()
	return armature
}

func TestBeginDragSelectsClosestBoneAndStoresHistoryOnce(t *testing.T) {
	armature := newSnapTestArmature(t)
	uc := newEditTestUsecase(t, armature)

	started, err := uc.BeginDrag(newSnapTestCamera(), PointerEvent{ScreenX: 50, ScreenY: 50})
	if err != nil {
		t.Fatalf("begin drag failed: %v", err)
	}
	if !started {
		t.Fatalf("expected drag started")
	}

	selected, found := uc.SelectedBone()
	if !found {
		t.Fatalf("expected bone selected")
	}
	if selected.Name() != "Spine" {
		t.Fatalf("expected Spine selected, got %s", selected.Name())
	}
	if !uc.CanUndo() {
		t.Fatalf("expected history stored on drag start")
	}
}

func TestBeginDragIgnoresRootBone(t *testing.T) {
	// ルートボーン(原点)はレイ上にあるが選択対象外。Spineを遠ざけて候補を消す。
	bones := model.NewBoneCollection()
	appendEditTestBone(t, bones, "Hips", -1, mmath.NewVec3(0, 0, 0))
	appendEditTestBone(t, bones, "Spine", 0, mmath.NewVec3(1, 0, 0))
	armature := model.NewArmature("Hips", bones)
	armature.UpdateWorldTransforms()
	uc := newEditTestUsecase(t, armature)

	started, err := uc.BeginDrag(newSnapTestCamera(), PointerEvent{ScreenX: 50, ScreenY: 50})
	if err != nil {
		t.Fatalf("begin drag failed: %v", err)
	}
	if started {
		t.Fatalf("expected no selectable bone")
	}
	if uc.CanUndo() {
		t.Fatalf("expected no history entry without selection")
	}
}

func TestDragMoveSnapsToVertexVolumeCenter(t *testing.T) {
	armature := newSnapTestArmature(t)
	mesh := model.NewMesh("body", []mmath.Vec3{
		mmath.NewVec3(0.45, 0.5, 0.5),
		mmath.NewVec3(0.55, 0.5, 0.5),
		mmath.NewVec3(0.5, 0.6, 0.5),
		mmath.NewVec3(2, 2, 2), // 検索半径外
	})
	intersector := &stubRayIntersector{mesh: mesh, point: mmath.NewVec3(0.5, 0.5, 0.5), hit: true}
	uc := NewBoneEditUsecase(BoneEditUsecaseDeps{RayIntersector: intersector})
	if err := uc.Begin(armature); err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	if _, err := uc.BeginDrag(newSnapTestCamera(), PointerEvent{ScreenX: 50, ScreenY: 50}); err != nil {
		t.Fatalf("begin drag failed: %v", err)
	}
	moved, err := uc.DragMove(newSnapTestCamera(), PointerEvent{ScreenX: 50, ScreenY: 50}, []*model.Mesh{mesh})
	if err != nil {
		t.Fatalf("drag move failed: %v", err)
	}
	if !moved {
		t.Fatalf("expected bone moved")
	}

	// 半径内頂点のAABB中心 (0.5, 0.55, 0.5) へ吸着する。親がルート(原点・単位姿勢)のためローカル=ワールド。
	spine := mustGetBone(t, armature, "Spine")
	expected := mmath.NewVec3(0.5, 0.55, 0.5)
	if !spine.Position.NearEquals(expected, 1e-12) {
		t.Fatalf("expected snapped position %v, got %v", expected, spine.Position)
	}
	if !spine.WorldPosition.NearEquals(expected, 1e-12) {
		t.Fatalf("expected snapped world position %v, got %v", expected, spine.WorldPosition)
	}
}

func TestDragMoveFallsBackToRawIntersectionPoint(t *testing.T) {
	armature := newSnapTestArmature(t)
	mesh := model.NewMesh("body", []mmath.Vec3{mmath.NewVec3(5, 5, 5)})
	hitPoint := mmath.NewVec3(0.3, 0.2, 0.6)
	intersector := &stubRayIntersector{mesh: mesh, point: hitPoint, hit: true}
	uc := NewBoneEditUsecase(BoneEditUsecaseDeps{RayIntersector: intersector})
	if err := uc.Begin(armature); err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	if _, err := uc.BeginDrag(newSnapTestCamera(), PointerEvent{ScreenX: 50, ScreenY: 50}); err != nil {
		t.Fatalf("begin drag failed: %v", err)
	}
	if _, err := uc.DragMove(newSnapTestCamera(), PointerEvent{ScreenX: 50, ScreenY: 50}, []*model.Mesh{mesh}); err != nil {
		t.Fatalf("drag move failed: %v", err)
	}

	spine := mustGetBone(t, armature, "Spine")
	if !spine.Position.NearEquals(hitPoint, 1e-12) {
		t.Fatalf("expected raw intersection point %v, got %v", hitPoint, spine.Position)
	}
}

func TestDragMoveWithoutIntersectionIsNoOp(t *testing.T) {
	armature := newSnapTestArmature(t)
	intersector := &stubRayIntersector{hit: false}
	uc := NewBoneEditUsecase(BoneEditUsecaseDeps{RayIntersector: intersector})
	if err := uc.Begin(armature); err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	if _, err := uc.BeginDrag(newSnapTestCamera(), PointerEvent{ScreenX: 50, ScreenY: 50}); err != nil {
		t.Fatalf("begin drag failed: %v", err)
	}

	spine := mustGetBone(t, armature, "Spine")
	before := spine.Position
	moved, err := uc.DragMove(newSnapTestCamera(), PointerEvent{ScreenX: 50, ScreenY: 50}, nil)
	if err != nil {
		t.Fatalf("drag move failed: %v", err)
	}
	if moved {
		t.Fatalf("expected no-op without intersection")
	}
	if !spine.Position.NearEquals(before, 1e-12) {
		t.Fatalf("expected unchanged position, got %v", spine.Position)
	}
}

func TestDragMoveWithoutActiveDragIsNoOp(t *testing.T) {
	armature := newSnapTestArmature(t)
	intersector := &stubRayIntersector{hit: true, mesh: model.NewMesh("body", nil), point: mmath.NewVec3(0.5, 0.5, 0.5)}
	uc := NewBoneEditUsecase(BoneEditUsecaseDeps{RayIntersector: intersector})
	if err := uc.Begin(armature); err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	moved, err := uc.DragMove(newSnapTestCamera(), PointerEvent{ScreenX: 50, ScreenY: 50}, nil)
	if err != nil {
		t.Fatalf("drag move failed: %v", err)
	}
	if moved {
		t.Fatalf("expected no-op before drag start")
	}
}

func TestEndDragStopsFurtherMoves(t *testing.T) {
	armature := newSnapTestArmature(t)
	intersector := &stubRayIntersector{hit: true, mesh: model.NewMesh("body", nil), point: mmath.NewVec3(0.5, 0.5, 0.5)}
	uc := NewBoneEditUsecase(BoneEditUsecaseDeps{RayIntersector: intersector})
	if err := uc.Begin(armature); err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	if _, err := uc.BeginDrag(newSnapTestCamera(), PointerEvent{ScreenX: 50, ScreenY: 50}); err != nil {
		t.Fatalf("begin drag failed: %v", err)
	}

	uc.EndDrag()

	moved, err := uc.DragMove(newSnapTestCamera(), PointerEvent{ScreenX: 50, ScreenY: 50}, nil)
	if err != nil {
		t.Fatalf("drag move failed: %v", err)
	}
	if moved {
		t.Fatalf("expected no-op after drag end")
	}
}

func TestDragMoveAppliesMirrorWhenMirrorModeActive(t *testing.T) {
	bones := model.NewBoneCollection()
	appendEditTestBone(t, bones, "Hips", -1, mmath.NewVec3(0, 0, 0))
	appendEditTestBone(t, bones, "LeftArm", 0, mmath.NewVec3(0.2, 0, 0.5))
	appendEditTestBone(t, bones, "RightArm", 0, mmath.NewVec3(-0.2, 0, 0.5))
	armature := model.NewArmature("Hips", bones)
	armature.UpdateWorldTransforms()

	hitPoint := mmath.NewVec3(0.3, 0.1, 0.5)
	intersector := &stubRayIntersector{hit: true, mesh: model.NewMesh("body", nil), point: hitPoint}
	uc := NewBoneEditUsecase(BoneEditUsecaseDeps{RayIntersector: intersector})
	if err := uc.Begin(armature); err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	uc.SetMirrorMode(true)

	// LeftArm(ワールド(0.2,0,0.5))上のスクリーン座標: ndc x=0.2 -> screenX=60, ndc y=0 -> screenY=50
	started, err := uc.BeginDrag(newSnapTestCamera(), PointerEvent{ScreenX: 60, ScreenY: 50})
	if err != nil {
		t.Fatalf("begin drag failed: %v", err)
	}
	if !started {
		t.Fatalf("expected LeftArm selected")
	}
	if _, err := uc.DragMove(newSnapTestCamera(), PointerEvent{ScreenX: 60, ScreenY: 50}, nil); err != nil {
		t.Fatalf("drag move failed: %v", err)
	}

	leftArm := mustGetBone(t, armature, "LeftArm")
	rightArm := mustGetBone(t, armature, "RightArm")
	if !leftArm.Position.NearEquals(hitPoint, 1e-12) {
		t.Fatalf("expected left arm at %v, got %v", hitPoint, leftArm.Position)
	}
	mirrored := mmath.NewVec3(-hitPoint.X, hitPoint.Y, hitPoint.Z)
	if !rightArm.Position.NearEquals(mirrored, 1e-12) {
		t.Fatalf("expected right arm at %v, got %v", mirrored, rightArm.Position)
	}
}
