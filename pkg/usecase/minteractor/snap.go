// 指示: miu200521358
package minteractor

import (
	"fmt"
	"math"

	"github.com/miu200521358/mu_bvh_retarget/pkg/domain/mmath"
	"github.com/miu200521358/mu_bvh_retarget/pkg/domain/model"
)

// defaultSnapSearchRadius はスナップ時に交点近傍の頂点を収集する半径の既定値(ワールド単位)。
const defaultSnapSearchRadius = 0.15

// defaultHoverThreshold はドラッグ開始時にボーンを選択可能とみなすレイ距離の既定値。
const defaultHoverThreshold = 0.02

// PointerEvent はスクリーン座標(左上原点)のポインタ入力を表す。
type PointerEvent struct {
	ScreenX float64
	ScreenY float64
}

// BeginDrag はマウスダウンに対応するドラッグ開始処理を行う。
// レイ近傍のボーンを選択し、変更開始前の状態を履歴へ1回だけ退避する。
// 閾値内にボーンがない場合はfalseを返し何も変更しない。ルートボーンは選択対象外とする。
func (uc *BoneEditUsecase) BeginDrag(camera model.Camera, event PointerEvent) (bool, error) {
	if uc == nil || uc.armature == nil || uc.armature.Bones == nil {
		return false, fmt.Errorf("編集セッションが開始されていません")
	}

	ray, err := camera.PointerRay(event.ScreenX, event.ScreenY)
	if err != nil {
		return false, err
	}

	closestIndex := -1
	closestDistance := math.MaxFloat64
	for _, bone := range uc.armature.Bones.Values() {
		if bone == nil || bone.IsRoot() {
			continue
		}
		distance := ray.DistanceToPoint(bone.WorldPosition)
		if distance <= uc.hoverThreshold && distance < closestDistance {
			closestIndex = bone.Index()
			closestDistance = distance
		}
	}
	if closestIndex < 0 {
		return false, nil
	}

	if err := uc.history.StoreCurrentState(uc.armature.Bones); err != nil {
		return false, err
	}
	uc.selectedBoneIndex = closestIndex
	uc.dragActive = true
	return true, nil
}

// DragMove はマウス移動に対応するスナップ計算を行う。
// 選択中ボーンをメッシュ交点近傍の頂点密度中心へ吸着させる。履歴の再退避は行わない。
// メッシュと交差しない場合はfalseを返し何も変更しない。
func (uc *BoneEditUsecase) DragMove(camera model.Camera, event PointerEvent, meshes []*model.Mesh) (bool, error) {
	if uc == nil || uc.armature == nil {
		return false, fmt.Errorf("編集セッションが開始されていません")
	}
	if !uc.dragActive || uc.selectedBoneIndex < 0 {
		return false, nil
	}
	if uc.rayIntersector == nil {
		return false, fmt.Errorf("レイ交差判定の実装が未設定です")
	}

	bone, err := uc.armature.Bones.Get(uc.selectedBoneIndex)
	if err != nil {
		return false, err
	}

	ray, err := camera.PointerRay(event.ScreenX, event.ScreenY)
	if err != nil {
		return false, err
	}

	mesh, hitWorldPoint, hit := uc.rayIntersector.IntersectMeshes(ray, meshes)
	if !hit || mesh == nil {
		return false, nil
	}

	snapLocalPoint := snapToVertexVolume(mesh, mesh.WorldToLocal(hitWorldPoint), uc.snapSearchRadius)
	snapWorldPoint := mesh.LocalToWorld(snapLocalPoint)

	localPosition, err := uc.armature.WorldPointToBoneLocal(bone, snapWorldPoint)
	if err != nil {
		return false, err
	}
	bone.Position = localPosition
	uc.armature.UpdateWorldTransforms()

	if uc.mirrorMode {
		if _, err := uc.Mirror(bone, MIRROR_KIND_TRANSLATE); err != nil {
			return false, err
		}
	}
	return true, nil
}

// EndDrag はマウスアップに対応するドラッグ終了処理を行う。状態の変更は行わない。
func (uc *BoneEditUsecase) EndDrag() {
	if uc == nil {
		return
	}
	uc.dragActive = false
}

// snapToVertexVolume はメッシュローカル空間の交点近傍にある頂点群のAABB中心を返す。
// 半径内に頂点がない場合は交点をそのまま返す。
func snapToVertexVolume(mesh *model.Mesh, localPoint mmath.Vec3, searchRadius float64) mmath.Vec3 {
	minPoint := mmath.NewVec3(math.MaxFloat64, math.MaxFloat64, math.MaxFloat64)
	maxPoint := mmath.NewVec3(-math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64)
	vertexCount := 0
	for _, vertex := range mesh.Vertices {
		if vertex.Distance(localPoint) > searchRadius {
			continue
		}
		minPoint = mmath.NewVec3(
			math.Min(minPoint.X, vertex.X),
			math.Min(minPoint.Y, vertex.Y),
			math.Min(minPoint.Z, vertex.Z),
		)
		maxPoint = mmath.NewVec3(
			math.Max(maxPoint.X, vertex.X),
			math.Max(maxPoint.Y, vertex.Y),
			math.Max(maxPoint.Z, vertex.Z),
		)
		vertexCount++
	}
	if vertexCount == 0 {
		return localPoint
	}
	return minPoint.Added(maxPoint).MuledScalar(0.5)
}
