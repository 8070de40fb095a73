// 指示: miu200521358
package minteractor

import (
	"fmt"
	"math"
	"strings"

	"github.com/miu200521358/mu_bvh_retarget/pkg/domain/mmath"
	"github.com/miu200521358/mu_bvh_retarget/pkg/domain/model"
)

// correctionIdentityEpsilon は補正不要とみなす単位回転との角度許容値(1-|w|)。
const correctionIdentityEpsilon = 1e-5

// degenerateLengthEpsilon は方向ベクトルを退化扱いする長さ閾値。
const degenerateLengthEpsilon = 1e-6

// ComputeRestCorrections は編集前後のレストポーズ差分をボーン名→補正クォータニオンの形で返す。
// 補正は 編集後レスト回転の逆 × 編集前レスト回転 で、単位回転に十分近いボーンは結果から除外する。
// 処理後のスケルトンは編集後の状態へ復元される。
func (uc *BoneEditUsecase) ComputeRestCorrections() (map[string]mmath.Quaternion, error) {
	if uc == nil || uc.armature == nil || uc.armature.Bones == nil {
		return nil, fmt.Errorf("編集セッションが開始されていません")
	}
	if uc.originalRest == nil {
		return nil, fmt.Errorf("編集前レストポーズが未退避です")
	}

	editedSnapshot, err := captureBoneSnapshot(uc.armature.Bones)
	if err != nil {
		return nil, err
	}

	// 編集前ポーズでの各ボーンのレスト回転を求める。
	if err := restoreBoneSnapshot(uc.armature, uc.originalRest); err != nil {
		return nil, err
	}
	originalRestRotations := uc.computeRestRotations()

	// 編集後ポーズへ戻して同じ計算を繰り返す。
	if err := restoreBoneSnapshot(uc.armature, editedSnapshot); err != nil {
		return nil, err
	}
	editedRestRotations := uc.computeRestRotations()

	corrections := map[string]mmath.Quaternion{}
	for boneName, editedRotation := range editedRestRotations {
		originalRotation, exists := originalRestRotations[boneName]
		if !exists {
			continue
		}
		correction := editedRotation.Inverted().Muled(originalRotation)
		if correction.IsNearIdentity(correctionIdentityEpsilon) {
			continue
		}
		corrections[boneName] = correction
	}
	return corrections, nil
}

// computeRestRotations は現在のワールド姿勢から、ボーン子を持つ各ボーンの解剖学的基底回転を求める。
// End Site相当の補助ノードしか子に持たないボーンは対象外とする。
func (uc *BoneEditUsecase) computeRestRotations() map[string]mmath.Quaternion {
	forward := uc.computeForwardVector()

	rotations := map[string]mmath.Quaternion{}
	for _, bone := range uc.armature.Bones.Values() {
		if bone == nil {
			continue
		}
		child, found := uc.firstBoneChild(bone)
		if !found {
			continue
		}

		axisY := child.WorldPosition.Subed(bone.WorldPosition)
		if axisY.Length() <= degenerateLengthEpsilon {
			continue
		}
		axisY = axisY.Normalized()

		axisZ := uc.resolveRestAxisZ(bone, axisY, forward)
		axisX := axisY.Cross(axisZ).Normalized()
		axisZ = axisX.Cross(axisY).Normalized()

		rotations[bone.Name()] = mmath.NewQuaternionFromAxes(axisX, axisY, axisZ)
	}
	return rotations
}

// resolveRestAxisZ はボーン軸Yに直交するZ軸候補を段階的なフォールバックで求める。
func (uc *BoneEditUsecase) resolveRestAxisZ(bone *model.Bone, axisY, forward mmath.Vec3) mmath.Vec3 {
	// 前方ベクトルからY軸成分を取り除いた射影を第一候補とする。
	axisZ := forward.Subed(axisY.MuledScalar(forward.Dot(axisY)))
	if axisZ.Length() > degenerateLengthEpsilon {
		return axisZ.Normalized()
	}

	// 退化時は親→ボーン方向との外積を使う。
	if bone.ParentIndex >= 0 && bone.ParentIndex < uc.armature.Bones.Len() {
		if parent, err := uc.armature.Bones.Get(bone.ParentIndex); err == nil && parent != nil {
			parentDirection := bone.WorldPosition.Subed(parent.WorldPosition)
			if parentDirection.Length() > degenerateLengthEpsilon {
				axisZ = parentDirection.Normalized().Cross(axisY)
				if axisZ.Length() > degenerateLengthEpsilon {
					return axisZ.Normalized()
				}
			}
		}
	}

	// それでも退化する場合はボーン軸と平行度の低いワールド軸との外積を使う。
	worldAxis := mmath.UNIT_Y_VEC3
	if math.Abs(axisY.Dot(mmath.UNIT_Y_VEC3)) > math.Abs(axisY.Dot(mmath.UNIT_X_VEC3)) {
		worldAxis = mmath.UNIT_X_VEC3
	}
	axisZ = worldAxis.Cross(axisY)
	if axisZ.Length() <= degenerateLengthEpsilon {
		return mmath.UNIT_Z_VEC3
	}
	return axisZ.Normalized()
}

// firstBoneChild はEnd Site相当の補助ノードを除いた最初の子ボーンを返す。
func (uc *BoneEditUsecase) firstBoneChild(bone *model.Bone) (*model.Bone, bool) {
	for _, childIndex := range bone.ChildIndexes {
		child, err := uc.armature.Bones.Get(childIndex)
		if err != nil || child == nil || child.IsEndSite {
			continue
		}
		return child, true
	}
	return nil, false
}

// computeForwardVector は現在のワールド姿勢からスケルトン相対の前方ベクトルを求める。
// 上方向は骨盤→脊椎、左右方向は左右の股関節(なければ左右の肩・腕)から推定し、
// いずれも見つからない場合はワールド軸を既定値とする。
func (uc *BoneEditUsecase) computeForwardVector() mmath.Vec3 {
	correction := &uc.boneNames.Correction

	up := mmath.UNIT_Y_VEC3
	if hips, hipsFound := uc.findBoneByAliases(correction.HipsAliases); hipsFound {
		if spine, spineFound := uc.findBoneByAliases(correction.SpineAliases); spineFound {
			candidate := spine.WorldPosition.Subed(hips.WorldPosition)
			if candidate.Length() > degenerateLengthEpsilon {
				up = candidate.Normalized()
			}
		}
	}

	leftRight := mmath.UNIT_X_VEC3
	leftBone, leftFound := uc.findBoneByAliases(correction.LeftHipAliases)
	rightBone, rightFound := uc.findBoneByAliases(correction.RightHipAliases)
	if !leftFound || !rightFound {
		leftBone, leftFound = uc.findBoneByAliases(correction.LeftArmAliases)
		rightBone, rightFound = uc.findBoneByAliases(correction.RightArmAliases)
	}
	if leftFound && rightFound {
		candidate := leftBone.WorldPosition.Subed(rightBone.WorldPosition)
		if candidate.Length() > degenerateLengthEpsilon {
			leftRight = candidate.Normalized()
		}
	}

	forward := leftRight.Cross(up)
	if forward.Length() <= degenerateLengthEpsilon {
		return mmath.UNIT_Z_VEC3
	}
	return forward.Normalized()
}

// findBoneByAliases は別名表との部分一致(小文字比較)でボーンを探す。最初に一致したボーンを返す。
func (uc *BoneEditUsecase) findBoneByAliases(aliases []string) (*model.Bone, bool) {
	for _, bone := range uc.armature.Bones.Values() {
		if bone == nil || bone.IsEndSite {
			continue
		}
		loweredName := strings.ToLower(bone.Name())
		for _, alias := range aliases {
			if strings.Contains(loweredName, alias) {
				return bone, true
			}
		}
	}
	return nil, false
}
