// 指示: miu200521358
package minteractor

import (
	"fmt"
	"strings"

	"github.com/miu200521358/mu_bvh_retarget/pkg/domain/mmath"
	"github.com/miu200521358/mu_bvh_retarget/pkg/domain/model"
)

// MirrorKind はミラー対象の編集種別を表す。
type MirrorKind int

const (
	// MIRROR_KIND_TRANSLATE は位置編集のミラーを表す。
	MIRROR_KIND_TRANSLATE MirrorKind = iota
	// MIRROR_KIND_ROTATE は回転編集のミラーを表す。
	MIRROR_KIND_ROTATE
)

// Mirror は編集済みボーンの対側ボーンへ編集を反映する。
// 対側ボーンが特定できない場合(背骨・頭などの軸上ボーン)はエラーではなくfalseを返し何も変更しない。
func (uc *BoneEditUsecase) Mirror(bone *model.Bone, kind MirrorKind) (bool, error) {
	if uc == nil || uc.armature == nil || uc.armature.Bones == nil {
		return false, fmt.Errorf("編集セッションが開始されていません")
	}
	if bone == nil {
		return false, fmt.Errorf("ミラー元のボーンが未指定です")
	}

	mirrorBone, found := uc.findMirrorBone(bone)
	if !found {
		return false, nil
	}

	switch kind {
	case MIRROR_KIND_TRANSLATE:
		// X軸対称: ローカル位置のX成分のみ反転する。
		mirrorBone.Position = mmath.NewVec3(-bone.Position.X, bone.Position.Y, bone.Position.Z)
	case MIRROR_KIND_ROTATE:
		// インポート対象スケルトンの軸配置に合わせたY/Zオイラー角反転規約。
		x, y, z := bone.Rotation.ToRadians()
		mirrorBone.Rotation = mmath.NewQuaternionFromRadians(x, -y, -z)
	default:
		return false, fmt.Errorf("未対応のミラー種別です: %d", kind)
	}

	uc.armature.UpdateWorldTransforms()
	return true, nil
}

// FindMirrorBone は名前規約から対側ボーンを解決する。見つからない場合はfalseを返す。
func (uc *BoneEditUsecase) FindMirrorBone(bone *model.Bone) (*model.Bone, bool) {
	if uc == nil || uc.armature == nil || uc.armature.Bones == nil || bone == nil {
		return nil, false
	}
	return uc.findMirrorBone(bone)
}

// findMirrorBone は左右マーカーを取り除いた基底名が一致するボーンをちょうど1つだけ探す。
// 0件または2件以上の場合は対側不定としてfalseを返す。
func (uc *BoneEditUsecase) findMirrorBone(bone *model.Bone) (*model.Bone, bool) {
	baseName, found := stripSideMarker(&uc.boneNames.Mirror, bone.Name())
	if !found {
		return nil, false
	}

	var mirrorBone *model.Bone
	matchCount := 0
	for _, candidate := range uc.armature.Bones.Values() {
		if candidate == nil || candidate.Index() == bone.Index() {
			continue
		}
		candidateBase, candidateFound := stripSideMarker(&uc.boneNames.Mirror, candidate.Name())
		if !candidateFound || candidateBase != baseName {
			continue
		}
		mirrorBone = candidate
		matchCount++
	}
	if matchCount != 1 {
		return nil, false
	}
	return mirrorBone, true
}

// stripSideMarker は小文字化した名前からベンダープレフィックスと左右マーカーを取り除く。
// マーカーはプレフィックス・サフィックスの両方を試し、最初に一致したものを採用する。
func stripSideMarker(config *MirrorNameConfig, name string) (string, bool) {
	lowered := strings.ToLower(name)
	for _, prefix := range config.VendorPrefixes {
		if strings.HasPrefix(lowered, prefix) {
			lowered = strings.TrimPrefix(lowered, prefix)
			break
		}
	}

	markers := make([]string, 0, len(config.LeftMarkers)+len(config.RightMarkers))
	markers = append(markers, config.LeftMarkers...)
	markers = append(markers, config.RightMarkers...)
	for _, marker := range markers {
		if strings.HasPrefix(lowered, marker) {
			base := strings.TrimPrefix(lowered, marker)
			if base != "" {
				return base, true
			}
		}
		if strings.HasSuffix(lowered, marker) {
			base := strings.TrimSuffix(lowered, marker)
			if base != "" {
				return base, true
			}
		}
	}
	return "", false
}
