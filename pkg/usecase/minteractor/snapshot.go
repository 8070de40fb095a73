// 指示: miu200521358
// Package minteractor はスケルトン編集(ミラー・スナップ・履歴・リターゲット補正)のユースケースを提供する。
package minteractor

import (
	"fmt"

	"github.com/miu200521358/mu_bvh_retarget/pkg/domain/mmath"
	"github.com/miu200521358/mu_bvh_retarget/pkg/domain/model"
	"github.com/tiendc/go-deepcopy"
)

// BoneLocalTransform は1ボーン分のローカル変換の複製を表す。
type BoneLocalTransform struct {
	Position mmath.Vec3
	Rotation mmath.Quaternion
	Scale    mmath.Vec3
}

// BoneTransformSnapshot は安定indexからローカル変換複製への不変マッピングを表す。
type BoneTransformSnapshot map[int]BoneLocalTransform

// captureBoneSnapshot は全ボーンのローカル変換を複製したスナップショットを返す。
func captureBoneSnapshot(bones *model.BoneCollection) (BoneTransformSnapshot, error) {
	if bones == nil {
		return nil, fmt.Errorf("スナップショット対象のスケルトンが未設定です")
	}
	source := make(BoneTransformSnapshot, bones.Len())
	for _, bone := range bones.Values() {
		if bone == nil {
			continue
		}
		source[bone.Index()] = BoneLocalTransform{
			Position: bone.Position,
			Rotation: bone.Rotation,
			Scale:    bone.Scale,
		}
	}
	snapshot := BoneTransformSnapshot{}
	if err := deepcopy.Copy(&snapshot, source); err != nil {
		return nil, fmt.Errorf("ボーン変換の複製に失敗しました: %w", err)
	}
	return snapshot, nil
}

// restoreBoneSnapshot はスナップショットのローカル変換を一括で書き戻す。
// スナップショットに存在しないボーンは変更しない。ワールド変換の再計算は全書き込み後に1回だけ行う。
func restoreBoneSnapshot(armature *model.Armature, snapshot BoneTransformSnapshot) error {
	if armature == nil || armature.Bones == nil {
		return fmt.Errorf("復元対象のアーマチュアが未設定です")
	}
	if snapshot == nil {
		return fmt.Errorf("復元対象のスナップショットが未設定です")
	}
	for _, bone := range armature.Bones.Values() {
		if bone == nil {
			continue
		}
		transform, exists := snapshot[bone.Index()]
		if !exists {
			continue
		}
		bone.Position = transform.Position
		bone.Rotation = transform.Rotation
		bone.Scale = transform.Scale
	}
	armature.UpdateWorldTransforms()
	return nil
}
