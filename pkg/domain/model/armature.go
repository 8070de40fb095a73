// 指示: miu200521358
package model

import (
	"fmt"

	"github.com/miu200521358/mu_bvh_retarget/pkg/domain/mmath"
)

// Armature はスケルトンをシーンへ取り付けるためのコンテナを表す。
// 1スケルトンにつき1つ生成し、編集セッションが専有所有する。
type Armature struct {
	name string

	// Position はアーマチュア自体のワールド位置を表す。
	Position mmath.Vec3
	// Rotation はアーマチュア自体のワールド回転を表す。
	Rotation mmath.Quaternion
	// Scale はアーマチュア自体のワールドスケールを表す。
	Scale mmath.Vec3

	// Bones は所有するボーンコレクションを表す。
	Bones *BoneCollection
}

// NewArmature はボーンコレクションを包むアーマチュアを生成する。
func NewArmature(name string, bones *BoneCollection) *Armature {
	return &Armature{
		name:     name,
		Rotation: mmath.NewQuaternion(),
		Scale:    mmath.ONE_VEC3,
		Bones:    bones,
	}
}

// Name はアーマチュア名を返す。
func (a *Armature) Name() string {
	return a.name
}

// UpdateWorldTransforms は全ボーンのワールド変換をルートから再計算する。
// ローカル変換の一括書き換え後に1回だけ呼ぶことで、中間状態の観測と二乗コストを避ける。
func (a *Armature) UpdateWorldTransforms() {
	if a == nil || a.Bones == nil {
		return
	}
	boneCount := a.Bones.Len()
	for _, bone := range a.Bones.Values() {
		if bone == nil {
			continue
		}
		// 親がコレクション外を指すボーンはアーマチュア直下として扱う。
		if bone.ParentIndex < 0 || bone.ParentIndex >= boneCount {
			a.applyWorldTransform(bone, a.Position, a.Rotation, a.Scale)
		}
	}
}

// applyWorldTransform は親姿勢を合成したワールド変換を適用し、子へ伝播する。
func (a *Armature) applyWorldTransform(
	bone *Bone,
	parentPosition mmath.Vec3,
	parentRotation mmath.Quaternion,
	parentScale mmath.Vec3,
) {
	if bone == nil {
		return
	}
	bone.WorldScale = parentScale.Muled(bone.Scale)
	bone.WorldRotation = parentRotation.Muled(bone.Rotation)
	bone.WorldPosition = parentPosition.Added(parentRotation.MulVec3(parentScale.Muled(bone.Position)))

	for _, childIndex := range bone.ChildIndexes {
		child, err := a.Bones.Get(childIndex)
		if err != nil || child == nil {
			continue
		}
		a.applyWorldTransform(child, bone.WorldPosition, bone.WorldRotation, bone.WorldScale)
	}
}

// WorldPointToBoneLocal はワールド座標点を指定ボーンのローカル位置座標系へ変換する。
// 具体的には親ボーンのワールド変換の逆変換を適用する。ルートボーンはアーマチュア変換の逆を適用する。
func (a *Armature) WorldPointToBoneLocal(bone *Bone, worldPoint mmath.Vec3) (mmath.Vec3, error) {
	if a == nil || a.Bones == nil || bone == nil {
		return mmath.ZERO_VEC3, fmt.Errorf("ローカル変換対象のボーンが未指定です")
	}

	parentPosition := a.Position
	parentRotation := a.Rotation
	parentScale := a.Scale
	if bone.ParentIndex >= 0 && bone.ParentIndex < a.Bones.Len() {
		parent, err := a.Bones.Get(bone.ParentIndex)
		if err != nil {
			return mmath.ZERO_VEC3, err
		}
		parentPosition = parent.WorldPosition
		parentRotation = parent.WorldRotation
		parentScale = parent.WorldScale
	}

	relative := parentRotation.Inverted().MulVec3(worldPoint.Subed(parentPosition))
	return relative.Dived(parentScale), nil
}

// Clone はプレビュー用途の完全な複製を生成する。複製はワールド変換を再計算済みで返す。
func (a *Armature) Clone() (*Armature, error) {
	if a == nil {
		return nil, fmt.Errorf("複製対象のアーマチュアが未設定です")
	}
	clonedBones := NewBoneCollection()
	if a.Bones != nil {
		for _, bone := range a.Bones.Values() {
			if bone == nil {
				continue
			}
			cloned := NewBone(bone.name)
			cloned.ParentIndex = bone.ParentIndex
			cloned.IsEndSite = bone.IsEndSite
			cloned.Position = bone.Position
			cloned.Rotation = bone.Rotation
			cloned.Scale = bone.Scale
			if _, err := clonedBones.Append(cloned); err != nil {
				return nil, fmt.Errorf("アーマチュア複製に失敗しました: %w", err)
			}
		}
	}
	cloned := NewArmature(a.name, clonedBones)
	cloned.Position = a.Position
	cloned.Rotation = a.Rotation
	cloned.Scale = a.Scale
	cloned.UpdateWorldTransforms()
	return cloned, nil
}
