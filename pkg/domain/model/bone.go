// 指示: miu200521358
// Package model はスケルトン編集対象のドメインモデルを提供する。
package model

import (
	"github.com/miu200521358/mu_bvh_retarget/pkg/domain/mmath"
)

// Bone はスケルトン階層の1ノードを表す。
// 親子参照は生ポインタではなく BoneCollection 上の安定indexで保持する。
type Bone struct {
	index int
	name  string

	// ParentIndex は親ボーンのindexを表す。ルートは-1。
	ParentIndex int
	// ChildIndexes は子ボーンのindex一覧を階層宣言順で保持する。
	ChildIndexes []int
	// IsEndSite は末端補助ノード(End Site)かを表す。補正計算のボーン子判定から除外される。
	IsEndSite bool

	// Position はローカル位置を表す。
	Position mmath.Vec3
	// Rotation はローカル回転を表す。
	Rotation mmath.Quaternion
	// Scale はローカルスケールを表す。
	Scale mmath.Vec3

	// WorldPosition はワールド変換再計算後のワールド位置を表す。
	WorldPosition mmath.Vec3
	// WorldRotation はワールド変換再計算後のワールド回転を表す。
	WorldRotation mmath.Quaternion
	// WorldScale はワールド変換再計算後のワールドスケールを表す。
	WorldScale mmath.Vec3
}

// NewBone はローカル変換を初期値で持つボーンを生成する。
func NewBone(name string) *Bone {
	return &Bone{
		index:         -1,
		name:          name,
		ParentIndex:   -1,
		Rotation:      mmath.NewQuaternion(),
		Scale:         mmath.ONE_VEC3,
		WorldRotation: mmath.NewQuaternion(),
		WorldScale:    mmath.ONE_VEC3,
	}
}

// Index はコレクション内の安定indexを返す。未登録時は-1。
func (b *Bone) Index() int {
	return b.index
}

// Name はボーン名を返す。
func (b *Bone) Name() string {
	return b.name
}

// IsRoot は親を持たないボーンか判定する。
func (b *Bone) IsRoot() bool {
	return b.ParentIndex < 0
}
