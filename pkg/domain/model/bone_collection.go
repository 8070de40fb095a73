// 指示: miu200521358
package model

import (
	"github.com/miu200521358/mu_bvh_retarget/pkg/domain/model/merrors"
)

// BoneCollection はボーンを追加順(=階層走査順)で保持するアリーナを表す。
// index 0 はインポート後のルートボーンであることを公開契約とする。
type BoneCollection struct {
	bones       []*Bone
	nameIndexes map[string]int
}

// NewBoneCollection は空のボーンコレクションを生成する。
func NewBoneCollection() *BoneCollection {
	return &BoneCollection{
		bones:       make([]*Bone, 0),
		nameIndexes: map[string]int{},
	}
}

// Len は登録ボーン数を返す。
func (c *BoneCollection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.bones)
}

// Append はボーンを末尾へ登録し、割り当てたindexを返す。名前重複は登録失敗とする。
func (c *BoneCollection) Append(bone *Bone) (int, error) {
	if bone == nil {
		return -1, merrors.NewBoneNotFoundError(-1)
	}
	if _, exists := c.nameIndexes[bone.name]; exists {
		return -1, merrors.NewNameConflictError(bone.name)
	}
	index := len(c.bones)
	bone.index = index
	c.bones = append(c.bones, bone)
	c.nameIndexes[bone.name] = index
	if bone.ParentIndex >= 0 && bone.ParentIndex < index {
		parent := c.bones[bone.ParentIndex]
		parent.ChildIndexes = append(parent.ChildIndexes, index)
	}
	return index, nil
}

// Get はindex指定でボーンを返す。
func (c *BoneCollection) Get(index int) (*Bone, error) {
	if c == nil || index < 0 || index >= len(c.bones) {
		return nil, merrors.NewBoneNotFoundError(index)
	}
	return c.bones[index], nil
}

// GetByName は名前指定でボーンを返す。
func (c *BoneCollection) GetByName(name string) (*Bone, bool) {
	if c == nil {
		return nil, false
	}
	index, exists := c.nameIndexes[name]
	if !exists {
		return nil, false
	}
	return c.bones[index], true
}

// Values は登録順のボーン一覧を返す。
func (c *BoneCollection) Values() []*Bone {
	if c == nil {
		return nil
	}
	return c.bones
}

// Root はルートボーンを返す。
// 親indexがコレクション外を指すボーンをルート候補とみなし、候補がなければ先頭ボーンへフォールバックする。
func (c *BoneCollection) Root() (*Bone, bool) {
	if c == nil || len(c.bones) == 0 {
		return nil, false
	}
	for _, bone := range c.bones {
		if bone == nil {
			continue
		}
		if bone.ParentIndex < 0 || bone.ParentIndex >= len(c.bones) {
			return bone, true
		}
	}
	return c.bones[0], true
}
