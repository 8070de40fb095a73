// 指示: miu200521358
package minteractor

import (
	"fmt"

	"github.com/miu200521358/mu_bvh_retarget/pkg/domain/model"
)

// PreviewArmature はプレビュー表示用にアーマチュアの複製を返す。
// 複製は呼び出し側が保持でき、編集セッションの以後の変更から独立している。
func (uc *BoneEditUsecase) PreviewArmature() (*model.Armature, error) {
	if uc == nil || uc.armature == nil {
		return nil, fmt.Errorf("編集セッションが開始されていません")
	}
	return uc.armature.Clone()
}
