// 指示: miu200521358
package minteractor

import (
	"fmt"

	"github.com/miu200521358/mu_bvh_retarget/pkg/domain/model"
	"github.com/miu200521358/mu_bvh_retarget/pkg/usecase/port/moutput"
)

// LoadMotion はモーションファイルを読み込みスケルトンとクリップを返す。
func (uc *BoneEditUsecase) LoadMotion(rep moutput.IMotionReader, path string) (*model.MotionSet, error) {
	repo := rep
	if repo == nil {
		repo = uc.motionReader
	}
	if repo == nil {
		return nil, fmt.Errorf("モーション読み込みリポジトリが設定されていません")
	}
	return repo.Load(path)
}

// StoreRawMotion はインポート元テキストを永続化し、生成されたレコードを返す。
func (uc *BoneEditUsecase) StoreRawMotion(name string, rawText string) (moutput.RawMotionRecord, error) {
	if uc == nil || uc.rawMotionStore == nil {
		return moutput.RawMotionRecord{}, fmt.Errorf("モーション永続化リポジトリが設定されていません")
	}
	return uc.rawMotionStore.Store(name, rawText)
}

// LoadStoredMotion は保存済みテキストを識別子指定で再インポートする。
func (uc *BoneEditUsecase) LoadStoredMotion(id string) (*model.MotionSet, error) {
	if uc == nil || uc.rawMotionStore == nil {
		return nil, fmt.Errorf("モーション永続化リポジトリが設定されていません")
	}
	return uc.rawMotionStore.LoadMotion(id)
}
