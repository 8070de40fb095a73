// 指示: miu200521358
package minteractor

import (
	"fmt"

	"github.com/miu200521358/mu_bvh_retarget/pkg/domain/model"
	"github.com/miu200521358/mu_bvh_retarget/pkg/usecase/port/moutput"
)

// BoneEditUsecaseDeps はスケルトン編集ユースケースの依存を表す。
type BoneEditUsecaseDeps struct {
	// MotionReader はモーションファイル読み込みの実装を表す。
	MotionReader moutput.IMotionReader
	// RayIntersector はレイとメッシュの交差判定の実装を表す。
	RayIntersector moutput.IRayIntersector
	// RawMotionStore はインポート元テキストの永続化実装を表す。省略可。
	RawMotionStore moutput.IRawMotionStore
	// BoneNames はボーン名ヒューリスティック設定を表す。nilは組み込み既定値。
	BoneNames *BoneNameConfig
	// HistoryCapacity はUndo/Redo履歴の上限を表す。0以下は既定値(50)。
	HistoryCapacity int
	// SnapSearchRadius はスナップ時の頂点収集半径を表す。0以下は既定値(0.15)。
	SnapSearchRadius float64
	// HoverThreshold はドラッグ開始時のボーン選択許容距離を表す。0以下は既定値(0.02)。
	HoverThreshold float64
	// OnHistoryStateChanged はUndo/Redo可否の変化を受け取る同期コールバックを表す。省略可。
	OnHistoryStateChanged func(canUndo bool, canRedo bool)
}

// BoneEditUsecase はレストポーズ編集セッション(選択・ミラー・スナップ・履歴・補正)をまとめたユースケースを表す。
// 全操作は単一の編集スレッドから同期的に呼ぶ契約とする。
type BoneEditUsecase struct {
	motionReader   moutput.IMotionReader
	rayIntersector moutput.IRayIntersector
	rawMotionStore moutput.IRawMotionStore
	boneNames      *BoneNameConfig
	history        *BoneHistory

	snapSearchRadius float64
	hoverThreshold   float64

	armature     *model.Armature
	originalRest BoneTransformSnapshot

	mirrorMode        bool
	dragActive        bool
	selectedBoneIndex int
}

// NewBoneEditUsecase はスケルトン編集ユースケースを生成する。
func NewBoneEditUsecase(deps BoneEditUsecaseDeps) *BoneEditUsecase {
	boneNames := deps.BoneNames
	if boneNames == nil {
		boneNames = DefaultBoneNameConfig()
	}
	snapSearchRadius := deps.SnapSearchRadius
	if snapSearchRadius <= 0 {
		snapSearchRadius = defaultSnapSearchRadius
	}
	hoverThreshold := deps.HoverThreshold
	if hoverThreshold <= 0 {
		hoverThreshold = defaultHoverThreshold
	}
	return &BoneEditUsecase{
		motionReader:      deps.MotionReader,
		rayIntersector:    deps.RayIntersector,
		rawMotionStore:    deps.RawMotionStore,
		boneNames:         boneNames,
		history:           NewBoneHistory(deps.HistoryCapacity, deps.OnHistoryStateChanged),
		snapSearchRadius:  snapSearchRadius,
		hoverThreshold:    hoverThreshold,
		selectedBoneIndex: -1,
	}
}

// Begin は編集セッションを開始する。
// 編集前レストポーズを退避し、別スケルトンの履歴が再生されないよう履歴を空にする。
func (uc *BoneEditUsecase) Begin(armature *model.Armature) error {
	if uc == nil {
		return fmt.Errorf("ユースケースが未初期化です")
	}
	if armature == nil || armature.Bones == nil {
		return fmt.Errorf("編集対象のアーマチュアが未設定です")
	}
	originalRest, err := captureBoneSnapshot(armature.Bones)
	if err != nil {
		return err
	}
	uc.armature = armature
	uc.originalRest = originalRest
	uc.mirrorMode = false
	uc.dragActive = false
	uc.selectedBoneIndex = -1
	uc.history.ClearHistory()
	return nil
}

// Dispose は編集セッションを終了し、保持状態を解放する。
func (uc *BoneEditUsecase) Dispose() {
	if uc == nil {
		return
	}
	uc.armature = nil
	uc.originalRest = nil
	uc.dragActive = false
	uc.selectedBoneIndex = -1
	uc.history.ClearHistory()
}

// Armature は編集中のアーマチュアを返す。
func (uc *BoneEditUsecase) Armature() *model.Armature {
	if uc == nil {
		return nil
	}
	return uc.armature
}

// MirrorMode はミラーモードの有効状態を返す。
func (uc *BoneEditUsecase) MirrorMode() bool {
	return uc != nil && uc.mirrorMode
}

// SetMirrorMode はミラーモードを切り替える。
func (uc *BoneEditUsecase) SetMirrorMode(enabled bool) {
	if uc == nil {
		return
	}
	uc.mirrorMode = enabled
}

// SelectedBone は現在選択中のボーンを返す。未選択はfalse。
func (uc *BoneEditUsecase) SelectedBone() (*model.Bone, bool) {
	if uc == nil || uc.armature == nil || uc.selectedBoneIndex < 0 {
		return nil, false
	}
	bone, err := uc.armature.Bones.Get(uc.selectedBoneIndex)
	if err != nil {
		return nil, false
	}
	return bone, true
}

// StoreCurrentState は変更開始前の状態を履歴へ退避する。変更開始前に1回だけ呼ぶ。
func (uc *BoneEditUsecase) StoreCurrentState() error {
	if uc == nil || uc.armature == nil {
		return fmt.Errorf("編集セッションが開始されていません")
	}
	return uc.history.StoreCurrentState(uc.armature.Bones)
}

// Undo は直近の変更を取り消す。取り消す変更がない場合はfalseを返す。
func (uc *BoneEditUsecase) Undo() bool {
	if uc == nil || uc.armature == nil {
		return false
	}
	return uc.history.Undo(uc.armature)
}

// Redo は直近に取り消した変更をやり直す。対象がない場合はfalseを返す。
func (uc *BoneEditUsecase) Redo() bool {
	if uc == nil || uc.armature == nil {
		return false
	}
	return uc.history.Redo(uc.armature)
}

// ClearHistory はUndo/Redo履歴を空にする。
func (uc *BoneEditUsecase) ClearHistory() {
	if uc == nil {
		return
	}
	uc.history.ClearHistory()
}

// CanUndo はUndo可能か返す。
func (uc *BoneEditUsecase) CanUndo() bool {
	return uc != nil && uc.history.CanUndo()
}

// CanRedo はRedo可能か返す。
func (uc *BoneEditUsecase) CanRedo() bool {
	return uc != nil && uc.history.CanRedo()
}
