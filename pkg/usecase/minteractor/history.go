// 指示: miu200521358
package minteractor

import (
	"fmt"

	"github.com/miu200521358/mu_bvh_retarget/pkg/domain/model"
)

// defaultHistoryCapacity は履歴スタックの既定上限。超過時は最古のエントリを黙って追い出す。
const defaultHistoryCapacity = 50

// BoneHistory はスナップショットの二重スタックによるUndo/Redo調停者を表す。
// 全操作は単一の編集スレッドから同期的に呼ぶ契約とする。
type BoneHistory struct {
	capacity       int
	undoStack      []BoneTransformSnapshot
	redoStack      []BoneTransformSnapshot
	onStateChanged func(canUndo bool, canRedo bool)
}

// NewBoneHistory は容量指定で履歴を生成する。0以下は既定容量に丸める。
func NewBoneHistory(capacity int, onStateChanged func(canUndo bool, canRedo bool)) *BoneHistory {
	if capacity <= 0 {
		capacity = defaultHistoryCapacity
	}
	return &BoneHistory{
		capacity:       capacity,
		onStateChanged: onStateChanged,
	}
}

// CanUndo はUndo可能か判定する。
func (h *BoneHistory) CanUndo() bool {
	return h != nil && len(h.undoStack) > 0
}

// CanRedo はRedo可能か判定する。
func (h *BoneHistory) CanRedo() bool {
	return h != nil && len(h.redoStack) > 0
}

// StoreCurrentState は変更開始前の状態をUndoスタックへ積む。
// 新規編集は過去のRedo経路を無効化するためRedoスタックを空にする。
func (h *BoneHistory) StoreCurrentState(bones *model.BoneCollection) error {
	if h == nil {
		return fmt.Errorf("履歴が未初期化です")
	}
	snapshot, err := captureBoneSnapshot(bones)
	if err != nil {
		return err
	}
	if len(h.undoStack) >= h.capacity {
		h.undoStack = h.undoStack[1:]
	}
	h.undoStack = append(h.undoStack, snapshot)
	h.redoStack = h.redoStack[:0]
	h.notifyStateChanged()
	return nil
}

// Undo は直近のUndoエントリを復元する。履歴が空の場合はfalseを返しスケルトンを変更しない。
func (h *BoneHistory) Undo(armature *model.Armature) bool {
	if h == nil || len(h.undoStack) == 0 || armature == nil {
		return false
	}
	current, err := captureBoneSnapshot(armature.Bones)
	if err != nil {
		return false
	}
	last := len(h.undoStack) - 1
	snapshot := h.undoStack[last]
	if err := restoreBoneSnapshot(armature, snapshot); err != nil {
		return false
	}
	h.undoStack = h.undoStack[:last]
	h.redoStack = append(h.redoStack, current)
	h.notifyStateChanged()
	return true
}

// Redo は直近のRedoエントリを復元する。履歴が空の場合はfalseを返しスケルトンを変更しない。
func (h *BoneHistory) Redo(armature *model.Armature) bool {
	if h == nil || len(h.redoStack) == 0 || armature == nil {
		return false
	}
	current, err := captureBoneSnapshot(armature.Bones)
	if err != nil {
		return false
	}
	last := len(h.redoStack) - 1
	snapshot := h.redoStack[last]
	if err := restoreBoneSnapshot(armature, snapshot); err != nil {
		return false
	}
	h.redoStack = h.redoStack[:last]
	h.undoStack = append(h.undoStack, current)
	h.notifyStateChanged()
	return true
}

// ClearHistory は両スタックを空にする。別スケルトン読込時に過去履歴の再生を防ぐために呼ぶ。
func (h *BoneHistory) ClearHistory() {
	if h == nil {
		return
	}
	h.undoStack = h.undoStack[:0]
	h.redoStack = h.redoStack[:0]
	h.notifyStateChanged()
}

// notifyStateChanged は状態変化を同期コールバックで通知する。
func (h *BoneHistory) notifyStateChanged() {
	if h.onStateChanged == nil {
		return
	}
	h.onStateChanged(h.CanUndo(), h.CanRedo())
}
