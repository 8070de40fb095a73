// 指示: miu200521358
// Package bvh はBVH形式(階層スケルトン+モーション)の読み込みを提供する。
package bvh

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/miu200521358/mu_bvh_retarget/pkg/adapter/io_common"
	"github.com/miu200521358/mu_bvh_retarget/pkg/domain/model"
	"github.com/miu200521358/mu_bvh_retarget/pkg/shared/logging"
)

// defaultClipName はクリップ名未指定時に割り当てる既定名。
const defaultClipName = "motion"

// LoadProgressEventType はBVH読込進捗イベント種別を表す。
type LoadProgressEventType string

const (
	// LoadProgressEventTypeFileReadComplete はファイル読込完了イベントを表す。
	LoadProgressEventTypeFileReadComplete LoadProgressEventType = "file_read_complete"
	// LoadProgressEventTypeHierarchyParsed は階層解析完了イベントを表す。
	LoadProgressEventTypeHierarchyParsed LoadProgressEventType = "hierarchy_parsed"
	// LoadProgressEventTypeMotionParsed はモーション解析完了イベントを表す。
	LoadProgressEventTypeMotionParsed LoadProgressEventType = "motion_parsed"
	// LoadProgressEventTypeCompleted は読込完了イベントを表す。
	LoadProgressEventTypeCompleted LoadProgressEventType = "completed"
)

// LoadProgressEvent はBVH読込進捗イベントを表す。
type LoadProgressEvent struct {
	Type          LoadProgressEventType
	FileSizeBytes int
	BoneCount     int
	FrameCount    int
	ClipCount     int
}

// BvhRepository はBVH入力の読み込み契約を表す。
type BvhRepository struct {
	loadProgressReporter func(LoadProgressEvent)
}

// NewBvhRepository はBvhRepositoryを生成する。
func NewBvhRepository() *BvhRepository {
	return &BvhRepository{}
}

// SetLoadProgressReporter はBVH読込進捗受信コールバックを設定する。
func (r *BvhRepository) SetLoadProgressReporter(reporter func(LoadProgressEvent)) {
	if r == nil {
		return
	}
	r.loadProgressReporter = reporter
}

// CanLoad は拡張子に応じて読み込み可否を判定する。
func (r *BvhRepository) CanLoad(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".bvh")
}

// InferName はパスから表示名を推定する。
func (r *BvhRepository) InferName(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == "" {
		return base
	}
	return strings.TrimSuffix(base, ext)
}

// Load はBVHファイルを読み込む。読み取り失敗と書式不正は別種のエラーとして返す。
func (r *BvhRepository) Load(path string) (*model.MotionSet, error) {
	if !r.CanLoad(path) {
		return nil, io_common.NewIoExtInvalid(path, nil)
	}
	loadTargetName := filepath.Base(path)
	logBvhInfo("BVH読込開始: file=%s", loadTargetName)

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, io_common.NewIoFileNotFound(path, err)
		}
		return nil, io_common.NewIoReadFailed(path, err)
	}
	r.reportLoadProgress(LoadProgressEvent{
		Type:          LoadProgressEventTypeFileReadComplete,
		FileSizeBytes: len(b),
	})
	logBvhInfo("BVH読込ステップ: ファイル読み取り完了 bytes=%d", len(b))

	result, err := r.Parse(r.InferName(path), string(b))
	if err != nil {
		return nil, err
	}
	logBvhInfo("BVH読込完了: file=%s bones=%d clips=%d", loadTargetName, result.Bones.Len(), len(result.Clips))
	return result, nil
}

// Parse はBVHテキストを解析し、スケルトンとモーションクリップを構築する。
// 解析は単一の原子的計算であり、失敗時に部分的なスケルトンを返すことはない。
func (r *BvhRepository) Parse(clipName string, text string) (*model.MotionSet, error) {
	p := newBvhParser(text)
	joints, err := p.parseHierarchy()
	if err != nil {
		return nil, err
	}

	bones := model.NewBoneCollection()
	for _, joint := range joints {
		if _, err := bones.Append(joint.bone); err != nil {
			return nil, io_common.NewIoParseFailed("BVH階層の構造が不正です: ボーン登録に失敗しました", err)
		}
	}
	r.reportLoadProgress(LoadProgressEvent{
		Type:      LoadProgressEventTypeHierarchyParsed,
		BoneCount: bones.Len(),
	})

	clip, err := p.parseMotion(resolveClipName(clipName), joints)
	if err != nil {
		return nil, err
	}
	r.reportLoadProgress(LoadProgressEvent{
		Type:       LoadProgressEventTypeMotionParsed,
		FrameCount: clip.FrameCount,
	})

	// 階層が部分指定でも矛盾しないよう、親がコレクション外のボーンをルートとして扱う。
	rootBone, exists := bones.Root()
	if !exists {
		return nil, io_common.NewIoParseFailed("BVH階層の構造が不正です: ルートボーンを特定できません", nil)
	}
	armature := model.NewArmature(rootBone.Name(), bones)
	armature.UpdateWorldTransforms()

	result := &model.MotionSet{
		Armature: armature,
		Bones:    bones,
		Clips:    []*model.MotionClip{clip},
		Warnings: p.warnings,
	}
	for _, warning := range result.Warnings {
		logging.DefaultLogger().Warn("BVH取り込み警告: %s", warning)
	}
	r.reportLoadProgress(LoadProgressEvent{
		Type:      LoadProgressEventTypeCompleted,
		BoneCount: bones.Len(),
		ClipCount: len(result.Clips),
	})
	return result, nil
}

// reportLoadProgress は読込進捗を通知する。
func (r *BvhRepository) reportLoadProgress(event LoadProgressEvent) {
	if r == nil || r.loadProgressReporter == nil {
		return
	}
	r.loadProgressReporter(event)
}

// resolveClipName はクリップ名を解決する。未指定時は既定名を割り当てる。
func resolveClipName(name string) string {
	resolved := strings.TrimSpace(name)
	if resolved == "" {
		return defaultClipName
	}
	return resolved
}

// logBvhInfo はBVH読込の情報ログを出力する。
func logBvhInfo(format string, args ...any) {
	logging.DefaultLogger().Info(format, args...)
}
