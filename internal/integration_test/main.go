// 指示: miu200521358
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/miu200521358/mu_bvh_retarget/pkg/adapter/io_motion/bvh"
	"github.com/miu200521358/mu_bvh_retarget/pkg/adapter/storage"
	"github.com/miu200521358/mu_bvh_retarget/pkg/usecase/minteractor"
)

var targetMotionPaths = []string{
	"E:/MMD_E/202101_vroid/Bvh/cmu/001_walk.bvh",
	// "E:/MMD_E/202101_vroid/Bvh/cmu/002_run.bvh",
	// "E:/MMD_E/202101_vroid/Bvh/cmu/005_jump.bvh",
	// "E:/MMD_E/202101_vroid/Bvh/mixamo/Idle.bvh",
	// "E:/MMD_E/202101_vroid/Bvh/mixamo/Walking.bvh",
	// "C:/Codex/mlib/mu_bvh_retarget/internal/test_resources/bvh/minimal_two_joint.bvh",
}

// batchConfig はバッチ取り込みの実行設定を表す。
type batchConfig struct {
	StoreRoot string
	DryRun    bool
	FailFast  bool
}

// importEntry は1モーション分の取り込み入力情報を表す。
type importEntry struct {
	Index      int
	SourcePath string
	MotionName string
}

// importResult は1モーション分の取り込み結果を表す。
type importResult struct {
	Entry         importEntry
	Status        string
	Duration      time.Duration
	Err           error
	LoadStageInfo string
}

// loadProgressCollector はBVH読込の進捗イベントを収集する。
type loadProgressCollector struct {
	eventCounts map[bvh.LoadProgressEventType]int
	boneMax     int
	frameMax    int
	byteTotal   int
}

// main は実BVHファイル一括取り込みの検証を実行する。
func main() {
	os.Exit(run())
}

// run は実行設定を解決して一括取り込みを実行し、終了コードを返す。
func run() int {
	config, err := parseBatchConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定解析に失敗しました: %v\n", err)
		return 2
	}
	entries := buildImportEntries(targetMotionPaths)
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "取り込み対象モーションがありません")
		return 2
	}

	results := executeBatchImport(config, entries)
	printBatchSummary(results)

	for _, result := range results {
		if result.Status == "failed" {
			return 1
		}
	}
	return 0
}

// parseBatchConfig はコマンドライン引数から実行設定を構築する。
func parseBatchConfig() (batchConfig, error) {
	defaultStoreRoot, err := resolveDefaultStoreRoot()
	if err != nil {
		return batchConfig{}, err
	}
	storeRoot := flag.String("store-root", defaultStoreRoot, "生テキスト保存先のルートディレクトリ")
	dryRun := flag.Bool("dry-run", false, "実取り込みせず、入力解決のみ表示する")
	failFast := flag.Bool("fail-fast", false, "失敗時に即時終了する")
	flag.Parse()

	trimmedStoreRoot := strings.TrimSpace(*storeRoot)
	if trimmedStoreRoot == "" {
		return batchConfig{}, errors.New("store-root が空です")
	}
	return batchConfig{
		StoreRoot: filepath.Clean(trimmedStoreRoot),
		DryRun:    *dryRun,
		FailFast:  *failFast,
	}, nil
}

// resolveDefaultStoreRoot はスクリプト配置ディレクトリ基準の既定保存先を返す。
func resolveDefaultStoreRoot() (string, error) {
	_, currentFilePath, _, ok := runtime.Caller(0)
	if !ok {
		return "", errors.New("実行ファイル位置を取得できません")
	}
	return filepath.Join(filepath.Dir(currentFilePath), "output"), nil
}

// buildImportEntries は入力パス一覧から取り込み対象エントリを生成する。
func buildImportEntries(inputPaths []string) []importEntry {
	entries := make([]importEntry, 0, len(inputPaths))
	for i, rawPath := range inputPaths {
		entries = append(entries, importEntry{
			Index:      i + 1,
			SourcePath: normalizeInputPath(rawPath),
			MotionName: resolveMotionName(rawPath),
		})
	}
	return entries
}

// executeBatchImport は全モーションの取り込みを順次実行する。
func executeBatchImport(config batchConfig, entries []importEntry) []importResult {
	repository := bvh.NewBvhRepository()
	store := storage.NewRawMotionStore(config.StoreRoot, repository)
	usecase := minteractor.NewBoneEditUsecase(minteractor.BoneEditUsecaseDeps{
		MotionReader:   repository,
		RawMotionStore: store,
	})

	results := make([]importResult, 0, len(entries))
	total := len(entries)
	for _, entry := range entries {
		fmt.Printf("[%d/%d] 取り込み開始: motion=%s\n", entry.Index, total, entry.MotionName)
		result := importMotionEntry(usecase, repository, config, entry)
		results = append(results, result)
		switch result.Status {
		case "succeeded":
			fmt.Printf("[%d/%d] 取り込み成功: motion=%s elapsed=%s\n", entry.Index, total, entry.MotionName, result.Duration.Round(time.Millisecond))
			if strings.TrimSpace(result.LoadStageInfo) != "" {
				fmt.Printf("[%d/%d] 読込進捗: %s\n", entry.Index, total, result.LoadStageInfo)
			}
		case "dry_run":
			fmt.Printf("[%d/%d] DRY-RUN: motion=%s input=%s\n", entry.Index, total, entry.MotionName, entry.SourcePath)
		case "skipped_missing":
			fmt.Printf("[%d/%d] 入力不足でスキップ: motion=%s input=%s reason=%v\n", entry.Index, total, entry.MotionName, entry.SourcePath, result.Err)
		default:
			fmt.Printf("[%d/%d] 取り込み失敗: motion=%s reason=%v\n", entry.Index, total, entry.MotionName, result.Err)
			if config.FailFast {
				return results
			}
		}
	}
	return results
}

// importMotionEntry は1モーション分の取り込みと編集セッション検証を実行する。
func importMotionEntry(usecase *minteractor.BoneEditUsecase, repository *bvh.BvhRepository, config batchConfig, entry importEntry) importResult {
	result := importResult{
		Entry:  entry,
		Status: "failed",
	}
	if _, err := os.Stat(entry.SourcePath); err != nil {
		result.Status = "skipped_missing"
		result.Err = err
		return result
	}
	if config.DryRun {
		result.Status = "dry_run"
		return result
	}

	startedAt := time.Now()
	progressCollector := newLoadProgressCollector()
	repository.SetLoadProgressReporter(progressCollector.ReportLoadProgress)
	defer repository.SetLoadProgressReporter(nil)

	motionSet, err := usecase.LoadMotion(nil, entry.SourcePath)
	if err != nil {
		result.Err = fmt.Errorf("LoadMotionに失敗しました: %w", err)
		return result
	}
	if motionSet == nil || motionSet.Armature == nil {
		result.Err = errors.New("LoadMotion結果が空です")
		return result
	}

	if err := usecase.Begin(motionSet.Armature); err != nil {
		result.Err = fmt.Errorf("編集セッション開始に失敗しました: %w", err)
		return result
	}
	defer usecase.Dispose()

	// 未編集スケルトンの補正は空になるはずの検証
	corrections, err := usecase.ComputeRestCorrections()
	if err != nil {
		result.Err = fmt.Errorf("補正計算に失敗しました: %w", err)
		return result
	}
	if len(corrections) > 0 {
		result.Err = fmt.Errorf("未編集スケルトンに補正が発生しました: %d ボーン", len(corrections))
		return result
	}

	rawText, err := os.ReadFile(entry.SourcePath)
	if err != nil {
		result.Err = fmt.Errorf("生テキスト読み取りに失敗しました: %w", err)
		return result
	}
	record, err := usecase.StoreRawMotion(entry.MotionName, string(rawText))
	if err != nil {
		result.Err = fmt.Errorf("生テキスト保存に失敗しました: %w", err)
		return result
	}
	if _, err := usecase.LoadStoredMotion(record.ID); err != nil {
		result.Err = fmt.Errorf("保存テキストの再取り込みに失敗しました: %w", err)
		return result
	}

	result.Status = "succeeded"
	result.Duration = time.Since(startedAt)
	result.LoadStageInfo = progressCollector.Summary()
	return result
}

// printBatchSummary は取り込み結果の集計を標準出力へ表示する。
func printBatchSummary(results []importResult) {
	succeeded := 0
	failed := 0
	skipped := 0
	dryRun := 0
	for _, result := range results {
		switch result.Status {
		case "succeeded":
			succeeded++
		case "dry_run":
			dryRun++
		case "skipped_missing":
			skipped++
		default:
			failed++
		}
	}
	fmt.Printf(
		"バッチ取り込みサマリ: total=%d succeeded=%d failed=%d skipped_missing=%d dry_run=%d\n",
		len(results),
		succeeded,
		failed,
		skipped,
		dryRun,
	)
}

// resolveMotionName は入力パスから拡張子を除いたモーション名を返す。
func resolveMotionName(path string) string {
	base := strings.TrimSpace(filepath.Base(path))
	name := strings.TrimSpace(strings.TrimSuffix(base, filepath.Ext(base)))
	if name == "" {
		return "motion"
	}
	return name
}

// normalizeInputPath は入力パスを実行環境向けに正規化する。
func normalizeInputPath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	return filepath.Clean(convertWindowsPathToWsl(path))
}

// convertWindowsPathToWsl は Linux 実行時に Windows パスを WSL パスへ変換する。
func convertWindowsPathToWsl(path string) string {
	trimmed := strings.TrimSpace(path)
	if runtime.GOOS != "linux" {
		return trimmed
	}
	if len(trimmed) < 2 || trimmed[1] != ':' {
		return trimmed
	}
	drive := strings.ToLower(trimmed[:1])
	rest := strings.ReplaceAll(trimmed[2:], "\\", "/")
	if rest == "" {
		return filepath.ToSlash(filepath.Join("/mnt", drive))
	}
	if !strings.HasPrefix(rest, "/") {
		rest = "/" + rest
	}
	return filepath.ToSlash(filepath.Join("/mnt", drive) + rest)
}

// newLoadProgressCollector はBVH読込進捗収集器を生成する。
func newLoadProgressCollector() *loadProgressCollector {
	return &loadProgressCollector{
		eventCounts: map[bvh.LoadProgressEventType]int{},
	}
}

// ReportLoadProgress はBVH読込の進捗イベントを収集する。
func (collector *loadProgressCollector) ReportLoadProgress(event bvh.LoadProgressEvent) {
	if collector == nil {
		return
	}
	if collector.eventCounts == nil {
		collector.eventCounts = map[bvh.LoadProgressEventType]int{}
	}
	collector.eventCounts[event.Type]++
	if event.BoneCount > collector.boneMax {
		collector.boneMax = event.BoneCount
	}
	if event.FrameCount > collector.frameMax {
		collector.frameMax = event.FrameCount
	}
	collector.byteTotal += event.FileSizeBytes
}

// Summary は収集した読込進捗の要約文字列を返す。
func (collector *loadProgressCollector) Summary() string {
	if collector == nil || len(collector.eventCounts) == 0 {
		return ""
	}
	types := make([]string, 0, len(collector.eventCounts))
	for stageType := range collector.eventCounts {
		types = append(types, string(stageType))
	}
	sort.Strings(types)
	return fmt.Sprintf(
		"events=%d bones=%d frames=%d bytes=%d stages=%s",
		len(collector.eventCounts),
		collector.boneMax,
		collector.frameMax,
		collector.byteTotal,
		strings.Join(types, ","),
	)
}
