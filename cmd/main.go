// 指示: miu200521358
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/miu200521358/mu_bvh_retarget/pkg/adapter/io_motion/bvh"
	"github.com/miu200521358/mu_bvh_retarget/pkg/adapter/storage"
)

// options はCLI引数を保持する。
type options struct {
	inputPath string
	storeDir  string
}

// main はBVHモーションの取り込み検証を実行する。
func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run はCLI処理全体を実行する。
func run(args []string, out io.Writer, errOut io.Writer) error {
	opts, err := parseOptions(args, errOut)
	if err != nil {
		return err
	}

	repository := bvh.NewBvhRepository()
	if !repository.CanLoad(opts.inputPath) {
		return fmt.Errorf("入力形式が未対応です: %s", opts.inputPath)
	}

	fmt.Fprintf(out, "[mu_bvh_retarget] 読み込み開始: %s\n", opts.inputPath)
	result, err := repository.Load(opts.inputPath)
	if err != nil {
		return fmt.Errorf("BVH読み込みに失敗しました: %w", err)
	}

	fmt.Fprintf(out, "[mu_bvh_retarget] 読み込み完了: bones=%d clips=%d\n", result.Bones.Len(), len(result.Clips))
	for _, clip := range result.Clips {
		fmt.Fprintf(out, "[mu_bvh_retarget] クリップ: name=%s frames=%d duration=%.3fs\n", clip.Name, clip.FrameCount, clip.Duration())
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(out, "[mu_bvh_retarget] 警告: %s\n", warning)
	}

	if opts.storeDir != "" {
		rawText, err := os.ReadFile(opts.inputPath)
		if err != nil {
			return fmt.Errorf("保存対象テキストの読み取りに失敗しました: %w", err)
		}
		store := storage.NewRawMotionStore(opts.storeDir, repository)
		record, err := store.Store(repository.InferName(opts.inputPath), string(rawText))
		if err != nil {
			return fmt.Errorf("モーション保存に失敗しました: %w", err)
		}
		fmt.Fprintf(out, "[mu_bvh_retarget] 保存完了: id=%s\n", record.ID)
	}
	return nil
}

// parseOptions はCLI引数を解析する。
func parseOptions(args []string, errOut io.Writer) (options, error) {
	fs := flag.NewFlagSet("mu_bvh_retarget", flag.ContinueOnError)
	fs.SetOutput(errOut)

	in := fs.String("in", "", "入力BVHファイルパス")
	store := fs.String("store", "", "生テキスト保存先ディレクトリ(省略時は保存しない)")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if *in == "" && fs.NArg() > 0 {
		*in = fs.Arg(0)
	}
	if *in == "" {
		return options{}, fmt.Errorf("入力BVHファイルを指定してください (-in)")
	}

	if !strings.EqualFold(filepath.Ext(*in), ".bvh") {
		return options{}, fmt.Errorf("入力拡張子が .bvh ではありません: %s", *in)
	}

	return options{inputPath: *in, storeDir: strings.TrimSpace(*store)}, nil
}
