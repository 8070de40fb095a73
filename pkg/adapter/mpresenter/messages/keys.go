// 指示: miu200521358
// Package messages はUI表示に使うメッセージキーを提供する。
package messages

// メッセージキー一覧。
const (
	HelpUsageTitle = "使い方"
	HelpUsage      = "使い方説明"

	LabelFile          = "ファイル"
	LabelBvhPath       = "BVH入力"
	LabelBvhPathTip    = "BVH入力説明"
	LabelMirrorMode    = "ミラーモード"
	LabelMirrorModeTip = "ミラーモード説明"
	LabelUndo          = "元に戻す"
	LabelRedo          = "やり直す"
	LabelCorrection    = "補正計算"
	LabelCorrectionTip = "補正計算説明"

	MessageLoadFailed        = "読み込み失敗"
	MessageStoreFailed       = "保存失敗"
	MessageCorrectionFailed  = "補正計算失敗"
	MessageInputRequired     = "BVHファイルを指定してください"
	MessageSkeletonMissing   = "スケルトンが読み込まれていません"
	MessageNothingToUndo     = "取り消せる編集がありません"
	MessageNothingToRedo     = "やり直せる編集がありません"
	MessageMirrorNoTarget    = "対側ボーンが見つかりません"
	MessageCorrectionIsEmpty = "補正が必要なボーンはありません"

	LogLoadSuccess       = "BVH読み込み成功: %s"
	LogStoreSuccess      = "モーション保存成功: %s"
	LogCorrectionSuccess = "補正計算成功: %d ボーン"
)
